package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := New("test_secret")

	tok, err := svc.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := New("test_secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	tok, err := New("secret_one").Issue(7)
	require.NoError(t, err)

	_, err = New("secret_two").Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}
