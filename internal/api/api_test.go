package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"blogspend/m/internal/migrations"
	"blogspend/m/internal/store"
	"blogspend/m/internal/token"
)

const testSecret = "test_secret"

func newTestHandler(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(1)
	migrations.Run(db)

	h := New(store.New(db), token.New(testSecret))
	return h, h.Router()
}

func doJSON(t *testing.T, router http.Handler, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func signupUser(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", map[string]string{
		"firstname": "Ada",
		"lastname":  "Lovelace",
		"email":     email,
		"password":  "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	jwt, _ := body["jwt"].(string)
	require.NotEmpty(t, jwt)
	return jwt
}

func TestSignupIssuesVerifiableToken(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	id, err := token.New(testSecret).Verify(jwt)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
}

func TestSignupRejectsInvalidInput(t *testing.T) {
	_, router := newTestHandler(t)

	cases := []map[string]string{
		{"firstname": "Ada", "email": "not-an-email", "password": "secret1"},
		{"firstname": "Ada", "email": "ada@example.com", "password": "abc"},
		{"email": "ada@example.com", "password": "secret1"},
	}
	for _, body := range cases {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	_, router := newTestHandler(t)
	signupUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signup", "", map[string]string{
		"firstname": "Other",
		"email":     "ada@example.com",
		"password":  "secret2",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignin(t *testing.T) {
	_, router := newTestHandler(t)
	signupUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/user/signin", "", map[string]string{
		"email":    "ada@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	jwt, _ := decodeBody(t, rec)["jwt"].(string)
	id, err := token.New(testSecret).Verify(jwt)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/user/signin", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrongpass",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NotContains(t, decodeBody(t, rec), "jwt")

	rec = doJSON(t, router, http.MethodPost, "/api/v1/user/signin", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	paths := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodPost, "/api/v1/blog", map[string]string{"title": "T", "content": "C"}},
		{http.MethodGet, "/api/v1/blog/bulk", nil},
		{http.MethodGet, "/api/v1/blog/1", nil},
		{http.MethodPost, "/api/v1/expenses", map[string]interface{}{"amount": 10, "category": "food"}},
		{http.MethodGet, "/api/v1/expenses/bulk", nil},
		{http.MethodGet, "/api/v1/expenses/category-spending", nil},
	}
	for _, p := range paths {
		rec := doJSON(t, router, p.method, p.path, "", p.body)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s without token", p.method, p.path)

		rec = doJSON(t, router, p.method, p.path, "malformed.token.here", p.body)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s with bad token", p.method, p.path)
	}

	// Rejected creates must not have persisted anything.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/blog/bulk", jwt, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody(t, rec)["blogs"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/expenses/bulk", jwt, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody(t, rec)["expenses"])
}

func TestBlogRoundTrip(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/blog", jwt, map[string]string{
		"title":   "T",
		"content": "C",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := decodeBody(t, rec)["id"].(float64)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/blog/%.0f", id), jwt, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	blog := decodeBody(t, rec)["blog"].(map[string]interface{})
	require.Equal(t, "T", blog["title"])
	require.Equal(t, "C", blog["content"])
	author := blog["author"].(map[string]interface{})
	require.Equal(t, "Ada Lovelace", author["name"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/blog/bulk", jwt, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody(t, rec)["blogs"], 1)
}

func TestBlogUpdate(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/blog", jwt, map[string]string{
		"title":   "T",
		"content": "C",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	id := int64(decodeBody(t, rec)["id"].(float64))

	rec = doJSON(t, router, http.MethodPut, "/api/v1/blog", jwt, map[string]interface{}{
		"id":      id,
		"title":   "T2",
		"content": "C2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/blog/%d", id), jwt, nil)
	blog := decodeBody(t, rec)["blog"].(map[string]interface{})
	require.Equal(t, "T2", blog["title"])

	// Updating a missing id fails and must not create a record.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/blog", jwt, map[string]interface{}{
		"id":      999,
		"title":   "X",
		"content": "Y",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/blog/bulk", jwt, nil)
	require.Len(t, decodeBody(t, rec)["blogs"], 1)
}

func TestExpenseValidation(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/expenses", jwt, map[string]interface{}{
		"amount":   25.5,
		"category": "food",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, decodeBody(t, rec), "id")

	invalid := []map[string]interface{}{
		{"amount": 0, "category": "food"},
		{"amount": -5, "category": "food"},
		{"amount": 10, "category": ""},
	}
	for _, body := range invalid {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/expenses", jwt, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	}

	// Only the valid expense exists.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/expenses/bulk", jwt, nil)
	require.Len(t, decodeBody(t, rec)["expenses"], 1)
}

func TestExpenseUpdateMissing(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPut, "/api/v1/expenses", jwt, map[string]interface{}{
		"id":     42,
		"amount": 10,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/expenses/bulk", jwt, nil)
	require.Empty(t, decodeBody(t, rec)["expenses"])
}

func TestCategorySpending(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	for _, e := range []map[string]interface{}{
		{"amount": 30, "category": "food"},
		{"amount": 10, "category": "food"},
		{"amount": 60, "category": "travel"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/expenses", jwt, e)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/v1/expenses/category-spending", jwt, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, 100.0, body["totalSpending"])

	byCategory := map[string]map[string]interface{}{}
	var pctSum float64
	for _, raw := range body["categoryDistribution"].([]interface{}) {
		row := raw.(map[string]interface{})
		byCategory[row["category"].(string)] = row
		pctSum += row["percentage"].(float64)
	}
	require.Equal(t, 40.0, byCategory["food"]["amount"])
	require.InDelta(t, 40.0, byCategory["food"]["percentage"].(float64), 1e-9)
	require.Equal(t, 60.0, byCategory["travel"]["amount"])
	require.InDelta(t, 60.0, byCategory["travel"]["percentage"].(float64), 1e-9)
	require.InDelta(t, 100.0, pctSum, 1e-9)
}

func TestCategorySpendingEmpty(t *testing.T) {
	_, router := newTestHandler(t)
	jwt := signupUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/expenses/category-spending", jwt, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, 0.0, body["totalSpending"])
	require.Empty(t, body["categoryDistribution"])
}
