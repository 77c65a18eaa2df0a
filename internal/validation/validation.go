package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Error reports the fields of a request body that failed validation.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid input: %s", strings.Join(e.Fields, ", "))
}

func fail(fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return &Error{Fields: fields}
}

func validDate(date string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if _, err := time.Parse(layout, date); err == nil {
			return true
		}
	}
	return false
}

type SignupInput struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (in SignupInput) Validate() error {
	var fields []string
	if !emailPattern.MatchString(in.Email) {
		fields = append(fields, "email must be a valid address")
	}
	if len(in.Password) < 6 {
		fields = append(fields, "password must be at least 6 characters")
	}
	if strings.TrimSpace(in.Firstname) == "" {
		fields = append(fields, "firstname is required")
	}
	return fail(fields)
}

type SigninInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in SigninInput) Validate() error {
	var fields []string
	if !emailPattern.MatchString(in.Email) {
		fields = append(fields, "email must be a valid address")
	}
	if len(in.Password) < 6 {
		fields = append(fields, "password must be at least 6 characters")
	}
	return fail(fields)
}

type CreateBlogInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (in CreateBlogInput) Validate() error {
	var fields []string
	if in.Title == "" {
		fields = append(fields, "title is required")
	}
	if in.Content == "" {
		fields = append(fields, "content is required")
	}
	return fail(fields)
}

type UpdateBlogInput struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (in UpdateBlogInput) Validate() error {
	var fields []string
	if in.ID <= 0 {
		fields = append(fields, "id must be a positive integer")
	}
	if in.Title == "" {
		fields = append(fields, "title is required")
	}
	if in.Content == "" {
		fields = append(fields, "content is required")
	}
	return fail(fields)
}

type CreateExpenseInput struct {
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

func (in CreateExpenseInput) Validate() error {
	var fields []string
	if in.Amount <= 0 {
		fields = append(fields, "amount must be positive")
	}
	if in.Category == "" {
		fields = append(fields, "category is required")
	}
	if in.Date != "" && !validDate(in.Date) {
		fields = append(fields, "date format is invalid")
	}
	return fail(fields)
}

// UpdateExpenseInput carries optional fields; pointers distinguish
// "absent" from zero values.
type UpdateExpenseInput struct {
	ID          int64    `json:"id"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
}

func (in UpdateExpenseInput) Validate() error {
	var fields []string
	if in.ID <= 0 {
		fields = append(fields, "id must be a positive integer")
	}
	if in.Amount != nil && *in.Amount <= 0 {
		fields = append(fields, "amount must be positive")
	}
	if in.Category != nil && *in.Category == "" {
		fields = append(fields, "category must not be empty")
	}
	if in.Date != nil && !validDate(*in.Date) {
		fields = append(fields, "date format is invalid")
	}
	return fail(fields)
}
