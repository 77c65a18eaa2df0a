package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"blogspend/m/domain"
)

var (
	// ErrNotFound means no record matched the given id or lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail means a user with the given email already exists.
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store is the data access layer over the relational database.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Users

func (s *Store) CreateUser(firstname, lastname, email, passwordHash string) (int64, error) {
	var id int64
	err := s.db.QueryRowx(`INSERT INTO users (firstname, lastname, email, password) VALUES ($1, $2, $3, $4) RETURNING id`,
		firstname, lastname, strings.ToLower(email), passwordHash).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return id, nil
}

func (s *Store) UserByEmail(email string) (domain.User, error) {
	var user domain.User
	err := s.db.Get(&user, `SELECT id, firstname, lastname, email, password FROM users WHERE email = $1`, strings.ToLower(email))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Blogs

func (s *Store) CreateBlog(title, content string, authorID int64) (int64, error) {
	var id int64
	err := s.db.QueryRowx(`INSERT INTO blogs (title, content, author_id) VALUES ($1, $2, $3) RETURNING id`,
		title, content, authorID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create blog: %w", err)
	}
	return id, nil
}

func (s *Store) UpdateBlog(id int64, title, content string) error {
	res, err := s.db.Exec(`UPDATE blogs SET title = $1, content = $2 WHERE id = $3`, title, content, id)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

const blogSelect = `SELECT b.id, b.title, b.content,
        TRIM(u.firstname || ' ' || COALESCE(u.lastname, '')) AS "author.name"
        FROM blogs b JOIN users u ON u.id = b.author_id`

func (s *Store) BlogByID(id int64) (domain.BlogWithAuthor, error) {
	var blog domain.BlogWithAuthor
	err := s.db.Get(&blog, blogSelect+` WHERE b.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BlogWithAuthor{}, ErrNotFound
	}
	if err != nil {
		return domain.BlogWithAuthor{}, fmt.Errorf("find blog: %w", err)
	}
	return blog, nil
}

func (s *Store) ListBlogs() ([]domain.BlogWithAuthor, error) {
	blogs := []domain.BlogWithAuthor{}
	if err := s.db.Select(&blogs, blogSelect+` ORDER BY b.id`); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, nil
}

// Expenses

func (s *Store) CreateExpense(amount float64, category, date string, userID int64) (int64, error) {
	var id int64
	err := s.db.QueryRowx(`INSERT INTO expenses (amount, category, date, user_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		amount, category, date, userID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}
	return id, nil
}

// UpdateExpense applies a partial update; nil fields keep their stored value.
func (s *Store) UpdateExpense(id int64, amount *float64, category, date *string) error {
	res, err := s.db.Exec(`UPDATE expenses SET
            amount = COALESCE($1, amount),
            category = COALESCE($2, category),
            date = COALESCE($3, date)
        WHERE id = $4`, amount, category, date, id)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ExpenseByID(id int64) (domain.Expense, error) {
	var expense domain.Expense
	err := s.db.Get(&expense, `SELECT id, amount, category, COALESCE(date, '') AS date, user_id FROM expenses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Expense{}, ErrNotFound
	}
	if err != nil {
		return domain.Expense{}, fmt.Errorf("find expense: %w", err)
	}
	return expense, nil
}

func (s *Store) ListExpenses() ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	if err := s.db.Select(&expenses, `SELECT id, amount, category, COALESCE(date, '') AS date, user_id FROM expenses ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// CategorySpending groups expenses by category and sums amounts per group.
func (s *Store) CategorySpending() ([]domain.CategorySpending, error) {
	rows := []domain.CategorySpending{}
	if err := s.db.Select(&rows, `SELECT category, COALESCE(SUM(amount), 0) AS amount FROM expenses GROUP BY category ORDER BY category`); err != nil {
		return nil, fmt.Errorf("category spending: %w", err)
	}
	return rows, nil
}
