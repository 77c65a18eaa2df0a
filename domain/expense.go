package domain

type Expense struct {
	ID       int64   `json:"id" db:"id"`
	Amount   float64 `json:"amount" db:"amount"`
	Category string  `json:"category" db:"category"`
	Date     string  `json:"date,omitempty" db:"date"`
	UserID   int64   `json:"userId" db:"user_id"`
}

// CategorySpending is one row of the grouped expense aggregate.
type CategorySpending struct {
	Category   string  `json:"category" db:"category"`
	Amount     float64 `json:"amount" db:"amount"`
	Percentage float64 `json:"percentage" db:"-"`
}
