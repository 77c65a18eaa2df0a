package domain

type Blog struct {
	ID       int64  `json:"id" db:"id"`
	Title    string `json:"title" db:"title"`
	Content  string `json:"content" db:"content"`
	AuthorID int64  `json:"authorId" db:"author_id"`
}

// BlogWithAuthor is the read shape for blog fetches, where the author's
// name is joined in from the users table.
type BlogWithAuthor struct {
	ID      int64  `json:"id" db:"id"`
	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`
	Author  Author `json:"author" db:"author"`
}

type Author struct {
	Name string `json:"name" db:"name"`
}
