// model/history.go
package model

import "time"

// BookTransactionHistory is one borrow episode. A loan is "active" until the
// owner approves the return; per (book, user) at most one active loan exists.
type BookTransactionHistory struct {
	ID             int64      `json:"id"`
	BookID         int64      `json:"book_id"`
	UserID         int64      `json:"user_id"`
	Returned       bool       `json:"returned"`
	ReturnApproved bool       `json:"return_approved"`
	CreatedAt      time.Time  `json:"created_at"`
	CreatedBy      int64      `json:"created_by"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	UpdatedBy      *int64     `json:"updated_by,omitempty"`
}

// BorrowedBookRow is the ledger row joined with its book, as shown in the
// borrowed/returned listings.
type BorrowedBookRow struct {
	ID             int64     `json:"id"`
	BookID         int64     `json:"book_id"`
	Title          string    `json:"title"`
	AuthorName     string    `json:"author_name"`
	ISBN           string    `json:"isbn"`
	Rate           float64   `json:"rate"`
	Returned       bool      `json:"returned"`
	ReturnApproved bool      `json:"return_approved"`
	CreatedAt      time.Time `json:"created_at"`
}
