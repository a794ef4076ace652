// model/book.go
package model

import "time"

type Book struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	AuthorName string     `json:"author_name"`
	ISBN       string     `json:"isbn"`
	Synopsis   string     `json:"synopsis"`
	BookCover  *string    `json:"book_cover,omitempty"`
	Archived   bool       `json:"archived"`
	Shareable  bool       `json:"shareable"`
	OwnerID    int64      `json:"owner_id"`
	Rate       float64    `json:"rate"`
	CreatedAt  time.Time  `json:"created_at"`
	CreatedBy  int64      `json:"created_by"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	UpdatedBy  *int64     `json:"updated_by,omitempty"`
}

// CreateBookReq represents book creation payload
// swagger:model CreateBookReq
type CreateBookReq struct {
	Title      string `json:"title" validate:"required"`
	AuthorName string `json:"author_name"`
	ISBN       string `json:"isbn" validate:"required"`
	Synopsis   string `json:"synopsis"`
	Shareable  bool   `json:"shareable"`
}
