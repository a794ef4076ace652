package bookrepo

import (
	"context"
	"database/sql"

	"booknetwork/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	SetShareable(ctx context.Context, id int64, v bool, actor int64) error
	SetArchived(ctx context.Context, id int64, v bool, actor int64) error
	SetCover(ctx context.Context, id int64, path string, actor int64) error
	PageDisplayable(ctx context.Context, viewerID int64, offset, limit int) ([]model.Book, int64, error)
	PageByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Book, int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

// rate is the one-decimal average of feedback notes, 0.0 when no feedback
// exists. Computed in SQL so every read path agrees.
const bookCols = `
	b.id, b.title, b.author_name, b.isbn, b.synopsis, b.book_cover,
	b.archived, b.shareable, b.owner_id,
	COALESCE(ROUND(AVG(f.note)::numeric, 1), 0)::float8 AS rate,
	b.created_at, b.created_by, b.updated_at, b.updated_by`

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (title, author_name, isbn, synopsis, shareable, archived, owner_id, created_by)
VALUES ($1,$2,$3,$4,$5,false,$6,$6)
RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, q,
		b.Title, b.AuthorName, b.ISBN, b.Synopsis, b.Shareable, b.OwnerID,
	).Scan(&b.ID, &b.CreatedAt); err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	q := `
SELECT ` + bookCols + `
FROM books b
LEFT JOIN feedbacks f ON f.book_id = b.id
WHERE b.id = $1
GROUP BY b.id`
	var b model.Book
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.Title, &b.AuthorName, &b.ISBN, &b.Synopsis, &b.BookCover,
		&b.Archived, &b.Shareable, &b.OwnerID, &b.Rate,
		&b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) SetShareable(ctx context.Context, id int64, v bool, actor int64) error {
	const q = `
UPDATE books
SET shareable = $2, updated_at = NOW(), updated_by = $3
WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, v, actor)
	return err
}

func (r *repo) SetArchived(ctx context.Context, id int64, v bool, actor int64) error {
	const q = `
UPDATE books
SET archived = $2, updated_at = NOW(), updated_by = $3
WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, v, actor)
	return err
}

func (r *repo) SetCover(ctx context.Context, id int64, path string, actor int64) error {
	const q = `
UPDATE books
SET book_cover = $2, updated_at = NOW(), updated_by = $3
WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, path, actor)
	return err
}

func (r *repo) PageDisplayable(ctx context.Context, viewerID int64, offset, limit int) ([]model.Book, int64, error) {
	const count = `
SELECT COUNT(*)
FROM books b
WHERE b.archived = false AND b.shareable = true AND b.owner_id <> $1`
	var total int64
	if err := r.db.QueryRowContext(ctx, count, viewerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
SELECT ` + bookCols + `
FROM books b
LEFT JOIN feedbacks f ON f.book_id = b.id
WHERE b.archived = false AND b.shareable = true AND b.owner_id <> $1
GROUP BY b.id
ORDER BY b.created_at DESC, b.id DESC
OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, q, viewerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanBooks(rows)
	return out, total, err
}

func (r *repo) PageByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Book, int64, error) {
	const count = `
SELECT COUNT(*)
FROM books b
WHERE b.owner_id = $1`
	var total int64
	if err := r.db.QueryRowContext(ctx, count, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
SELECT ` + bookCols + `
FROM books b
LEFT JOIN feedbacks f ON f.book_id = b.id
WHERE b.owner_id = $1
GROUP BY b.id
ORDER BY b.created_at DESC, b.id DESC
OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, q, ownerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanBooks(rows)
	return out, total, err
}

func scanBooks(rows *sql.Rows) ([]model.Book, error) {
	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.AuthorName, &b.ISBN, &b.Synopsis, &b.BookCover,
			&b.Archived, &b.Shareable, &b.OwnerID, &b.Rate,
			&b.CreatedAt, &b.CreatedBy, &b.UpdatedAt, &b.UpdatedBy,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
