package feedbackrepo

import (
	"context"
	"database/sql"

	"booknetwork/model"
)

type Repo interface {
	Create(ctx context.Context, f *model.Feedback) (int64, error)
	PageByBook(ctx context.Context, bookID int64, offset, limit int) ([]model.FeedbackRow, int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, f *model.Feedback) (int64, error) {
	const q = `
INSERT INTO feedbacks (book_id, note, comment, created_by)
VALUES ($1,$2,$3,$4)
RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, q, f.BookID, f.Note, f.Comment, f.CreatedBy).Scan(&f.ID, &f.CreatedAt); err != nil {
		return 0, err
	}
	return f.ID, nil
}

func (r *repo) PageByBook(ctx context.Context, bookID int64, offset, limit int) ([]model.FeedbackRow, int64, error) {
	const count = `
SELECT COUNT(*)
FROM feedbacks
WHERE book_id = $1`
	var total int64
	if err := r.db.QueryRowContext(ctx, count, bookID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `
SELECT note, comment, created_by
FROM feedbacks
WHERE book_id = $1
ORDER BY created_at DESC, id DESC
OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, q, bookID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []model.FeedbackRow
	for rows.Next() {
		var f model.FeedbackRow
		if err := rows.Scan(&f.Note, &f.Comment, &f.CreatedByUser); err != nil {
			return nil, 0, err
		}
		out = append(out, f)
	}
	return out, total, rows.Err()
}
