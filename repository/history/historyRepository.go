// repository/history/repo.go
package historyrepo

import (
	"context"
	"database/sql"
	"errors"

	"booknetwork/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateActiveLoan surfaces the partial unique index on
// (book_id, user_id) WHERE NOT return_approved. Two concurrent borrows for
// the same pair both pass the application check; the index rejects the loser.
var ErrDuplicateActiveLoan = errors.New("duplicate active loan")

type Repo interface {
	Insert(ctx context.Context, bookID, userID int64) (int64, error)
	HasActiveLoan(ctx context.Context, bookID, userID int64) (bool, error)
	FindOpenLoan(ctx context.Context, bookID, userID int64) (*model.BookTransactionHistory, error)
	FindAwaitingApproval(ctx context.Context, bookID, ownerID int64) (*model.BookTransactionHistory, error)
	MarkReturned(ctx context.Context, loanID, actor int64) error
	MarkApproved(ctx context.Context, loanID, actor int64) error
	PageByBorrower(ctx context.Context, userID int64, offset, limit int) ([]model.BorrowedBookRow, int64, error)
	PageByBookOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.BorrowedBookRow, int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Insert(ctx context.Context, bookID, userID int64) (int64, error) {
	const q = `
		INSERT INTO book_transaction_history (book_id, user_id, returned, return_approved, created_by)
		VALUES ($1, $2, false, false, $2)
		RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, bookID, userID).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, ErrDuplicateActiveLoan
		}
		return 0, err
	}
	return id, nil
}

// HasActiveLoan tells whether a not-yet-approved loan exists for the pair.
// A loan stays active through RETURNED until the owner approves.
func (r *repo) HasActiveLoan(ctx context.Context, bookID, userID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM book_transaction_history
			WHERE book_id = $1
			AND user_id = $2
			AND return_approved = false
		)`
	var exists bool
	err := r.db.QueryRowContext(ctx, q, bookID, userID).Scan(&exists)
	return exists, err
}

func (r *repo) FindOpenLoan(ctx context.Context, bookID, userID int64) (*model.BookTransactionHistory, error) {
	const q = `
		SELECT id, book_id, user_id, returned, return_approved, created_at, created_by, updated_at, updated_by
		FROM book_transaction_history
		WHERE book_id = $1
		AND user_id = $2
		AND returned = false
		AND return_approved = false`
	return r.scanOne(ctx, q, bookID, userID)
}

// FindAwaitingApproval resolves the loan the owner may approve: returned but
// not approved, on a book the caller owns.
func (r *repo) FindAwaitingApproval(ctx context.Context, bookID, ownerID int64) (*model.BookTransactionHistory, error) {
	const q = `
		SELECT h.id, h.book_id, h.user_id, h.returned, h.return_approved, h.created_at, h.created_by, h.updated_at, h.updated_by
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE h.book_id = $1
		AND b.owner_id = $2
		AND h.returned = true
		AND h.return_approved = false`
	return r.scanOne(ctx, q, bookID, ownerID)
}

func (r *repo) scanOne(ctx context.Context, q string, args ...any) (*model.BookTransactionHistory, error) {
	h := &model.BookTransactionHistory{}
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&h.ID, &h.BookID, &h.UserID, &h.Returned, &h.ReturnApproved,
		&h.CreatedAt, &h.CreatedBy, &h.UpdatedAt, &h.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *repo) MarkReturned(ctx context.Context, loanID, actor int64) error {
	const q = `
		UPDATE book_transaction_history
		SET returned = true,
			updated_at = NOW(),
			updated_by = $2
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, loanID, actor)
	return err
}

func (r *repo) MarkApproved(ctx context.Context, loanID, actor int64) error {
	const q = `
		UPDATE book_transaction_history
		SET return_approved = true,
			updated_at = NOW(),
			updated_by = $2
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, loanID, actor)
	return err
}

const rowCols = `
	h.id, h.book_id, b.title, b.author_name, b.isbn,
	COALESCE((SELECT ROUND(AVG(f.note)::numeric, 1) FROM feedbacks f WHERE f.book_id = b.id), 0)::float8,
	h.returned, h.return_approved, h.created_at`

func (r *repo) PageByBorrower(ctx context.Context, userID int64, offset, limit int) ([]model.BorrowedBookRow, int64, error) {
	const count = `
		SELECT COUNT(*)
		FROM book_transaction_history h
		WHERE h.user_id = $1`
	var total int64
	if err := r.db.QueryRowContext(ctx, count, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
		SELECT ` + rowCols + `
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE h.user_id = $1
		ORDER BY h.created_at DESC, h.id DESC
		OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, q, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanRows(rows)
	return out, total, err
}

// PageByBookOwner lists loans on books the caller owns, whoever borrowed.
func (r *repo) PageByBookOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.BorrowedBookRow, int64, error) {
	const count = `
		SELECT COUNT(*)
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE b.owner_id = $1`
	var total int64
	if err := r.db.QueryRowContext(ctx, count, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
		SELECT ` + rowCols + `
		FROM book_transaction_history h
		JOIN books b ON b.id = h.book_id
		WHERE b.owner_id = $1
		ORDER BY h.created_at DESC, h.id DESC
		OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, q, ownerID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanRows(rows)
	return out, total, err
}

func scanRows(rows *sql.Rows) ([]model.BorrowedBookRow, error) {
	var out []model.BorrowedBookRow
	for rows.Next() {
		var h model.BorrowedBookRow
		if err := rows.Scan(
			&h.ID, &h.BookID, &h.Title, &h.AuthorName, &h.ISBN,
			&h.Rate, &h.Returned, &h.ReturnApproved, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
