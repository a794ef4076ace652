package lending

import (
	"context"
	"database/sql"
	"errors"

	"booknetwork/model"
	historyrepo "booknetwork/repository/history"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type BookStore interface {
	ByID(ctx context.Context, id int64) (*model.Book, error)
	SetShareable(ctx context.Context, id int64, v bool, actor int64) error
	SetArchived(ctx context.Context, id int64, v bool, actor int64) error
	PageDisplayable(ctx context.Context, viewerID int64, offset, limit int) ([]model.Book, int64, error)
	PageByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.Book, int64, error)
}

type LoanStore interface {
	Insert(ctx context.Context, bookID, userID int64) (int64, error)
	HasActiveLoan(ctx context.Context, bookID, userID int64) (bool, error)
	FindOpenLoan(ctx context.Context, bookID, userID int64) (*model.BookTransactionHistory, error)
	FindAwaitingApproval(ctx context.Context, bookID, ownerID int64) (*model.BookTransactionHistory, error)
	MarkReturned(ctx context.Context, loanID, actor int64) error
	MarkApproved(ctx context.Context, loanID, actor int64) error
	PageByBorrower(ctx context.Context, userID int64, offset, limit int) ([]model.BorrowedBookRow, int64, error)
	PageByBookOwner(ctx context.Context, ownerID int64, offset, limit int) ([]model.BorrowedBookRow, int64, error)
}

type Service interface {
	// Borrow opens a loan and returns the book id.
	Borrow(ctx context.Context, userID, bookID int64) (int64, error)

	// Return marks the caller's open loan returned and returns the loan id.
	Return(ctx context.Context, userID, bookID int64) (int64, error)

	// ApproveReturn closes a returned loan on a book the caller owns.
	ApproveReturn(ctx context.Context, userID, bookID int64) (int64, error)

	ToggleShareable(ctx context.Context, userID, bookID int64) (int64, error)
	ToggleArchived(ctx context.Context, userID, bookID int64) (int64, error)

	ListDisplayable(ctx context.Context, userID int64, page, size int) (model.Page[model.Book], error)
	ListOwned(ctx context.Context, userID int64, page, size int) (model.Page[model.Book], error)
	ListBorrowed(ctx context.Context, userID int64, page, size int) (model.Page[model.BorrowedBookRow], error)
	ListReturned(ctx context.Context, userID int64, page, size int) (model.Page[model.BorrowedBookRow], error)
}

type service struct {
	books BookStore
	loans LoanStore
}

func New(books BookStore, loans LoanStore) Service {
	return &service{books: books, loans: loans}
}

func (s *service) loadBook(ctx context.Context, bookID int64) (*model.Book, error) {
	b, err := s.books.ByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound, "book not found")
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Borrow(ctx context.Context, userID, bookID int64) (int64, error) {
	b, err := s.loadBook(ctx, bookID)
	if err != nil {
		return 0, err
	}

	active, err := s.loans.HasActiveLoan(ctx, bookID, userID)
	if err != nil {
		return 0, err
	}
	if err := CanBorrow(b, userID, active); err != nil {
		return 0, err
	}

	if _, err := s.loans.Insert(ctx, bookID, userID); err != nil {
		// the partial unique index catches a racing borrow the check missed
		if errors.Is(err, historyrepo.ErrDuplicateActiveLoan) {
			return 0, makeErr(ErrAlreadyBorrowed, "you have already borrowed this book")
		}
		return 0, err
	}
	return bookID, nil
}

func (s *service) Return(ctx context.Context, userID, bookID int64) (int64, error) {
	b, err := s.loadBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if err := CanReturn(b, userID); err != nil {
		return 0, err
	}

	loan, err := s.loans.FindOpenLoan(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrNoActiveLoan, "you did not borrow this book")
		}
		return 0, err
	}

	if err := s.loans.MarkReturned(ctx, loan.ID, userID); err != nil {
		return 0, err
	}
	return loan.ID, nil
}

func (s *service) ApproveReturn(ctx context.Context, userID, bookID int64) (int64, error) {
	b, err := s.loadBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if err := CanApprove(b); err != nil {
		return 0, err
	}

	loan, err := s.loans.FindAwaitingApproval(ctx, bookID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, makeErr(ErrNotReturnedYet, "the book is not returned yet, you cannot approve the return")
		}
		return 0, err
	}

	if err := s.loans.MarkApproved(ctx, loan.ID, userID); err != nil {
		return 0, err
	}
	return loan.ID, nil
}

func (s *service) ToggleShareable(ctx context.Context, userID, bookID int64) (int64, error) {
	b, err := s.loadBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if err := CanToggle(b, userID); err != nil {
		return 0, err
	}
	if err := s.books.SetShareable(ctx, bookID, !b.Shareable, userID); err != nil {
		return 0, err
	}
	return bookID, nil
}

func (s *service) ToggleArchived(ctx context.Context, userID, bookID int64) (int64, error) {
	b, err := s.loadBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if err := CanToggle(b, userID); err != nil {
		return 0, err
	}
	if err := s.books.SetArchived(ctx, bookID, !b.Archived, userID); err != nil {
		return 0, err
	}
	return bookID, nil
}

func (s *service) ListDisplayable(ctx context.Context, userID int64, page, size int) (model.Page[model.Book], error) {
	page, size = clamp(page, size)
	items, total, err := s.books.PageDisplayable(ctx, userID, page*size, size)
	if err != nil {
		return model.Page[model.Book]{}, err
	}
	return model.NewPage(items, page, size, total), nil
}

func (s *service) ListOwned(ctx context.Context, userID int64, page, size int) (model.Page[model.Book], error) {
	page, size = clamp(page, size)
	items, total, err := s.books.PageByOwner(ctx, userID, page*size, size)
	if err != nil {
		return model.Page[model.Book]{}, err
	}
	return model.NewPage(items, page, size, total), nil
}

func (s *service) ListBorrowed(ctx context.Context, userID int64, page, size int) (model.Page[model.BorrowedBookRow], error) {
	page, size = clamp(page, size)
	items, total, err := s.loans.PageByBorrower(ctx, userID, page*size, size)
	if err != nil {
		return model.Page[model.BorrowedBookRow]{}, err
	}
	return model.NewPage(items, page, size, total), nil
}

func (s *service) ListReturned(ctx context.Context, userID int64, page, size int) (model.Page[model.BorrowedBookRow], error) {
	page, size = clamp(page, size)
	items, total, err := s.loans.PageByBookOwner(ctx, userID, page*size, size)
	if err != nil {
		return model.Page[model.BorrowedBookRow]{}, err
	}
	return model.NewPage(items, page, size, total), nil
}

func clamp(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
