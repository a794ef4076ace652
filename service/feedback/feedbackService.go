package feedbacksvc

import (
	"context"
	"database/sql"
	"errors"

	"booknetwork/model"
	"booknetwork/service/lending"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrNotLendable  = errors.New("feedback not allowed on an archived or non-shareable book")
	ErrSelfFeedback = errors.New("you cannot give feedback on your own book")
)

type BookRepo interface {
	ByID(ctx context.Context, id int64) (*model.Book, error)
}

type Repo interface {
	Create(ctx context.Context, f *model.Feedback) (int64, error)
	PageByBook(ctx context.Context, bookID int64, offset, limit int) ([]model.FeedbackRow, int64, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, req model.CreateFeedbackReq) (int64, error)
	ListByBook(ctx context.Context, viewerID, bookID int64, page, size int) (model.Page[model.FeedbackRow], error)
}

type service struct {
	books BookRepo
	r     Repo
}

func New(books BookRepo, r Repo) Service { return &service{books: books, r: r} }

func (s *service) Create(ctx context.Context, userID int64, req model.CreateFeedbackReq) (int64, error) {
	b, err := s.books.ByID(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrBookNotFound
		}
		return 0, err
	}
	if !lending.IsLendable(b) {
		return 0, ErrNotLendable
	}
	if lending.IsOwner(b, userID) {
		return 0, ErrSelfFeedback
	}

	f := &model.Feedback{
		BookID:    req.BookID,
		Note:      req.Note,
		Comment:   req.Comment,
		CreatedBy: userID,
	}
	return s.r.Create(ctx, f)
}

func (s *service) ListByBook(ctx context.Context, viewerID, bookID int64, page, size int) (model.Page[model.FeedbackRow], error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	items, total, err := s.r.PageByBook(ctx, bookID, page*size, size)
	if err != nil {
		return model.Page[model.FeedbackRow]{}, err
	}
	for i := range items {
		items[i].OwnFeedback = items[i].CreatedByUser == viewerID
	}
	return model.NewPage(items, page, size, total), nil
}
