package booksvc

import (
	"context"
	"database/sql"
	"errors"

	"booknetwork/model"
	isbnrepo "booknetwork/repository/isbn"
)

var (
	ErrNotFound  = errors.New("book not found")
	ErrForbidden = errors.New("not the owner of this book")
	ErrBadInput  = errors.New("invalid payload")
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	SetCover(ctx context.Context, id int64, path string, actor int64) error
}

type FileStore interface {
	Save(data []byte, ownerID int64, ext string) (string, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, req model.CreateBookReq) (int64, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	UploadCover(ctx context.Context, userID, bookID int64, data []byte, ext string) (int64, error)
}

type service struct {
	r     Repo
	files FileStore
	meta  isbnrepo.Repo
}

func New(r Repo, files FileStore, meta isbnrepo.Repo) Service {
	return &service{r: r, files: files, meta: meta}
}

func (s *service) Create(ctx context.Context, userID int64, req model.CreateBookReq) (int64, error) {
	if req.Title == "" || req.ISBN == "" {
		return 0, ErrBadInput
	}

	b := &model.Book{
		Title:      req.Title,
		AuthorName: req.AuthorName,
		ISBN:       req.ISBN,
		Synopsis:   req.Synopsis,
		Shareable:  req.Shareable,
		OwnerID:    userID,
	}

	// best-effort metadata fill; a failed lookup never blocks creation
	if b.AuthorName == "" && s.meta != nil {
		if m, err := s.meta.Lookup(b.ISBN); err == nil {
			b.AuthorName = m.Author
			if b.Title == "" {
				b.Title = m.Title
			}
		}
	}

	return s.r.Create(ctx, b)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *service) UploadCover(ctx context.Context, userID, bookID int64, data []byte, ext string) (int64, error) {
	b, err := s.r.ByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if b.OwnerID != userID {
		return 0, ErrForbidden
	}

	path, err := s.files.Save(data, userID, ext)
	if err != nil {
		return 0, err
	}
	if err := s.r.SetCover(ctx, bookID, path, userID); err != nil {
		return 0, err
	}
	return bookID, nil
}
