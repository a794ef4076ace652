// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"booknetwork/model"
	isbnrepo "booknetwork/repository/isbn"
	booksvc "booknetwork/service/book"
)

type repoMock struct {
	createFn   func(ctx context.Context, b *model.Book) (int64, error)
	byIDFn     func(ctx context.Context, id int64) (*model.Book, error)
	setCoverFn func(ctx context.Context, id int64, path string, actor int64) error
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) (int64, error) {
	return m.createFn(ctx, b)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) SetCover(ctx context.Context, id int64, path string, actor int64) error {
	if m.setCoverFn == nil {
		return nil
	}
	return m.setCoverFn(ctx, id, path, actor)
}

type fileMock struct {
	saveFn func(data []byte, ownerID int64, ext string) (string, error)
}

func (m *fileMock) Save(data []byte, ownerID int64, ext string) (string, error) {
	return m.saveFn(data, ownerID, ext)
}

type metaMock struct {
	lookupFn func(isbn string) (*isbnrepo.BookMeta, error)
}

func (m *metaMock) Lookup(isbn string) (*isbnrepo.BookMeta, error) { return m.lookupFn(isbn) }

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{}, nil, nil)
	if _, err := s.Create(context.Background(), 1, model.CreateBookReq{ISBN: "978"}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := s.Create(context.Background(), 1, model.CreateBookReq{Title: "t"}); err == nil {
		t.Fatal("expected error for empty isbn")
	}
}

func TestCreate_SetsOwner(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) {
			if b.OwnerID != 9 || b.Title != "Clean Code" {
				return 0, errors.New("bad args")
			}
			return 42, nil
		},
	}
	s := booksvc.New(m, nil, nil)
	id, err := s.Create(context.Background(), 9, model.CreateBookReq{
		Title: "Clean Code", AuthorName: "Martin", ISBN: "9780132350884", Shareable: true,
	})
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestCreate_ISBNEnrichment(t *testing.T) {
	var created *model.Book
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) {
			created = b
			return 1, nil
		},
	}
	meta := &metaMock{
		lookupFn: func(isbn string) (*isbnrepo.BookMeta, error) {
			return &isbnrepo.BookMeta{Title: "The Go Programming Language", Author: "Donovan"}, nil
		},
	}
	s := booksvc.New(m, nil, meta)

	if _, err := s.Create(context.Background(), 1, model.CreateBookReq{Title: "tgpl", ISBN: "9780134190440"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.AuthorName != "Donovan" {
		t.Fatalf("author not enriched: %q", created.AuthorName)
	}
	if created.Title != "tgpl" {
		t.Fatalf("caller title must win: %q", created.Title)
	}
}

func TestCreate_EnrichmentFailureIgnored(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) (int64, error) { return 1, nil },
	}
	meta := &metaMock{
		lookupFn: func(isbn string) (*isbnrepo.BookMeta, error) { return nil, errors.New("api down") },
	}
	s := booksvc.New(m, nil, meta)

	if _, err := s.Create(context.Background(), 1, model.CreateBookReq{Title: "t", ISBN: "123"}); err != nil {
		t.Fatalf("lookup failure must not block creation: %v", err)
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, sql.ErrNoRows },
	}
	s := booksvc.New(m, nil, nil)
	if _, err := s.Detail(context.Background(), 99); !errors.Is(err, booksvc.ErrNotFound) {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestUploadCover_NonOwner(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, OwnerID: 1}, nil
		},
	}
	s := booksvc.New(m, &fileMock{}, nil)
	if _, err := s.UploadCover(context.Background(), 2, 10, []byte("img"), ".png"); !errors.Is(err, booksvc.ErrForbidden) {
		t.Fatalf("got %v; want ErrForbidden", err)
	}
}

func TestUploadCover_Success(t *testing.T) {
	var savedPath string
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id, OwnerID: 1}, nil
		},
		setCoverFn: func(ctx context.Context, id int64, path string, actor int64) error {
			savedPath = path
			return nil
		},
	}
	files := &fileMock{
		saveFn: func(data []byte, ownerID int64, ext string) (string, error) {
			return "users/1/cover.png", nil
		},
	}
	s := booksvc.New(m, files, nil)

	id, err := s.UploadCover(context.Background(), 1, 10, []byte("img"), ".png")
	if err != nil || id != 10 {
		t.Fatalf("got id=%v err=%v; want 10 nil", id, err)
	}
	if savedPath != "users/1/cover.png" {
		t.Fatalf("cover path not persisted: %q", savedPath)
	}
}
