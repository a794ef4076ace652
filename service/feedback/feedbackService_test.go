package feedbacksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"booknetwork/model"
	feedbacksvc "booknetwork/service/feedback"

	"github.com/stretchr/testify/require"
)

type bookMock struct {
	byIDFn func(ctx context.Context, id int64) (*model.Book, error)
}

func (m *bookMock) ByID(ctx context.Context, id int64) (*model.Book, error) { return m.byIDFn(ctx, id) }

type repoMock struct {
	createFn     func(ctx context.Context, f *model.Feedback) (int64, error)
	pageByBookFn func(ctx context.Context, bookID int64, offset, limit int) ([]model.FeedbackRow, int64, error)
}

func (m *repoMock) Create(ctx context.Context, f *model.Feedback) (int64, error) {
	return m.createFn(ctx, f)
}
func (m *repoMock) PageByBook(ctx context.Context, bookID int64, offset, limit int) ([]model.FeedbackRow, int64, error) {
	return m.pageByBookFn(ctx, bookID, offset, limit)
}

func lendableBook(ownerID int64) *bookMock {
	return &bookMock{byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
		return &model.Book{ID: id, OwnerID: ownerID, Shareable: true}, nil
	}}
}

func TestCreate_Success(t *testing.T) {
	var created *model.Feedback
	r := &repoMock{createFn: func(ctx context.Context, f *model.Feedback) (int64, error) {
		created = f
		return 5, nil
	}}
	svc := feedbacksvc.New(lendableBook(1), r)

	id, err := svc.Create(context.Background(), 2, model.CreateFeedbackReq{BookID: 10, Note: 4.5, Comment: "great"})
	require.NoError(t, err)
	require.Equal(t, int64(5), id)
	require.Equal(t, int64(2), created.CreatedBy)
	require.Equal(t, int64(10), created.BookID)
}

func TestCreate_BookNotFound(t *testing.T) {
	books := &bookMock{byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
		return nil, sql.ErrNoRows
	}}
	svc := feedbacksvc.New(books, &repoMock{})

	_, err := svc.Create(context.Background(), 2, model.CreateFeedbackReq{BookID: 10, Note: 3, Comment: "x"})
	require.True(t, errors.Is(err, feedbacksvc.ErrBookNotFound))
}

func TestCreate_OwnBook(t *testing.T) {
	svc := feedbacksvc.New(lendableBook(2), &repoMock{})
	_, err := svc.Create(context.Background(), 2, model.CreateFeedbackReq{BookID: 10, Note: 3, Comment: "x"})
	require.True(t, errors.Is(err, feedbacksvc.ErrSelfFeedback))
}

func TestCreate_ArchivedBook(t *testing.T) {
	books := &bookMock{byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
		return &model.Book{ID: id, OwnerID: 1, Shareable: true, Archived: true}, nil
	}}
	svc := feedbacksvc.New(books, &repoMock{})
	_, err := svc.Create(context.Background(), 2, model.CreateFeedbackReq{BookID: 10, Note: 3, Comment: "x"})
	require.True(t, errors.Is(err, feedbacksvc.ErrNotLendable))
}

func TestListByBook_MarksOwnFeedback(t *testing.T) {
	r := &repoMock{pageByBookFn: func(ctx context.Context, bookID int64, offset, limit int) ([]model.FeedbackRow, int64, error) {
		return []model.FeedbackRow{
			{Note: 4, Comment: "mine", CreatedByUser: 2},
			{Note: 3, Comment: "theirs", CreatedByUser: 3},
		}, 2, nil
	}}
	svc := feedbacksvc.New(lendableBook(1), r)

	out, err := svc.ListByBook(context.Background(), 2, 10, 0, 10)
	require.NoError(t, err)
	require.Len(t, out.Content, 2)
	require.True(t, out.Content[0].OwnFeedback)
	require.False(t, out.Content[1].OwnFeedback)
}
