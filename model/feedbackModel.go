// model/feedback.go
package model

import "time"

type Feedback struct {
	ID        int64     `json:"id"`
	BookID    int64     `json:"book_id"`
	Note      float64   `json:"note"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	CreatedBy int64     `json:"created_by"`
}

// FeedbackRow carries the flag telling the viewer whether a comment is theirs.
type FeedbackRow struct {
	Note          float64 `json:"note"`
	Comment       string  `json:"comment"`
	OwnFeedback   bool    `json:"own_feedback"`
	CreatedByUser int64   `json:"-"`
}

// CreateFeedbackReq represents feedback creation payload
// swagger:model CreateFeedbackReq
type CreateFeedbackReq struct {
	BookID  int64   `json:"book_id" validate:"required,gt=0"`
	Note    float64 `json:"note" validate:"required,gte=1,lte=5"`
	Comment string  `json:"comment" validate:"required"`
}
