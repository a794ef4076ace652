package feedback

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"booknetwork/app/echoServer/jwtx"
	"booknetwork/model"
	feedbacksvc "booknetwork/service/feedback"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc feedbacksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/feedbacks
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateFeedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}

	id, err := h.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		switch {
		case errors.Is(err, feedbacksvc.ErrBookNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case errors.Is(err, feedbacksvc.ErrNotLendable), errors.Is(err, feedbacksvc.ErrSelfFeedback):
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		default:
			h.Log.Error("feedback create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/feedbacks/book/:id
func (h *Controller) ListByBook(c echo.Context) error {
	bookID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 {
		size = 10
	}

	out, err := h.Svc.ListByBook(c.Request().Context(), uid, bookID, page, size)
	if err != nil {
		h.Log.Error("feedback list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
