package lending

import (
	"log/slog"
	"net/http"
	"strconv"

	"booknetwork/app/echoServer/jwtx"
	ls "booknetwork/service/lending"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ls.Service
	Log *slog.Logger
}

func (h *Controller) status(err error) (int, string) {
	switch ls.Code(err) {
	case ls.ErrNotFound:
		return http.StatusNotFound, err.Error()
	case ls.ErrForbidden:
		return http.StatusForbidden, err.Error()
	case ls.ErrNotLendable, ls.ErrSelfBorrow, ls.ErrAlreadyBorrowed,
		ls.ErrNoActiveLoan, ls.ErrNotReturnedYet:
		return http.StatusBadRequest, err.Error()
	default:
		h.Log.Error("lending", "err", err)
		return http.StatusInternalServerError, "internal error"
	}
}

func fault(c echo.Context, code int, err error, msg string) error {
	return c.JSON(code, echo.Map{"code": string(ls.Code(err)), "message": msg})
}

func params(c echo.Context) (uid, bookID int64, ok bool) {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return 0, 0, false
	}
	bookID, err = strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || bookID <= 0 {
		return 0, 0, false
	}
	return uid, bookID, true
}

func paging(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size <= 0 {
		size = 10
	}
	if page < 0 {
		page = 0
	}
	return page, size
}

// POST /v1/books/borrow/:id
func (h *Controller) Borrow(c echo.Context) error {
	uid, bookID, ok := params(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	id, err := h.Svc.Borrow(c.Request().Context(), uid, bookID)
	if err != nil {
		code, msg := h.status(err)
		return fault(c, code, err, msg)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// PATCH /v1/books/borrow/return/:id
func (h *Controller) Return(c echo.Context) error {
	uid, bookID, ok := params(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	id, err := h.Svc.Return(c.Request().Context(), uid, bookID)
	if err != nil {
		code, msg := h.status(err)
		return fault(c, code, err, msg)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// PATCH /v1/books/borrow/return/approve/:id
func (h *Controller) ApproveReturn(c echo.Context) error {
	uid, bookID, ok := params(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	id, err := h.Svc.ApproveReturn(c.Request().Context(), uid, bookID)
	if err != nil {
		code, msg := h.status(err)
		return fault(c, code, err, msg)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// PATCH /v1/books/shareable/:id
func (h *Controller) ToggleShareable(c echo.Context) error {
	uid, bookID, ok := params(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	id, err := h.Svc.ToggleShareable(c.Request().Context(), uid, bookID)
	if err != nil {
		code, msg := h.status(err)
		return fault(c, code, err, msg)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// PATCH /v1/books/archived/:id
func (h *Controller) ToggleArchived(c echo.Context) error {
	uid, bookID, ok := params(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	id, err := h.Svc.ToggleArchived(c.Request().Context(), uid, bookID)
	if err != nil {
		code, msg := h.status(err)
		return fault(c, code, err, msg)
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// GET /v1/books
func (h *Controller) ListDisplayable(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	page, size := paging(c)
	out, err := h.Svc.ListDisplayable(c.Request().Context(), uid, page, size)
	if err != nil {
		h.Log.Error("list displayable", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/books/owner
func (h *Controller) ListOwned(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	page, size := paging(c)
	out, err := h.Svc.ListOwned(c.Request().Context(), uid, page, size)
	if err != nil {
		h.Log.Error("list owned", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/books/borrowed
func (h *Controller) ListBorrowed(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	page, size := paging(c)
	out, err := h.Svc.ListBorrowed(c.Request().Context(), uid, page, size)
	if err != nil {
		h.Log.Error("list borrowed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/books/returned
func (h *Controller) ListReturned(c echo.Context) error {
	uid, err := jwtx.UserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
	}
	page, size := paging(c)
	out, err := h.Svc.ListReturned(c.Request().Context(), uid, page, size)
	if err != nil {
		h.Log.Error("list returned", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, out)
}
