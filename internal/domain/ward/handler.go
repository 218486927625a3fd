package ward

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ward/ward/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the ward endpoints on g, normally /api/ward.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/admissions/:bht", h.GetAdmission)
	g.GET("/admissions/:bht/notes", h.ListNotes)
	g.POST("/admissions/:bht/notes", h.CreateNote)
	g.GET("/debug/seed-check", h.SeedCheck)
}

func (h *Handler) GetAdmission(c echo.Context) error {
	dto, err := h.svc.GetAdmission(c.Request().Context(), c.Param("bht"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ListNotes(c echo.Context) error {
	p, err := pagination.FromContext(c, h.svc.MaxPageSize())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	notes, total, err := h.svc.ListNotes(c.Request().Context(), c.Param("bht"), p.Number, p.Size)
	if err != nil {
		return httpError(err)
	}
	hdr := c.Response().Header()
	hdr.Set("X-Total-Count", strconv.Itoa(total))
	hdr.Set("X-Has-Next", strconv.FormatBool(p.HasNext(total)))
	hdr.Set("X-Has-Previous", strconv.FormatBool(p.HasPrevious()))
	return c.JSON(http.StatusOK, notes)
}

func (h *Handler) CreateNote(c echo.Context) error {
	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	note, err := h.svc.CreateNote(c.Request().Context(), c.Param("bht"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

func (h *Handler) SeedCheck(c echo.Context) error {
	dto, err := h.svc.SeedCheck(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto)
}

// httpError maps service errors onto status codes. Unexpected errors keep
// their cause as the internal error so the request logger records it, while
// the client only sees a generic message.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrAdmissionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidNote), errors.Is(err, ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}
}
