package discharge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ward/ward/internal/domain/ward"
	"github.com/ward/ward/internal/platform/metrics"
)

// AdmissionSource resolves an admission by ticket. *ward.Service satisfies it.
type AdmissionSource interface {
	Admission(ctx context.Context, bht string) (*ward.Admission, error)
}

type Handler struct {
	admissions AdmissionSource
	renderer   *Renderer
	metrics    *metrics.Metrics
}

func NewHandler(admissions AdmissionSource, m *metrics.Metrics) *Handler {
	return &Handler{admissions: admissions, renderer: NewRenderer(), metrics: m}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/discharge-summaries/pdf", h.RenderSummary)
	g.POST("/admissions/:bht/discharge-summary/pdf", h.RenderAdmissionSummary)
}

func (h *Handler) RenderSummary(c echo.Context) error {
	var s Summary
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return h.writePDF(c, s)
}

// RenderAdmissionSummary renders the posted summary for an existing
// admission. The ticket and patient name come from the admission record and
// the admission's problems and management fill an absent diagnosis and plan.
func (h *Handler) RenderAdmissionSummary(c echo.Context) error {
	var s Summary
	if err := c.Bind(&s); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	a, err := h.admissions.Admission(c.Request().Context(), c.Param("bht"))
	if err != nil {
		switch {
		case errors.Is(err, ward.ErrAdmissionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, ward.ErrInvalidInput):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
	}

	bht := a.BHT
	s.BHT = &bht
	s.PatientName = a.PatientName
	if s.Diagnosis == nil {
		s.Diagnosis = a.Problems
	}
	if s.ManagementPlan == nil {
		s.ManagementPlan = a.Management
	}
	return h.writePDF(c, s)
}

func (h *Handler) writePDF(c echo.Context, s Summary) error {
	out, err := h.renderer.Render(s)
	h.metrics.PDFRendered(err)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, ErrPDFGeneration.Error()).SetInternal(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename(s.BHT)))
	return c.Blob(http.StatusOK, "application/pdf", out)
}

func filename(bht *string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return -1
	}, text(bht))
	if name == "" {
		return "discharge-summary.pdf"
	}
	return "discharge-summary-" + name + ".pdf"
}
