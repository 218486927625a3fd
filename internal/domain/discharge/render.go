package discharge

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// ErrPDFGeneration is the single failure reported for any rendering problem.
var ErrPDFGeneration = errors.New("PDF generation failed")

// RenderError carries the underlying cause of a failed render. It matches
// ErrPDFGeneration with errors.Is and its message never includes the cause.
type RenderError struct {
	Cause error
}

func (e *RenderError) Error() string { return ErrPDFGeneration.Error() }

func (e *RenderError) Unwrap() []error { return []error{ErrPDFGeneration, e.Cause} }

// Section headings in render order.
const (
	Title                  = "Discharge Summary"
	HeadingProgressSummary = "Progress Summary"
	HeadingManagement      = "Management"
	HeadingDischargePlan   = "Discharge Plan"
	HeadingDrugs           = "Drugs"
)

type Renderer struct {
	compress bool
	layout   func(pdf *fpdf.Fpdf, s Summary)
}

func NewRenderer() *Renderer {
	return &Renderer{compress: true, layout: layout}
}

// Render draws s with the default renderer.
func Render(s Summary) ([]byte, error) {
	return NewRenderer().Render(s)
}

// Render returns the complete document, or nil and a *RenderError. Panics
// raised while drawing are reported the same way.
func (r *Renderer) Render(s Summary) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = &RenderError{Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle(Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	draw := r.layout
	if draw == nil {
		draw = layout
	}
	draw(pdf, s)

	if pdf.Err() {
		return nil, &RenderError{Cause: pdf.Error()}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &RenderError{Cause: err}
	}
	return buf.Bytes(), nil
}

func layout(pdf *fpdf.Fpdf, s Summary) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, Title, "", 1, "C", false, 0, "")

	if s.BHT != nil || s.PatientName != nil {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("BHT: %s    Patient: %s", text(s.BHT), text(s.PatientName))), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	field := func(label string, v *string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 7, label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(text(v)), "", "L", false)
	}
	field("Diagnosis", s.Diagnosis)
	field("ICD-10 Code", s.ICD10Code)
	field("Discharge Date", s.DischargeDate)

	section := func(heading string, v *string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, heading, "B", 1, "L", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, tr(text(v)), "", "L", false)
	}
	section(HeadingProgressSummary, s.ProgressSummary)
	section(HeadingManagement, s.ManagementPlan)
	section(HeadingDischargePlan, s.DischargePlan)
	section(HeadingDrugs, s.Drugs)
}
