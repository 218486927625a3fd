package discharge

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func fullSummary() Summary {
	return Summary{
		BHT:             strp("BHT-0001"),
		PatientName:     strp("K. M. Silva"),
		Diagnosis:       strp("Community acquired pneumonia"),
		ICD10Code:       strp("J18.9"),
		DischargeDate:   strp("2024-03-09"),
		ProgressSummary: strp("Fever settled by day three."),
		ManagementPlan:  strp("IV clarithromycin for five days."),
		DischargePlan:   strp("Review at medical clinic in two weeks."),
		Drugs:           strp("Oral clarithromycin 500mg bd x 5 days"),
	}
}

func uncompressed() *Renderer {
	return &Renderer{compress: false, layout: layout}
}

func TestRender_AllFields(t *testing.T) {
	out, err := Render(fullSummary())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output should be a PDF document")
}

func TestRender_AbsentFieldsRenderEmpty(t *testing.T) {
	out, err := Render(Summary{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	s := fullSummary()
	s.ICD10Code = nil
	s.Drugs = nil
	out, err = Render(s)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_SectionOrder(t *testing.T) {
	out, err := uncompressed().Render(fullSummary())
	require.NoError(t, err)

	order := []string{
		"(" + Title + ")",
		"(Diagnosis:)",
		"(ICD-10 Code:)",
		"(Discharge Date:)",
		"(" + HeadingProgressSummary + ")",
		"(" + HeadingManagement + ")",
		"(" + HeadingDischargePlan + ")",
		"(" + HeadingDrugs + ")",
	}
	last := -1
	for _, marker := range order {
		idx := bytes.Index(out, []byte(marker))
		require.NotEqual(t, -1, idx, "missing %s", marker)
		assert.Greater(t, idx, last, "%s out of order", marker)
		last = idx
	}
	assert.Contains(t, string(out), "(J18.9)")
}

func TestRender_MultiPage(t *testing.T) {
	s := fullSummary()
	s.ProgressSummary = strp(strings.Repeat("Day note: afebrile, eating well, mobilising. ", 400))

	out, err := uncompressed().Render(s)
	require.NoError(t, err)

	m := regexp.MustCompile(`/Count (\d+)`).FindSubmatch(out)
	require.NotNil(t, m, "pages object not found")
	pages, err := strconv.Atoi(string(m[1]))
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func TestRender_EngineErrorIsTyped(t *testing.T) {
	r := &Renderer{layout: func(pdf *fpdf.Fpdf, s Summary) {
		pdf.SetError(errors.New("font not found"))
	}}

	out, err := r.Render(fullSummary())
	assert.Nil(t, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPDFGeneration)
	assert.Equal(t, "PDF generation failed", err.Error())

	var re *RenderError
	require.True(t, errors.As(err, &re))
	assert.EqualError(t, re.Cause, "font not found")
}

func TestRender_PanicIsRecovered(t *testing.T) {
	r := &Renderer{layout: func(pdf *fpdf.Fpdf, s Summary) {
		panic("boom")
	}}

	var (
		out []byte
		err error
	)
	require.NotPanics(t, func() { out, err = r.Render(fullSummary()) })
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrPDFGeneration)
}
