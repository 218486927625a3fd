package ward

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ward/ward/internal/platform/metrics"
	"github.com/ward/ward/pkg/pagination"
)

var (
	ErrAdmissionNotFound = errors.New("admission not found")
	ErrInvalidNote       = errors.New("note text must not be blank")
	ErrInvalidInput      = errors.New("invalid input")
)

type Service struct {
	admissions AdmissionRepository
	notes      NoteRepository
	metrics    *metrics.Metrics
	maxPage    int
	now        func() time.Time
}

func NewService(admissions AdmissionRepository, notes NoteRepository) *Service {
	return &Service{
		admissions: admissions,
		notes:      notes,
		maxPage:    pagination.MaxSize,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SetMetrics attaches optional collectors to the service.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetMaxPageSize overrides the largest accepted note page size.
func (s *Service) SetMaxPageSize(n int) {
	if n > 0 {
		s.maxPage = n
	}
}

func (s *Service) MaxPageSize() int {
	return s.maxPage
}

func (s *Service) lookup(ctx context.Context, bht string) (*Admission, error) {
	bht = strings.TrimSpace(bht)
	if bht == "" {
		return nil, fmt.Errorf("%w: bht is required", ErrInvalidInput)
	}
	a, err := s.admissions.GetByBHT(ctx, bht)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrAdmissionNotFound, bht)
		}
		return nil, fmt.Errorf("get admission %s: %w", bht, err)
	}
	return a, nil
}

// Admission returns the persisted record for bht.
func (s *Service) Admission(ctx context.Context, bht string) (*Admission, error) {
	return s.lookup(ctx, bht)
}

func (s *Service) GetAdmission(ctx context.Context, bht string) (*AdmissionDTO, error) {
	a, err := s.lookup(ctx, bht)
	if err != nil {
		return nil, err
	}
	return NewAdmissionDTO(a), nil
}

// ListNotes returns one zero-based page of the admission's notes, newest
// first, together with the admission's total note count. An unknown bht
// yields an empty page.
func (s *Service) ListNotes(ctx context.Context, bht string, page, size int) ([]DoctorNoteDTO, int, error) {
	bht = strings.TrimSpace(bht)
	if bht == "" {
		return nil, 0, fmt.Errorf("%w: bht is required", ErrInvalidInput)
	}
	p, err := pagination.New(page, size, s.maxPage)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	notes, total, err := s.notes.ListByBHT(ctx, bht, p.Limit(), p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list notes for %s: %w", bht, err)
	}

	out := make([]DoctorNoteDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, *NewDoctorNoteDTO(n))
	}
	return out, total, nil
}

// CreateNote validates req, then attaches a new note to the admission. The
// creation time comes from the service clock.
func (s *Service) CreateNote(ctx context.Context, bht string, req CreateNoteRequest) (*DoctorNoteDTO, error) {
	if err := validate.Struct(req); err != nil {
		return nil, ErrInvalidNote
	}

	a, err := s.lookup(ctx, bht)
	if err != nil {
		return nil, err
	}

	note := &DoctorNote{
		AdmissionID: a.ID,
		AuthorName:  trimOptional(req.AuthorName),
		Text:        req.Text,
		CreatedAt:   s.now(),
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note for %s: %w", a.BHT, err)
	}
	s.metrics.NoteCreated()
	return NewDoctorNoteDTO(note), nil
}

func (s *Service) SeedCheck(ctx context.Context) (*SeedCheckDTO, error) {
	admissions, err := s.admissions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admissions: %w", err)
	}
	notes, err := s.notes.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count doctor notes: %w", err)
	}
	bhts, err := s.admissions.ListBHTs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bhts: %w", err)
	}
	if bhts == nil {
		bhts = []string{}
	}
	return &SeedCheckDTO{Admissions: admissions, DoctorNotes: notes, BHTs: bhts}, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
