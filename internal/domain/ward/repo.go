package ward

import (
	"context"
)

type AdmissionRepository interface {
	GetByBHT(ctx context.Context, bht string) (*Admission, error)
	Create(ctx context.Context, a *Admission) error
	Count(ctx context.Context) (int, error)
	// ListBHTs returns every ticket number in ascending order.
	ListBHTs(ctx context.Context) ([]string, error)
}

type NoteRepository interface {
	Create(ctx context.Context, n *DoctorNote) error
	// ListByBHT returns one page of the admission's notes, newest first, and
	// the admission's total note count.
	ListByBHT(ctx context.Context, bht string, limit, offset int) ([]*DoctorNote, int, error)
	Count(ctx context.Context) (int, error)
}
