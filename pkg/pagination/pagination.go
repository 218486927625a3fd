package pagination

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPage = 0
	DefaultSize = 10
	MaxSize     = 100
)

// ErrInvalidPage is returned when the page or size query parameters cannot be
// honoured. Out-of-range values are rejected, never clamped.
var ErrInvalidPage = errors.New("invalid pagination parameters")

// Page holds zero-based page parameters extracted from a request.
type Page struct {
	Number int
	Size   int
}

// New validates a page number and size against maxSize. A page whose offset
// would not fit in an int is rejected.
func New(number, size, maxSize int) (Page, error) {
	if maxSize <= 0 {
		maxSize = MaxSize
	}
	if number < 0 {
		return Page{}, fmt.Errorf("%w: page must be >= 0, got %d", ErrInvalidPage, number)
	}
	if size <= 0 {
		return Page{}, fmt.Errorf("%w: size must be > 0, got %d", ErrInvalidPage, size)
	}
	if size > maxSize {
		return Page{}, fmt.Errorf("%w: size must be <= %d, got %d", ErrInvalidPage, maxSize, size)
	}
	if number > math.MaxInt/size {
		return Page{}, fmt.Errorf("%w: page %d is too large for size %d", ErrInvalidPage, number, size)
	}
	return Page{Number: number, Size: size}, nil
}

// FromContext extracts page and size query parameters from the echo context,
// applying DefaultPage and DefaultSize when a parameter is omitted.
func FromContext(c echo.Context, maxSize int) (Page, error) {
	number, err := intParam(c, "page", DefaultPage)
	if err != nil {
		return Page{}, err
	}
	size, err := intParam(c, "size", DefaultSize)
	if err != nil {
		return Page{}, err
	}
	return New(number, size, maxSize)
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidPage, name, raw)
	}
	return v, nil
}

// Limit returns the SQL LIMIT for the page.
func (p Page) Limit() int {
	return p.Size
}

// Offset returns the SQL OFFSET for the page.
func (p Page) Offset() int {
	return p.Number * p.Size
}

// HasNext returns true if there are more results after the current page.
func (p Page) HasNext(total int) bool {
	return p.Offset() < total-p.Limit()
}

// HasPrevious returns true if there are results before the current page.
func (p Page) HasPrevious() bool {
	return p.Number > 0
}
