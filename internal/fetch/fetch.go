package fetch

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("promptscrape/fetch")

var (
	// ErrNotFound is returned when the page document answered 404.
	ErrNotFound = errors.New("page not found")
	// ErrNoResponse is returned when navigation finished without a
	// document response.
	ErrNoResponse = errors.New("no response")
)

// Fetcher loads the html of a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Absent reports whether err means the page does not exist, as opposed
// to a failure while loading it.
func Absent(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrNoResponse)
}
