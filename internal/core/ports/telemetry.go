package ports

import (
	"context"
	"io"
)

// Telemetry records build progress as vertices, one per pipeline phase.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts a new vertex with the given display name.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is one recorded unit of work.
type Vertex interface {
	// Stdout returns a writer for the vertex's output stream.
	Stdout() io.Writer
	// Cached marks the vertex as a cache hit.
	Cached()
	// Complete marks the vertex as finished, with err nil on success.
	Complete(err error)
}
