package ports

import (
	"context"
	"io"
)

// FileStore persists uploaded files (resumes) and returns the stored path
// to record on the owning entity.
type FileStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}
