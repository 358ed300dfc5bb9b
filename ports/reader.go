package ports

import (
	"context"

	"screenline/domain/dataset"
)

// DatasetSource loads a rectangular dataset of named columns from a source
// path. Implementations own the file format; the screening pipeline only
// sees the dataset.
type DatasetSource interface {
	Load(ctx context.Context, path string) (*dataset.Dataset, error)
}
