package sales

import "context"

// Repository is the persistence port for the sales table.
type Repository interface {
	// FetchAll performs a full unfiltered read of the sales table.
	// A zero-row result is not an error at this layer.
	FetchAll(ctx context.Context) (*Table, error)
}
