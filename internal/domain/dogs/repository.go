package dogs

import "context"

type ListFilter struct {
	OwnerID         string
	IncludeInactive bool
}

type Repository interface {
	Create(ctx context.Context, d Dog) error
	Update(ctx context.Context, d Dog) error
	GetByID(ctx context.Context, id string) (Dog, error)
	List(ctx context.Context, filter ListFilter) ([]Dog, error)
	// Delete borra el dog y cascadea su health.
	// Devuelve ErrInUse si algún stay o service lo referencia.
	Delete(ctx context.Context, id string) error
}
