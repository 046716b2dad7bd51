package stays

import "context"

type ListFilter struct {
	DogID   string
	OwnerID string

	// OrderBy: check_in | check_out | created_at, prefijo "-" para descendente.
	OrderBy string
	Limit   int
}

type Repository interface {
	Create(ctx context.Context, s Stay) error
	Update(ctx context.Context, s Stay) error
	GetByID(ctx context.Context, id string) (Stay, error)
	List(ctx context.Context, filter ListFilter) ([]Stay, error)
	// Delete anula (no borra) la referencia stay_id de los services asociados.
	Delete(ctx context.Context, id string) error
}
