package servicetypes

import "context"

type Repository interface {
	// Create devuelve ErrNameInUse si el nombre ya existe.
	Create(ctx context.Context, st ServiceType) error
	Update(ctx context.Context, st ServiceType) error
	GetByID(ctx context.Context, id string) (ServiceType, error)
	List(ctx context.Context) ([]ServiceType, error)
	// Delete devuelve ErrInUse si algún service lo referencia.
	Delete(ctx context.Context, id string) error
}
