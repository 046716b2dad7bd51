package owners

import "context"

type Repository interface {
	// Create devuelve ErrCPFInUse si el cpf ya existe.
	Create(ctx context.Context, o Owner) error
	// Update devuelve ErrNotFound o ErrCPFInUse.
	Update(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	// Delete devuelve ErrInUse si algún dog/stay/service referencia al owner.
	Delete(ctx context.Context, id string) error
}
