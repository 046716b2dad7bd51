package healths

import "context"

type Repository interface {
	// Create devuelve ErrDogNotFound si el dog no existe
	// y ErrAlreadyExists si el dog ya tiene ficha.
	Create(ctx context.Context, h Health) error
	Update(ctx context.Context, h Health) error
	GetByID(ctx context.Context, id string) (Health, error)
	GetByDog(ctx context.Context, dogID string) (Health, error)
	List(ctx context.Context) ([]Health, error)
	Delete(ctx context.Context, id string) error
}
