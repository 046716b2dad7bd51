package servicerecords

import (
	"context"
	"time"
)

type ListFilter struct {
	DogID         string
	OwnerID       string
	ServiceTypeID string
	Day           *time.Time

	// Query busca en nombre del dog, nombre del owner y notes.
	Query string

	// OrderBy: performed_at | day | created_at | price, prefijo "-" para descendente.
	OrderBy string
	Limit   int
}

type Repository interface {
	Create(ctx context.Context, sr ServiceRecord) error
	Update(ctx context.Context, sr ServiceRecord) error
	GetByID(ctx context.Context, id string) (ServiceRecord, error)
	List(ctx context.Context, filter ListFilter) ([]ServiceRecord, error)
	Delete(ctx context.Context, id string) error

	// SumByStay suma los precios de los records vinculados al stay (0 si no hay).
	SumByStay(ctx context.Context, stayID string) (float64, error)
}
