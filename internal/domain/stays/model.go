package stays

import "time"

// Stay es un período de hospedaje de un dog.
// OwnerID queda snapshoteado al crear para preservar historial de facturación.
type Stay struct {
	ID      string
	DogID   string
	OwnerID string

	CheckIn  *time.Time
	CheckOut *time.Time

	Notes      string
	PriceTotal float64

	CreatedAt time.Time
}
