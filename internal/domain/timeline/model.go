package timeline

import "time"

type Kind string

const (
	KindStay    Kind = "STAY"
	KindService Kind = "SERVICE"
)

// Entry es un evento del timeline de un dog: un stay o un service,
// aplanados en una sola secuencia cronológica.
type Entry struct {
	Kind Kind

	// When es la clave de orden: el timestamp propio del evento,
	// con created_at como fallback cuando falta.
	When time.Time

	// STAY
	StayID     string
	CheckIn    *time.Time
	CheckOut   *time.Time
	PriceTotal *float64

	// SERVICE
	ServiceID   string
	ServiceType string
	PerformedAt *time.Time
	Day         *time.Time
	Price       *float64
	Currency    string
	Metadata    map[string]string
	CreatedAt   *time.Time

	Notes string
}
