package servicerecords

import "time"

// DefaultCurrency se aplica cuando el alta no informa moneda.
const DefaultCurrency = "BRL"

// ServiceRecord es un evento facturable/registrable de un dog
// (baño, paseo, día de guardería).
//
// Exactamente uno de {PerformedAt, Day} está seteado: PerformedAt para
// eventos con hora puntual, Day para eventos de día calendario.
// OwnerID se deriva siempre del owner del dog al crear.
type ServiceRecord struct {
	ID            string
	DogID         string
	OwnerID       string
	ServiceTypeID string

	// StayID opcional; si el stay se borra, queda en nil (no se borra el record).
	StayID *string

	PerformedAt *time.Time
	Day         *time.Time

	Price    float64
	Currency string

	Metadata map[string]string
	Notes    string

	// CreatedAt se estampa una sola vez y nunca cambia.
	CreatedAt time.Time
}

// SortTimestamp es la clave temporal propia del record:
// performed_at si está, si no day, si no created_at.
func (sr ServiceRecord) SortTimestamp() time.Time {
	if sr.PerformedAt != nil {
		return *sr.PerformedAt
	}
	if sr.Day != nil {
		return *sr.Day
	}
	return sr.CreatedAt
}
