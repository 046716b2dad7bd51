package owners

import "time"

// Owner representa un tutor (cliente) de la guardería/hotel.
type Owner struct {
	ID string

	Name  string
	Phone string
	Email string

	// CPF es único cuando no está vacío.
	CPF string

	Address  string
	District string

	CreatedAt time.Time
}
