package dogs

import "time"

// Dog representa un perro hospedado/atendido por el negocio.
type Dog struct {
	ID      string
	OwnerID string

	Name      string
	Age       *int
	BirthDate *time.Time
	Gender    Gender
	Size      Size
	Breed     string
	Instagram string

	// Active es el marcador de baja lógica; los listados lo filtran por default.
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerInfo es la vista del owner que necesita este módulo.
// Se define acá para evitar ciclos de imports (owners implementa OwnerSource).
type OwnerInfo struct {
	ID       string
	Name     string
	Phone    string
	Email    string
	CPF      string
	Address  string
	District string
}
