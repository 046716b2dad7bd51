package servicetypes

// ServiceType es una entrada del catálogo/lista de precios
// (baño, paseo, día de guardería, etc).
type ServiceType struct {
	ID          string
	Name        string // único
	Description string
	BasePrice   *float64
}
