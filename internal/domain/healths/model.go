package healths

// Health es la ficha médica, 1:1 con un dog.
// Vive exactamente lo que vive el dog (el borrado del dog la cascadea).
type Health struct {
	ID    string
	DogID string

	HasVet   bool
	VetName  string
	VetPhone string

	Castrated bool
	InHeat    bool

	ChronicDisease     bool
	DiseaseDescription string

	Allergies              string
	SpecialRecommendations string
}
