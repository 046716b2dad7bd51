package dogs

// Gender define el sexo del perro.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func ParseGender(s string) (Gender, bool) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), true
	default:
		return "", false
	}
}

// Size define el porte del perro.
// @Enum small, medium, large
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func ParseSize(s string) (Size, bool) {
	switch Size(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return Size(s), true
	default:
		return "", false
	}
}

// DefaultBreed se aplica cuando el alta no informa raza (SRD).
const DefaultBreed = "mixed breed"
