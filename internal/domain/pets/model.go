package pets

import "time"

// Species define las especies aceptadas en el catálogo.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// AllSpecies en el orden en que se muestran en filtros y reportes.
var AllSpecies = []Species{SpeciesDog, SpeciesCat, SpeciesOther}

// Status define el estado de adopción de una mascota.
// @Enum available, pending, adopted
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
)

var AllStatuses = []Status{StatusAvailable, StatusPending, StatusAdopted}

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Size define el tamaño aproximado.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Pet representa una mascota publicada para adopción.
type Pet struct {
	ID string

	Name    string
	Species Species
	Breed   string
	Status  Status

	Age         int // años
	Sex         Sex
	Size        Size
	Description string
	ImageURL    string

	DateAdded time.Time // inmutable
	UpdatedAt time.Time
}

func (s Species) Valid() bool {
	for _, v := range AllSpecies {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}
