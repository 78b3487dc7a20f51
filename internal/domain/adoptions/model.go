package adoptions

import "time"

// Status del ciclo de una solicitud. Nace en pending.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var AllStatuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Applicant son los datos que completa quien quiere adoptar.
type Applicant struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	Experience string // experiencia previa con mascotas
	Reason     string
}

// Request es la intención de adoptar una mascota concreta.
// PetID es una referencia débil: borrar la mascota no borra la solicitud.
type Request struct {
	ID string

	PetID   string
	PetName string // snapshot del nombre al momento de la solicitud

	Applicant Applicant
	Status    Status

	SubmittedAt time.Time
}
