package profiles

import "time"

const (
	DefaultBreed          = "unknown"
	DefaultSpayedNeutered = "No"
)

// Profile es único por usuario. Pets e History son sub-documentos sin ciclo
// de vida propio: se guardan y se borran con el perfil.
type Profile struct {
	ID     string
	UserID string

	// UserName se resuelve al leer (no se persiste).
	UserName string

	Zipcode int64
	State   string
	City    string

	Pets    []Pet          // más reciente primero
	History []VisitHistory // más reciente primero

	CreatedAt time.Time

	// Version se usa para compare-and-swap en Repository.Update.
	Version int64
}

type Pet struct {
	ID             string
	Name           string
	Gender         string
	Age            string
	Weight         string
	Breed          string
	SpayedNeutered string
}

type VisitHistory struct {
	ID                string
	Pet               string
	Weight            string
	Hospital          string
	Address           string
	Zipcode           string
	ReasonForHospital string
	VisitTime         string
}

func (p Profile) petIndex(petID string) int {
	for i, pet := range p.Pets {
		if pet.ID == petID {
			return i
		}
	}
	return -1
}

func (p Profile) historyIndex(historyID string) int {
	for i, h := range p.History {
		if h.ID == historyID {
			return i
		}
	}
	return -1
}

// hasPetNamed ignora la mascota skipID (para updates).
func (p Profile) hasPetNamed(name, skipID string) bool {
	for _, pet := range p.Pets {
		if pet.ID != skipID && pet.Name == name {
			return true
		}
	}
	return false
}

// Clone copia los slices para que mutar el resultado no toque el original.
func (p Profile) Clone() Profile {
	out := p
	if p.Pets != nil {
		out.Pets = append([]Pet(nil), p.Pets...)
	}
	if p.History != nil {
		out.History = append([]VisitHistory(nil), p.History...)
	}
	return out
}
