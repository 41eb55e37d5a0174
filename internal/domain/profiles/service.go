package profiles

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pet-vet-reviews/internal/domain/users"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("profile not found")
	ErrAlreadyExists   = errors.New("profile already exists")
	ErrPetNotFound     = errors.New("pet not found")
	ErrHistoryNotFound = errors.New("history not found")
	ErrDuplicatePet    = errors.New("pet duplicate")
	ErrVersionConflict = errors.New("profile version conflict")
)

// maxAttempts acota los reintentos de read-modify-write ante ErrVersionConflict.
const maxAttempts = 3

var zipcodeRe = regexp.MustCompile(`^\d{5,}$`)

type Service struct {
	repo     Repository
	accounts AccountRemover
	users    UserLookup
	now      func() time.Time
}

func NewService(repo Repository, accounts AccountRemover, users UserLookup) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		users:    users,
		now:      time.Now,
	}
}

type LocationInput struct {
	Zipcode string
	State   string
	City    string
}

type PetInput struct {
	Name           string
	Gender         string
	Age            string
	Weight         string
	Breed          string
	SpayedNeutered string
}

type HistoryInput struct {
	Pet               string
	Weight            string
	Hospital          string
	Address           string
	Zipcode           string
	ReasonForHospital string
	VisitTime         string
}

func (s *Service) GetOwn(ctx context.Context, userID string) (Profile, error) {
	return s.GetByUser(ctx, userID)
}

func (s *Service) GetByUser(ctx context.Context, userID string) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, ErrNotFound
	}
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return s.resolve(ctx, p, nil), nil
}

func (s *Service) ListAll(ctx context.Context) ([]Profile, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	for i := range list {
		list[i] = s.resolve(ctx, list[i], names)
	}
	return list, nil
}

// Upsert crea el perfil o actualiza solo los campos de ubicación.
func (s *Service) Upsert(ctx context.Context, userID string, in LocationInput) (Profile, error) {
	zip, err := parseZipcode(in.Zipcode)
	if err != nil {
		return Profile{}, err
	}
	state := strings.TrimSpace(in.State)
	city := strings.TrimSpace(in.City)
	if state == "" || city == "" {
		return Profile{}, ErrInvalidInput
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		cur, err := s.repo.GetByUser(ctx, userID)
		switch {
		case errors.Is(err, ErrNotFound):
			p := Profile{
				ID:        uuid.NewString(),
				UserID:    userID,
				Zipcode:   zip,
				State:     state,
				City:      city,
				Pets:      []Pet{},
				History:   []VisitHistory{},
				CreatedAt: s.now(),
			}
			err = s.repo.Create(ctx, p)
			if errors.Is(err, ErrAlreadyExists) {
				continue
			}
			if err != nil {
				return Profile{}, fmt.Errorf("create profile: %w", err)
			}
			return s.resolve(ctx, p, nil), nil
		case err != nil:
			return Profile{}, err
		}

		cur.Zipcode, cur.State, cur.City = zip, state, city
		err = s.repo.Update(ctx, cur)
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		if err != nil {
			return Profile{}, fmt.Errorf("update profile: %w", err)
		}
		cur.Version++
		return s.resolve(ctx, cur, nil), nil
	}
	return Profile{}, ErrVersionConflict
}

// DeleteAccount borra posts, perfil y usuario. No exige que exista perfil.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.accounts.DeleteAccount(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

func (s *Service) AddPet(ctx context.Context, userID string, in PetInput) (Profile, error) {
	pet, err := newPet(in)
	if err != nil {
		return Profile{}, err
	}
	pet.ID = uuid.NewString()

	return s.mutate(ctx, userID, func(p *Profile) error {
		if p.hasPetNamed(pet.Name, "") {
			return ErrDuplicatePet
		}
		p.Pets = append([]Pet{pet}, p.Pets...)
		return nil
	})
}

// UpdatePet reemplaza todos los campos de la mascota manteniendo su posición.
func (s *Service) UpdatePet(ctx context.Context, userID, petID string, in PetInput) (Profile, error) {
	pet, err := newPet(in)
	if err != nil {
		return Profile{}, err
	}
	pet.ID = petID

	return s.mutate(ctx, userID, func(p *Profile) error {
		i := p.petIndex(petID)
		if i < 0 {
			return ErrPetNotFound
		}
		if p.hasPetNamed(pet.Name, petID) {
			return ErrDuplicatePet
		}
		p.Pets[i] = pet
		return nil
	})
}

func (s *Service) RemovePet(ctx context.Context, userID, petID string) (Profile, error) {
	return s.mutate(ctx, userID, func(p *Profile) error {
		i := p.petIndex(petID)
		if i < 0 {
			return ErrPetNotFound
		}
		p.Pets = append(p.Pets[:i], p.Pets[i+1:]...)
		return nil
	})
}

func (s *Service) AddHistory(ctx context.Context, userID string, in HistoryInput) (Profile, error) {
	h := VisitHistory{
		ID:                uuid.NewString(),
		Pet:               strings.TrimSpace(in.Pet),
		Weight:            strings.TrimSpace(in.Weight),
		Hospital:          strings.TrimSpace(in.Hospital),
		Address:           strings.TrimSpace(in.Address),
		Zipcode:           strings.TrimSpace(in.Zipcode),
		ReasonForHospital: strings.TrimSpace(in.ReasonForHospital),
		VisitTime:         strings.TrimSpace(in.VisitTime),
	}
	if h.Pet == "" || h.Hospital == "" || h.Address == "" || h.Zipcode == "" || h.ReasonForHospital == "" || h.VisitTime == "" {
		return Profile{}, ErrInvalidInput
	}

	return s.mutate(ctx, userID, func(p *Profile) error {
		p.History = append([]VisitHistory{h}, p.History...)
		return nil
	})
}

func (s *Service) RemoveHistory(ctx context.Context, userID, historyID string) (Profile, error) {
	return s.mutate(ctx, userID, func(p *Profile) error {
		i := p.historyIndex(historyID)
		if i < 0 {
			return ErrHistoryNotFound
		}
		p.History = append(p.History[:i], p.History[i+1:]...)
		return nil
	})
}

// mutate aplica fn sobre una copia fresca del perfil y la guarda con CAS.
// Si fn falla no se escribe nada.
func (s *Service) mutate(ctx context.Context, userID string, fn func(*Profile) error) (Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return Profile{}, ErrNotFound
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		cur, err := s.repo.GetByUser(ctx, userID)
		if err != nil {
			return Profile{}, err
		}

		next := cur.Clone()
		if err := fn(&next); err != nil {
			return Profile{}, err
		}

		err = s.repo.Update(ctx, next)
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		if err != nil {
			return Profile{}, fmt.Errorf("update profile: %w", err)
		}
		next.Version++
		return s.resolve(ctx, next, nil), nil
	}
	return Profile{}, ErrVersionConflict
}

// resolve completa UserName. Un usuario inexistente deja el nombre vacío;
// cache evita repetir búsquedas en ListAll.
func (s *Service) resolve(ctx context.Context, p Profile, cache map[string]string) Profile {
	if s.users == nil {
		return p
	}
	if name, ok := cache[p.UserID]; ok {
		p.UserName = name
		return p
	}
	u, err := s.users.GetByID(ctx, p.UserID)
	if err == nil {
		p.UserName = u.UserName
	} else if !errors.Is(err, users.ErrNotFound) {
		return p
	}
	if cache != nil {
		cache[p.UserID] = p.UserName
	}
	return p
}

func newPet(in PetInput) (Pet, error) {
	pet := Pet{
		Name:           strings.TrimSpace(in.Name),
		Gender:         strings.TrimSpace(in.Gender),
		Age:            strings.TrimSpace(in.Age),
		Weight:         strings.TrimSpace(in.Weight),
		Breed:          strings.TrimSpace(in.Breed),
		SpayedNeutered: strings.TrimSpace(in.SpayedNeutered),
	}
	if pet.Name == "" {
		return Pet{}, ErrInvalidInput
	}
	if pet.Breed == "" {
		pet.Breed = DefaultBreed
	}
	if pet.SpayedNeutered == "" {
		pet.SpayedNeutered = DefaultSpayedNeutered
	}
	return pet, nil
}

func parseZipcode(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if !zipcodeRe.MatchString(s) {
		return 0, ErrInvalidInput
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidInput
	}
	return n, nil
}
