package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Species     Species
	Breed       string
	Status      Status // vacío = available
	Age         int
	Sex         Sex
	Size        Size
	Description string
	ImageURL    string
}

// UpdateInput usa punteros: nil = no tocar.
type UpdateInput struct {
	Name        *string
	Species     *Species
	Breed       *string
	Status      *Status
	Age         *int
	Sex         *Sex
	Size        *Size
	Description *string
	ImageURL    *string
}

// Add crea una mascota con id y fecha de alta generados.
// Nombres repetidos están permitidos; solo el id es único.
func (s *Service) Add(ctx context.Context, in CreateInput) (Pet, error) {
	status := in.Status
	if status == "" {
		status = StatusAvailable
	}
	sex := in.Sex
	if sex == "" {
		sex = SexUnknown
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Species:     in.Species,
		Breed:       strings.TrimSpace(in.Breed),
		Status:      status,
		Age:         in.Age,
		Sex:         sex,
		Size:        in.Size,
		Description: strings.TrimSpace(in.Description),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		DateAdded:   now,
		UpdatedAt:   now,
	}
	if err := validate(p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Update reemplaza los campos enviados conservando ID y DateAdded.
// El read-modify-write corre dentro del repositorio, así dos PATCH
// concurrentes sobre campos distintos no se pisan.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}

	return s.repo.Update(ctx, id, func(p *Pet) error {
		next := *p
		in.apply(&next)
		if err := validate(next); err != nil {
			return err
		}
		next.UpdatedAt = s.now()
		*p = next
		return nil
	})
}

func (in UpdateInput) apply(p *Pet) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = *in.Species
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.Sex != nil {
		p.Sex = *in.Sex
	}
	if in.Size != nil {
		p.Size = *in.Size
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
}

// Delete no toca las solicitudes de adopción que referencian a la mascota.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// SearchResult son las mascotas que pasan el filtro y el total del catálogo,
// ambos tomados del mismo snapshot.
type SearchResult struct {
	Items []Pet
	Total int
}

// Search aplica Filter sobre el estado actual del repositorio.
func (s *Service) Search(ctx context.Context, c Criteria) (SearchResult, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Items: Filter(items, c), Total: len(items)}, nil
}

func validate(p Pet) error {
	if p.Name == "" {
		return ErrInvalidInput
	}
	if !p.Species.Valid() || !p.Status.Valid() {
		return ErrInvalidInput
	}
	if p.Sex != "" && !p.Sex.Valid() {
		return ErrInvalidInput
	}
	if p.Size != "" && !p.Size.Valid() {
		return ErrInvalidInput
	}
	if p.Age < 0 {
		return ErrInvalidInput
	}
	return nil
}
