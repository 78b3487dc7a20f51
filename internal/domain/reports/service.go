package reports

import (
	"context"
	"fmt"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

// PetSource y RequestSource son solo lectura: el reporte nunca escribe en los stores.
type PetSource interface {
	List(ctx context.Context) ([]pets.Pet, error)
}

type RequestSource interface {
	List(ctx context.Context) ([]adoptions.Request, error)
}

type Service struct {
	pets     PetSource
	requests RequestSource
	now      func() time.Time
}

func NewService(ps PetSource, rs RequestSource) *Service {
	return &Service{
		pets:     ps,
		requests: rs,
		now:      time.Now,
	}
}

// Summary recalcula el reporte sobre el estado actual.
func (s *Service) Summary(ctx context.Context) (Report, error) {
	ps, err := s.pets.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list pets: %w", err)
	}
	rs, err := s.requests.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list adoption requests: %w", err)
	}
	return Summarize(ps, rs), nil
}

// Document arma el reporte serializable con la hora de generación.
func (s *Service) Document(ctx context.Context) (Document, error) {
	rep, err := s.Summary(ctx)
	if err != nil {
		return Document{}, err
	}
	return rep.Document(s.now().UTC()), nil
}
