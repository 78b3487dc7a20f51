// Package storage elige la implementación de los repositorios según la configuración.
package storage

import (
	"context"
	"fmt"

	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	lite "pet-adoption/internal/adapters/storage/sqlite"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

type Repositories struct {
	Pets      pets.Repository
	Adoptions adoptions.Repository

	// Close libera el backend (no-op en memoria).
	Close func() error
}

func Open(ctx context.Context, cfg config.StorageConfig) (Repositories, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return Memory(), nil

	case config.DriverPostgres:
		db, err := pg.Open(ctx, cfg.DSN)
		if err != nil {
			return Repositories{}, err
		}
		return Repositories{
			Pets:      pg.NewPetsRepo(db),
			Adoptions: pg.NewAdoptionsRepo(db),
			Close:     db.Close,
		}, nil

	case config.DriverSQLite:
		s, err := lite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return Repositories{}, err
		}
		return Repositories{
			Pets:      s.Pets(),
			Adoptions: s.Adoptions(),
			Close:     s.Close,
		}, nil
	}
	return Repositories{}, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

func Memory() Repositories {
	return Repositories{
		Pets:      mem.NewPetRepo(),
		Adoptions: mem.NewAdoptionRepo(),
		Close:     func() error { return nil },
	}
}
