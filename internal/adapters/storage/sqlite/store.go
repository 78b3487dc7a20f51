package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const (
	bucketPets     = "pets"
	bucketRequests = "adoption_requests"
)

// Store mantiene el estado en los repos de memoria y, después de cada
// mutación exitosa, guarda la colección completa como JSON en una tabla SQLite.
type Store struct {
	db   *sql.DB
	mu   sync.Mutex // serializa mutación + snapshot
	path string

	pets     *memory.PetRepo
	requests *memory.AdoptionRepo
}

// Open abre (o crea) el archivo y carga el último snapshot.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = "petadopt.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Un solo escritor; evita SQLITE_BUSY entre conexiones del pool.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	s := &Store{
		db:       db,
		path:     path,
		pets:     memory.NewPetRepo(),
		requests: memory.NewAdoptionRepo(),
	}
	if err := s.load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Pets() pets.Repository { return &petsRepo{store: s} }

func (s *Store) Adoptions() adoptions.Repository { return &requestsRepo{store: s} }

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) load(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		petItems     []pets.Pet
		requestItems []adoptions.Request
	)
	for rows.Next() {
		var (
			bucket  string
			payload []byte
		)
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		switch bucket {
		case bucketPets:
			if err := json.Unmarshal(payload, &petItems); err != nil {
				return fmt.Errorf("decode pets: %w", err)
			}
		case bucketRequests:
			if err := json.Unmarshal(payload, &requestItems); err != nil {
				return fmt.Errorf("decode adoption requests: %w", err)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	s.pets.Replace(petItems)
	s.requests.Replace(requestItems)
	return nil
}

// persist escribe ambos buckets en una transacción. Requiere s.mu tomado.
func (s *Store) persist(ctx context.Context) (retErr error) {
	petItems, err := s.pets.List(ctx)
	if err != nil {
		return err
	}
	requestItems, err := s.requests.List(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for bucket, v := range map[string]any{bucketPets: petItems, bucketRequests: requestItems} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
			bucket, data,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	return tx.Commit()
}

// mutate aplica fn sobre memoria y guarda snapshot si fn no falló.
// Si el snapshot no se puede escribir, memoria vuelve al estado previo.
func (s *Store) mutate(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevPets, err := s.pets.List(ctx)
	if err != nil {
		return err
	}
	prevRequests, err := s.requests.List(ctx)
	if err != nil {
		return err
	}

	if err := fn(); err != nil {
		return err
	}
	if err := s.persist(ctx); err != nil {
		s.pets.Replace(prevPets)
		s.requests.Replace(prevRequests)
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

type petsRepo struct {
	store *Store
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error {
	return r.store.mutate(ctx, func() error { return r.store.pets.Create(ctx, p) })
}

func (r *petsRepo) Update(ctx context.Context, id string, fn func(*pets.Pet) error) (pets.Pet, error) {
	var updated pets.Pet
	err := r.store.mutate(ctx, func() error {
		p, err := r.store.pets.Update(ctx, id, fn)
		updated = p
		return err
	})
	if err != nil {
		return pets.Pet{}, err
	}
	return updated, nil
}

func (r *petsRepo) Delete(ctx context.Context, id string) error {
	return r.store.mutate(ctx, func() error { return r.store.pets.Delete(ctx, id) })
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return r.store.pets.GetByID(ctx, id)
}

func (r *petsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.store.pets.List(ctx)
}

type requestsRepo struct {
	store *Store
}

func (r *requestsRepo) Create(ctx context.Context, req adoptions.Request) error {
	return r.store.mutate(ctx, func() error { return r.store.requests.Create(ctx, req) })
}

func (r *requestsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	return r.store.requests.GetByID(ctx, id)
}

func (r *requestsRepo) List(ctx context.Context) ([]adoptions.Request, error) {
	return r.store.requests.List(ctx)
}

func (r *requestsRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	return r.store.requests.ListByPet(ctx, petID)
}
