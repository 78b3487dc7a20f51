package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/pets"

	"github.com/jmoiron/sqlx"
)

type PetsRepo struct {
	db *sqlx.DB
}

func NewPetsRepo(db *sqlx.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

type petRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Species     string    `db:"species"`
	Breed       string    `db:"breed"`
	Status      string    `db:"status"`
	Age         int       `db:"age"`
	Sex         string    `db:"sex"`
	Size        string    `db:"size"`
	Description string    `db:"description"`
	ImageURL    string    `db:"image_url"`
	DateAdded   time.Time `db:"date_added"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const petColumns = `id, name, species, breed, status, age, sex, size, description, image_url, date_added, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES (
			:id, :name, :species, :breed, :status, :age, :sex, :size,
			:description, :image_url, :date_added, :updated_at
		)
	`, toPetRow(p))
	if err != nil {
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

// Update bloquea la fila (FOR UPDATE), aplica fn y escribe en la misma
// transacción. Nunca escribe date_added: es inmutable.
func (r *PetsRepo) Update(ctx context.Context, id string, fn func(*pets.Pet) error) (_ pets.Pet, retErr error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("begin update pet: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	var row petRow
	err = tx.GetContext(ctx, &row, `SELECT `+petColumns+` FROM pets WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("lock pet: %w", err)
	}

	p := row.toPet()
	if err := fn(&p); err != nil {
		return pets.Pet{}, err
	}
	p.ID = id
	p.DateAdded = row.DateAdded

	if _, err := tx.NamedExecContext(ctx, `
		UPDATE pets
		SET
			name = :name,
			species = :species,
			breed = :breed,
			status = :status,
			age = :age,
			sex = :sex,
			size = :size,
			description = :description,
			image_url = :image_url,
			updated_at = :updated_at
		WHERE id = :id
	`, toPetRow(p)); err != nil {
		return pets.Pet{}, fmt.Errorf("update pet: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return pets.Pet{}, fmt.Errorf("commit update pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	var row petRow
	err := r.db.GetContext(ctx, &row, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return row.toPet(), nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	var rows []petRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+petColumns+` FROM pets ORDER BY seq ASC`); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}

	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toPet())
	}
	return out, nil
}

func toPetRow(p pets.Pet) petRow {
	return petRow{
		ID:          p.ID,
		Name:        p.Name,
		Species:     string(p.Species),
		Breed:       p.Breed,
		Status:      string(p.Status),
		Age:         p.Age,
		Sex:         string(p.Sex),
		Size:        string(p.Size),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		DateAdded:   p.DateAdded,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (row petRow) toPet() pets.Pet {
	return pets.Pet{
		ID:          row.ID,
		Name:        row.Name,
		Species:     pets.Species(row.Species),
		Breed:       row.Breed,
		Status:      pets.Status(row.Status),
		Age:         row.Age,
		Sex:         pets.Sex(row.Sex),
		Size:        pets.Size(row.Size),
		Description: row.Description,
		ImageURL:    row.ImageURL,
		DateAdded:   row.DateAdded,
		UpdatedAt:   row.UpdatedAt,
	}
}
