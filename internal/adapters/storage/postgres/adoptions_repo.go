package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption/internal/domain/adoptions"

	"github.com/jmoiron/sqlx"
)

type AdoptionsRepo struct {
	db *sqlx.DB
}

func NewAdoptionsRepo(db *sqlx.DB) *AdoptionsRepo {
	return &AdoptionsRepo{db: db}
}

type requestRow struct {
	ID                  string    `db:"id"`
	PetID               string    `db:"pet_id"`
	PetName             string    `db:"pet_name"`
	ApplicantName       string    `db:"applicant_name"`
	ApplicantEmail      string    `db:"applicant_email"`
	ApplicantPhone      string    `db:"applicant_phone"`
	ApplicantAddress    string    `db:"applicant_address"`
	ApplicantExperience string    `db:"applicant_experience"`
	ApplicantReason     string    `db:"applicant_reason"`
	Status              string    `db:"status"`
	SubmittedAt         time.Time `db:"submitted_at"`
}

const requestColumns = `id, pet_id, pet_name,
	applicant_name, applicant_email, applicant_phone,
	applicant_address, applicant_experience, applicant_reason,
	status, submitted_at`

func (r *AdoptionsRepo) Create(ctx context.Context, req adoptions.Request) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO adoption_requests (`+requestColumns+`)
		VALUES (
			:id, :pet_id, :pet_name,
			:applicant_name, :applicant_email, :applicant_phone,
			:applicant_address, :applicant_experience, :applicant_reason,
			:status, :submitted_at
		)
	`, toRequestRow(req))
	if err != nil {
		return fmt.Errorf("insert adoption request: %w", err)
	}
	return nil
}

func (r *AdoptionsRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Request{}, adoptions.ErrNotFound
	}

	var row requestRow
	err := r.db.GetContext(ctx, &row, `SELECT `+requestColumns+` FROM adoption_requests WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return adoptions.Request{}, adoptions.ErrNotFound
		}
		return adoptions.Request{}, fmt.Errorf("get adoption request: %w", err)
	}
	return row.toRequest(), nil
}

func (r *AdoptionsRepo) List(ctx context.Context) ([]adoptions.Request, error) {
	var rows []requestRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+requestColumns+` FROM adoption_requests ORDER BY seq ASC`); err != nil {
		return nil, fmt.Errorf("list adoption requests: %w", err)
	}
	return toRequests(rows), nil
}

func (r *AdoptionsRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	var rows []requestRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+requestColumns+`
		FROM adoption_requests
		WHERE pet_id = $1
		ORDER BY seq ASC
	`, petID)
	if err != nil {
		return nil, fmt.Errorf("list adoption requests by pet: %w", err)
	}
	return toRequests(rows), nil
}

func toRequests(rows []requestRow) []adoptions.Request {
	out := make([]adoptions.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRequest())
	}
	return out
}

func toRequestRow(req adoptions.Request) requestRow {
	return requestRow{
		ID:                  req.ID,
		PetID:               req.PetID,
		PetName:             req.PetName,
		ApplicantName:       req.Applicant.Name,
		ApplicantEmail:      req.Applicant.Email,
		ApplicantPhone:      req.Applicant.Phone,
		ApplicantAddress:    req.Applicant.Address,
		ApplicantExperience: req.Applicant.Experience,
		ApplicantReason:     req.Applicant.Reason,
		Status:              string(req.Status),
		SubmittedAt:         req.SubmittedAt,
	}
}

func (row requestRow) toRequest() adoptions.Request {
	return adoptions.Request{
		ID:      row.ID,
		PetID:   row.PetID,
		PetName: row.PetName,
		Applicant: adoptions.Applicant{
			Name:       row.ApplicantName,
			Email:      row.ApplicantEmail,
			Phone:      row.ApplicantPhone,
			Address:    row.ApplicantAddress,
			Experience: row.ApplicantExperience,
			Reason:     row.ApplicantReason,
		},
		Status:      adoptions.Status(row.Status),
		SubmittedAt: row.SubmittedAt,
	}
}
