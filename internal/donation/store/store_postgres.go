package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"givebridge/internal/donation/models"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
)

// PostgresStore persists donation requests with the item list as a JSONB
// array, preserving item order.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const donationColumns = `id, donor_id, institution_id, project_id, project_title,
	delivery_mode, items, notes, status, created_at`

func (s *PostgresStore) Save(ctx context.Context, donation *models.DonationRequest) error {
	items, err := json.Marshal(donation.Items)
	if err != nil {
		return fmt.Errorf("marshal donation items: %w", err)
	}
	query := `
		INSERT INTO donation_requests (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		uuid.UUID(donation.ID),
		uuid.UUID(donation.DonorID),
		uuid.UUID(donation.InstitutionID),
		donation.ProjectID.String(),
		donation.ProjectTitle,
		string(donation.DeliveryMode),
		items,
		donation.Notes,
		string(donation.Status),
		donation.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save donation request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, donationID id.DonationID) (*models.DonationRequest, error) {
	query := `SELECT ` + donationColumns + ` FROM donation_requests WHERE id = $1`
	donation, err := scanDonation(s.db.QueryRowContext(ctx, query, uuid.UUID(donationID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find donation request: %w", err)
	}
	return donation, nil
}

func (s *PostgresStore) ListByDonor(ctx context.Context, donorID id.AccountID) ([]*models.DonationRequest, error) {
	query := `SELECT ` + donationColumns + ` FROM donation_requests WHERE donor_id = $1 ORDER BY created_at DESC`
	return s.list(ctx, query, uuid.UUID(donorID))
}

func (s *PostgresStore) ListByInstitution(ctx context.Context, institutionID id.AccountID) ([]*models.DonationRequest, error) {
	query := `SELECT ` + donationColumns + ` FROM donation_requests WHERE institution_id = $1 ORDER BY created_at DESC`
	return s.list(ctx, query, uuid.UUID(institutionID))
}

func (s *PostgresStore) list(ctx context.Context, query string, arg any) ([]*models.DonationRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list donation requests: %w", err)
	}
	defer rows.Close()

	out := make([]*models.DonationRequest, 0)
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation request: %w", err)
		}
		out = append(out, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation requests: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDonation(row scanner) (*models.DonationRequest, error) {
	var (
		rawID, donorID, institutionID uuid.UUID
		projectID, mode, status       string
		items                         []byte
		donation                      models.DonationRequest
	)
	if err := row.Scan(
		&rawID,
		&donorID,
		&institutionID,
		&projectID,
		&donation.ProjectTitle,
		&mode,
		&items,
		&donation.Notes,
		&status,
		&donation.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &donation.Items); err != nil {
		return nil, fmt.Errorf("decode donation items: %w", err)
	}
	donation.ID = id.DonationID(rawID)
	donation.DonorID = id.AccountID(donorID)
	donation.InstitutionID = id.AccountID(institutionID)
	donation.ProjectID = id.ProjectID(projectID)
	donation.DeliveryMode = models.DeliveryMode(mode)
	donation.Status = models.Status(status)
	return &donation, nil
}
