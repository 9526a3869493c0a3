package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"givebridge/internal/profile/models"
	id "givebridge/pkg/domain"
	"givebridge/pkg/platform/sentinel"
)

// PostgresStore persists profiles in PostgreSQL. The institution address and
// stats are stored as JSONB documents.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateDonor(ctx context.Context, profile *models.DonorProfile) error {
	query := `
		INSERT INTO donor_profiles (account_id, points, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(profile.AccountID), profile.Points, profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("create donor profile: %w", err)
	}
	return requireInserted(result)
}

func (s *PostgresStore) FindDonor(ctx context.Context, accountID id.AccountID) (*models.DonorProfile, error) {
	query := `
		SELECT account_id, points, created_at
		FROM donor_profiles
		WHERE account_id = $1
	`
	var (
		rawID   uuid.UUID
		profile models.DonorProfile
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(accountID)).Scan(&rawID, &profile.Points, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find donor profile: %w", err)
	}
	profile.AccountID = id.AccountID(rawID)
	return &profile, nil
}

// IncrementPoints adds delta in a single UPDATE ... RETURNING so concurrent
// donations by the same donor never lose an update.
func (s *PostgresStore) IncrementPoints(ctx context.Context, accountID id.AccountID, delta int) (int, error) {
	query := `
		UPDATE donor_profiles
		SET points = points + $2
		WHERE account_id = $1
		RETURNING points
	`
	var points int
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(accountID), delta).Scan(&points)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, sentinel.ErrNotFound
		}
		return 0, fmt.Errorf("increment donor points: %w", err)
	}
	return points, nil
}

func (s *PostgresStore) CreateInstitution(ctx context.Context, profile *models.InstitutionProfile) error {
	address, err := json.Marshal(profile.Address)
	if err != nil {
		return fmt.Errorf("marshal institution address: %w", err)
	}
	stats, err := json.Marshal(profile.Stats)
	if err != nil {
		return fmt.Errorf("marshal institution stats: %w", err)
	}
	query := `
		INSERT INTO institution_profiles (
			account_id, name, category, tax_id, responsible_cpf, phone, email,
			postal_code, address_number, complement, address, stats, registered_at, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (account_id) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		uuid.UUID(profile.AccountID),
		profile.Name,
		string(profile.Category),
		profile.TaxID,
		profile.ResponsibleCPF,
		profile.Phone,
		profile.Email,
		profile.PostalCode,
		profile.AddressNumber,
		profile.Complement,
		address,
		stats,
		profile.RegisteredAt,
		profile.Active,
	)
	if err != nil {
		return fmt.Errorf("create institution profile: %w", err)
	}
	return requireInserted(result)
}

func (s *PostgresStore) FindInstitution(ctx context.Context, accountID id.AccountID) (*models.InstitutionProfile, error) {
	query := `
		SELECT account_id, name, category, tax_id, responsible_cpf, phone, email,
			postal_code, address_number, complement, address, stats, registered_at, active
		FROM institution_profiles
		WHERE account_id = $1
	`
	var (
		rawID    uuid.UUID
		category string
		address  []byte
		stats    []byte
		profile  models.InstitutionProfile
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(accountID)).Scan(
		&rawID,
		&profile.Name,
		&category,
		&profile.TaxID,
		&profile.ResponsibleCPF,
		&profile.Phone,
		&profile.Email,
		&profile.PostalCode,
		&profile.AddressNumber,
		&profile.Complement,
		&address,
		&stats,
		&profile.RegisteredAt,
		&profile.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find institution profile: %w", err)
	}
	if err := json.Unmarshal(address, &profile.Address); err != nil {
		return nil, fmt.Errorf("decode institution address: %w", err)
	}
	if err := json.Unmarshal(stats, &profile.Stats); err != nil {
		return nil, fmt.Errorf("decode institution stats: %w", err)
	}
	profile.AccountID = id.AccountID(rawID)
	profile.Category = models.Category(category)
	return &profile, nil
}

func requireInserted(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}
