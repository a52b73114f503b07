package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CustomerRepository manages customer profiles and their addresses.
type CustomerRepository interface {
	CreateProfile(ctx context.Context, profile *domain.CustomerProfile) error
	UpdateProfile(ctx context.Context, profile *domain.CustomerProfile) error
	GetProfileByUserID(ctx context.Context, userID string) (*domain.CustomerProfile, error)

	CreateAddress(ctx context.Context, address *domain.CustomerAddress) error
	UpdateAddress(ctx context.Context, address *domain.CustomerAddress) error
	DeleteAddress(ctx context.Context, id, customerID string) error
	GetAddress(ctx context.Context, id, customerID string) (*domain.CustomerAddress, error)
	ListAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error)
	ClearDefaultAddresses(ctx context.Context, customerID, exceptID string) error
}

type customerRepository struct {
	db Querier
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(db Querier) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) CreateProfile(ctx context.Context, profile *domain.CustomerProfile) error {
	return insertCustomerProfile(ctx, r.db, profile)
}

func insertCustomerProfile(ctx context.Context, db Querier, profile *domain.CustomerProfile) error {
	const query = `
        INSERT INTO customer_profiles (user_id, first_name, last_name, phone_number, whatsapp_number, profile_photo_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return db.QueryRow(ctx, query,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.PhoneNumber,
		profile.WhatsappNumber,
		profile.ProfilePhotoURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *customerRepository) UpdateProfile(ctx context.Context, profile *domain.CustomerProfile) error {
	const query = `
        UPDATE customer_profiles SET first_name=$1, last_name=$2, phone_number=$3,
            whatsapp_number=$4, profile_photo_url=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.db.Exec(ctx, query,
		profile.FirstName,
		profile.LastName,
		profile.PhoneNumber,
		profile.WhatsappNumber,
		profile.ProfilePhotoURL,
		profile.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetProfileByUserID(ctx context.Context, userID string) (*domain.CustomerProfile, error) {
	const query = `
        SELECT id, user_id, first_name, last_name, phone_number, whatsapp_number, profile_photo_url, created_at, updated_at
        FROM customer_profiles WHERE user_id=$1`

	var profile domain.CustomerProfile
	if err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.PhoneNumber,
		&profile.WhatsappNumber,
		&profile.ProfilePhotoURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *customerRepository) CreateAddress(ctx context.Context, address *domain.CustomerAddress) error {
	const query = `
        INSERT INTO customer_addresses (customer_id, house, street, city, is_default)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		address.CustomerID,
		address.House,
		address.Street,
		address.City,
		address.IsDefault,
	).Scan(&address.ID, &address.CreatedAt, &address.UpdatedAt)
}

func (r *customerRepository) UpdateAddress(ctx context.Context, address *domain.CustomerAddress) error {
	const query = `
        UPDATE customer_addresses SET house=$1, street=$2, city=$3, is_default=$4, updated_at=NOW()
        WHERE id=$5 AND customer_id=$6`

	cmd, err := r.db.Exec(ctx, query,
		address.House,
		address.Street,
		address.City,
		address.IsDefault,
		address.ID,
		address.CustomerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) DeleteAddress(ctx context.Context, id, customerID string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM customer_addresses WHERE id=$1 AND customer_id=$2`, id, customerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetAddress(ctx context.Context, id, customerID string) (*domain.CustomerAddress, error) {
	const query = `
        SELECT id, customer_id, house, street, city, is_default, created_at, updated_at
        FROM customer_addresses WHERE id=$1 AND customer_id=$2`

	var address domain.CustomerAddress
	if err := r.db.QueryRow(ctx, query, id, customerID).Scan(
		&address.ID,
		&address.CustomerID,
		&address.House,
		&address.Street,
		&address.City,
		&address.IsDefault,
		&address.CreatedAt,
		&address.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *customerRepository) ListAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error) {
	const query = `
        SELECT id, customer_id, house, street, city, is_default, created_at, updated_at
        FROM customer_addresses WHERE customer_id=$1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []domain.CustomerAddress
	for rows.Next() {
		var address domain.CustomerAddress
		if err := rows.Scan(
			&address.ID,
			&address.CustomerID,
			&address.House,
			&address.Street,
			&address.City,
			&address.IsDefault,
			&address.CreatedAt,
			&address.UpdatedAt,
		); err != nil {
			return nil, err
		}
		addresses = append(addresses, address)
	}
	return addresses, rows.Err()
}

// ClearDefaultAddresses unsets is_default on every address of the customer
// except the given one. Pass an empty exceptID to clear all; the
// exclusion is bound as NULL in that case, never as ''::uuid.
func (r *customerRepository) ClearDefaultAddresses(ctx context.Context, customerID, exceptID string) error {
	const query = `
        UPDATE customer_addresses SET is_default=FALSE, updated_at=NOW()
        WHERE customer_id=$1 AND is_default=TRUE AND ($2::uuid IS NULL OR id <> $2::uuid)`

	_, err := r.db.Exec(ctx, query, customerID, nullableID(exceptID))
	return err
}

// nullableID maps an absent ID to a SQL NULL so uuid-typed parameters
// never see an empty string.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
