package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// BusinessRepository manages business profiles, photos and service links.
type BusinessRepository interface {
	CreateProfile(ctx context.Context, profile *domain.BusinessProfile) error
	UpdateProfile(ctx context.Context, profile *domain.BusinessProfile) error
	GetProfileByUserID(ctx context.Context, userID string) (*domain.BusinessProfile, error)

	CreatePhoto(ctx context.Context, photo *domain.BusinessPhoto) error
	DeletePhoto(ctx context.Context, id, businessID string) error
	ListPhotos(ctx context.Context, businessID string) ([]domain.BusinessPhoto, error)

	CreateServiceLink(ctx context.Context, link *domain.BusinessServiceLink) error
	DeleteServiceLink(ctx context.Context, id, businessID string) error
	ListServiceLinks(ctx context.Context, businessID string) ([]domain.BusinessServiceLink, error)
}

type businessRepository struct {
	db Querier
}

// NewBusinessRepository returns a Postgres-backed implementation.
func NewBusinessRepository(db Querier) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) CreateProfile(ctx context.Context, profile *domain.BusinessProfile) error {
	return insertBusinessProfile(ctx, r.db, profile)
}

func insertBusinessProfile(ctx context.Context, db Querier, profile *domain.BusinessProfile) error {
	const query = `
        INSERT INTO business_profiles (user_id, business_name, phone_number, whatsapp_number, instagram_id,
            owner_name, owner_phone, building, street, city, latitude, longitude)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, created_at, updated_at`

	return db.QueryRow(ctx, query,
		profile.UserID,
		profile.BusinessName,
		profile.PhoneNumber,
		profile.WhatsappNumber,
		profile.InstagramID,
		profile.OwnerName,
		profile.OwnerPhone,
		profile.Building,
		profile.Street,
		profile.City,
		profile.Latitude,
		profile.Longitude,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

func (r *businessRepository) UpdateProfile(ctx context.Context, profile *domain.BusinessProfile) error {
	const query = `
        UPDATE business_profiles SET business_name=$1, phone_number=$2, whatsapp_number=$3,
            instagram_id=$4, owner_name=$5, owner_phone=$6, building=$7, street=$8, city=$9,
            latitude=$10, longitude=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.db.Exec(ctx, query,
		profile.BusinessName,
		profile.PhoneNumber,
		profile.WhatsappNumber,
		profile.InstagramID,
		profile.OwnerName,
		profile.OwnerPhone,
		profile.Building,
		profile.Street,
		profile.City,
		profile.Latitude,
		profile.Longitude,
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

func (r *businessRepository) GetProfileByUserID(ctx context.Context, userID string) (*domain.BusinessProfile, error) {
	const query = `
        SELECT id, user_id, business_name, phone_number, whatsapp_number, instagram_id,
            owner_name, owner_phone, building, street, city, latitude, longitude, created_at, updated_at
        FROM business_profiles WHERE user_id=$1`

	var profile domain.BusinessProfile
	if err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.BusinessName,
		&profile.PhoneNumber,
		&profile.WhatsappNumber,
		&profile.InstagramID,
		&profile.OwnerName,
		&profile.OwnerPhone,
		&profile.Building,
		&profile.Street,
		&profile.City,
		&profile.Latitude,
		&profile.Longitude,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *businessRepository) CreatePhoto(ctx context.Context, photo *domain.BusinessPhoto) error {
	const query = `
        INSERT INTO business_photos (business_id, photo_url)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query, photo.BusinessID, photo.PhotoURL).
		Scan(&photo.ID, &photo.CreatedAt)
}

func (r *businessRepository) DeletePhoto(ctx context.Context, id, businessID string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM business_photos WHERE id=$1 AND business_id=$2`, id, businessID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) ListPhotos(ctx context.Context, businessID string) ([]domain.BusinessPhoto, error) {
	const query = `
        SELECT id, business_id, photo_url, created_at
        FROM business_photos WHERE business_id=$1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []domain.BusinessPhoto
	for rows.Next() {
		var photo domain.BusinessPhoto
		if err := rows.Scan(&photo.ID, &photo.BusinessID, &photo.PhotoURL, &photo.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}
	return photos, rows.Err()
}

func (r *businessRepository) CreateServiceLink(ctx context.Context, link *domain.BusinessServiceLink) error {
	const query = `
        INSERT INTO business_services (business_id, service_type_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, link.BusinessID, link.ServiceTypeID).
		Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *businessRepository) DeleteServiceLink(ctx context.Context, id, businessID string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM business_services WHERE id=$1 AND business_id=$2`, id, businessID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *businessRepository) ListServiceLinks(ctx context.Context, businessID string) ([]domain.BusinessServiceLink, error) {
	const query = `
        SELECT bs.id, bs.business_id, bs.service_type_id, bs.created_at, st.id, st.name, st.created_at
        FROM business_services bs
        JOIN service_types st ON st.id = bs.service_type_id
        WHERE bs.business_id=$1 ORDER BY bs.created_at`

	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.BusinessServiceLink
	for rows.Next() {
		var link domain.BusinessServiceLink
		var serviceType domain.ServiceType
		if err := rows.Scan(
			&link.ID,
			&link.BusinessID,
			&link.ServiceTypeID,
			&link.CreatedAt,
			&serviceType.ID,
			&serviceType.Name,
			&serviceType.CreatedAt,
		); err != nil {
			return nil, err
		}
		link.ServiceType = &serviceType
		links = append(links, link)
	}
	return links, rows.Err()
}
