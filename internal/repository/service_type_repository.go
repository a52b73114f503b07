package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// ServiceTypeRepository manages the admin curated service catalog.
type ServiceTypeRepository interface {
	Create(ctx context.Context, serviceType *domain.ServiceType) error
	Update(ctx context.Context, serviceType *domain.ServiceType) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.ServiceType, error)
	List(ctx context.Context) ([]domain.ServiceType, error)
}

type serviceTypeRepository struct {
	db Querier
}

// NewServiceTypeRepository returns a Postgres-backed implementation.
func NewServiceTypeRepository(db Querier) ServiceTypeRepository {
	return &serviceTypeRepository{db: db}
}

func (r *serviceTypeRepository) Create(ctx context.Context, serviceType *domain.ServiceType) error {
	const query = `
        INSERT INTO service_types (name)
        VALUES ($1)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, serviceType.Name).
		Scan(&serviceType.ID, &serviceType.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *serviceTypeRepository) Update(ctx context.Context, serviceType *domain.ServiceType) error {
	cmd, err := r.db.Exec(ctx, `UPDATE service_types SET name=$1 WHERE id=$2`, serviceType.Name, serviceType.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceTypeRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM service_types WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceTypeRepository) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	var serviceType domain.ServiceType
	err := r.db.QueryRow(ctx, `SELECT id, name, created_at FROM service_types WHERE id=$1`, id).
		Scan(&serviceType.ID, &serviceType.Name, &serviceType.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &serviceType, nil
}

func (r *serviceTypeRepository) List(ctx context.Context) ([]domain.ServiceType, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, created_at FROM service_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var serviceTypes []domain.ServiceType
	for rows.Next() {
		var serviceType domain.ServiceType
		if err := rows.Scan(&serviceType.ID, &serviceType.Name, &serviceType.CreatedAt); err != nil {
			return nil, err
		}
		serviceTypes = append(serviceTypes, serviceType)
	}
	return serviceTypes, rows.Err()
}
