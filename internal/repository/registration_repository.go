package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// RegistrationRepository creates an identity together with its profile in
// a single transaction, so a failed profile insert never leaves an
// orphaned user row behind.
type RegistrationRepository interface {
	CreateCustomer(ctx context.Context, user *domain.User, profile *domain.CustomerProfile) error
	CreateBusiness(ctx context.Context, user *domain.User, profile *domain.BusinessProfile) error
}

type registrationRepository struct {
	pool       *pgxpool.Pool
	bcryptCost int
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(pool *pgxpool.Pool, bcryptCost int) RegistrationRepository {
	return &registrationRepository{pool: pool, bcryptCost: bcryptCost}
}

func (r *registrationRepository) CreateCustomer(ctx context.Context, user *domain.User, profile *domain.CustomerProfile) error {
	return r.withinTx(ctx, func(tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user, r.bcryptCost); err != nil {
			return err
		}
		profile.UserID = user.ID
		return insertCustomerProfile(ctx, tx, profile)
	})
}

func (r *registrationRepository) CreateBusiness(ctx context.Context, user *domain.User, profile *domain.BusinessProfile) error {
	return r.withinTx(ctx, func(tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user, r.bcryptCost); err != nil {
			return err
		}
		profile.UserID = user.ID
		return insertBusinessProfile(ctx, tx, profile)
	})
}

func (r *registrationRepository) withinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit(ctx)
}
