package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
)

// UserRepository defines persistence access for identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db         Querier
	bcryptCost int
}

// NewUserRepository returns a Postgres-backed implementation. The store
// hashes any plaintext password material before persisting it; values
// already in bcrypt form are written as-is.
func NewUserRepository(db Querier, bcryptCost int) UserRepository {
	return &userRepository{db: db, bcryptCost: bcryptCost}
}

const userColumns = `id, email, password_hash, role, is_email_verified,
        verification_token, reset_token, reset_token_expires_at,
        google_id, last_login_at, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return insertUser(ctx, r.db, user, r.bcryptCost)
}

func insertUser(ctx context.Context, db Querier, user *domain.User, bcryptCost int) error {
	if err := ensureHashed(user, bcryptCost); err != nil {
		return err
	}

	const query = `
        INSERT INTO users (email, password_hash, role, is_email_verified, verification_token, google_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	err := db.QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsEmailVerified,
		user.VerificationToken,
		user.GoogleID,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if err := ensureHashed(user, r.bcryptCost); err != nil {
		return err
	}

	const query = `
        UPDATE users SET email=$1, password_hash=$2, is_email_verified=$3,
            verification_token=$4, reset_token=$5, reset_token_expires_at=$6,
            google_id=$7, last_login_at=$8, updated_at=NOW()
        WHERE id=$9`

	cmd, err := r.db.Exec(ctx, query,
		user.Email,
		user.PasswordHash,
		user.IsEmailVerified,
		user.VerificationToken,
		user.ResetToken,
		user.ResetTokenExpires,
		user.GoogleID,
		user.LastLoginAt,
		user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE verification_token=$1`, token)
}

func (r *userRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE reset_token=$1 AND reset_token_expires_at > $2`
	return r.getOne(ctx, query, token, now)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := scanUser(rows, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	if err := scanUser(r.db.QueryRow(ctx, query, args...), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func scanUser(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.IsEmailVerified,
		&user.VerificationToken,
		&user.ResetToken,
		&user.ResetTokenExpires,
		&user.GoogleID,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}

func ensureHashed(user *domain.User, cost int) error {
	if user.PasswordHash == "" || auth.IsHashed(user.PasswordHash) {
		return nil
	}
	hashed, err := auth.HashPassword(user.PasswordHash, cost)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	return nil
}
