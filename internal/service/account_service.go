package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

// AccountService orchestrates registration, login, verification, password
// reset and session refresh.
type AccountService struct {
	users         repository.UserRepository
	registrations repository.RegistrationRepository
	tokens        *auth.TokenManager
	revoker       auth.Revoker
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	resetTTL      time.Duration
}

// AccountDependencies encapsulates requirements for the account service.
type AccountDependencies struct {
	UserRepo         repository.UserRepository
	RegistrationRepo repository.RegistrationRepository
	TokenManager     *auth.TokenManager
	Revoker          auth.Revoker
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(cfg config.AuthConfig, deps AccountDependencies) *AccountService {
	resetTTL := time.Duration(cfg.ResetTokenTTLMinutes) * time.Minute
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}
	return &AccountService{
		users:         deps.UserRepo,
		registrations: deps.RegistrationRepo,
		tokens:        deps.TokenManager,
		revoker:       deps.Revoker,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		resetTTL:      resetTTL,
	}
}

// RegisterCustomerInput describes customer sign-up payload.
type RegisterCustomerInput struct {
	Email          string
	Password       string
	FirstName      string
	LastName       string
	PhoneNumber    string
	WhatsappNumber *string
}

// RegisterBusinessInput describes business sign-up payload.
type RegisterBusinessInput struct {
	Email          string
	Password       string
	BusinessName   string
	PhoneNumber    string
	WhatsappNumber *string
	InstagramID    *string
	OwnerName      string
	OwnerPhone     string
	Building       string
	Street         string
	City           string
	Latitude       *float64
	Longitude      *float64
}

// RegisterCustomer creates a customer identity with its profile in one
// transaction and queues a verification email. Email uniqueness is
// enforced by the store constraint; concurrent registrations race on it.
func (s *AccountService) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*domain.User, error) {
	user, err := s.newUnverifiedUser(input.Email, input.Password, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}

	profile := &domain.CustomerProfile{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PhoneNumber:    input.PhoneNumber,
		WhatsappNumber: input.WhatsappNumber,
	}
	if err := s.registrations.CreateCustomer(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.publishRegistered(ctx, user)
	return user, nil
}

// RegisterBusiness creates a business identity with its profile in one
// transaction and queues a verification email.
func (s *AccountService) RegisterBusiness(ctx context.Context, input RegisterBusinessInput) (*domain.User, error) {
	user, err := s.newUnverifiedUser(input.Email, input.Password, domain.RoleBusiness)
	if err != nil {
		return nil, err
	}

	profile := &domain.BusinessProfile{
		BusinessName:   input.BusinessName,
		PhoneNumber:    input.PhoneNumber,
		WhatsappNumber: input.WhatsappNumber,
		InstagramID:    input.InstagramID,
		OwnerName:      input.OwnerName,
		OwnerPhone:     input.OwnerPhone,
		Building:       input.Building,
		Street:         input.Street,
		City:           input.City,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
	}
	if err := s.registrations.CreateBusiness(ctx, user, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	s.publishRegistered(ctx, user)
	return user, nil
}

// Login authenticates the user and issues a session pair. Unknown email
// and wrong password produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, *auth.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsEmailVerified {
		return nil, nil, ErrEmailNotVerified
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.tokens.IssueSessionTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// VerifyEmail consumes a verification token. The token is cleared on
// success, so a replay fails with ErrInvalidToken.
func (s *AccountService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidToken
		}
		return err
	}

	user.IsEmailVerified = true
	user.VerificationToken = nil
	return s.users.Update(ctx, user)
}

// InitiatePasswordReset issues a time-bound reset token and queues the
// reset email. It reports success whether or not the email exists, and a
// new request overwrites any earlier outstanding token.
func (s *AccountService) InitiatePasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("password reset for unknown email", zap.String("email", email))
			return nil
		}
		return err
	}

	token, err := auth.NewCapabilityToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(s.resetTTL)
	user.ResetToken = &token
	user.ResetTokenExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventPasswordResetRequested,
		UserID: user.ID,
		Payload: events.PasswordResetRequestedPayload{
			Email:      user.Email,
			ResetToken: token,
			ExpiresAt:  expires,
		},
	})
	return nil
}

// ResetPassword consumes a reset token while it is still inside its
// validity window and sets the new password. The store re-hashes it.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.GetByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidOrExpiredToken
		}
		return err
	}

	user.PasswordHash = newPassword
	user.ResetToken = nil
	user.ResetTokenExpires = nil
	return s.users.Update(ctx, user)
}

// Refresh rotates the session: the consumed refresh token is denylisted
// for the remainder of its validity and a fresh pair is issued.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, err
	}
	return s.tokens.IssueSessionTokens(user)
}

// Logout denylists the presented refresh token. Best-effort: an invalid
// or already revoked token is not an error to the caller.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.Warn("failed to revoke refresh token", zap.Error(err))
	}
}

// ResendVerificationEmail re-issues the verification token and queues a
// new email. Like password reset it reports success regardless of
// whether the email exists or is already verified.
func (s *AccountService) ResendVerificationEmail(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug("verification resend for unknown email", zap.String("email", email))
			return nil
		}
		return err
	}
	if user.IsEmailVerified {
		s.logger.Debug("verification resend for verified account", zap.String("user_id", user.ID))
		return nil
	}

	token, err := auth.NewCapabilityToken()
	if err != nil {
		return err
	}
	user.VerificationToken = &token
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventVerificationResent,
		UserID: user.ID,
		Payload: events.VerificationResentPayload{
			Email:             user.Email,
			VerificationToken: token,
		},
	})
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokens
}

func (s *AccountService) newUnverifiedUser(email, password string, role domain.Role) (*domain.User, error) {
	token, err := auth.NewCapabilityToken()
	if err != nil {
		return nil, err
	}
	return &domain.User{
		Email:             email,
		PasswordHash:      password,
		Role:              role,
		VerificationToken: &token,
	}, nil
}

func (s *AccountService) publishRegistered(ctx context.Context, user *domain.User) {
	token := ""
	if user.VerificationToken != nil {
		token = *user.VerificationToken
	}
	s.publish(ctx, events.Event{
		Type:   events.EventUserRegistered,
		UserID: user.ID,
		Payload: events.UserRegisteredPayload{
			Email:             user.Email,
			Role:              user.Role,
			VerificationToken: token,
		},
	})
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
