package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/config"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:          "access-secret",
		RefreshSecret:         "refresh-secret",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLDays:   7,
		ResetTokenTTLMinutes:  60,
		BcryptCost:            bcrypt.MinCost,
	}
}

func newTestAccountService(users *mockUserRepo, registrations *mockRegistrationRepo, revoker auth.Revoker, dispatcher events.Dispatcher) *AccountService {
	cfg := testAuthConfig()
	return NewAccountService(cfg, AccountDependencies{
		UserRepo:         users,
		RegistrationRepo: registrations,
		TokenManager:     auth.NewTokenManager(cfg),
		Revoker:          revoker,
		Dispatcher:       dispatcher,
		Logger:           zap.NewNop(),
	})
}

func verifiedUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:              "11111111-1111-1111-1111-111111111111",
		Email:           "user@example.com",
		PasswordHash:    hash,
		Role:            domain.RoleCustomer,
		IsEmailVerified: true,
	}
}

func TestRegisterCustomerPublishesVerificationEvent(t *testing.T) {
	dispatcher := &captureDispatcher{}
	registrations := &mockRegistrationRepo{
		CreateCustomerFn: func(_ context.Context, user *domain.User, profile *domain.CustomerProfile) error {
			user.ID = "new-user"
			profile.UserID = user.ID
			return nil
		},
	}
	svc := newTestAccountService(&mockUserRepo{}, registrations, newMapRevoker(), dispatcher)

	user, err := svc.RegisterCustomer(context.Background(), RegisterCustomerInput{
		Email:       "new@example.com",
		Password:    "password123",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.False(t, user.IsEmailVerified)
	require.NotNil(t, user.VerificationToken)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventUserRegistered, published[0].Type)
	payload, ok := published[0].Payload.(events.UserRegisteredPayload)
	require.True(t, ok)
	assert.Equal(t, *user.VerificationToken, payload.VerificationToken)
}

func TestRegisterCustomerDuplicateEmail(t *testing.T) {
	dispatcher := &captureDispatcher{}
	registrations := &mockRegistrationRepo{
		CreateCustomerFn: func(context.Context, *domain.User, *domain.CustomerProfile) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := newTestAccountService(&mockUserRepo{}, registrations, newMapRevoker(), dispatcher)

	_, err := svc.RegisterCustomer(context.Background(), RegisterCustomerInput{
		Email:    "dup@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Empty(t, dispatcher.published(), "failed registration must not emit events")
}

func TestRegisterBusinessDuplicateEmail(t *testing.T) {
	registrations := &mockRegistrationRepo{
		CreateBusinessFn: func(context.Context, *domain.User, *domain.BusinessProfile) error {
			return repository.ErrDuplicateEmail
		},
	}
	svc := newTestAccountService(&mockUserRepo{}, registrations, newMapRevoker(), &captureDispatcher{})

	_, err := svc.RegisterBusiness(context.Background(), RegisterBusinessInput{
		Email:    "dup@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	stored := verifiedUser(t, "right-password")
	users := &mockUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, pgxNoRows()
		},
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), &captureDispatcher{})

	_, _, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever")
	_, _, wrongErr := svc.Login(context.Background(), stored.Email, "wrong-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr, "unknown email and bad password must be indistinguishable")
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	stored := verifiedUser(t, "right-password")
	stored.IsEmailVerified = false
	users := &mockUserRepo{
		GetByEmailFn: func(context.Context, string) (*domain.User, error) { return stored, nil },
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), &captureDispatcher{})

	_, _, err := svc.Login(context.Background(), stored.Email, "right-password")
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestLoginStampsLastLoginAndIssuesSession(t *testing.T) {
	stored := verifiedUser(t, "right-password")
	var updated *domain.User
	users := &mockUserRepo{
		GetByEmailFn: func(context.Context, string) (*domain.User, error) { return stored, nil },
		UpdateFn: func(_ context.Context, user *domain.User) error {
			updated = user
			return nil
		},
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), &captureDispatcher{})

	user, pair, err := svc.Login(context.Background(), stored.Email, "right-password")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, user.LastLoginAt)
	assert.WithinDuration(t, time.Now(), *user.LastLoginAt, time.Minute)

	claims, err := svc.TokenManager().ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
}

func TestVerifyEmailIsSingleUse(t *testing.T) {
	token := "verification-token"
	stored := verifiedUser(t, "pw")
	stored.IsEmailVerified = false
	stored.VerificationToken = &token

	users := &mockUserRepo{
		GetByVerificationTokenFn: func(_ context.Context, got string) (*domain.User, error) {
			if stored.VerificationToken != nil && got == *stored.VerificationToken {
				return stored, nil
			}
			return nil, pgxNoRows()
		},
		UpdateFn: func(context.Context, *domain.User) error { return nil },
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), &captureDispatcher{})

	require.NoError(t, svc.VerifyEmail(context.Background(), token))
	assert.True(t, stored.IsEmailVerified)
	assert.Nil(t, stored.VerificationToken)

	// replay with the consumed token
	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), token), ErrInvalidToken)
}

func TestInitiatePasswordResetUnknownEmailIsSilent(t *testing.T) {
	dispatcher := &captureDispatcher{}
	svc := newTestAccountService(&mockUserRepo{}, &mockRegistrationRepo{}, newMapRevoker(), dispatcher)

	require.NoError(t, svc.InitiatePasswordReset(context.Background(), "ghost@example.com"))
	assert.Empty(t, dispatcher.published())
}

func TestInitiatePasswordResetOverwritesOutstandingToken(t *testing.T) {
	stored := verifiedUser(t, "pw")
	dispatcher := &captureDispatcher{}
	users := &mockUserRepo{
		GetByEmailFn: func(context.Context, string) (*domain.User, error) { return stored, nil },
		UpdateFn:     func(context.Context, *domain.User) error { return nil },
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), dispatcher)

	require.NoError(t, svc.InitiatePasswordReset(context.Background(), stored.Email))
	require.NotNil(t, stored.ResetToken)
	first := *stored.ResetToken
	require.NotNil(t, stored.ResetTokenExpires)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetTokenExpires, time.Minute)

	require.NoError(t, svc.InitiatePasswordReset(context.Background(), stored.Email))
	assert.NotEqual(t, first, *stored.ResetToken, "a new request must invalidate the prior token")
	assert.Len(t, dispatcher.published(), 2)
}

func TestResetPasswordRejectsExpiredOrUnknownToken(t *testing.T) {
	svc := newTestAccountService(&mockUserRepo{}, &mockRegistrationRepo{}, newMapRevoker(), &captureDispatcher{})

	err := svc.ResetPassword(context.Background(), "stale-token", "new-password")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResetPasswordClearsTokenPair(t *testing.T) {
	token := "reset-token"
	expires := time.Now().Add(time.Hour)
	stored := verifiedUser(t, "old-password")
	stored.ResetToken = &token
	stored.ResetTokenExpires = &expires

	users := &mockUserRepo{
		GetByResetTokenFn: func(_ context.Context, got string, _ time.Time) (*domain.User, error) {
			if got == token {
				return stored, nil
			}
			return nil, pgxNoRows()
		},
		UpdateFn: func(context.Context, *domain.User) error { return nil },
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), &captureDispatcher{})

	require.NoError(t, svc.ResetPassword(context.Background(), token, "new-password"))
	assert.Equal(t, "new-password", stored.PasswordHash, "store performs the re-hash")
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpires)
}

func TestRefreshRotatesAndRevokesConsumedToken(t *testing.T) {
	stored := verifiedUser(t, "pw")
	users := &mockUserRepo{
		GetByIDFn: func(context.Context, string) (*domain.User, error) { return stored, nil },
	}
	revoker := newMapRevoker()
	svc := newTestAccountService(users, &mockRegistrationRepo{}, revoker, &captureDispatcher{})

	pair, err := svc.TokenManager().IssueSessionTokens(stored)
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, 1, revoker.count())

	// the consumed token must not work a second time
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// the rotated token still works
	_, err = svc.Refresh(context.Background(), rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessTokenAndMissingUser(t *testing.T) {
	stored := verifiedUser(t, "pw")
	svc := newTestAccountService(&mockUserRepo{}, &mockRegistrationRepo{}, newMapRevoker(), &captureDispatcher{})

	pair, err := svc.TokenManager().IssueSessionTokens(stored)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// valid refresh token but the user row is gone
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	stored := verifiedUser(t, "pw")
	revoker := newMapRevoker()
	svc := newTestAccountService(&mockUserRepo{}, &mockRegistrationRepo{}, revoker, &captureDispatcher{})

	pair, err := svc.TokenManager().IssueSessionTokens(stored)
	require.NoError(t, err)

	svc.Logout(context.Background(), pair.RefreshToken)
	assert.Equal(t, 1, revoker.count())

	// garbage input is swallowed
	svc.Logout(context.Background(), "not-a-token")
	svc.Logout(context.Background(), "")
	assert.Equal(t, 1, revoker.count())
}

func TestResendVerificationSwallowsUnknownAndVerified(t *testing.T) {
	verified := verifiedUser(t, "pw")
	dispatcher := &captureDispatcher{}
	users := &mockUserRepo{
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == verified.Email {
				return verified, nil
			}
			return nil, pgxNoRows()
		},
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), dispatcher)

	require.NoError(t, svc.ResendVerificationEmail(context.Background(), "ghost@example.com"))
	require.NoError(t, svc.ResendVerificationEmail(context.Background(), verified.Email))
	assert.Empty(t, dispatcher.published())
}

func TestResendVerificationReissuesToken(t *testing.T) {
	old := "old-token"
	stored := verifiedUser(t, "pw")
	stored.IsEmailVerified = false
	stored.VerificationToken = &old

	dispatcher := &captureDispatcher{}
	users := &mockUserRepo{
		GetByEmailFn: func(context.Context, string) (*domain.User, error) { return stored, nil },
		UpdateFn:     func(context.Context, *domain.User) error { return nil },
	}
	svc := newTestAccountService(users, &mockRegistrationRepo{}, newMapRevoker(), dispatcher)

	require.NoError(t, svc.ResendVerificationEmail(context.Background(), stored.Email))
	require.NotNil(t, stored.VerificationToken)
	assert.NotEqual(t, old, *stored.VerificationToken)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventVerificationResent, published[0].Type)
}
