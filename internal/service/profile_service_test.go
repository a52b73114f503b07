package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

func customerProfileFixture() *domain.CustomerProfile {
	return &domain.CustomerProfile{
		ID:          "profile-1",
		UserID:      "user-1",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		PhoneNumber: "123456",
	}
}

func TestGetAccountToleratesMissingProfile(t *testing.T) {
	svc := NewProfileService(&mockCustomerRepo{}, &mockBusinessRepo{})
	user := &domain.User{ID: "user-1", Role: domain.RoleCustomer}

	account, err := svc.GetAccount(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user, account.User)
	assert.Nil(t, account.CustomerProfile)
	assert.Nil(t, account.BusinessProfile)
}

func TestGetAccountAttachesProfileByRole(t *testing.T) {
	profile := customerProfileFixture()
	customers := &mockCustomerRepo{
		GetProfileByUserIDFn: func(_ context.Context, userID string) (*domain.CustomerProfile, error) {
			if userID == profile.UserID {
				return profile, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	svc := NewProfileService(customers, &mockBusinessRepo{})

	account, err := svc.GetAccount(context.Background(), &domain.User{ID: "user-1", Role: domain.RoleCustomer})
	require.NoError(t, err)
	assert.Equal(t, profile, account.CustomerProfile)
}

func TestUpdateCustomerProfilePartial(t *testing.T) {
	profile := customerProfileFixture()
	var saved *domain.CustomerProfile
	customers := &mockCustomerRepo{
		GetProfileByUserIDFn: func(context.Context, string) (*domain.CustomerProfile, error) { return profile, nil },
		UpdateProfileFn: func(_ context.Context, p *domain.CustomerProfile) error {
			saved = p
			return nil
		},
	}
	svc := NewProfileService(customers, &mockBusinessRepo{})

	newFirst := "Grace"
	updated, err := svc.UpdateCustomerProfile(context.Background(), "user-1", UpdateCustomerProfileInput{
		FirstName: &newFirst,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName, "untouched fields survive")
	assert.Equal(t, "123456", updated.PhoneNumber)
}

func TestUpdateCustomerProfileWithoutProfile(t *testing.T) {
	svc := NewProfileService(&mockCustomerRepo{}, &mockBusinessRepo{})

	_, err := svc.UpdateCustomerProfile(context.Background(), "user-1", UpdateCustomerProfileInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddDefaultAddressDemotesOthers(t *testing.T) {
	profile := customerProfileFixture()
	var clearedFor, exceptID string
	customers := &mockCustomerRepo{
		GetProfileByUserIDFn: func(context.Context, string) (*domain.CustomerProfile, error) { return profile, nil },
		ClearDefaultAddressesFn: func(_ context.Context, customerID, except string) error {
			clearedFor, exceptID = customerID, except
			return nil
		},
		CreateAddressFn: func(_ context.Context, address *domain.CustomerAddress) error {
			address.ID = "addr-1"
			return nil
		},
	}
	svc := NewProfileService(customers, &mockBusinessRepo{})

	address, err := svc.AddAddress(context.Background(), "user-1", AddressInput{
		House:     "12",
		Street:    "Main St",
		City:      "Springfield",
		IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, address.IsDefault)
	assert.Equal(t, profile.ID, clearedFor)
	assert.Empty(t, exceptID)
}

func TestAddNonDefaultAddressLeavesOthersAlone(t *testing.T) {
	profile := customerProfileFixture()
	cleared := false
	customers := &mockCustomerRepo{
		GetProfileByUserIDFn: func(context.Context, string) (*domain.CustomerProfile, error) { return profile, nil },
		ClearDefaultAddressesFn: func(context.Context, string, string) error {
			cleared = true
			return nil
		},
	}
	svc := NewProfileService(customers, &mockBusinessRepo{})

	_, err := svc.AddAddress(context.Background(), "user-1", AddressInput{
		House:  "12",
		Street: "Main St",
		City:   "Springfield",
	})
	require.NoError(t, err)
	assert.False(t, cleared)
}

func TestUpdateAddressPromotionFlipsDefault(t *testing.T) {
	profile := customerProfileFixture()
	address := &domain.CustomerAddress{
		ID:         "addr-2",
		CustomerID: profile.ID,
		House:      "34",
		Street:     "Side St",
		City:       "Springfield",
	}
	var exceptID string
	customers := &mockCustomerRepo{
		GetProfileByUserIDFn: func(context.Context, string) (*domain.CustomerProfile, error) { return profile, nil },
		GetAddressFn: func(_ context.Context, id, customerID string) (*domain.CustomerAddress, error) {
			if id == address.ID && customerID == profile.ID {
				return address, nil
			}
			return nil, pgx.ErrNoRows
		},
		ClearDefaultAddressesFn: func(_ context.Context, _, except string) error {
			exceptID = except
			return nil
		},
	}
	svc := NewProfileService(customers, &mockBusinessRepo{})

	makeDefault := true
	updated, err := svc.UpdateAddress(context.Background(), "user-1", "addr-2", UpdateAddressInput{
		IsDefault: &makeDefault,
	})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)
	assert.Equal(t, "addr-2", exceptID, "the promoted address keeps its flag")
}

func TestUpdateAddressUnknownID(t *testing.T) {
	profile := customerProfileFixture()
	customers := &mockCustomerRepo{
		GetProfileByUserIDFn: func(context.Context, string) (*domain.CustomerProfile, error) { return profile, nil },
	}
	svc := NewProfileService(customers, &mockBusinessRepo{})

	_, err := svc.UpdateAddress(context.Background(), "user-1", "missing", UpdateAddressInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAddressUnknownID(t *testing.T) {
	profile := customerProfileFixture()
	customers := &mockCustomerRepo{
		GetProfileByUserIDFn: func(context.Context, string) (*domain.CustomerProfile, error) { return profile, nil },
		DeleteAddressFn: func(context.Context, string, string) error {
			return pgx.ErrNoRows
		},
	}
	svc := NewProfileService(customers, &mockBusinessRepo{})

	assert.ErrorIs(t, svc.DeleteAddress(context.Background(), "user-1", "missing"), ErrNotFound)
}
