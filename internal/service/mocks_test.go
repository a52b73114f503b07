package service

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
)

type mockUserRepo struct {
	CreateFn                 func(ctx context.Context, user *domain.User) error
	UpdateFn                 func(ctx context.Context, user *domain.User) error
	GetByIDFn                func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn             func(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationTokenFn func(ctx context.Context, token string) (*domain.User, error)
	GetByResetTokenFn        func(ctx context.Context, token string, now time.Time) (*domain.User, error)
	ListFn                   func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByEmailFn(ctx, email)
}

func (m *mockUserRepo) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	if m.GetByVerificationTokenFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByVerificationTokenFn(ctx, token)
}

func (m *mockUserRepo) GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	if m.GetByResetTokenFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByResetTokenFn(ctx, token, now)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx)
}

type mockRegistrationRepo struct {
	CreateCustomerFn func(ctx context.Context, user *domain.User, profile *domain.CustomerProfile) error
	CreateBusinessFn func(ctx context.Context, user *domain.User, profile *domain.BusinessProfile) error
}

func (m *mockRegistrationRepo) CreateCustomer(ctx context.Context, user *domain.User, profile *domain.CustomerProfile) error {
	if m.CreateCustomerFn == nil {
		return nil
	}
	return m.CreateCustomerFn(ctx, user, profile)
}

func (m *mockRegistrationRepo) CreateBusiness(ctx context.Context, user *domain.User, profile *domain.BusinessProfile) error {
	if m.CreateBusinessFn == nil {
		return nil
	}
	return m.CreateBusinessFn(ctx, user, profile)
}

type mockCustomerRepo struct {
	CreateProfileFn         func(ctx context.Context, profile *domain.CustomerProfile) error
	UpdateProfileFn         func(ctx context.Context, profile *domain.CustomerProfile) error
	GetProfileByUserIDFn    func(ctx context.Context, userID string) (*domain.CustomerProfile, error)
	CreateAddressFn         func(ctx context.Context, address *domain.CustomerAddress) error
	UpdateAddressFn         func(ctx context.Context, address *domain.CustomerAddress) error
	DeleteAddressFn         func(ctx context.Context, id, customerID string) error
	GetAddressFn            func(ctx context.Context, id, customerID string) (*domain.CustomerAddress, error)
	ListAddressesFn         func(ctx context.Context, customerID string) ([]domain.CustomerAddress, error)
	ClearDefaultAddressesFn func(ctx context.Context, customerID, exceptID string) error
}

func (m *mockCustomerRepo) CreateProfile(ctx context.Context, profile *domain.CustomerProfile) error {
	if m.CreateProfileFn == nil {
		return nil
	}
	return m.CreateProfileFn(ctx, profile)
}

func (m *mockCustomerRepo) UpdateProfile(ctx context.Context, profile *domain.CustomerProfile) error {
	if m.UpdateProfileFn == nil {
		return nil
	}
	return m.UpdateProfileFn(ctx, profile)
}

func (m *mockCustomerRepo) GetProfileByUserID(ctx context.Context, userID string) (*domain.CustomerProfile, error) {
	if m.GetProfileByUserIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetProfileByUserIDFn(ctx, userID)
}

func (m *mockCustomerRepo) CreateAddress(ctx context.Context, address *domain.CustomerAddress) error {
	if m.CreateAddressFn == nil {
		return nil
	}
	return m.CreateAddressFn(ctx, address)
}

func (m *mockCustomerRepo) UpdateAddress(ctx context.Context, address *domain.CustomerAddress) error {
	if m.UpdateAddressFn == nil {
		return nil
	}
	return m.UpdateAddressFn(ctx, address)
}

func (m *mockCustomerRepo) DeleteAddress(ctx context.Context, id, customerID string) error {
	if m.DeleteAddressFn == nil {
		return nil
	}
	return m.DeleteAddressFn(ctx, id, customerID)
}

func (m *mockCustomerRepo) GetAddress(ctx context.Context, id, customerID string) (*domain.CustomerAddress, error) {
	if m.GetAddressFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetAddressFn(ctx, id, customerID)
}

func (m *mockCustomerRepo) ListAddresses(ctx context.Context, customerID string) ([]domain.CustomerAddress, error) {
	if m.ListAddressesFn == nil {
		return nil, nil
	}
	return m.ListAddressesFn(ctx, customerID)
}

func (m *mockCustomerRepo) ClearDefaultAddresses(ctx context.Context, customerID, exceptID string) error {
	if m.ClearDefaultAddressesFn == nil {
		return nil
	}
	return m.ClearDefaultAddressesFn(ctx, customerID, exceptID)
}

type mockBusinessRepo struct {
	CreateProfileFn      func(ctx context.Context, profile *domain.BusinessProfile) error
	UpdateProfileFn      func(ctx context.Context, profile *domain.BusinessProfile) error
	GetProfileByUserIDFn func(ctx context.Context, userID string) (*domain.BusinessProfile, error)
	CreatePhotoFn        func(ctx context.Context, photo *domain.BusinessPhoto) error
	DeletePhotoFn        func(ctx context.Context, id, businessID string) error
	ListPhotosFn         func(ctx context.Context, businessID string) ([]domain.BusinessPhoto, error)
	CreateServiceLinkFn  func(ctx context.Context, link *domain.BusinessServiceLink) error
	DeleteServiceLinkFn  func(ctx context.Context, id, businessID string) error
	ListServiceLinksFn   func(ctx context.Context, businessID string) ([]domain.BusinessServiceLink, error)
}

func (m *mockBusinessRepo) CreateProfile(ctx context.Context, profile *domain.BusinessProfile) error {
	if m.CreateProfileFn == nil {
		return nil
	}
	return m.CreateProfileFn(ctx, profile)
}

func (m *mockBusinessRepo) UpdateProfile(ctx context.Context, profile *domain.BusinessProfile) error {
	if m.UpdateProfileFn == nil {
		return nil
	}
	return m.UpdateProfileFn(ctx, profile)
}

func (m *mockBusinessRepo) GetProfileByUserID(ctx context.Context, userID string) (*domain.BusinessProfile, error) {
	if m.GetProfileByUserIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetProfileByUserIDFn(ctx, userID)
}

func (m *mockBusinessRepo) CreatePhoto(ctx context.Context, photo *domain.BusinessPhoto) error {
	if m.CreatePhotoFn == nil {
		return nil
	}
	return m.CreatePhotoFn(ctx, photo)
}

func (m *mockBusinessRepo) DeletePhoto(ctx context.Context, id, businessID string) error {
	if m.DeletePhotoFn == nil {
		return nil
	}
	return m.DeletePhotoFn(ctx, id, businessID)
}

func (m *mockBusinessRepo) ListPhotos(ctx context.Context, businessID string) ([]domain.BusinessPhoto, error) {
	if m.ListPhotosFn == nil {
		return nil, nil
	}
	return m.ListPhotosFn(ctx, businessID)
}

func (m *mockBusinessRepo) CreateServiceLink(ctx context.Context, link *domain.BusinessServiceLink) error {
	if m.CreateServiceLinkFn == nil {
		return nil
	}
	return m.CreateServiceLinkFn(ctx, link)
}

func (m *mockBusinessRepo) DeleteServiceLink(ctx context.Context, id, businessID string) error {
	if m.DeleteServiceLinkFn == nil {
		return nil
	}
	return m.DeleteServiceLinkFn(ctx, id, businessID)
}

func (m *mockBusinessRepo) ListServiceLinks(ctx context.Context, businessID string) ([]domain.BusinessServiceLink, error) {
	if m.ListServiceLinksFn == nil {
		return nil, nil
	}
	return m.ListServiceLinksFn(ctx, businessID)
}

type mockServiceTypeRepo struct {
	CreateFn  func(ctx context.Context, serviceType *domain.ServiceType) error
	UpdateFn  func(ctx context.Context, serviceType *domain.ServiceType) error
	DeleteFn  func(ctx context.Context, id string) error
	GetByIDFn func(ctx context.Context, id string) (*domain.ServiceType, error)
	ListFn    func(ctx context.Context) ([]domain.ServiceType, error)
}

func (m *mockServiceTypeRepo) Create(ctx context.Context, serviceType *domain.ServiceType) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, serviceType)
}

func (m *mockServiceTypeRepo) Update(ctx context.Context, serviceType *domain.ServiceType) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, serviceType)
}

func (m *mockServiceTypeRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *mockServiceTypeRepo) GetByID(ctx context.Context, id string) (*domain.ServiceType, error) {
	if m.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.GetByIDFn(ctx, id)
}

func (m *mockServiceTypeRepo) List(ctx context.Context) ([]domain.ServiceType, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx)
}

func pgxNoRows() error { return pgx.ErrNoRows }

// mapRevoker is an in-memory denylist standing in for the Redis one.
type mapRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func newMapRevoker() *mapRevoker {
	return &mapRevoker{revoked: make(map[string]time.Time)}
}

func (r *mapRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = until
	return nil
}

func (r *mapRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok, nil
}

func (r *mapRevoker) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}

// captureDispatcher records published events.
type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
