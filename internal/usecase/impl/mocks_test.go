package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxManager runs the callback against the shared mock factory. Rollback is
// not modelled; tests assert on which repository calls were made.
type stubTxManager struct {
	factory *mockFactory
	calls   int
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.calls++

	return fn(m.factory)
}

type mockFactory struct {
	principals   *mockPrincipalRepo
	addresses    *mockAddressRepo
	dogs         *mockDogRepo
	messages     *mockMessageRepo
	connections  *mockConnectionRepo
	appointments *mockAppointmentRepo
	reviews      *mockReviewRepo
}

func newMockFactory() *mockFactory {
	return &mockFactory{
		principals:   &mockPrincipalRepo{},
		addresses:    &mockAddressRepo{},
		dogs:         &mockDogRepo{},
		messages:     &mockMessageRepo{},
		connections:  &mockConnectionRepo{},
		appointments: &mockAppointmentRepo{},
		reviews:      &mockReviewRepo{},
	}
}

func (f *mockFactory) PrincipalRepo() repository.PrincipalRepository     { return f.principals }
func (f *mockFactory) AddressRepo() repository.AddressRepository         { return f.addresses }
func (f *mockFactory) DogRepo() repository.DogRepository                 { return f.dogs }
func (f *mockFactory) MessageRepo() repository.MessageRepository         { return f.messages }
func (f *mockFactory) ConnectionRepo() repository.ConnectionRepository   { return f.connections }
func (f *mockFactory) AppointmentRepo() repository.AppointmentRepository { return f.appointments }
func (f *mockFactory) ReviewRepo() repository.ReviewRepository           { return f.reviews }

func (f *mockFactory) assertExpectations(t mock.TestingT) {
	f.principals.AssertExpectations(t)
	f.addresses.AssertExpectations(t)
	f.dogs.AssertExpectations(t)
	f.messages.AssertExpectations(t)
	f.connections.AssertExpectations(t)
	f.appointments.AssertExpectations(t)
	f.reviews.AssertExpectations(t)
}

// --- repositories ---

type mockPrincipalRepo struct{ mock.Mock }

func (m *mockPrincipalRepo) FindByID(ctx context.Context, kind entity.Kind, id uuid.UUID) (*entity.Principal, error) {
	args := m.Called(ctx, kind, id)
	p, _ := args.Get(0).(*entity.Principal)

	return p, args.Error(1)
}

func (m *mockPrincipalRepo) FindByEmail(ctx context.Context, kind entity.Kind, email string) (*entity.Principal, error) {
	args := m.Called(ctx, kind, email)
	p, _ := args.Get(0).(*entity.Principal)

	return p, args.Error(1)
}

func (m *mockPrincipalRepo) Create(ctx context.Context, principal *entity.Principal) error {
	return m.Called(ctx, principal).Error(0)
}

func (m *mockPrincipalRepo) Update(ctx context.Context, principal *entity.Principal) error {
	return m.Called(ctx, principal).Error(0)
}

func (m *mockPrincipalRepo) SetAddress(ctx context.Context, kind entity.Kind, id, addressID uuid.UUID) error {
	return m.Called(ctx, kind, id, addressID).Error(0)
}

func (m *mockPrincipalRepo) SetWalkerRate(ctx context.Context, walkerID uuid.UUID, rate *float64) error {
	return m.Called(ctx, walkerID, rate).Error(0)
}

func (m *mockPrincipalRepo) SearchWalkers(ctx context.Context, query string) ([]*entity.Principal, error) {
	args := m.Called(ctx, query)
	p, _ := args.Get(0).([]*entity.Principal)

	return p, args.Error(1)
}

func (m *mockPrincipalRepo) FindManyByIDs(ctx context.Context, kind entity.Kind, ids []uuid.UUID) ([]*entity.Principal, error) {
	args := m.Called(ctx, kind, ids)
	p, _ := args.Get(0).([]*entity.Principal)

	return p, args.Error(1)
}

func (m *mockPrincipalRepo) Delete(ctx context.Context, kind entity.Kind, id uuid.UUID) error {
	return m.Called(ctx, kind, id).Error(0)
}

type mockAddressRepo struct{ mock.Mock }

func (m *mockAddressRepo) Create(ctx context.Context, address *entity.Address) error {
	return m.Called(ctx, address).Error(0)
}

func (m *mockAddressRepo) Update(ctx context.Context, address *entity.Address) error {
	return m.Called(ctx, address).Error(0)
}

type mockDogRepo struct{ mock.Mock }

func (m *mockDogRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*entity.Dog)

	return d, args.Error(1)
}

func (m *mockDogRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Dog, error) {
	args := m.Called(ctx, ownerID)
	d, _ := args.Get(0).([]*entity.Dog)

	return d, args.Error(1)
}

func (m *mockDogRepo) Create(ctx context.Context, dog *entity.Dog) error {
	return m.Called(ctx, dog).Error(0)
}

func (m *mockDogRepo) Update(ctx context.Context, dog *entity.Dog) error {
	return m.Called(ctx, dog).Error(0)
}

func (m *mockDogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	return m.Called(ctx, message).Error(0)
}

func (m *mockMessageRepo) ListThread(ctx context.Context, ownerID, walkerID uuid.UUID) ([]*entity.Message, error) {
	args := m.Called(ctx, ownerID, walkerID)
	msgs, _ := args.Get(0).([]*entity.Message)

	return msgs, args.Error(1)
}

type mockConnectionRepo struct{ mock.Mock }

func (m *mockConnectionRepo) Connect(ctx context.Context, ownerID, walkerID uuid.UUID) error {
	return m.Called(ctx, ownerID, walkerID).Error(0)
}

func (m *mockConnectionRepo) IsConnected(ctx context.Context, ownerID, walkerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, walkerID)

	return args.Bool(0), args.Error(1)
}

func (m *mockConnectionRepo) WalkerIDsOf(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ownerID)
	ids, _ := args.Get(0).([]uuid.UUID)

	return ids, args.Error(1)
}

func (m *mockConnectionRepo) OwnerIDsOf(ctx context.Context, walkerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, walkerID)
	ids, _ := args.Get(0).([]uuid.UUID)

	return ids, args.Error(1)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Appointment)

	return a, args.Error(1)
}

func (m *mockAppointmentRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*entity.Appointment)

	return a, args.Error(1)
}

func (m *mockAppointmentRepo) List(ctx context.Context, filter repository.AppointmentFilter) ([]*entity.Appointment, error) {
	args := m.Called(ctx, filter)
	a, _ := args.Get(0).([]*entity.Appointment)

	return a, args.Error(1)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

func (m *mockAppointmentRepo) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, appointmentID)
	r, _ := args.Get(0).(*entity.Review)

	return r, args.Error(1)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) RatesForWalker(ctx context.Context, walkerID uuid.UUID) ([]int, error) {
	args := m.Called(ctx, walkerID)
	r, _ := args.Get(0).([]int)

	return r, args.Error(1)
}

// --- domain services ---

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) Issue(principal *entity.AuthenticatedPrincipal) (*service.IssuedToken, error) {
	args := m.Called(principal)
	t, _ := args.Get(0).(*service.IssuedToken)

	return t, args.Error(1)
}

func (m *mockTokenService) Validate(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	c, _ := args.Get(0).(*service.Claims)

	return c, args.Error(1)
}

type mockRevoker struct{ mock.Mock }

func (m *mockRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

func (m *mockRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)

	return args.Bool(0), args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListBreeds(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]string)

	return b, args.Error(1)
}

func (m *mockCatalog) LookupTemperament(ctx context.Context, breed string) (string, bool, error) {
	args := m.Called(ctx, breed)

	return args.String(0), args.Bool(1), args.Error(2)
}
