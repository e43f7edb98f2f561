package http

import (
	"context"

	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/service"
	"doggywalk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockIdentityUC struct{ mock.Mock }

func (m *mockIdentityUC) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SessionOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.SessionOutput)

	return out, args.Error(1)
}

func (m *mockIdentityUC) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.SessionOutput)

	return out, args.Error(1)
}

func (m *mockIdentityUC) Logout(ctx context.Context, claims *service.Claims) error {
	return m.Called(ctx, claims).Error(0)
}

func (m *mockIdentityUC) Authenticate(ctx context.Context, token string) (*entity.AuthenticatedPrincipal, *service.Claims, error) {
	args := m.Called(ctx, token)
	p, _ := args.Get(0).(*entity.AuthenticatedPrincipal)
	c, _ := args.Get(1).(*service.Claims)

	return p, c, args.Error(2)
}

func (m *mockIdentityUC) GetProfile(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) (*entity.Principal, error) {
	args := m.Called(ctx, actor, kind, id)
	p, _ := args.Get(0).(*entity.Principal)

	return p, args.Error(1)
}

func (m *mockIdentityUC) EditProfile(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, input *usecase.EditProfileInput) (*entity.Principal, error) {
	args := m.Called(ctx, actor, kind, id, input)
	p, _ := args.Get(0).(*entity.Principal)

	return p, args.Error(1)
}

func (m *mockIdentityUC) UpdateAddress(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, input *usecase.AddressInput) (*entity.Address, error) {
	args := m.Called(ctx, actor, kind, id, input)
	a, _ := args.Get(0).(*entity.Address)

	return a, args.Error(1)
}

func (m *mockIdentityUC) DeletePrincipal(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) error {
	return m.Called(ctx, actor, kind, id).Error(0)
}

func (m *mockIdentityUC) SearchWalkers(ctx context.Context, query string) ([]*entity.Principal, error) {
	args := m.Called(ctx, query)
	p, _ := args.Get(0).([]*entity.Principal)

	return p, args.Error(1)
}

type mockRelationshipUC struct{ mock.Mock }

func (m *mockRelationshipUC) IsConnected(ctx context.Context, ownerID, walkerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID, walkerID)

	return args.Bool(0), args.Error(1)
}

func (m *mockRelationshipUC) ConnectedWalkersOf(ctx context.Context, ownerID uuid.UUID) ([]*entity.Principal, error) {
	args := m.Called(ctx, ownerID)
	p, _ := args.Get(0).([]*entity.Principal)

	return p, args.Error(1)
}

func (m *mockRelationshipUC) ConnectedOwnersOf(ctx context.Context, walkerID uuid.UUID) ([]*entity.Principal, error) {
	args := m.Called(ctx, walkerID)
	p, _ := args.Get(0).([]*entity.Principal)

	return p, args.Error(1)
}

func (m *mockRelationshipUC) Inbox(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID) ([]*entity.Principal, error) {
	args := m.Called(ctx, actor, kind, id)
	p, _ := args.Get(0).([]*entity.Principal)

	return p, args.Error(1)
}

func (m *mockRelationshipUC) SendMessage(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID, walkerID uuid.UUID, text string) (*entity.Message, error) {
	args := m.Called(ctx, actor, ownerID, walkerID, text)
	msg, _ := args.Get(0).(*entity.Message)

	return msg, args.Error(1)
}

func (m *mockRelationshipUC) Thread(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID, walkerID uuid.UUID) (*usecase.ThreadOutput, error) {
	args := m.Called(ctx, actor, ownerID, walkerID)
	out, _ := args.Get(0).(*usecase.ThreadOutput)

	return out, args.Error(1)
}

type mockDogUC struct{ mock.Mock }

func (m *mockDogUC) ListDogs(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID uuid.UUID) ([]*entity.Dog, error) {
	args := m.Called(ctx, actor, ownerID)
	d, _ := args.Get(0).([]*entity.Dog)

	return d, args.Error(1)
}

func (m *mockDogUC) AddDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, ownerID uuid.UUID, input *usecase.DogInput) (*entity.Dog, error) {
	args := m.Called(ctx, actor, ownerID, input)
	d, _ := args.Get(0).(*entity.Dog)

	return d, args.Error(1)
}

func (m *mockDogUC) GetDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID) (*entity.Dog, error) {
	args := m.Called(ctx, actor, dogID)
	d, _ := args.Get(0).(*entity.Dog)

	return d, args.Error(1)
}

func (m *mockDogUC) EditDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID, input *usecase.DogInput) (*entity.Dog, error) {
	args := m.Called(ctx, actor, dogID, input)
	d, _ := args.Get(0).(*entity.Dog)

	return d, args.Error(1)
}

func (m *mockDogUC) DeleteDog(ctx context.Context, actor *entity.AuthenticatedPrincipal, dogID uuid.UUID) error {
	return m.Called(ctx, actor, dogID).Error(0)
}

func (m *mockDogUC) Breeds(ctx context.Context) []string {
	breeds, _ := m.Called(ctx).Get(0).([]string)

	return breeds
}

type mockBookingUC struct{ mock.Mock }

func (m *mockBookingUC) CreateAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, input *usecase.CreateAppointmentInput) (*entity.Appointment, error) {
	args := m.Called(ctx, actor, input)
	a, _ := args.Get(0).(*entity.Appointment)

	return a, args.Error(1)
}

func (m *mockBookingUC) CompleteAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, actor, id)
	a, _ := args.Get(0).(*entity.Appointment)

	return a, args.Error(1)
}

func (m *mockBookingUC) DeleteAppointment(ctx context.Context, actor *entity.AuthenticatedPrincipal, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *mockBookingUC) ListAppointments(ctx context.Context, actor *entity.AuthenticatedPrincipal, kind entity.Kind, id uuid.UUID, status entity.AppointmentStatus) ([]*entity.Appointment, error) {
	args := m.Called(ctx, actor, kind, id, status)
	a, _ := args.Get(0).([]*entity.Appointment)

	return a, args.Error(1)
}

func (m *mockBookingUC) CreateReview(ctx context.Context, actor *entity.AuthenticatedPrincipal, appointmentID uuid.UUID, rate int, comment string) (*usecase.ReviewOutput, error) {
	args := m.Called(ctx, actor, appointmentID, rate, comment)
	out, _ := args.Get(0).(*usecase.ReviewOutput)

	return out, args.Error(1)
}

func (m *mockBookingUC) GetReview(ctx context.Context, actor *entity.AuthenticatedPrincipal, appointmentID uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, actor, appointmentID)
	r, _ := args.Get(0).(*entity.Review)

	return r, args.Error(1)
}

func (m *mockBookingUC) RecomputeWalkerRate(ctx context.Context, walkerID uuid.UUID) (*float64, error) {
	args := m.Called(ctx, walkerID)
	r, _ := args.Get(0).(*float64)

	return r, args.Error(1)
}

type mockQRCode struct{ mock.Mock }

func (m *mockQRCode) GenerateWalkerQR(walkerID uuid.UUID) ([]byte, error) {
	args := m.Called(walkerID)
	b, _ := args.Get(0).([]byte)

	return b, args.Error(1)
}

func (m *mockQRCode) ParseWalkerQR(qrData string) (uuid.UUID, error) {
	args := m.Called(qrData)
	id, _ := args.Get(0).(uuid.UUID)

	return id, args.Error(1)
}
