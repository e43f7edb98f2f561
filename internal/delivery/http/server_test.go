package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"doggywalk/config"
	"doggywalk/internal/delivery/http/middleware"
	"doggywalk/internal/delivery/http/router"
	"doggywalk/internal/delivery/http/router/handler"
	"doggywalk/internal/domain/entity"
	domainerrors "doggywalk/internal/domain/errors"
	"doggywalk/internal/domain/service"
	"doggywalk/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type serverFixtures struct {
	echo     *echo.Echo
	identity *mockIdentityUC
	relation *mockRelationshipUC
	dogs     *mockDogUC
	booking  *mockBookingUC
	qrCode   *mockQRCode
}

func createTestServer(t *testing.T) serverFixtures {
	fx := serverFixtures{
		identity: &mockIdentityUC{},
		relation: &mockRelationshipUC{},
		dogs:     &mockDogUC{},
		booking:  &mockBookingUC{},
		qrCode:   &mockQRCode{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fx.echo = NewEcho(&config.Config{}, logger, router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{IdentityUC: fx.identity, Logger: logger}),
		PrincipalHandler: handler.NewPrincipalHandler(handler.PrincipalHandlerParams{
			IdentityUC:     fx.identity,
			RelationshipUC: fx.relation,
			BookingUC:      fx.booking,
			QRCode:         fx.qrCode,
			Logger:         logger,
		}),
		DogHandler:         handler.NewDogHandler(handler.DogHandlerParams{DogUC: fx.dogs, Logger: logger}),
		MessageHandler:     handler.NewMessageHandler(handler.MessageHandlerParams{RelationshipUC: fx.relation, Logger: logger}),
		AppointmentHandler: handler.NewAppointmentHandler(handler.AppointmentHandlerParams{BookingUC: fx.booking, Logger: logger}),
		AuthMiddleware:     middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{IdentityUC: fx.identity}),
	})

	t.Cleanup(func() {
		fx.identity.AssertExpectations(t)
		fx.relation.AssertExpectations(t)
		fx.dogs.AssertExpectations(t)
		fx.booking.AssertExpectations(t)
		fx.qrCode.AssertExpectations(t)
	})

	return fx
}

// session registers a valid token for principal and returns it.
func (fx serverFixtures) session(principal *entity.AuthenticatedPrincipal) (string, *service.Claims) {
	token := "token-" + principal.ID.String()
	claims := &service.Claims{
		Kind: principal.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principal.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	fx.identity.On("Authenticate", mock.Anything, token).Return(principal, claims, nil)

	return token, claims
}

func (fx serverFixtures) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func TestServer_Health(t *testing.T) {
	fx := createTestServer(t)

	rec := fx.do(http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	assert.Equal(t, rec.Header().Get("X-Request-Id"), env.Meta.RequestID)
}

func TestServer_Signup(t *testing.T) {
	fx := createTestServer(t)

	walker := entity.NewPrincipal(entity.KindWalker, "Beth", "Walker", "beth@email.com")
	walker.PasswordHash = "secret-hash"
	fx.identity.On("Signup", mock.Anything, &usecase.SignupInput{
		Kind: entity.KindWalker, FirstName: "Beth", LastName: "Walker", Email: "beth@email.com", Password: "secret1",
	}).Return(&usecase.SessionOutput{
		Principal: walker,
		Token:     &service.IssuedToken{Token: "signed", ID: "jti", ExpiresAt: time.Now().Add(time.Hour)},
	}, nil)

	rec := fx.do(http.MethodPost, "/auth/signup",
		`{"kind":"walker","first_name":"Beth","last_name":"Walker","email":"beth@email.com","password":"secret1"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")

	var session struct {
		Token     string `json:"token"`
		Principal struct {
			ID     uuid.UUID `json:"id"`
			Walker *struct {
				Rate *float64 `json:"rate"`
			} `json:"walker"`
		} `json:"principal"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &session))
	assert.Equal(t, "signed", session.Token)
	assert.Equal(t, walker.ID, session.Principal.ID)
	require.NotNil(t, session.Principal.Walker)
	assert.Nil(t, session.Principal.Walker.Rate)
}

func TestServer_ValidationErrorsCarryFieldDetails(t *testing.T) {
	fx := createTestServer(t)

	rec := fx.do(http.MethodPost, "/auth/signup", `{"kind":"cat","first_name":"Beth","last_name":"W","email":"nope","password":"x"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, map[string]any{"kind": "oneof=owner walker", "email": "email"}, env.Error.Details)
}

func TestServer_AuthenticationRequired(t *testing.T) {
	fx := createTestServer(t)

	rec := fx.do(http.MethodGet, "/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", decode(t, rec).Error.Code)

	fx.identity.On("Authenticate", mock.Anything, "revoked").Return(nil, nil, domainerrors.ErrTokenInvalid.WrapMessage("token revoked"))

	rec = fx.do(http.MethodGet, "/me", "", "revoked")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", decode(t, rec).Error.Code)
}

func TestServer_AccessDeniedHasNoDetails(t *testing.T) {
	fx := createTestServer(t)

	walker := &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindWalker}
	ownerID := uuid.New()
	token, _ := fx.session(walker)

	fx.identity.On("GetProfile", mock.Anything, walker, entity.KindOwner, ownerID).
		Return(nil, domainerrors.ErrAccessDenied.WithDetails("owner:view denied"))

	rec := fx.do(http.MethodGet, "/owners/"+ownerID.String(), "", token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "ACCESS_DENIED", env.Error.Code)
	assert.Nil(t, env.Error.Details)
}

func TestServer_InvalidPathID(t *testing.T) {
	fx := createTestServer(t)

	owner := &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindOwner}
	token, _ := fx.session(owner)

	rec := fx.do(http.MethodGet, "/dogs/not-a-uuid", "", token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, rec).Error.Code)
}

func TestServer_Breeds(t *testing.T) {
	fx := createTestServer(t)

	fx.dogs.On("Breeds", mock.Anything).Return([]string{"Other"})

	rec := fx.do(http.MethodGet, "/breeds", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["Other"]`, string(decode(t, rec).Data))
}

func TestServer_CreateAppointment(t *testing.T) {
	fx := createTestServer(t)

	walker := &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindWalker}
	ownerID := uuid.New()
	token, _ := fx.session(walker)

	fx.booking.On("CreateAppointment", mock.Anything, walker, &usecase.CreateAppointmentInput{
		OwnerID: ownerID, Date: "02-19-2021", StartTime: "9:30", Period: "AM", DurationMinutes: 30,
	}).Return(&entity.Appointment{
		ID: uuid.New(), OwnerID: ownerID, WalkerID: walker.ID,
		Date: time.Date(2021, 2, 19, 0, 0, 0, 0, time.UTC), StartTime: "09:30", Period: entity.PeriodAM, DurationMinutes: 30,
	}, nil)

	rec := fx.do(http.MethodPost, "/appointments",
		`{"owner_id":"`+ownerID.String()+`","date":"02-19-2021","start_time":"9:30","period":"AM","duration_minutes":30}`, token)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var appointment struct {
		Date   string `json:"date"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &appointment))
	assert.Equal(t, "2021-02-19", appointment.Date)
	assert.Equal(t, "pending", appointment.Status)
}

func TestServer_ReviewConflict(t *testing.T) {
	fx := createTestServer(t)

	owner := &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindOwner}
	appointmentID := uuid.New()
	token, _ := fx.session(owner)

	fx.booking.On("CreateReview", mock.Anything, owner, appointmentID, 5, "great").
		Return(nil, domainerrors.ErrReviewConflict.WrapMessage("appointment already reviewed"))

	rec := fx.do(http.MethodPost, "/appointments/"+appointmentID.String()+"/review", `{"rate":5,"comment":"great"}`, token)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "REVIEW_CONFLICT", decode(t, rec).Error.Code)
}

func TestServer_DeleteAccountRevokesSession(t *testing.T) {
	fx := createTestServer(t)

	owner := &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindOwner}
	token, claims := fx.session(owner)

	fx.identity.On("DeletePrincipal", mock.Anything, owner, entity.KindOwner, owner.ID).Return(nil)
	fx.identity.On("Logout", mock.Anything, claims).Return(nil)

	rec := fx.do(http.MethodDelete, "/owners/"+owner.ID.String(), "", token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestServer_WalkerQRCode(t *testing.T) {
	fx := createTestServer(t)

	owner := &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindOwner}
	walker := entity.NewPrincipal(entity.KindWalker, "Beth", "Walker", "beth@email.com")
	token, _ := fx.session(owner)

	fx.identity.On("GetProfile", mock.Anything, owner, entity.KindWalker, walker.ID).Return(walker, nil)
	fx.qrCode.On("GenerateWalkerQR", walker.ID).Return([]byte("\x89PNG"), nil)

	rec := fx.do(http.MethodGet, "/walkers/"+walker.ID.String()+"/qrcode", "", token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "\x89PNG", rec.Body.String())
}

func TestServer_UnhandledErrorsAreOpaque(t *testing.T) {
	fx := createTestServer(t)

	fx.identity.On("SearchWalkers", mock.Anything, "beth").Return(nil, assert.AnError)

	rec := fx.do(http.MethodGet, "/walkers?q=beth", "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestServer_SignupRejectsOverlongPassword(t *testing.T) {
	fx := createTestServer(t)

	rec := fx.do(http.MethodPost, "/auth/signup",
		`{"kind":"owner","first_name":"Kate","last_name":"Owner","email":"kate@email.com","password":"`+strings.Repeat("p", 80)+`"}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, map[string]any{"password": "max=72"}, env.Error.Details)
}
