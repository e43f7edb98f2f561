package handler

import (
	"time"

	"doggywalk/internal/domain/entity"
	"doggywalk/internal/usecase"

	"github.com/google/uuid"
)

type addressResponse struct {
	ID           uuid.UUID `json:"id"`
	Line         string    `json:"line,omitempty"`
	ZipCode      int       `json:"zip_code"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Neighborhood string    `json:"neighborhood"`
}

type walkerProfileResponse struct {
	Description string   `json:"description"`
	Rate        *float64 `json:"rate"`
}

type principalResponse struct {
	ID        uuid.UUID              `json:"id"`
	Kind      entity.Kind            `json:"kind"`
	FirstName string                 `json:"first_name"`
	LastName  string                 `json:"last_name"`
	Email     string                 `json:"email"`
	Cellphone string                 `json:"cellphone,omitempty"`
	Photo     string                 `json:"photo"`
	Address   *addressResponse       `json:"address,omitempty"`
	Walker    *walkerProfileResponse `json:"walker,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type sessionResponse struct {
	Principal *principalResponse `json:"principal"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
}

type dogResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Weight      int       `json:"weight"`
	Age         int       `json:"age"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description"`
	Photo       string    `json:"photo"`
}

type messageResponse struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	WalkerID       uuid.UUID `json:"walker_id"`
	SenderIsWalker bool      `json:"sender_is_walker"`
	Text           string    `json:"text"`
	SentAt         time.Time `json:"sent_at"`
}

type threadResponse struct {
	Owner    *principalResponse `json:"owner"`
	Walker   *principalResponse `json:"walker"`
	Messages []*messageResponse `json:"messages"`
}

type appointmentResponse struct {
	ID              uuid.UUID        `json:"id"`
	OwnerID         uuid.UUID        `json:"owner_id"`
	WalkerID        uuid.UUID        `json:"walker_id"`
	Date            string           `json:"date"`
	StartTime       string           `json:"start_time"`
	Period          entity.DayPeriod `json:"period"`
	DurationMinutes int              `json:"duration_minutes"`
	Status          string           `json:"status"`
}

type reviewResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Rate          int       `json:"rate"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type createdReviewResponse struct {
	Review     *reviewResponse `json:"review"`
	WalkerRate *float64        `json:"walker_rate"`
}

func toAddressResponse(a *entity.Address) *addressResponse {
	if a == nil {
		return nil
	}

	return &addressResponse{
		ID:           a.ID,
		Line:         a.Line,
		ZipCode:      a.ZipCode,
		City:         a.City,
		State:        a.State,
		Neighborhood: a.Neighborhood,
	}
}

func toPrincipalResponse(p *entity.Principal) *principalResponse {
	resp := &principalResponse{
		ID:        p.ID,
		Kind:      p.Kind,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Cellphone: p.Cellphone,
		Photo:     p.Photo,
		Address:   toAddressResponse(p.Address),
		CreatedAt: p.CreatedAt,
	}
	if p.Walker != nil {
		resp.Walker = &walkerProfileResponse{Description: p.Walker.Description, Rate: p.Walker.Rate}
	}

	return resp
}

func toPrincipalResponses(principals []*entity.Principal) []*principalResponse {
	resp := make([]*principalResponse, 0, len(principals))
	for _, p := range principals {
		resp = append(resp, toPrincipalResponse(p))
	}

	return resp
}

func toSessionResponse(output *usecase.SessionOutput) *sessionResponse {
	return &sessionResponse{
		Principal: toPrincipalResponse(output.Principal),
		Token:     output.Token.Token,
		ExpiresAt: output.Token.ExpiresAt,
	}
}

func toDogResponse(d *entity.Dog) *dogResponse {
	return &dogResponse{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Breed:       d.Breed,
		Weight:      d.Weight,
		Age:         d.Age,
		Color:       d.Color,
		Description: d.Description,
		Photo:       d.Photo,
	}
}

func toMessageResponse(m *entity.Message) *messageResponse {
	return &messageResponse{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		WalkerID:       m.WalkerID,
		SenderIsWalker: m.SenderIsWalker,
		Text:           m.Text,
		SentAt:         m.SentAt,
	}
}

func toAppointmentResponse(a *entity.Appointment) *appointmentResponse {
	status := entity.StatusPending
	if a.Completed {
		status = entity.StatusCompleted
	}

	return &appointmentResponse{
		ID:              a.ID,
		OwnerID:         a.OwnerID,
		WalkerID:        a.WalkerID,
		Date:            a.DateString(),
		StartTime:       a.StartTime,
		Period:          a.Period,
		DurationMinutes: a.DurationMinutes,
		Status:          string(status),
	}
}

func toReviewResponse(r *entity.Review) *reviewResponse {
	return &reviewResponse{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		Rate:          r.Rate,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
	}
}
