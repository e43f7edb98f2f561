package postgres

import (
	"context"
	"time"

	"doggywalk/internal/domain/entity"
	"doggywalk/internal/domain/repository"
	"doggywalk/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// chronologicalOrder sorts by calendar date, then AM before PM, then 12:xx before 01:xx.
const chronologicalOrder = "date, period, CASE WHEN start_time LIKE '12:%' THEN 0 ELSE 1 END, start_time"

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository is the constructor for appointmentRepository.
func NewAppointmentRepository(db *gorm.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (repo *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return repo.find(repo.db.WithContext(ctx), id)
}

func (repo *appointmentRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	return repo.find(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (repo *appointmentRepository) find(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointmentM model.AppointmentModel
	if err := db.Where("id = ?", id).First(&appointmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppointmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find appointment by id")
	}

	return toAppointmentDomain(&appointmentM), nil
}

func (repo *appointmentRepository) List(ctx context.Context, filter repository.AppointmentFilter) ([]*entity.Appointment, error) {
	db := repo.db.WithContext(ctx)
	if filter.OwnerID != nil {
		db = db.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.WalkerID != nil {
		db = db.Where("walker_id = ?", *filter.WalkerID)
	}
	switch filter.Status {
	case entity.StatusPending:
		db = db.Where("completed = ?", false)
	case entity.StatusCompleted:
		db = db.Where("completed = ?", true)
	}

	var appointmentMs []*model.AppointmentModel
	if err := db.Order(chronologicalOrder).Find(&appointmentMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list appointments")
	}

	appointments := make([]*entity.Appointment, 0, len(appointmentMs))
	for _, appointmentM := range appointmentMs {
		appointments = append(appointments, toAppointmentDomain(appointmentM))
	}

	return appointments, nil
}

func (repo *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}

	appointmentM := fromAppointmentDomain(appointment)
	if err := repo.db.WithContext(ctx).Omit("Owner", "Walker").Create(appointmentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPrincipalNotFound
		}

		return errors.Wrap(err, "failed to create appointment")
	}

	appointment.CreatedAt = appointmentM.CreatedAt
	appointment.UpdatedAt = appointmentM.UpdatedAt

	return nil
}

func (repo *appointmentRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	tx := repo.db.WithContext(ctx).Model(&model.AppointmentModel{}).Where("id = ?", id).Update("completed", true)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to complete appointment")
	}
	if tx.RowsAffected == 0 {
		return repository.ErrAppointmentNotFound
	}

	return nil
}

func (repo *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := repo.db.WithContext(ctx)
	if err := db.Where("appointment_id = ?", id).Delete(&model.ReviewModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete appointment review")
	}

	tx := db.Where("id = ?", id).Delete(&model.AppointmentModel{})
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to delete appointment")
	}
	if tx.RowsAffected == 0 {
		return repository.ErrAppointmentNotFound
	}

	return nil
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) FindByAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Review, error) {
	var reviewM model.ReviewModel
	if err := repo.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find review")
	}

	return toReviewDomain(&reviewM), nil
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	reviewM := fromReviewDomain(review)
	if err := repo.db.WithContext(ctx).Omit("Appointment").Create(reviewM).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return repository.ErrReviewExists
		case isForeignKeyConstraintViolation(err):
			return repository.ErrAppointmentNotFound
		case isCheckConstraintViolation(err):
			return errors.Wrapf(err, "rate %d out of range", review.Rate)
		}

		return errors.Wrap(err, "failed to create review")
	}

	review.CreatedAt = reviewM.CreatedAt

	return nil
}

func (repo *reviewRepository) RatesForWalker(ctx context.Context, walkerID uuid.UUID) ([]int, error) {
	rates := []int{}
	err := repo.db.WithContext(ctx).Model(&model.ReviewModel{}).
		Joins("JOIN appointments ON appointments.id = reviews.appointment_id").
		Where("appointments.walker_id = ?", walkerID).
		Pluck("reviews.rate", &rates).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load walker rates")
	}

	return rates, nil
}

func toAppointmentDomain(data *model.AppointmentModel) *entity.Appointment {
	return &entity.Appointment{
		ID:              data.ID,
		OwnerID:         data.OwnerID,
		WalkerID:        data.WalkerID,
		Date:            data.Date.UTC(),
		StartTime:       data.StartTime,
		Period:          entity.DayPeriod(data.Period),
		DurationMinutes: data.DurationMinutes,
		Completed:       data.Completed,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromAppointmentDomain(data *entity.Appointment) *model.AppointmentModel {
	y, m, d := data.Date.Date()

	return &model.AppointmentModel{
		ID:              data.ID,
		OwnerID:         data.OwnerID,
		WalkerID:        data.WalkerID,
		Date:            time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		StartTime:       data.StartTime,
		Period:          string(data.Period),
		DurationMinutes: data.DurationMinutes,
		Completed:       data.Completed,
	}
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:            data.ID,
		AppointmentID: data.AppointmentID,
		Rate:          data.Rate,
		Comment:       data.Comment,
		CreatedAt:     data.CreatedAt,
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		ID:            data.ID,
		AppointmentID: data.AppointmentID,
		Rate:          data.Rate,
		Comment:       data.Comment,
	}
}
