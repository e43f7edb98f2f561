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

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (repo *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now().UTC()
	}

	if err := repo.db.WithContext(ctx).Omit("Owner", "Walker").Create(fromMessageDomain(message)).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPrincipalNotFound
		}

		return errors.Wrap(err, "failed to create message")
	}

	return nil
}

func (repo *messageRepository) ListThread(ctx context.Context, ownerID, walkerID uuid.UUID) ([]*entity.Message, error) {
	var messageMs []*model.MessageModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ? AND walker_id = ?", ownerID, walkerID).
		Order("sent_at, id").
		Find(&messageMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list thread")
	}

	messages := make([]*entity.Message, 0, len(messageMs))
	for _, messageM := range messageMs {
		messages = append(messages, toMessageDomain(messageM))
	}

	return messages, nil
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository is the constructor for connectionRepository.
func NewConnectionRepository(db *gorm.DB) repository.ConnectionRepository {
	return &connectionRepository{db: db}
}

func (repo *connectionRepository) Connect(ctx context.Context, ownerID, walkerID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("Owner", "Walker").
		Create(&model.ConnectionModel{OwnerID: ownerID, WalkerID: walkerID}).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrPrincipalNotFound
		}

		return errors.Wrap(err, "failed to record connection")
	}

	return nil
}

func (repo *connectionRepository) IsConnected(ctx context.Context, ownerID, walkerID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.ConnectionModel{}).
		Where("owner_id = ? AND walker_id = ?", ownerID, walkerID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check connection")
	}

	return count > 0, nil
}

func (repo *connectionRepository) WalkerIDsOf(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	return repo.pluck(ctx, "walker_id", "owner_id", ownerID)
}

func (repo *connectionRepository) OwnerIDsOf(ctx context.Context, walkerID uuid.UUID) ([]uuid.UUID, error) {
	return repo.pluck(ctx, "owner_id", "walker_id", walkerID)
}

func (repo *connectionRepository) pluck(ctx context.Context, column, byColumn string, id uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := repo.db.WithContext(ctx).Model(&model.ConnectionModel{}).
		Where(byColumn+" = ?", id).
		Order("created_at").
		Pluck(column, &ids).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list connections by %s", byColumn)
	}

	return ids, nil
}

func toMessageDomain(data *model.MessageModel) *entity.Message {
	return &entity.Message{
		ID:             data.ID,
		OwnerID:        data.OwnerID,
		WalkerID:       data.WalkerID,
		SenderIsWalker: data.SenderIsWalker,
		Text:           data.Text,
		SentAt:         data.SentAt,
		Read:           data.Read,
	}
}

func fromMessageDomain(data *entity.Message) *model.MessageModel {
	return &model.MessageModel{
		ID:             data.ID,
		OwnerID:        data.OwnerID,
		WalkerID:       data.WalkerID,
		SenderIsWalker: data.SenderIsWalker,
		Text:           data.Text,
		SentAt:         data.SentAt,
		Read:           data.Read,
	}
}
