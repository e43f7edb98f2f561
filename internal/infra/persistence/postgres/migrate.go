package postgres

import (
	"context"

	"doggywalk/internal/errors"
	"doggywalk/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or alters every table, index and foreign key of the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}
