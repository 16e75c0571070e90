package model

import (
	"context"
	"errors"

	"feedback/internal/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedDefaultRoles ensures the bootstrap roles exist before the service
// accepts traffic. Every policy check resolves one of these rows by name, so
// authorization cannot succeed without them. The insert-if-absent is
// idempotent: running it twice leaves one row per name.
func SeedDefaultRoles(ctx context.Context, repo Repository) error {
	if repo == nil {
		return errors.New("repository is nil")
	}

	for _, name := range entity.BootstrapRoles {
		_, err := repo.GetRoleByName(ctx, name)
		switch {
		case err == nil:
			continue
		case errors.Is(err, gorm.ErrRecordNotFound):
			role := entity.DbRole{Name: name}
			if err := repo.CreateRole(ctx, &role); err != nil {
				// A concurrent seeder may have won the insert.
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					continue
				}
				return err
			}
			logrus.WithField("role", name).Info("seeded bootstrap role")
		default:
			return err
		}
	}
	return nil
}
