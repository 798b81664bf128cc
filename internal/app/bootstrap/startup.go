// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/huynhland/cms/internal/app/store/users"
	"go.uber.org/zap"
)

// Startup runs post-schema initialization. When seed_admin_email is
// configured it creates that account once; reruns are no-ops so the
// setting can stay in the deployment config.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedAdminEmail == "" {
		return nil
	}

	store := userstore.New(deps.MongoDatabase)

	exists, err := store.EmailExists(ctx, appCfg.SeedAdminEmail)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("admin user already exists, skipping seed",
			zap.String("email", appCfg.SeedAdminEmail))
		return nil
	}

	id, err := store.Create(ctx, &userstore.User{
		FullName: appCfg.SeedAdminName,
		Email:    appCfg.SeedAdminEmail,
		Role:     "admin",
		Status:   "active",
	}, appCfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	logger.Info("seeded admin user",
		zap.String("email", appCfg.SeedAdminEmail),
		zap.String("id", id))
	return nil
}
