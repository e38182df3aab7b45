package migration

import (
	activitydomain "github.com/impactlink/engage/internal/activity/domain"
	"github.com/impactlink/engage/internal/config"
	sessiondomain "github.com/impactlink/engage/internal/session/domain"
	trendingdomain "github.com/impactlink/engage/internal/trending/domain"
	userdomain "github.com/impactlink/engage/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations target postgres. Other dialects are
		// for development only and take the gorm schema directly.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&userdomain.User{},
				&sessiondomain.Session{},
				&sessiondomain.LoginAttempt{},
				&activitydomain.ActivityEvent{},
				&trendingdomain.Hashtag{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
