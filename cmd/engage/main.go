package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/impactlink/engage/internal/activity"
	"github.com/impactlink/engage/internal/clock"
	"github.com/impactlink/engage/internal/config"
	"github.com/impactlink/engage/internal/logger"
	"github.com/impactlink/engage/internal/migration"
	"github.com/impactlink/engage/internal/scheduler"
	"github.com/impactlink/engage/internal/server"
	"github.com/impactlink/engage/internal/session"
	"github.com/impactlink/engage/internal/trending"
	"github.com/impactlink/engage/internal/user"
	"github.com/impactlink/engage/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Functional domains
		user.Module,
		session.Module,
		activity.Module,
		trending.Module,
		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
