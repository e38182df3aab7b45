package activity

import (
	"github.com/impactlink/engage/internal/activity/repository"
	"github.com/impactlink/engage/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
