package user

import (
	"github.com/impactlink/engage/internal/user/repository"
	"github.com/impactlink/engage/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
