package trending

import (
	"github.com/impactlink/engage/internal/trending/repository"
	"github.com/impactlink/engage/internal/trending/service"
	"go.uber.org/fx"
)

var Module = fx.Module("trending",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
