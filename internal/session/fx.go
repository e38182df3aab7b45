package session

import (
	"github.com/impactlink/engage/internal/session/repository"
	"github.com/impactlink/engage/internal/session/service"
	"github.com/impactlink/engage/internal/session/token"
	"go.uber.org/fx"
)

var Module = fx.Module("session",
	fx.Provide(token.NewCodec),
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
