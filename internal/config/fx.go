package config

import "go.uber.org/fx"

// Module wires application configuration. Load fails the app when the
// signing secret is missing in a non-development environment.
var Module = fx.Module("config",
	fx.Provide(Load),
)
