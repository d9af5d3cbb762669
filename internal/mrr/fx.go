package mrr

import (
	"github.com/railzwaylabs/mrrboard/internal/mrr/service"
	"go.uber.org/fx"
)

var Module = fx.Module("mrr.service",
	fx.Provide(service.NewService),
)
