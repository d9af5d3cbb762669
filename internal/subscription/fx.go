package subscription

import (
	"github.com/railzwaylabs/mrrboard/internal/subscription/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription",
	fx.Provide(repository.Provide),
)
