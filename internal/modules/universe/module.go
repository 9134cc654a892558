package universe

import (
	"go.uber.org/fx"

	market_data "pump_bot/internal/modules/market_data/service"
	"pump_bot/internal/modules/universe/service"
)

func Module() fx.Option {
	return fx.Module("universe",
		fx.Provide(
			func(c *market_data.Client) service.Listing { return c },
			service.NewResolver,
		),
	)
}
