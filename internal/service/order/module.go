package order

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/meridian/internal/cache"
	"github.com/Additional-Code/meridian/internal/config"
	"github.com/Additional-Code/meridian/internal/messaging"
	catalogrepo "github.com/Additional-Code/meridian/internal/repository/catalog"
	orderrepo "github.com/Additional-Code/meridian/internal/repository/order"
)

// Params defines dependencies for constructing the Service via Fx.
type Params struct {
	fx.In

	Orders    *orderrepo.Repository
	Catalog   *catalogrepo.Repository
	Cache     cache.Store
	Config    config.Config
	Logger    *zap.Logger
	Publisher messaging.Client
}

// NewService wires the order Service from container dependencies.
func NewService(p Params) *Service {
	var publisher Publisher
	if p.Config.Messaging.Enabled {
		publisher = p.Publisher
	}
	return New(p.Orders, p.Catalog, Options{
		Cache:     p.Cache,
		CacheTTL:  p.Config.Cache.DefaultTTL,
		Logger:    p.Logger,
		Publisher: publisher,
	})
}

// Module provides the order service to Fx.
var Module = fx.Provide(NewService)
