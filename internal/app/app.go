package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/meridian/internal/cache"
	"github.com/Additional-Code/meridian/internal/config"
	"github.com/Additional-Code/meridian/internal/database"
	"github.com/Additional-Code/meridian/internal/logger"
	"github.com/Additional-Code/meridian/internal/messaging"
	"github.com/Additional-Code/meridian/internal/observability"
	repositorycatalog "github.com/Additional-Code/meridian/internal/repository/catalog"
	repositoryorder "github.com/Additional-Code/meridian/internal/repository/order"
	httpserver "github.com/Additional-Code/meridian/internal/server/http"
	serviceorder "github.com/Additional-Code/meridian/internal/service/order"
	transporthttp "github.com/Additional-Code/meridian/internal/transport/http"
	"github.com/Additional-Code/meridian/internal/worker"
	workerorder "github.com/Additional-Code/meridian/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorycatalog.Module,
	repositoryorder.Module,
	serviceorder.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
