package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/crmbase/customerd/internal/pkg/clock"
	"github.com/crmbase/customerd/internal/pkg/config"
	"github.com/crmbase/customerd/internal/pkg/goroutine"
	"github.com/crmbase/customerd/internal/pkg/idempotency"
	"github.com/crmbase/customerd/internal/pkg/instrument"
	"github.com/crmbase/customerd/internal/pkg/jwt"
	"github.com/crmbase/customerd/internal/pkg/messaging"
	"github.com/crmbase/customerd/internal/pkg/router"
	"github.com/crmbase/customerd/internal/pkg/uid"
	"github.com/crmbase/customerd/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
