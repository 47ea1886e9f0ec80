package app

import (
	"log/slog"
	"os"

	"github.com/crmbase/customerd/internal/customer"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.customer.enabled") {
		if err := customer.New(customer.Dependency{
			DBConn:      a.dbConn,
			Goroutine:   a.goroutine,
			Router:      a.router,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Config:      a.config,
			Instrument:  a.ins,
			UID:         a.uid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module customer", "error", err)
			os.Exit(1)
		}
	}
}
