package customer

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crmbase/customerd/internal/customer/inbound"
	"github.com/crmbase/customerd/internal/customer/outbound/db"
	"github.com/crmbase/customerd/internal/customer/outbound/mq"
	"github.com/crmbase/customerd/internal/customer/usecase"
	"github.com/crmbase/customerd/internal/pkg/clock"
	"github.com/crmbase/customerd/internal/pkg/config"
	"github.com/crmbase/customerd/internal/pkg/goroutine"
	"github.com/crmbase/customerd/internal/pkg/idempotency"
	"github.com/crmbase/customerd/internal/pkg/instrument"
	"github.com/crmbase/customerd/internal/pkg/messaging"
	"github.com/crmbase/customerd/internal/pkg/router"
	"github.com/crmbase/customerd/internal/pkg/uid"
	"github.com/crmbase/customerd/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbCustomer := db.NewDB(dep.DBConn, dep.UID, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbCustomer,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
