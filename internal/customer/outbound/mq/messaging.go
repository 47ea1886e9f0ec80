package mq

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel/codes"

	"github.com/crmbase/customerd/internal/customer/usecase"
	"github.com/crmbase/customerd/internal/pkg/instrument"
	"github.com/crmbase/customerd/internal/pkg/messaging"
	"github.com/crmbase/customerd/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) publish(ctx context.Context, spanName, destination string, payload any) error {
	ctx, span := m.ins.Tracer("customer.outbound.mq").Start(ctx, spanName)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishCustomerCreated(ctx context.Context, msg usecase.CustomerCreatedEvent) error {
	return m.publish(ctx, "PublishCustomerCreated", event.CustomerCreatedDestination, event.CustomerCreatedMessage{
		CustomerID: msg.CustomerID,
		FullName:   msg.FullName,
	})
}

func (m *Messaging) PublishCustomerUpdated(ctx context.Context, msg usecase.CustomerUpdatedEvent) error {
	return m.publish(ctx, "PublishCustomerUpdated", event.CustomerUpdatedDestination, event.CustomerUpdatedMessage{
		CustomerID: msg.CustomerID,
	})
}

func (m *Messaging) PublishCustomerDeleted(ctx context.Context, msg usecase.CustomerDeletedEvent) error {
	return m.publish(ctx, "PublishCustomerDeleted", event.CustomerDeletedDestination, event.CustomerDeletedMessage{
		CustomerID: msg.CustomerID,
	})
}
