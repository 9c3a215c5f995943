// FILE: internal/service/generator_service.go
// Service orchestrating one generation: order in, archive stream out,
// completion events fanned out afterwards.
package service

import (
	"context"
	"encoding/json"
	"io"

	"launchforge-be/internal/entity"
	"launchforge-be/internal/pkg/logger"
	"launchforge-be/internal/repository/unitofwork"
	"launchforge-be/pkg/events"
	"launchforge-be/pkg/generator"
	pkgNats "launchforge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IGeneratorService interface {
	// Generate streams the archive for an already-verified order into w.
	// Counters and completion events fire only after the stream finished.
	Generate(ctx context.Context, order *entity.Order, w io.Writer) (*generator.Result, error)

	// GenerateByOrderID is the admin/regeneration path: loads the order and
	// streams it without download-token accounting.
	GenerateByOrderID(ctx context.Context, orderId uuid.UUID, w io.Writer) (*generator.Result, error)
}

type generatorService struct {
	projects   *generator.ProjectGenerator
	uowFactory unitofwork.RepositoryFactory
	pubSub     *gochannel.GoChannel
	eventTopic string
	natsPub    *pkgNats.Publisher // optional, nil when NATS is unavailable
	log        logger.ILogger
}

func NewGeneratorService(
	projects *generator.ProjectGenerator,
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	eventTopic string,
	natsPub *pkgNats.Publisher,
	log logger.ILogger,
) IGeneratorService {
	return &generatorService{
		projects:   projects,
		uowFactory: uowFactory,
		pubSub:     pubSub,
		eventTopic: eventTopic,
		natsPub:    natsPub,
		log:        log,
	}
}

func (s *generatorService) Generate(ctx context.Context, order *entity.Order, w io.Writer) (*generator.Result, error) {
	result, err := s.projects.Generate(ctx, order, w)
	if err != nil {
		s.fanOut(ctx, events.NewGenerationFailed(order.Id.String(), order.OrderNumber, err.Error()))
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if order.License != nil {
		if err := uow.LicenseRepository().IncrementDownloadCount(ctx, order.License.Id); err != nil {
			s.log.Warn("Generator", "Failed to bump download counter", map[string]interface{}{
				"order_number": order.OrderNumber,
				"error":        err.Error(),
			})
		}
	}
	if order.Status == entity.OrderStatusPaid {
		order.Status = entity.OrderStatusDelivered
		if err := uow.OrderRepository().Update(ctx, order); err != nil {
			s.log.Warn("Generator", "Failed to mark order delivered", map[string]interface{}{
				"order_number": order.OrderNumber,
				"error":        err.Error(),
			})
		}
	}

	s.fanOut(ctx, events.NewGenerationCompleted(
		order.Id.String(),
		order.OrderNumber,
		order.CustomerEmail,
		result.AllFeatureSlugs,
	))
	return result, nil
}

func (s *generatorService) GenerateByOrderID(ctx context.Context, orderId uuid.UUID, w io.Writer) (*generator.Result, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindByID(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return s.projects.Generate(ctx, order, w)
}

// fanOut publishes to the in-process bus (consumer service: mail, websocket)
// and, when connected, to NATS for external subscribers. Event delivery is
// best-effort; the archive already reached the customer.
func (s *generatorService) fanOut(ctx context.Context, event events.Event) {
	if s.pubSub != nil {
		if payload, err := eventPayloadJSON(event); err == nil {
			msg := message.NewMessage(watermill.NewUUID(), payload)
			msg.Metadata.Set("event_type", event.EventType())
			if err := s.pubSub.Publish(s.eventTopic, msg); err != nil {
				s.log.Warn("Generator", "Failed to publish event", map[string]interface{}{"error": err.Error()})
			}
		}
	}
	if s.natsPub != nil {
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.log.Warn("Generator", "Failed to publish NATS event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func eventPayloadJSON(event events.Event) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"type":        event.EventType(),
		"occurred_at": event.Timestamp(),
		"data":        event.Payload(),
	})
}
