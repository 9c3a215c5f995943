// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"launchforge-be/internal/pkg/mailer"
	"launchforge-be/internal/repository/specification"
	"launchforge-be/internal/repository/unitofwork"
	"launchforge-be/internal/websocket"
	"launchforge-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	hub          *websocket.Hub
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	hub *websocket.Hub,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		hub:          hub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	switch envelope.Type {
	case events.TypeDownloadReady:
		cs.handleDownloadReady(msg, envelope.Data)
	case events.TypeGenerationCompleted:
		cs.handleGenerationCompleted(ctx, msg, envelope.Data)
	case events.TypeGenerationFailed:
		cs.handleGenerationFailed(msg, envelope.Data)
	default:
		// ORDER_CREATED and anything else is not ours. Ack and move on.
		msg.Ack()
	}
}

// handleDownloadReady sends the build-ready email with the signed link, plus
// the license key email on first issuance.
func (cs *consumerService) handleDownloadReady(msg *message.Message, raw json.RawMessage) {
	var payload struct {
		OrderNumber   string `json:"order_number"`
		CustomerName  string `json:"customer_name"`
		CustomerEmail string `json:"customer_email"`
		DownloadURL   string `json:"download_url"`
		LicenseKey    string `json:"license_key"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal DOWNLOAD_READY payload: %v", err)
		msg.Ack()
		return
	}

	if cs.emailService == nil {
		msg.Ack()
		return
	}

	if err := cs.emailService.SendBuildReady(payload.CustomerEmail, payload.CustomerName, payload.OrderNumber, payload.DownloadURL); err != nil {
		log.Printf("[ERROR] Failed to send build-ready email for order %s: %v", payload.OrderNumber, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	if payload.LicenseKey != "" {
		if err := cs.emailService.SendLicenseKey(payload.CustomerEmail, payload.CustomerName, payload.OrderNumber, payload.LicenseKey); err != nil {
			// Link email already went out, don't replay the whole event.
			log.Printf("[WARN] Failed to send license key email for order %s: %v", payload.OrderNumber, err)
		}
	}

	msg.Ack()
}

// handleGenerationCompleted pushes the final status to the order's websocket
// watchers once the archive has been streamed.
func (cs *consumerService) handleGenerationCompleted(ctx context.Context, msg *message.Message, raw json.RawMessage) {
	var payload struct {
		OrderId     uuid.UUID `json:"order_id"`
		OrderNumber string    `json:"order_number"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal GENERATION_COMPLETED payload: %v", err)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindOne(ctx, specification.ByID{ID: payload.OrderId})
	if err != nil {
		log.Printf("[ERROR] Failed to get order %s: %v", payload.OrderId, err)
		msg.Nack()
		return
	}
	if order == nil {
		log.Printf("[ERROR] Order not found: %s", payload.OrderId)
		msg.Ack() // Order deleted? Ack.
		return
	}

	cs.hub.Send(websocket.StatusUpdate{
		OrderId:     order.Id,
		OrderNumber: order.OrderNumber,
		Stage:       "completed",
	})

	msg.Ack()
}

func (cs *consumerService) handleGenerationFailed(msg *message.Message, raw json.RawMessage) {
	var payload struct {
		OrderId     uuid.UUID `json:"order_id"`
		OrderNumber string    `json:"order_number"`
		Reason      string    `json:"reason"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal GENERATION_FAILED payload: %v", err)
		msg.Ack()
		return
	}

	log.Printf("[WARN] Generation failed for order %s: %s", payload.OrderNumber, payload.Reason)

	cs.hub.Send(websocket.StatusUpdate{
		OrderId:     payload.OrderId,
		OrderNumber: payload.OrderNumber,
		Stage:       "failed",
		Detail:      payload.Reason,
	})

	msg.Ack()
}
