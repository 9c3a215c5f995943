// FILE: internal/service/payment_listener_service.go
package service

import (
	"context"
	"fmt"

	"launchforge-be/internal/pkg/logger"
	"launchforge-be/pkg/events"
	pktNats "launchforge-be/pkg/nats"

	"github.com/google/uuid"
)

// paymentSettledSubject is published by the payment gateway service when a
// checkout settles.
const paymentSettledSubject = "events.PAYMENT_SETTLED"

type IPaymentListenerService interface {
	Start() error
}

// paymentListenerService bridges the external payment service and the order
// lifecycle: a settled payment marks the order paid and issues the first
// download link (which fans out the customer emails).
type paymentListenerService struct {
	natsSub      *pktNats.Subscriber
	orderService OrderService
	logger       logger.ILogger
}

func NewPaymentListenerService(
	natsSub *pktNats.Subscriber,
	orderService OrderService,
	log logger.ILogger,
) IPaymentListenerService {
	return &paymentListenerService{
		natsSub:      natsSub,
		orderService: orderService,
		logger:       log,
	}
}

func (s *paymentListenerService) Start() error {
	return s.natsSub.Subscribe(paymentSettledSubject, "launchforge-payments", s.handlePaymentSettled)
}

func (s *paymentListenerService) handlePaymentSettled(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	orderIdStr, _ := payload["order_id"].(string)
	orderId, err := uuid.Parse(orderIdStr)
	if err != nil {
		// Malformed payload will never parse on retry either; swallow it.
		s.logger.Warn("PaymentListener", "Invalid order_id in payment event", map[string]interface{}{
			"order_id": orderIdStr,
		})
		return nil
	}

	if err := s.orderService.MarkPaid(ctx, orderId); err != nil {
		return fmt.Errorf("mark order %s paid: %w", orderId, err)
	}

	if _, err := s.orderService.IssueDownloadLink(ctx, orderId); err != nil {
		return fmt.Errorf("issue download link for order %s: %w", orderId, err)
	}

	s.logger.Info("PaymentListener", "Order settled and link issued", map[string]interface{}{
		"order_id": orderId.String(),
	})
	return nil
}
