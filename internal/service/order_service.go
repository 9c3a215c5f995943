// FILE: internal/service/order_service.go
// Service for order intake, license issuance and download-token verification
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"launchforge-be/internal/dto"
	"launchforge-be/internal/entity"
	"launchforge-be/internal/pkg/logger"
	"launchforge-be/internal/repository/unitofwork"
	"launchforge-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	MarkPaid(ctx context.Context, id uuid.UUID) error

	// IssueDownloadLink creates the license on first call (key + download
	// secret) and returns a signed, expiring download URL.
	IssueDownloadLink(ctx context.Context, orderId uuid.UUID) (*dto.DownloadLinkResponse, error)

	// VerifyDownloadToken validates a signed download token and returns the
	// order (with template and license preloaded) it belongs to.
	VerifyDownloadToken(ctx context.Context, tokenStr string) (*entity.Order, error)
}

type orderService struct {
	uowFactory   unitofwork.RepositoryFactory
	pubSub       *gochannel.GoChannel
	eventTopic   string
	jwtSecret    []byte
	baseURL      string
	tokenTTL     time.Duration
	maxDownloads int
	log          logger.ILogger
}

func NewOrderService(
	uowFactory unitofwork.RepositoryFactory,
	pubSub *gochannel.GoChannel,
	eventTopic string,
	jwtSecret string,
	baseURL string,
	tokenTTLHours int,
	maxDownloads int,
	log logger.ILogger,
) OrderService {
	return &orderService{
		uowFactory:   uowFactory,
		pubSub:       pubSub,
		eventTopic:   eventTopic,
		jwtSecret:    []byte(jwtSecret),
		baseURL:      baseURL,
		tokenTTL:     time.Duration(tokenTTLHours) * time.Hour,
		maxDownloads: maxDownloads,
		log:          log,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var templateId *uuid.UUID
	var template *entity.Template
	if req.TemplateSlug != "" {
		t, err := uow.TemplateRepository().FindBySlug(ctx, req.TemplateSlug)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("template '%s' not found", req.TemplateSlug)
		}
		templateId = &t.Id
		template = t
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	order := &entity.Order{
		OrderNumber:          s.nextOrderNumber(ctx, uow),
		Tier:                 req.Tier,
		SelectedFeatureSlugs: req.SelectedFeatures,
		CustomerName:         req.CustomerName,
		CustomerEmail:        req.CustomerEmail,
		Total:                req.Total,
		Currency:             currency,
		Status:               entity.OrderStatusPending,
		TemplateId:           templateId,
		Template:             template,
	}
	if err := uow.OrderRepository().Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(events.NewOrderCreated(order.Id.String(), order.OrderNumber, order.CustomerEmail))
	s.log.Info("Orders", "Order created", map[string]interface{}{
		"order_number": order.OrderNumber,
		"tier":         order.Tier,
		"features":     order.SelectedFeatureSlugs,
	})

	return toOrderResponse(order), nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return toOrderResponse(order), nil
}

func (s *orderService) MarkPaid(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	order.Status = entity.OrderStatusPaid
	return uow.OrderRepository().Update(ctx, order)
}

func (s *orderService) IssueDownloadLink(ctx context.Context, orderId uuid.UUID) (*dto.DownloadLinkResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	order, err := uow.OrderRepository().FindByID(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status != entity.OrderStatusPaid && order.Status != entity.OrderStatusDelivered {
		return nil, fmt.Errorf("order %s is not paid", order.OrderNumber)
	}

	// The plaintext download secret only exists here and inside the JWT.
	secret := randomToken(24)

	license := order.License
	licenseKey := ""
	if license == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		license = &entity.License{
			OrderId:           order.Id,
			Key:               newLicenseKey(),
			DownloadTokenHash: string(hash),
			MaxDownloads:      s.maxDownloads,
			Status:            entity.LicenseStatusActive,
		}
		if err := uow.LicenseRepository().Create(ctx, license); err != nil {
			return nil, err
		}
		licenseKey = license.Key
	} else {
		// Re-issue: rotate the stored hash so old links die with the new one.
		hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		license.DownloadTokenHash = string(hash)
		if err := uow.LicenseRepository().Update(ctx, license); err != nil {
			return nil, err
		}
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.MapClaims{
		"order_id": order.Id.String(),
		"secret":   secret,
		"exp":      expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	downloadURL := fmt.Sprintf("%s/api/download/%s", s.baseURL, signed)
	s.publish(events.NewDownloadReady(
		order.Id.String(),
		order.OrderNumber,
		order.CustomerName,
		order.CustomerEmail,
		downloadURL,
		licenseKey,
	))

	return &dto.DownloadLinkResponse{
		OrderNumber: order.OrderNumber,
		DownloadURL: downloadURL,
		ExpiresAt:   expiresAt,
		LicenseKey:  licenseKey,
	}, nil
}

func (s *orderService) VerifyDownloadToken(ctx context.Context, tokenStr string) (*entity.Order, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid download token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid download token claims")
	}

	orderIdStr, _ := claims["order_id"].(string)
	secret, _ := claims["secret"].(string)
	orderId, err := uuid.Parse(orderIdStr)
	if err != nil || secret == "" {
		return nil, fmt.Errorf("invalid download token claims")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	order, err := uow.OrderRepository().FindByID(ctx, orderId)
	if err != nil {
		return nil, err
	}
	if order == nil || order.License == nil {
		return nil, fmt.Errorf("order or license not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(order.License.DownloadTokenHash), []byte(secret)); err != nil {
		return nil, fmt.Errorf("download token does not match issued license")
	}
	if !order.License.Downloadable(time.Now()) {
		return nil, fmt.Errorf("license expired, revoked or download limit reached")
	}

	return order, nil
}

func (s *orderService) publish(event events.Event) {
	if s.pubSub == nil {
		return
	}
	payload, err := eventPayloadJSON(event)
	if err != nil {
		s.log.Warn("Orders", "Failed to marshal event", map[string]interface{}{"error": err.Error()})
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	if err := s.pubSub.Publish(s.eventTopic, msg); err != nil {
		s.log.Warn("Orders", "Failed to publish event", map[string]interface{}{"error": err.Error()})
	}
}

// nextOrderNumber derives a human-readable order number: LF-<year>-<seq>.
// The sequence is approximated by the current order count; collisions are
// caught by the unique index and would surface as a create error.
func (s *orderService) nextOrderNumber(ctx context.Context, uow unitofwork.UnitOfWork) string {
	count, err := uow.OrderRepository().Count(ctx)
	if err != nil {
		count = 0
	}
	return fmt.Sprintf("LF-%d-%06d", time.Now().Year(), count+1)
}

func newLicenseKey() string {
	raw := strings.ToUpper(randomToken(10))
	return fmt.Sprintf("LF-%s-%s", raw[:5], raw[5:10])
}

func randomToken(nBytes int) string {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; fall back to uuid
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	templateSlug := ""
	if o.Template != nil {
		templateSlug = o.Template.Slug
	}
	return &dto.OrderResponse{
		Id:               o.Id,
		OrderNumber:      o.OrderNumber,
		Tier:             o.Tier,
		SelectedFeatures: o.SelectedFeatureSlugs,
		TemplateSlug:     templateSlug,
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		Total:            o.Total,
		Currency:         o.Currency,
		Status:           string(o.Status),
		CreatedAt:        o.CreatedAt,
	}
}
