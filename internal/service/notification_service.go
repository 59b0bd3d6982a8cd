package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/deskops/incident-desk/internal/config"
	"github.com/deskops/incident-desk/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIncidentCreated, n.handleIncidentCreated)
	n.dispatcher.Subscribe(events.EventIncidentTransitioned, n.handleIncidentTransitioned)
	n.dispatcher.Subscribe(events.EventCommandRejected, n.handleCommandRejected)
	n.dispatcher.Subscribe(events.EventIncidentDeleted, n.handleDeskChanged)
	n.dispatcher.Subscribe(events.EventIncidentsImported, n.handleDeskChanged)
	n.dispatcher.Subscribe(events.EventIncidentsReset, n.handleDeskChanged)
}

func (n *NotificationService) handleIncidentCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentCreated", incidentField(event), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleIncidentTransitioned(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentTransitioned", incidentField(event), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	if p, ok := event.Payload.(events.IncidentTransitionedPayload); ok && p.FromState != p.ToState && p.Owner != "" {
		n.sendEmailNotificationStub(ctx, event)
	}
	return nil
}

func (n *NotificationService) handleCommandRejected(_ context.Context, event events.Event) error {
	n.logger.Warn("IncidentCommandRejected", incidentField(event), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleDeskChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("IncidentDeskChanged", zap.String("event_type", string(event.Type)), incidentField(event))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		incidentField(event),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		incidentField(event),
		zap.String("event_type", string(event.Type)))
}

func incidentField(event events.Event) zap.Field {
	if event.IncidentID == nil {
		return zap.Skip()
	}
	return zap.Int("incident_id", *event.IncidentID)
}
