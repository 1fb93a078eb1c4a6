package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type PortfolioEventType string

const (
	PortfolioEventPublished PortfolioEventType = "portfolio.published"
)

type PortfolioEvent struct {
	EventID          uuid.UUID          `json:"eventId"`
	EventType        PortfolioEventType `json:"eventType"`
	PortfolioID      uuid.UUID          `json:"portfolioId"`
	UserID           uuid.UUID          `json:"userId"`
	Username         string             `json:"username"`
	PreviousUsername string             `json:"previousUsername,omitempty"`
	OccurredAt       time.Time          `json:"occurredAt"`
}

type EventPublisher interface {
	PublishPortfolioEvent(ctx context.Context, e PortfolioEvent) error
}

// NopEventPublisher is used when no broker is configured.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishPortfolioEvent(context.Context, PortfolioEvent) error { return nil }
