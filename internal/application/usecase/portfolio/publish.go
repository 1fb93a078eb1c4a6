package portfolio

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
	"github.com/khoahotran/portfolio-builder/pkg/metrics"
)

var tracer = otel.Tracer("portfolio_usecase")

type PublishPortfolioUseCase struct {
	portfolioRepo portfolio.Repository
	jwtSvc        *auth.JWTService
	cache         service.Cache
	events        service.EventPublisher
	logger        logger.Logger
}

func NewPublishPortfolioUseCase(
	repo portfolio.Repository,
	jwtSvc *auth.JWTService,
	cache service.Cache,
	events service.EventPublisher,
	log logger.Logger,
) *PublishPortfolioUseCase {
	if events == nil {
		events = service.NopEventPublisher{}
	}
	return &PublishPortfolioUseCase{
		portfolioRepo: repo,
		jwtSvc:        jwtSvc,
		cache:         cache,
		events:        events,
		logger:        log,
	}
}

type PublishPortfolioInput struct {
	// Token is the raw bearer token presented by the caller.
	Token     string
	Portfolio portfolio.Portfolio
}

type PublishPortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

// Authorize verifies a bearer token and returns the caller's user id. Callers
// that decode the document themselves run it first so a bad token is reported
// as unauthorized regardless of the body.
func (uc *PublishPortfolioUseCase) Authorize(token string) (uuid.UUID, error) {
	claims, err := uc.jwtSvc.ValidateToken(token)
	if err != nil {
		metrics.PublishTotal.WithLabelValues("unauthorized").Inc()
		return uuid.Nil, apperror.NewUnauthorized("Unauthorized", "bearer token rejected", err)
	}
	return claims.UserID, nil
}

func (uc *PublishPortfolioUseCase) Execute(ctx context.Context, input PublishPortfolioInput) (*PublishPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "Publish")
	defer span.End()

	userID, err := uc.Authorize(input.Token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	p := input.Portfolio
	p.ID = uuid.Nil
	p.UserID = userID
	p.Normalize()
	if err := p.Validate(); err != nil {
		metrics.PublishTotal.WithLabelValues("invalid").Inc()
		return nil, apperror.NewInvalidInput(validationMessage(err), err)
	}

	p.UpdatedAt = time.Now().UTC()
	previousUsername, err := uc.portfolioRepo.Upsert(ctx, &p)
	if err != nil {
		metrics.PublishTotal.WithLabelValues("failed").Inc()
		span.RecordError(err)
		if !errors.Is(err, apperror.ErrConflict) && !errors.Is(err, apperror.ErrUnauthorized) {
			uc.logger.Error("Failed to save portfolio", err, zap.String("user_id", p.UserID.String()))
		}
		return nil, err
	}
	metrics.PublishTotal.WithLabelValues("ok").Inc()
	span.SetAttributes(
		attribute.String("user_id", p.UserID.String()),
		attribute.String("username", p.Username),
	)

	uc.invalidate(ctx, p.Username, previousUsername)

	event := service.PortfolioEvent{
		EventID:     uuid.New(),
		EventType:   service.PortfolioEventPublished,
		PortfolioID: p.ID,
		UserID:      p.UserID,
		Username:    p.Username,
		OccurredAt:  p.UpdatedAt,
	}
	if previousUsername != p.Username {
		event.PreviousUsername = previousUsername
	}
	go func() {
		if err := uc.events.PublishPortfolioEvent(context.Background(), event); err != nil {
			uc.logger.Error("Failed to publish portfolio event", err, zap.String("portfolio_id", p.ID.String()))
		}
	}()

	uc.logger.Info("Portfolio published",
		zap.String("user_id", p.UserID.String()),
		zap.String("username", p.Username),
	)
	return &PublishPortfolioOutput{Portfolio: &p}, nil
}

// invalidate drops cached pages for the new slug and, after a rename, the old
// one. A failure here only delays visibility until the TTL expires.
func (uc *PublishPortfolioUseCase) invalidate(ctx context.Context, username, previousUsername string) {
	if uc.cache == nil {
		return
	}
	keys := []string{CacheKey(username)}
	if previousUsername != "" && previousUsername != username {
		keys = append(keys, CacheKey(previousUsername))
	}
	if err := uc.cache.Delete(ctx, keys...); err != nil {
		uc.logger.Warn("Failed to invalidate portfolio cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, portfolio.ErrUsernameRequired):
		return "Username is required"
	case errors.Is(err, portfolio.ErrInvalidUsername):
		return "Invalid username"
	default:
		return "Invalid portfolio"
	}
}
