package portfolio

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/application/service"
	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/apperror"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// WarmCacheUseCase handles portfolio events in the worker: it reloads the
// published record from the store and replaces the cached copy.
type WarmCacheUseCase struct {
	portfolioRepo portfolio.Repository
	cache         service.Cache
	cacheTTL      time.Duration
	logger        logger.Logger
}

func NewWarmCacheUseCase(repo portfolio.Repository, cache service.Cache, cacheTTL time.Duration, log logger.Logger) *WarmCacheUseCase {
	return &WarmCacheUseCase{
		portfolioRepo: repo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        log,
	}
}

func (uc *WarmCacheUseCase) Execute(ctx context.Context, e service.PortfolioEvent) error {
	if e.EventType != service.PortfolioEventPublished {
		uc.logger.Debug("Ignoring portfolio event", zap.String("event_type", string(e.EventType)))
		return nil
	}

	if e.PreviousUsername != "" && e.PreviousUsername != e.Username {
		if err := uc.cache.Delete(ctx, CacheKey(e.PreviousUsername)); err != nil {
			return err
		}
	}

	p, err := uc.portfolioRepo.FindByUsername(ctx, e.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Renamed again before we got here; the newer event will warm it.
			uc.logger.Info("Portfolio gone before warm-up", zap.String("username", e.Username))
			return nil
		}
		return err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := uc.cache.Set(ctx, CacheKey(p.Username), raw, uc.cacheTTL); err != nil {
		return err
	}

	uc.logger.Info("Portfolio cache warmed", zap.String("username", p.Username))
	return nil
}
