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
	"github.com/khoahotran/portfolio-builder/pkg/metrics"
)

const cacheKeyPrefix = "portfolio:"

func CacheKey(username string) string {
	return cacheKeyPrefix + username
}

type GetPublicPortfolioUseCase struct {
	portfolioRepo portfolio.Repository
	cache         service.Cache
	cacheTTL      time.Duration
	logger        logger.Logger
}

func NewGetPublicPortfolioUseCase(repo portfolio.Repository, cache service.Cache, cacheTTL time.Duration, log logger.Logger) *GetPublicPortfolioUseCase {
	return &GetPublicPortfolioUseCase{
		portfolioRepo: repo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        log,
	}
}

type GetPublicPortfolioInput struct {
	Username string
}

type GetPublicPortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

func (uc *GetPublicPortfolioUseCase) Execute(ctx context.Context, input GetPublicPortfolioInput) (*GetPublicPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "FetchByUsername")
	defer span.End()

	username := portfolio.NormalizeUsername(input.Username)
	if username == "" {
		return nil, apperror.NewInvalidInput("Username is required", nil)
	}

	if p := uc.fromCache(ctx, username); p != nil {
		return &GetPublicPortfolioOutput{Portfolio: p}, nil
	}

	p, err := uc.portfolioRepo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Error("Failed to fetch portfolio", err, zap.String("username", username))
			span.RecordError(err)
		}
		return nil, err
	}

	uc.store(ctx, p)
	return &GetPublicPortfolioOutput{Portfolio: p}, nil
}

func (uc *GetPublicPortfolioUseCase) fromCache(ctx context.Context, username string) *portfolio.Portfolio {
	if uc.cache == nil {
		return nil
	}
	raw, err := uc.cache.Get(ctx, CacheKey(username))
	if err != nil {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		if !errors.Is(err, service.ErrCacheMiss) {
			uc.logger.Warn("Portfolio cache read failed", zap.String("username", username), zap.Error(err))
		}
		return nil
	}
	var p portfolio.Portfolio
	if err := json.Unmarshal(raw, &p); err != nil {
		uc.logger.Warn("Discarding undecodable cached portfolio", zap.String("username", username), zap.Error(err))
		return nil
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	p.Normalize()
	return &p
}

func (uc *GetPublicPortfolioUseCase) store(ctx context.Context, p *portfolio.Portfolio) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, CacheKey(p.Username), raw, uc.cacheTTL); err != nil {
		uc.logger.Warn("Portfolio cache write failed", zap.String("username", p.Username), zap.Error(err))
	}
}
