package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

const feedSize = 20

type FeedUseCase struct {
	portfolioRepo portfolio.Repository
	baseURL       string
	logger        logger.Logger
}

func NewFeedUseCase(repo portfolio.Repository, baseURL string, log logger.Logger) *FeedUseCase {
	return &FeedUseCase{
		portfolioRepo: repo,
		baseURL:       baseURL,
		logger:        log,
	}
}

// Execute builds a feed of the most recently published portfolios.
func (uc *FeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	portfolios, err := uc.portfolioRepo.ListRecent(ctx, feedSize)
	if err != nil {
		uc.logger.Error("Failed to list recent portfolios for feed", err)
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       "Recently published portfolios",
		Link:        &feeds.Link{Href: uc.baseURL},
		Description: "Portfolios published or updated most recently.",
		Created:     time.Now().UTC(),
	}

	feed.Items = make([]*feeds.Item, 0, len(portfolios))
	for _, p := range portfolios {
		title := p.Name
		if title == "" {
			title = p.Username
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID.String(),
			Title:       title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/p/%s", uc.baseURL, p.Username)},
			Description: p.Headline,
			Created:     p.UpdatedAt,
			Updated:     p.UpdatedAt,
		})
	}

	uc.logger.Debug("Portfolio feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
