package service

import (
	"context"
	"log"
	"time"

	"github.com/mmcdole/gofeed"

	"hotnews/config"
	"hotnews/internal/model"
)

type FeedService struct {
	parser  *gofeed.Parser
	filter  *Filter
	feeds   []string
	perFeed int
	timeout time.Duration
}

func NewFeedService(filter *Filter, cfg config.FeedsConfig) *FeedService {
	return &FeedService{
		parser:  gofeed.NewParser(),
		filter:  filter,
		feeds:   cfg.URLs,
		perFeed: cfg.ArticlesPerFeed,
		timeout: cfg.FetchTimeout(),
	}
}

// FetchFeed fetches one feed and screens its entries.
func (s *FeedService) FetchFeed(ctx context.Context, feedURL string) ([]model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	parsed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := parsed.Items
	if s.perFeed > 0 && len(items) > s.perFeed {
		items = items[:s.perFeed]
	}

	now := time.Now()
	var articles []model.Article
	for _, item := range items {
		verdict, err := s.filter.Screen(item, feedURL, now)
		if err != nil {
			log.Printf("[Feed] screening %s: %v", item.Link, err)
			continue
		}
		if !verdict.Admitted() {
			log.Printf("[Feed] rejected (%s): %s", verdict.Reason, item.Title)
			continue
		}
		articles = append(articles, *verdict.Article)
	}

	log.Printf("[Feed] %d new articles from %s", len(articles), feedURL)
	return articles, nil
}

// FetchAll fetches every configured feed. A failing feed is logged and
// skipped; it never aborts the others.
func (s *FeedService) FetchAll(ctx context.Context) []model.Article {
	var all []model.Article
	for _, feedURL := range s.feeds {
		articles, err := s.FetchFeed(ctx, feedURL)
		if err != nil {
			log.Printf("[Feed] fetching %s: %v", feedURL, err)
			continue
		}
		all = append(all, articles...)
	}

	log.Printf("[Feed] %d new articles total", len(all))
	return all
}
