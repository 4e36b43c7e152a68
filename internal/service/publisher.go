package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"hotnews/internal/model"
)

// Sender delivers formatted messages to the channel.
type Sender interface {
	SendMessage(ctx context.Context, text string, buttons []Button) (int, error)
	SendPhoto(ctx context.Context, photoURL, caption string, buttons []Button) (int, error)
	SendDigest(ctx context.Context, text string) (int, error)
}

// PublishStore records what went out and supplies today's events for
// relevance matching.
type PublishStore interface {
	RecordPublished(articleID, title string, publishedAt time.Time) error
	LogPostStats(messageID int, postedAt time.Time, views, forwards int) error
	EventsOn(day time.Time) ([]model.Event, error)
}

type Publisher struct {
	sender Sender
	store  PublishStore
	client *http.Client
	loc    *time.Location
}

func NewPublisher(sender Sender, store PublishStore, probeTimeout time.Duration, loc *time.Location) *Publisher {
	return &Publisher{
		sender: sender,
		store:  store,
		client: &http.Client{Timeout: probeTimeout},
		loc:    loc,
	}
}

// PublishArticle formats and delivers one article, then records the
// publication. The record write comes after a successful send so a failed
// send leaves the article eligible for the next run.
func (p *Publisher) PublishArticle(ctx context.Context, article *model.Article) (int, error) {
	events, err := p.store.EventsOn(time.Now().In(p.loc))
	if err != nil {
		log.Printf("[Publish] today's events unavailable: %v", err)
	}
	matched := Relevant(article.Title+" "+article.Summary, events)

	text := FormatArticle(article, matched)
	buttons := ArticleButtons(article)

	var messageID int
	if article.ImageURL != "" && p.imageReachable(ctx, article.ImageURL) {
		messageID, err = p.sender.SendPhoto(ctx, article.ImageURL, text, buttons)
	} else {
		messageID, err = p.sender.SendMessage(ctx, text, buttons)
	}
	if err != nil {
		return 0, fmt.Errorf("sending %q: %w", article.Title, err)
	}

	now := time.Now().In(p.loc)
	if err := p.store.RecordPublished(article.ID, article.Title, now); err != nil {
		return messageID, fmt.Errorf("recording published %s: %w", article.ID, err)
	}
	if err := p.store.LogPostStats(messageID, now, 0, 0); err != nil {
		log.Printf("[Publish] logging stats for message %d: %v", messageID, err)
	}

	log.Printf("[Publish] published: %s (message %d)", article.Title, messageID)
	return messageID, nil
}

// PublishAll delivers a batch. A failing article is logged and skipped.
func (p *Publisher) PublishAll(ctx context.Context, articles []model.Article) int {
	var published int
	for i := range articles {
		if _, err := p.PublishArticle(ctx, &articles[i]); err != nil {
			log.Printf("[Publish] %v", err)
			continue
		}
		published++
	}
	return published
}

// PublishDigest delivers a pre-assembled digest message.
func (p *Publisher) PublishDigest(ctx context.Context, text string) (int, error) {
	messageID, err := p.sender.SendDigest(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("sending digest: %w", err)
	}
	log.Printf("[Publish] digest published (message %d)", messageID)
	return messageID, nil
}

// imageReachable probes the image URL so a dead link degrades to a plain
// message instead of failing the whole post.
func (p *Publisher) imageReachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[Publish] image probe %s: %v", url, err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
