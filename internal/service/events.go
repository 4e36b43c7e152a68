package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"hotnews/config"
	"hotnews/internal/model"
)

// domainKeywords are appended to every event's keyword set so that generic
// premiere coverage still matches.
var domainKeywords = []string{"premiere", "movie", "series"}

// EventStore is the slice of the store the extractor needs.
type EventStore interface {
	InsertEvent(event *model.Event) error
	EventsOn(day time.Time) ([]model.Event, error)
	PurgeEventsOlderThan(days int) (int64, error)
}

// EventService keeps the event calendar fresh by scraping the configured
// premiere listings page.
type EventService struct {
	store         EventStore
	client        *http.Client
	pageURL       string
	loc           *time.Location
	retentionDays int
}

func NewEventService(store EventStore, cfg config.EventsConfig, loc *time.Location) *EventService {
	return &EventService{
		store:         store,
		client:        &http.Client{Timeout: cfg.FetchTimeout()},
		pageURL:       cfg.PageURL,
		loc:           loc,
		retentionDays: cfg.RetentionDays,
	}
}

// Refresh scrapes the calendar page and brings the event store up to date.
// Old events are purged before the new batch goes in.
func (s *EventService) Refresh(ctx context.Context) error {
	log.Println("[Events] refreshing event store")

	purged, err := s.store.PurgeEventsOlderThan(s.retentionDays)
	if err != nil {
		return fmt.Errorf("purging old events: %w", err)
	}
	if purged > 0 {
		log.Printf("[Events] purged %d old events", purged)
	}

	events, err := s.FetchUpcoming(ctx)
	if err != nil {
		return fmt.Errorf("fetching events page: %w", err)
	}

	var inserted int
	for i := range events {
		if err := s.store.InsertEvent(&events[i]); err != nil {
			log.Printf("[Events] inserting %q: %v", events[i].Name, err)
			continue
		}
		inserted++
	}

	log.Printf("[Events] inserted %d events", inserted)
	return nil
}

// FetchUpcoming downloads and parses the calendar page.
func (s *EventService) FetchUpcoming(ctx context.Context) ([]model.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar page returned %s", resp.Status)
	}

	return s.Extract(resp.Body, time.Now().In(s.loc)), nil
}

// TodayEvents returns the stored events dated today, in insertion order.
func (s *EventService) TodayEvents() ([]model.Event, error) {
	return s.store.EventsOn(time.Now().In(s.loc))
}

// Extract parses calendar page markup into events. A listing block that
// fails to parse is logged and skipped; it never aborts the rest of the page.
func (s *EventService) Extract(markup io.Reader, now time.Time) []model.Event {
	doc, err := goquery.NewDocumentFromReader(markup)
	if err != nil {
		log.Printf("[Events] parsing calendar page: %v", err)
		return nil
	}

	var events []model.Event
	doc.Find(".ipc-metadata-list-item__content-container").Each(func(_ int, block *goquery.Selection) {
		event, err := s.parseBlock(block, now)
		if err != nil {
			log.Printf("[Events] skipping block: %v", err)
			return
		}
		events = append(events, *event)
	})

	return events
}

func (s *EventService) parseBlock(block *goquery.Selection, now time.Time) (*model.Event, error) {
	heading := precedingHeading(block)
	if heading == "" {
		return nil, fmt.Errorf("no preceding date heading")
	}

	// Calendar headings carry no year; the current year is assumed, which is
	// wrong for listings that roll over a year boundary.
	day, err := time.ParseInLocation("January 2", heading, s.loc)
	if err != nil {
		return nil, fmt.Errorf("parsing date heading %q: %w", heading, err)
	}
	date := time.Date(now.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)

	title := strings.TrimSpace(block.Find(".ipc-metadata-list-item__list-content-item").First().Text())
	if title == "" {
		return nil, fmt.Errorf("block has no title")
	}

	var keywords []string
	block.Find(".ipc-inline-list__item").Each(func(_ int, star *goquery.Selection) {
		if name := strings.TrimSpace(star.Text()); name != "" {
			keywords = append(keywords, name)
		}
	})
	keywords = append(keywords, title)
	keywords = append(keywords, domainKeywords...)

	return &model.Event{
		Name:     "Premiere: " + title,
		Date:     date,
		Keywords: strings.Join(keywords, ","),
	}, nil
}

// precedingHeading returns the text of the nearest h3 before the selection in
// document order, crossing parent boundaries the way a reader scans the page.
func precedingHeading(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	for n := prevInDocument(sel.Nodes[0]); n != nil; n = prevInDocument(n) {
		if n.Type == html.ElementNode && n.Data == "h3" {
			return strings.TrimSpace(goquery.NewDocumentFromNode(n).Text())
		}
	}
	return ""
}

// prevInDocument steps to the previous node in document order: the deepest
// last descendant of the previous sibling, or the parent when there is none.
func prevInDocument(n *html.Node) *html.Node {
	if n.PrevSibling == nil {
		return n.Parent
	}
	n = n.PrevSibling
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}
