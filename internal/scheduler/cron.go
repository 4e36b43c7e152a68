package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"hotnews/config"
	"hotnews/internal/service"
)

type Scheduler struct {
	cron      *cron.Cron
	feed      *service.FeedService
	events    *service.EventService
	publisher *service.Publisher
	config    config.CronConfig

	fetchEntryID  cron.EntryID
	eventsEntryID cron.EntryID
	digestEntryID cron.EntryID
}

func NewScheduler(feed *service.FeedService, events *service.EventService, publisher *service.Publisher, cfg config.CronConfig) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		feed:      feed,
		events:    events,
		publisher: publisher,
		config:    cfg,
	}
}

func (s *Scheduler) Start() {
	// Fetch + publish cycle
	s.fetchEntryID, _ = s.cron.AddFunc(s.config.FetchInterval, func() {
		log.Println("[Cron] Fetching feeds...")
		s.RunFetch(context.Background())
	})

	// Event store refresh
	s.eventsEntryID, _ = s.cron.AddFunc(s.config.EventsInterval, func() {
		log.Println("[Cron] Refreshing events...")
		s.RunEvents(context.Background())
	})

	// Upcoming-events digest
	s.digestEntryID, _ = s.cron.AddFunc(s.config.DigestInterval, func() {
		log.Println("[Cron] Publishing digest...")
		s.RunDigest(context.Background())
	})

	s.cron.Start()
	log.Printf("[Cron] Scheduler started (fetch: %s, events: %s, digest: %s)",
		s.config.FetchInterval, s.config.EventsInterval, s.config.DigestInterval)
}

// RunFetch pulls all feeds and publishes whatever passed screening.
func (s *Scheduler) RunFetch(ctx context.Context) {
	articles := s.feed.FetchAll(ctx)
	published := s.publisher.PublishAll(ctx, articles)
	log.Printf("[Cron] fetch cycle done, %d published", published)
}

// RunEvents refreshes the event store from the calendar page.
func (s *Scheduler) RunEvents(ctx context.Context) {
	if err := s.events.Refresh(ctx); err != nil {
		log.Printf("[Cron] events refresh: %v", err)
	}
}

// RunDigest builds and publishes the upcoming-events digest.
func (s *Scheduler) RunDigest(ctx context.Context) {
	events, err := s.events.FetchUpcoming(ctx)
	if err != nil {
		log.Printf("[Cron] digest: %v", err)
		return
	}
	if _, err := s.publisher.PublishDigest(ctx, service.FormatDigest(events)); err != nil {
		log.Printf("[Cron] digest: %v", err)
	}
}

// GetNextFetchTime returns the next fetch cycle run.
func (s *Scheduler) GetNextFetchTime() time.Time {
	return s.cron.Entry(s.fetchEntryID).Next
}

// GetNextEventsTime returns the next events refresh run.
func (s *Scheduler) GetNextEventsTime() time.Time {
	return s.cron.Entry(s.eventsEntryID).Next
}

// GetNextDigestTime returns the next digest run.
func (s *Scheduler) GetNextDigestTime() time.Time {
	return s.cron.Entry(s.digestEntryID).Next
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}
