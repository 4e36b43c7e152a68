package service

import (
	"time"

	"hotnews/internal/store"
)

type StatusService struct {
	store *store.Store
	loc   *time.Location
}

type SystemStatus struct {
	PublishedArticles int64 `json:"published_articles"`
	StoredEvents      int64 `json:"stored_events"`
	TodayEvents       int64 `json:"today_events"`
	TrackedPosts      int64 `json:"tracked_posts"`

	NextFetchTime  time.Time `json:"next_fetch_time"`
	NextEventsTime time.Time `json:"next_events_time"`
	NextDigestTime time.Time `json:"next_digest_time"`
}

func NewStatusService(store *store.Store, loc *time.Location) *StatusService {
	return &StatusService{store: store, loc: loc}
}

// GetSystemStatus collects the counters for the status endpoint.
func (s *StatusService) GetSystemStatus() (*SystemStatus, error) {
	status := &SystemStatus{}

	var err error
	if status.PublishedArticles, err = s.store.CountPublished(); err != nil {
		return nil, err
	}
	if status.StoredEvents, err = s.store.CountEvents(); err != nil {
		return nil, err
	}
	if status.TrackedPosts, err = s.store.CountTrackedPosts(); err != nil {
		return nil, err
	}

	today, err := s.store.EventsOn(time.Now().In(s.loc))
	if err != nil {
		return nil, err
	}
	status.TodayEvents = int64(len(today))

	return status, nil
}
