package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotnews/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s := New(db, time.UTC)
	require.NoError(t, s.AutoMigrate())
	return s
}

func TestPublishedRoundTrip(t *testing.T) {
	s := newTestStore(t)

	published, err := s.IsPublished("a1")
	require.NoError(t, err)
	assert.False(t, published)

	require.NoError(t, s.RecordPublished("a1", "Title", time.Now()))

	published, err = s.IsPublished("a1")
	require.NoError(t, err)
	assert.True(t, published)
}

func TestRecordPublishedRejectsSecondInsert(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.RecordPublished("a1", "Title", time.Now()))
	assert.Error(t, s.RecordPublished("a1", "Title again", time.Now()))
}

func TestRecentPublished(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.RecordPublished(fmt.Sprintf("a%d", i), fmt.Sprintf("Title %d", i), base.AddDate(0, 0, i)))
	}

	records, total, err := s.RecentPublished(0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, records, 2)
	assert.Equal(t, "a2", records[0].ArticleID)
	assert.Equal(t, "a1", records[1].ArticleID)
}

func insertEvent(t *testing.T, s *Store, name string, date time.Time) {
	t.Helper()
	require.NoError(t, s.InsertEvent(&model.Event{
		Name:     name,
		Date:     date,
		Keywords: name + ",premiere,movie,series",
	}))
}

func TestEventsOnDayGranularity(t *testing.T) {
	s := newTestStore(t)

	day := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	insertEvent(t, s, "today", day)
	insertEvent(t, s, "tomorrow", day.AddDate(0, 0, 1))
	insertEvent(t, s, "yesterday", day.AddDate(0, 0, -1))

	// Query with an afternoon timestamp; comparison is calendar-day based.
	events, err := s.EventsOn(day.Add(15 * time.Hour))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "today", events[0].Name)
}

func TestEventsOnInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	day := time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
	insertEvent(t, s, "first", day)
	insertEvent(t, s, "second", day)
	insertEvent(t, s, "third", day)

	events, err := s.EventsOn(day)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].Name)
	assert.Equal(t, "second", events[1].Name)
	assert.Equal(t, "third", events[2].Name)
}

func TestPurgeEventsOlderThan(t *testing.T) {
	s := newTestStore(t)

	old := time.Now().UTC().AddDate(0, 0, -31)
	recent := time.Now().UTC()
	insertEvent(t, s, "old", old)
	insertEvent(t, s, "recent", recent)

	purged, err := s.PurgeEventsOlderThan(30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	// The purged event is gone from date queries.
	events, err := s.EventsOn(old)
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = s.EventsOn(recent)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestPostStats(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.LogPostStats(42, time.Now(), 0, 0))

	affected, err := s.UpdatePostStats(42, 100, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Unknown message ids touch nothing.
	affected, err = s.UpdatePostStats(99, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	n, err := s.CountTrackedPosts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCounters(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.RecordPublished("a1", "T", time.Now()))
	insertEvent(t, s, "e1", time.Now().UTC())

	published, err := s.CountPublished()
	require.NoError(t, err)
	assert.Equal(t, int64(1), published)

	events, err := s.CountEvents()
	require.NoError(t, err)
	assert.Equal(t, int64(1), events)
}
