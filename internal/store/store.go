// Package store wraps the sqlite database behind the operations the rest of
// the bot needs: the publication record, the event calendar and post stats.
package store

import (
	"time"

	"gorm.io/gorm"

	"hotnews/internal/model"
)

type Store struct {
	db  *gorm.DB
	loc *time.Location
}

func New(db *gorm.DB, loc *time.Location) *Store {
	return &Store{db: db, loc: loc}
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&model.Event{}, &model.PublishedArticle{}, &model.PostStat{})
}

// ===== Published articles =====

// IsPublished reports whether the article id was already delivered.
func (s *Store) IsPublished(articleID string) (bool, error) {
	var count int64
	err := s.db.Model(&model.PublishedArticle{}).
		Where("article_id = ?", articleID).
		Count(&count).Error
	return count > 0, err
}

// RecordPublished appends a publication record. Timestamps are stored in the
// configured target timezone.
func (s *Store) RecordPublished(articleID, title string, publishedAt time.Time) error {
	rec := model.PublishedArticle{
		ArticleID:   articleID,
		Title:       title,
		PublishedAt: publishedAt.In(s.loc),
	}
	return s.db.Create(&rec).Error
}

// RecentPublished returns publication records, newest first.
func (s *Store) RecentPublished(offset, limit int) ([]model.PublishedArticle, int64, error) {
	var total int64
	if err := s.db.Model(&model.PublishedArticle{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.PublishedArticle
	err := s.db.Order("published_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

// ===== Events =====

func (s *Store) InsertEvent(event *model.Event) error {
	return s.db.Create(event).Error
}

// EventsOn returns the events dated on the given calendar day, in insertion
// order.
func (s *Store) EventsOn(day time.Time) ([]model.Event, error) {
	day = day.In(s.loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 0, 1)

	var events []model.Event
	err := s.db.Where("date >= ? AND date < ?", start, end).
		Order("id").
		Find(&events).Error
	return events, err
}

// PurgeEventsOlderThan deletes events whose calendar date is more than the
// given number of days in the past. Age is measured against the event date,
// not the time it was scraped.
func (s *Store) PurgeEventsOlderThan(days int) (int64, error) {
	cutoff := time.Now().In(s.loc).AddDate(0, 0, -days)
	result := s.db.Where("date < ?", cutoff).Delete(&model.Event{})
	return result.RowsAffected, result.Error
}

// ===== Post stats =====

// LogPostStats creates the tracking row for a freshly posted message.
func (s *Store) LogPostStats(messageID int, postedAt time.Time, views, forwards int) error {
	stat := model.PostStat{
		MessageID: messageID,
		PostedAt:  postedAt.In(s.loc),
		Views:     views,
		Forwards:  forwards,
	}
	return s.db.Where("message_id = ?", messageID).FirstOrCreate(&stat).Error
}

// UpdatePostStats refreshes the counters for a tracked message. Returns the
// number of rows touched so callers can tell an unknown message apart.
func (s *Store) UpdatePostStats(messageID, views, forwards int) (int64, error) {
	result := s.db.Model(&model.PostStat{}).
		Where("message_id = ?", messageID).
		Updates(map[string]interface{}{"views": views, "forwards": forwards})
	return result.RowsAffected, result.Error
}

// ===== Counters for /api/status =====

func (s *Store) CountPublished() (int64, error) {
	var n int64
	err := s.db.Model(&model.PublishedArticle{}).Count(&n).Error
	return n, err
}

func (s *Store) CountEvents() (int64, error) {
	var n int64
	err := s.db.Model(&model.Event{}).Count(&n).Error
	return n, err
}

func (s *Store) CountTrackedPosts() (int64, error) {
	var n int64
	err := s.db.Model(&model.PostStat{}).Count(&n).Error
	return n, err
}
