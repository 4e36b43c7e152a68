package model

import "time"

// Article is one screened feed entry. Articles are built fresh every fetch
// cycle and are not persisted; only the ones that reach the channel leave a
// PublishedArticle row behind.
type Article struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Link     string    `json:"link"`
	PubDate  time.Time `json:"pub_date"`
	Source   string    `json:"source"`
	ImageURL string    `json:"image_url,omitempty"`
}

// PublishedArticle records one delivered article. It is append-only and is
// the ground truth for duplicate detection.
type PublishedArticle struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ArticleID   string    `gorm:"size:500;uniqueIndex;not null" json:"article_id"`
	Title       string    `gorm:"size:500;not null" json:"title"`
	PublishedAt time.Time `gorm:"not null" json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}
