package model

import "time"

// PostStat tracks one channel message. A row is created with zero counters
// when the message goes out; a stats collaborator updates the counters later.
type PostStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID int       `gorm:"uniqueIndex;not null" json:"message_id"`
	PostedAt  time.Time `gorm:"not null" json:"posted_at"`
	Views     int       `gorm:"default:0" json:"views"`
	Forwards  int       `gorm:"default:0" json:"forwards"`
	UpdatedAt time.Time `json:"updated_at"`
}
