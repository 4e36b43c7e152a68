package model

import (
	"strings"
	"time"
)

// Event is one calendar entry scraped from the events page. Date is a
// calendar date (midnight in the configured timezone); keywords are stored
// comma-joined as a single text column.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:500;not null" json:"name"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Keywords  string    `gorm:"type:text;not null" json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
}

// KeywordList splits the stored keyword set.
func (e *Event) KeywordList() []string {
	if e.Keywords == "" {
		return nil
	}
	return strings.Split(e.Keywords, ",")
}

// Participants returns the keyword entries that are people. Extraction
// appends the title plus three fixed domain keywords after the participant
// names, so everything before those four is a name.
func (e *Event) Participants() []string {
	kw := e.KeywordList()
	if len(kw) <= 4 {
		return nil
	}
	return kw[:len(kw)-4]
}
