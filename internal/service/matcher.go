package service

import (
	"strings"

	"hotnews/internal/model"
)

// Relevant returns the events any of whose keywords occur, case-insensitively,
// as a substring of text. Plain substring matching, no tokenization or
// ranking; events come back in the order they were given.
func Relevant(text string, events []model.Event) []model.Event {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matched []model.Event
	for _, event := range events {
		for _, keyword := range event.KeywordList() {
			keyword = strings.TrimSpace(keyword)
			if keyword == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(keyword)) {
				matched = append(matched, event)
				break
			}
		}
	}
	return matched
}
