package service

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"hotnews/internal/model"
	"hotnews/internal/textutil"
)

// RejectReason says why an entry was kept out of the pipeline.
type RejectReason string

const (
	RejectStale     RejectReason = "stale"
	RejectDuplicate RejectReason = "duplicate"
	RejectMalformed RejectReason = "malformed"
)

// Verdict is the outcome of screening one feed entry. Article is set for
// admitted entries; otherwise Reason says why the entry was rejected.
type Verdict struct {
	Article *model.Article
	Reason  RejectReason
}

func (v Verdict) Admitted() bool { return v.Article != nil }

// PublishedChecker is the slice of the store the filter needs.
type PublishedChecker interface {
	IsPublished(articleID string) (bool, error)
}

// Filter screens raw feed entries for freshness and duplicates.
type Filter struct {
	published PublishedChecker
	maxAge    time.Duration
}

func NewFilter(published PublishedChecker, maxAge time.Duration) *Filter {
	return &Filter{published: published, maxAge: maxAge}
}

// Screen turns a raw feed entry into an Article or a rejection. The returned
// error is only non-nil when the published-record lookup itself fails; the
// caller should log it and skip the entry.
func (f *Filter) Screen(item *gofeed.Item, feedURL string, now time.Time) (Verdict, error) {
	id := item.GUID
	if id == "" {
		id = item.Link
	}
	title := textutil.Normalize(item.Title)
	if id == "" || title == "" || item.Link == "" {
		return Verdict{Reason: RejectMalformed}, nil
	}

	pubDate := now
	if item.PublishedParsed != nil {
		pubDate = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		pubDate = *item.UpdatedParsed
	}

	if now.Sub(pubDate) > f.maxAge {
		return Verdict{Reason: RejectStale}, nil
	}

	published, err := f.published.IsPublished(id)
	if err != nil {
		return Verdict{}, err
	}
	if published {
		return Verdict{Reason: RejectDuplicate}, nil
	}

	return Verdict{Article: &model.Article{
		ID:       id,
		Title:    title,
		Summary:  textutil.Normalize(textutil.RemoveImgTags(item.Description)),
		Link:     item.Link,
		PubDate:  pubDate,
		Source:   feedURL,
		ImageURL: extractImageURL(item),
	}}, nil
}

// extractImageURL picks an image reference for the entry. Priority order:
// media:content typed image/*, then media:thumbnail, then enclosures typed
// image/*. No image is not an error.
func extractImageURL(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			if strings.HasPrefix(content.Attrs["type"], "image/") && content.Attrs["url"] != "" {
				return content.Attrs["url"]
			}
		}
		for _, thumb := range media["thumbnail"] {
			if thumb.Attrs["url"] != "" {
				return thumb.Attrs["url"]
			}
		}
	}

	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	return ""
}
