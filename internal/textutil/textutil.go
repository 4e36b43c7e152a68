// Package textutil cleans raw feed text before it is matched or published.
package textutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	imgTagRe = regexp.MustCompile(`(?is)<img[^>]*>`)
	anyTagRe = regexp.MustCompile(`(?s)<[^>]*>`)
)

// RemoveImgTags strips embedded <img> tags. Feeds often inline tracking
// pixels and decorative images in summaries; those must not survive into the
// posted text.
func RemoveImgTags(raw string) string {
	return imgTagRe.ReplaceAllString(raw, "")
}

// Normalize strips markup and decodes entities, best effort. Malformed
// markup degrades to plain tag removal; the result is always a usable string.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(anyTagRe.ReplaceAllString(raw, ""))
	}
	doc.Find("img").Remove()
	return strings.TrimSpace(doc.Text())
}
