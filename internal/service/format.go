package service

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hotnews/internal/model"
)

const digestLimit = 10

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeHTML, s)
}

// FormatArticle renders a single article post. Title and summary are escaped
// so markup inside feed text cannot break the channel's HTML rendering.
func FormatArticle(article *model.Article, matched []model.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", escape(article.Title))
	b.WriteString(escape(article.Summary))

	if len(matched) > 0 {
		names := make([]string, len(matched))
		for i, event := range matched {
			names[i] = event.Name
		}
		fmt.Fprintf(&b, "\n\n🎬 Today: %s", escape(strings.Join(names, ", ")))
	}

	return b.String()
}

// FormatDigest renders the upcoming-events digest as a ready-to-send message.
func FormatDigest(events []model.Event) string {
	if len(events) == 0 {
		return "No celebrity events scheduled for the coming days."
	}
	if len(events) > digestLimit {
		events = events[:digestLimit]
	}

	var b strings.Builder
	b.WriteString("🎬 Upcoming premieres and celebrity events:\n\n")
	for i, event := range events {
		fmt.Fprintf(&b, "%d. <b>%s</b>\n", i+1, escape(event.Name))
		fmt.Fprintf(&b, "   📆 %s\n", event.Date.Format("02.01.2006"))
		if stars := event.Participants(); len(stars) > 0 {
			fmt.Fprintf(&b, "   🌟 Starring: %s\n", escape(strings.Join(stars, ", ")))
		}
		b.WriteString("\n")
	}
	b.WriteString("Stay tuned and don't miss the big premieres! 🍿🎥")

	return b.String()
}

// Button is one interactive control attached to a post. URL is set for link
// buttons, Action for callback buttons.
type Button struct {
	Label  string
	URL    string
	Action string
}

// ArticleButtons builds the control list for an article post: a read-more
// link plus like/dislike feedback buttons. Attaching them is up to the sender.
func ArticleButtons(article *model.Article) []Button {
	return []Button{
		{Label: "Read more", URL: article.Link},
		{Label: "👍", Action: "like_" + article.ID},
		{Label: "👎", Action: "dislike_" + article.ID},
	}
}
