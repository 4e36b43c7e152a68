package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotnews/internal/model"
)

type fakeSender struct {
	nextID   int
	failFor  string
	messages []string
	photos   []string
	digests  []string
	buttons  [][]Button
}

func (f *fakeSender) send() int {
	f.nextID++
	return f.nextID
}

func (f *fakeSender) SendMessage(ctx context.Context, text string, buttons []Button) (int, error) {
	if f.failFor != "" && strings.Contains(text, f.failFor) {
		return 0, errors.New("telegram unavailable")
	}
	f.messages = append(f.messages, text)
	f.buttons = append(f.buttons, buttons)
	return f.send(), nil
}

func (f *fakeSender) SendPhoto(ctx context.Context, photoURL, caption string, buttons []Button) (int, error) {
	f.photos = append(f.photos, photoURL)
	f.messages = append(f.messages, caption)
	f.buttons = append(f.buttons, buttons)
	return f.send(), nil
}

func (f *fakeSender) SendDigest(ctx context.Context, text string) (int, error) {
	f.digests = append(f.digests, text)
	return f.send(), nil
}

type fakePublishStore struct {
	events    []model.Event
	published []string
	stats     []int
}

func (f *fakePublishStore) RecordPublished(articleID, title string, publishedAt time.Time) error {
	f.published = append(f.published, articleID)
	return nil
}

func (f *fakePublishStore) LogPostStats(messageID int, postedAt time.Time, views, forwards int) error {
	f.stats = append(f.stats, messageID)
	return nil
}

func (f *fakePublishStore) EventsOn(day time.Time) ([]model.Event, error) {
	return f.events, nil
}

func newTestPublisher(sender *fakeSender, store *fakePublishStore) *Publisher {
	return NewPublisher(sender, store, 2*time.Second, time.UTC)
}

func TestPublishArticlePlainMessage(t *testing.T) {
	sender := &fakeSender{}
	store := &fakePublishStore{}
	pub := newTestPublisher(sender, store)

	article := &model.Article{ID: "a1", Title: "Title", Summary: "Summary", Link: "https://example.com/a1"}

	messageID, err := pub.PublishArticle(context.Background(), article)
	require.NoError(t, err)
	assert.Equal(t, 1, messageID)

	require.Len(t, sender.messages, 1)
	assert.Empty(t, sender.photos)
	assert.Equal(t, []string{"a1"}, store.published)
	assert.Equal(t, []int{1}, store.stats)

	// The read-more/feedback controls ride along.
	require.Len(t, sender.buttons, 1)
	assert.Len(t, sender.buttons[0], 3)
}

func TestPublishArticleWithReachableImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := &fakeSender{}
	pub := newTestPublisher(sender, &fakePublishStore{})

	article := &model.Article{ID: "a1", Title: "Title", Summary: "S", Link: "l", ImageURL: server.URL + "/pic.jpg"}

	_, err := pub.PublishArticle(context.Background(), article)
	require.NoError(t, err)
	assert.Equal(t, []string{server.URL + "/pic.jpg"}, sender.photos)
}

func TestPublishArticleDeadImageFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	sender := &fakeSender{}
	pub := newTestPublisher(sender, &fakePublishStore{})

	article := &model.Article{ID: "a1", Title: "Title", Summary: "S", Link: "l", ImageURL: server.URL + "/gone.jpg"}

	_, err := pub.PublishArticle(context.Background(), article)
	require.NoError(t, err)
	assert.Empty(t, sender.photos)
	assert.Len(t, sender.messages, 1)
}

func TestPublishArticleSendFailureLeavesNoRecord(t *testing.T) {
	sender := &fakeSender{failFor: "Doomed"}
	store := &fakePublishStore{}
	pub := newTestPublisher(sender, store)

	article := &model.Article{ID: "a1", Title: "Doomed", Summary: "S", Link: "l"}

	_, err := pub.PublishArticle(context.Background(), article)
	assert.Error(t, err)
	assert.Empty(t, store.published)
	assert.Empty(t, store.stats)
}

func TestPublishArticleMatchedEventsInMessage(t *testing.T) {
	sender := &fakeSender{}
	store := &fakePublishStore{events: []model.Event{
		{ID: 1, Name: "Premiere: Big Film", Keywords: "Tom Hanks,Big Film,premiere,movie,series"},
	}}
	pub := newTestPublisher(sender, store)

	article := &model.Article{ID: "a1", Title: "Tom Hanks spotted", Summary: "On set.", Link: "l"}

	_, err := pub.PublishArticle(context.Background(), article)
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)
	assert.Contains(t, sender.messages[0], "Premiere: Big Film")
}

func TestPublishAllIsolatesFailures(t *testing.T) {
	sender := &fakeSender{failFor: "Doomed"}
	store := &fakePublishStore{}
	pub := newTestPublisher(sender, store)

	articles := []model.Article{
		{ID: "a1", Title: "Doomed", Summary: "S", Link: "l"},
		{ID: "a2", Title: "Fine", Summary: "S", Link: "l"},
	}

	published := pub.PublishAll(context.Background(), articles)
	assert.Equal(t, 1, published)
	assert.Equal(t, []string{"a2"}, store.published)
}

func TestPublishDigest(t *testing.T) {
	sender := &fakeSender{}
	pub := newTestPublisher(sender, &fakePublishStore{})

	messageID, err := pub.PublishDigest(context.Background(), "digest body")
	require.NoError(t, err)
	assert.Equal(t, 1, messageID)
	assert.Equal(t, []string{"digest body"}, sender.digests)
}
