package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotnews/internal/service"
	"hotnews/internal/store"
)

type Handler struct {
	store     *store.Store
	feed      *service.FeedService
	events    *service.EventService
	publisher *service.Publisher
	status    *service.StatusService
	loc       *time.Location
	scheduler interface {
		GetNextFetchTime() time.Time
		GetNextEventsTime() time.Time
		GetNextDigestTime() time.Time
	}
}

func NewHandler(st *store.Store, feed *service.FeedService, events *service.EventService, publisher *service.Publisher, status *service.StatusService, loc *time.Location) *Handler {
	return &Handler{
		store:     st,
		feed:      feed,
		events:    events,
		publisher: publisher,
		status:    status,
		loc:       loc,
	}
}

// SetScheduler wires the scheduler so /api/status can report next run times.
func (h *Handler) SetScheduler(scheduler interface {
	GetNextFetchTime() time.Time
	GetNextEventsTime() time.Time
	GetNextDigestTime() time.Time
}) {
	h.scheduler = scheduler
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// Published articles
		api.GET("/articles", h.ListPublished)

		// Events
		api.GET("/events", h.ListEvents)

		// Post stats intake for the stats-refresh collaborator
		api.POST("/stats", h.UpdateStats)

		// Manual triggers
		api.POST("/run/fetch", h.RunFetch)
		api.POST("/run/events", h.RunEvents)

		// Status
		api.GET("/status", h.GetStatus)
	}
}

// ===== Published articles =====

func (h *Handler) ListPublished(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize := 20

	records, total, err := h.store.RecentPublished((page-1)*pageSize, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  records,
		"total": total,
		"page":  page,
	})
}

// ===== Events =====

func (h *Handler) ListEvents(c *gin.Context) {
	day := time.Now().In(h.loc)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	events, err := h.store.EventsOn(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date": day.Format("2006-01-02"),
		"data": events,
	})
}

// ===== Post stats =====

type statsUpdate struct {
	MessageID int `json:"message_id" binding:"required"`
	Views     int `json:"views"`
	Forwards  int `json:"forwards"`
}

// UpdateStats lets the external stats collaborator push refreshed counters.
func (h *Handler) UpdateStats(c *gin.Context) {
	var input statsUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := h.store.UpdatePostStats(input.MessageID, input.Views, input.Forwards)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown message id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// ===== Manual triggers =====

func (h *Handler) RunFetch(c *gin.Context) {
	go func() {
		articles := h.feed.FetchAll(context.Background())
		h.publisher.PublishAll(context.Background(), articles)
	}()
	c.JSON(http.StatusOK, gin.H{"message": "fetch started"})
}

func (h *Handler) RunEvents(c *gin.Context) {
	go h.events.Refresh(context.Background())
	c.JSON(http.StatusOK, gin.H{"message": "events refresh started"})
}

// ===== Status =====

func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.status.GetSystemStatus()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.scheduler != nil {
		status.NextFetchTime = h.scheduler.GetNextFetchTime()
		status.NextEventsTime = h.scheduler.GetNextEventsTime()
		status.NextDigestTime = h.scheduler.GetNextDigestTime()
	}

	c.JSON(http.StatusOK, status)
}
