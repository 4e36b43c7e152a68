package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hotnews/config"
	"hotnews/internal/handler"
	"hotnews/internal/scheduler"
	"hotnews/internal/service"
	"hotnews/internal/store"
	"hotnews/internal/telegram"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	st := store.New(db, loc)
	if err := st.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	tg, err := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChannelID)
	if err != nil {
		log.Fatal("Failed to create telegram client:", err)
	}

	filter := service.NewFilter(st, cfg.Feeds.MaxArticleAge())
	feedSvc := service.NewFeedService(filter, cfg.Feeds)
	eventSvc := service.NewEventService(st, cfg.Events, loc)
	publisher := service.NewPublisher(tg, st, cfg.Feeds.FetchTimeout(), loc)
	statusSvc := service.NewStatusService(st, loc)

	sched := scheduler.NewScheduler(feedSvc, eventSvc, publisher, cfg.Cron)
	sched.Start()
	defer sched.Stop()

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	h := handler.NewHandler(st, feedSvc, eventSvc, publisher, statusSvc, loc)
	h.SetScheduler(sched)
	h.RegisterRoutes(r)

	log.Println("Server starting on", cfg.GetServerAddress())
	r.Run(cfg.GetServerAddress())
}
