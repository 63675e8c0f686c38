package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"autonews/db"
	"autonews/internal/repository"
	"autonews/internal/scheduler"
	"autonews/pkg/news"

	"github.com/joho/godotenv"
)

const defaultFetchInterval = 15 * time.Minute

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("error ensuring DB schema: %v", err)
	}

	var guard scheduler.CycleGuard
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			slog.Warn("error connecting to Redis, cycles run without overlap guard", "error", err)
		} else {
			defer db.CloseRedis()
			guard = db.IngestTracker{}
		}
	}

	var sources []news.Source

	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		country := os.Getenv("NEWS_API_COUNTRY")
		if country == "" {
			country = "us"
		}
		sources = append(sources, news.NewNewsAPIClient(key, country))
	} else {
		slog.Info("NEWS_API_KEY not configured, skipping headline API source")
	}

	feeds := news.DefaultFeeds
	if raw := os.Getenv("RSS_FEEDS"); raw != "" {
		feeds = nil
		for _, f := range strings.Split(raw, ",") {
			if f = strings.TrimSpace(f); f != "" {
				feeds = append(feeds, f)
			}
		}
	}
	sources = append(sources, news.NewRSSClient(feeds))

	interval := defaultFetchInterval
	if raw := os.Getenv("FETCH_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			slog.Warn("invalid FETCH_INTERVAL, using default", "value", raw, "default", defaultFetchInterval)
		} else {
			interval = parsed
		}
	}

	repo := repository.NewArticleRepository(db.DB)
	sched := scheduler.New(sources, repo, interval, guard)

	if err := sched.Start(context.Background()); err != nil {
		log.Fatalf("error starting scheduler: %v", err)
	}

	slog.Info("fetcher started", "interval", interval.String(), "sources", len(sources), "feeds", len(feeds))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down fetcher")
	sched.Stop()
}
