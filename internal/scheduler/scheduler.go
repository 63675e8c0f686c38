package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"autonews/internal/model"
	"autonews/pkg/news"
)

type ArticleStore interface {
	SaveArticle(article *model.Article) (bool, error)
}

// CycleGuard prevents two ingestion cycles from running at the same time,
// typically across fetcher instances. Implemented by db.IngestTracker.
type CycleGuard interface {
	TryLock(ttl time.Duration) (bool, error)
	Unlock() error
	RecordCycle(t time.Time) error
}

// Scheduler runs every configured source on a fixed interval. Sources run
// strictly one after another; a source failure never stops its siblings, and a
// failed save never aborts the batch containing it.
type Scheduler struct {
	sources  []news.Source
	store    ArticleStore
	interval time.Duration
	guard    CycleGuard

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func New(sources []news.Source, store ArticleStore, interval time.Duration, guard CycleGuard) *Scheduler {
	return &Scheduler{sources: sources, store: store, interval: interval, guard: guard}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.started = true

	go s.loop(ctx)
	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	cancel := s.cancel
	done := s.done
	s.started = false
	s.mu.Unlock()

	cancel()
	<-done
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunCycle()
		}
	}
}

// RunCycle executes one full ingestion pass over all sources.
func (s *Scheduler) RunCycle() {
	if s.guard != nil {
		ok, err := s.guard.TryLock(s.interval + time.Minute)
		if err != nil {
			slog.Warn("cycle guard unavailable, running unguarded", "error", err)
		} else if !ok {
			slog.Info("previous fetch cycle still running, skipping")
			return
		} else {
			defer s.guard.Unlock()
		}
	}

	slog.Info("running scheduled news fetch")

	for _, source := range s.sources {
		s.runSource(source)
	}

	if s.guard != nil {
		if err := s.guard.RecordCycle(time.Now()); err != nil {
			slog.Warn("error recording fetch cycle time", "error", err)
		}
	}
}

func (s *Scheduler) runSource(source news.Source) {
	name := source.Name()

	fetched, err := source.Fetch()
	if err != nil {
		slog.Error("error fetching articles", "source", name, "error", err)
		return
	}

	var saved, duplicated, errored int

	for _, a := range fetched {
		if a.URL == "" {
			slog.Warn("skipping article without url", "source", name, "title", a.Title)
			errored++
			continue
		}

		article := model.Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			PublishedAt: a.PublishedAt,
			SourceName:  a.SourceName,
			SourceURL:   a.SourceURL,
			Category:    a.Category,
		}
		if article.Category == "" {
			article.Category = model.DefaultCategory
		}

		inserted, err := s.store.SaveArticle(&article)
		if err != nil {
			slog.Error("error saving article", "source", name, "url", a.URL, "error", err)
			errored++
			continue
		}

		if !inserted {
			duplicated++
			continue
		}

		saved++
	}

	slog.Info("fetch complete", "source", name, "saved", saved, "duplicated", duplicated, "errors", errored)
}
