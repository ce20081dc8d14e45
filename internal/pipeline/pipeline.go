package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hudsonmp/project-finder/internal/domain"
	"github.com/hudsonmp/project-finder/internal/processor"
	"github.com/hudsonmp/project-finder/internal/storage"
)

// Pipeline runs one fetch-clean-persist cycle over a set of targets
type Pipeline struct {
	Collector domain.Collector
	Processor *processor.Processor
	Store     *storage.PostStore
	Snapshot  chan<- domain.Post
	Limit     int
	Workers   int
	Logger    *slog.Logger
}

// Stats summarizes one refresh cycle
type Stats struct {
	Fetched   int
	Processed int
	Projects  int
}

// Refresh fans the targets out over a worker pool, processes the fetched
// batch, and persists it. A failed subreddit is logged and skipped; the
// cycle only fails on persistence errors or an empty fetch.
func (p *Pipeline) Refresh(ctx context.Context, targets []domain.Target) (Stats, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workers := p.Workers
	if workers < 1 {
		workers = 4
	}

	jobQueue := make(chan domain.Target, len(targets))
	batches := make(chan []domain.RawPost, len(targets))

	var workerWg sync.WaitGroup
	for i := 0; i < workers; i++ {
		workerWg.Add(1)
		go func() {
			defer workerWg.Done()
			for t := range jobQueue {
				select {
				case <-ctx.Done():
					return
				default:
				}
				raw, err := p.Collector.FetchNewPosts(ctx, t.Subreddit, p.Limit)
				if err != nil {
					logger.Error("scrape failed", "sub", t.Subreddit, "err", err)
					continue
				}
				if t.MinScore > 0 {
					kept := raw[:0]
					for _, r := range raw {
						if r.Score >= t.MinScore {
							kept = append(kept, r)
						}
					}
					raw = kept
				}
				batches <- raw
			}
		}()
	}

	for _, t := range targets {
		jobQueue <- t
	}
	close(jobQueue)
	workerWg.Wait()
	close(batches)

	var raw []domain.RawPost
	for batch := range batches {
		raw = append(raw, batch...)
	}

	stats := Stats{Fetched: len(raw)}
	posts, err := p.Processor.Process(raw)
	if err != nil {
		return stats, err
	}
	stats.Processed = len(posts)
	for _, post := range posts {
		if post.IsProject {
			stats.Projects++
		}
	}

	if p.Store != nil {
		if err := p.Store.Upsert(ctx, posts); err != nil {
			return stats, err
		}
	}
	// persisted; only now are the IDs committed to the dedupe cache
	p.Processor.MarkSeen(posts)

	if p.Snapshot != nil {
		for _, post := range posts {
			select {
			case p.Snapshot <- post:
			case <-ctx.Done():
				return stats, ctx.Err()
			}
		}
	}

	logger.Info("refresh cycle complete",
		"fetched", stats.Fetched, "processed", stats.Processed, "projects", stats.Projects)
	return stats, nil
}
