package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/hudsonmp/project-finder/internal/domain"
)

// WriterService appends processed posts to an NDJSON snapshot file. A
// single goroutine owns the file handle; concurrency is handled by the
// input channel.
type WriterService struct {
	FilePath string
}

func (w *WriterService) Start(wg *sync.WaitGroup, input <-chan domain.Post) {
	defer wg.Done()

	f, err := os.OpenFile(w.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		slog.Error("snapshot file open failed", "path", w.FilePath, "err", err)
		// drain so senders do not block
		for range input {
		}
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for post := range input {
		if err := enc.Encode(post); err != nil {
			slog.Error("snapshot write failed", "id", post.ID, "err", err)
		}
	}
}
