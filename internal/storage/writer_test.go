package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudsonmp/project-finder/internal/domain"
)

func TestWriterService_WritesNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current.json")
	w := &WriterService{FilePath: path}

	input := make(chan domain.Post)
	var wg sync.WaitGroup
	wg.Add(1)
	go w.Start(&wg, input)

	sent := []domain.Post{
		{ID: "a1", Title: "first", Content: "first", Subreddit: "SideProject", CreatedAt: "2024-04-25T00:00:00Z"},
		{ID: "b2", Title: "second", Content: "second", Subreddit: "webdev", CreatedAt: "2024-04-25T01:00:00Z", IsProject: true},
	}
	for _, p := range sent {
		input <- p
	}
	close(input)
	wg.Wait()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []domain.Post
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var p domain.Post
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &p))
		got = append(got, p)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, sent, got)
}

func TestWriterService_AppendsAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current.json")

	for i := 0; i < 2; i++ {
		w := &WriterService{FilePath: path}
		input := make(chan domain.Post, 1)
		var wg sync.WaitGroup
		wg.Add(1)
		go w.Start(&wg, input)
		input <- domain.Post{ID: "run", Title: "post"}
		close(input)
		wg.Wait()
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := 0
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestWriterService_DrainsOnOpenFailure(t *testing.T) {
	// a directory path cannot be opened as a file; senders must not block
	w := &WriterService{FilePath: t.TempDir()}

	input := make(chan domain.Post)
	var wg sync.WaitGroup
	wg.Add(1)
	go w.Start(&wg, input)

	for i := 0; i < 5; i++ {
		input <- domain.Post{ID: "x"}
	}
	close(input)
	wg.Wait()
}
