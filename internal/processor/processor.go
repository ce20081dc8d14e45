package processor

import (
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/hudsonmp/project-finder/internal/domain"
)

// ErrNoPosts is returned when Process is handed nothing to work with.
var ErrNoPosts = errors.New("no posts to process")

// defaultProjectKeywords flag a post as a project rather than a question
// or discussion. Overridable via input/keywords.csv.
var defaultProjectKeywords = []string{
	"i built",
	"i made",
	"i created",
	"side project",
	"my app",
	"launched",
	"just shipped",
	"open source",
	"github.com",
	"show off",
	"built with",
	"mvp",
	"prototype",
	"feedback welcome",
}

// Processor cleans raw posts into the storage shape. It remembers post IDs
// across cycles so a refresh does not re-emit posts already handled.
type Processor struct {
	keywords []string
	seen     *gocache.Cache
}

// New builds a Processor. dedupeTTL bounds how long a post ID is
// remembered; zero keywords falls back to the default project signals.
func New(keywords []string, dedupeTTL time.Duration) *Processor {
	if len(keywords) == 0 {
		keywords = defaultProjectKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &Processor{
		keywords: lowered,
		seen:     gocache.New(dedupeTTL, dedupeTTL/2),
	}
}

// Process cleans and classifies a batch of raw posts. Tombstoned posts,
// posts with empty cleaned content, and posts already marked seen are
// dropped. Individually malformed entries are skipped, not fatal.
//
// Process does not record IDs itself: the caller marks the batch seen via
// MarkSeen once it has been persisted, so a failed cycle is retried in
// full on the next refresh.
func (p *Processor) Process(raw []domain.RawPost) ([]domain.Post, error) {
	if len(raw) == 0 {
		return nil, ErrNoPosts
	}

	posts := make([]domain.Post, 0, len(raw))
	inBatch := make(map[string]bool, len(raw))
	for _, r := range raw {
		if r.ID == "" {
			continue
		}
		if isTombstone(r.Author) {
			continue
		}

		title := CleanText(r.Title)
		body := r.SelfText
		if isTombstone(body) {
			continue
		}
		body = CleanText(body)

		if title == "" {
			continue
		}

		if _, dup := p.seen.Get(r.ID); dup {
			continue
		}
		if inBatch[r.ID] {
			continue
		}
		inBatch[r.ID] = true

		content := title
		if body != "" {
			content = title + "\n\n" + body
		}

		posts = append(posts, domain.Post{
			ID:           r.ID,
			Title:        title,
			Content:      content,
			URL:          r.URL,
			Author:       r.Author,
			CreatedAt:    time.Unix(int64(r.CreatedUTC), 0).UTC().Format(time.RFC3339),
			Subreddit:    r.Subreddit,
			Score:        r.Score,
			CommentCount: r.NumComments,
			IsProject:    p.classify(title, body),
		})
	}
	return posts, nil
}

// MarkSeen records post IDs in the dedupe cache. Call it only after the
// batch has been persisted; until then the posts stay eligible for the
// next cycle.
func (p *Processor) MarkSeen(posts []domain.Post) {
	for _, post := range posts {
		p.seen.SetDefault(post.ID, struct{}{})
	}
}

func (p *Processor) classify(title, body string) bool {
	text := strings.ToLower(title + " " + body)
	for _, k := range p.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func isTombstone(s string) bool {
	switch strings.TrimSpace(s) {
	case "[deleted]", "[removed]":
		return true
	}
	return false
}
