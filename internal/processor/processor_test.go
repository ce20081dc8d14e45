package processor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hudsonmp/project-finder/internal/domain"
)

func rawPost(id, title, body string) domain.RawPost {
	return domain.RawPost{
		ID:          id,
		Title:       title,
		SelfText:    body,
		URL:         "https://reddit.com/r/SideProject/comments/" + id,
		Author:      "someone",
		CreatedUTC:  1714000000,
		Subreddit:   "SideProject",
		Score:       10,
		NumComments: 3,
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	p := New(nil, time.Hour)

	_, err := p.Process(nil)
	assert.ErrorIs(t, err, ErrNoPosts)

	_, err = p.Process([]domain.RawPost{})
	assert.ErrorIs(t, err, ErrNoPosts)
}

func TestProcess_FiltersTombstones(t *testing.T) {
	p := New(nil, time.Hour)

	deleted := rawPost("a1", "Some title", "body")
	deleted.Author = "[deleted]"
	removed := rawPost("a2", "Another title", "[removed]")
	kept := rawPost("a3", "A title that stays", "with content")

	posts, err := p.Process([]domain.RawPost{deleted, removed, kept})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a3", posts[0].ID)
}

func TestProcess_SkipsMalformed(t *testing.T) {
	p := New(nil, time.Hour)

	posts, err := p.Process([]domain.RawPost{
		rawPost("", "no id", "body"),
		rawPost("b1", "", "title cleans to empty"),
		rawPost("b2", "valid", "ok"),
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "b2", posts[0].ID)
}

func TestProcess_CombinesTitleAndBody(t *testing.T) {
	p := New(nil, time.Hour)

	posts, err := p.Process([]domain.RawPost{
		rawPost("c1", "  My   title ", "Some\nbody   text"),
		rawPost("c2", "Link post", ""),
	})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "My title", posts[0].Title)
	assert.Equal(t, "My title\n\nSome body text", posts[0].Content)
	// a link post without selftext keeps just the title
	assert.Equal(t, "Link post", posts[1].Content)
}

func TestProcess_CreatedAtIsRFC3339UTC(t *testing.T) {
	p := New(nil, time.Hour)

	posts, err := p.Process([]domain.RawPost{rawPost("d1", "title", "body")})
	require.NoError(t, err)
	require.Len(t, posts, 1)

	parsed, err := time.Parse(time.RFC3339, posts[0].CreatedAt)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1714000000, 0).UTC(), parsed)
}

func TestProcess_ProjectClassification(t *testing.T) {
	p := New(nil, time.Hour)

	tests := []struct {
		name  string
		title string
		body  string
		want  bool
	}{
		{"built signal in title", "I built a budgeting app over the weekend", "", true},
		{"github link in body", "Weekend hack", "code at github.com/x/y", true},
		{"side project phrase", "My new side project", "", true},
		{"plain question", "How do I learn recursion?", "I keep getting confused.", false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := p.Process([]domain.RawPost{
				rawPost(string(rune('p'+i))+"-classify", tt.title, tt.body),
			})
			require.NoError(t, err)
			require.Len(t, posts, 1)
			assert.Equal(t, tt.want, posts[0].IsProject)
		})
	}
}

func TestProcess_CustomKeywords(t *testing.T) {
	p := New([]string{"Arduino"}, time.Hour)

	posts, err := p.Process([]domain.RawPost{
		rawPost("k1", "My arduino weather station", ""),
		rawPost("k2", "I built a web app", ""),
	})
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// custom keywords replace the defaults, case-insensitively
	assert.True(t, posts[0].IsProject)
	assert.False(t, posts[1].IsProject)
}

func TestProcess_DedupeAcrossCycles(t *testing.T) {
	p := New(nil, time.Hour)

	first, err := p.Process([]domain.RawPost{rawPost("e1", "title", "body")})
	require.NoError(t, err)
	require.Len(t, first, 1)
	p.MarkSeen(first)

	second, err := p.Process([]domain.RawPost{
		rawPost("e1", "title", "body"),
		rawPost("e2", "fresh post", "body"),
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "e2", second[0].ID)
}

func TestProcess_DedupeWithinBatch(t *testing.T) {
	p := New(nil, time.Hour)

	posts, err := p.Process([]domain.RawPost{
		rawPost("g1", "crossposted", "body"),
		rawPost("g1", "crossposted", "body"),
	})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestProcess_UnmarkedBatchIsRetried(t *testing.T) {
	// a cycle that fails to persist never calls MarkSeen, so the same
	// posts must come through again on the next cycle
	p := New(nil, time.Hour)

	first, err := p.Process([]domain.RawPost{rawPost("h1", "title", "body")})
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := p.Process([]domain.RawPost{rawPost("h1", "title", "body")})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "h1", second[0].ID)
}

func TestProcess_DedupeExpires(t *testing.T) {
	p := New(nil, 20*time.Millisecond)

	first, err := p.Process([]domain.RawPost{rawPost("f1", "title", "body")})
	require.NoError(t, err)
	p.MarkSeen(first)

	time.Sleep(50 * time.Millisecond)

	posts, err := p.Process([]domain.RawPost{rawPost("f1", "title", "body")})
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
