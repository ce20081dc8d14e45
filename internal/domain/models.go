package domain

import (
	"context"
	"time"
)

// Target represents a scraping task
type Target struct {
	Subreddit string
	MinScore  int
}

// RawPost mirrors the fields of a Reddit listing entry before cleaning
type RawPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	URL         string  `json:"url"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
}

// Post is the clean data structure for storage
type Post struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	URL          string `json:"url"`
	Author       string `json:"author"`
	CreatedAt    string `json:"created_at"`
	Subreddit    string `json:"subreddit"`
	Score        int    `json:"score"`
	CommentCount int    `json:"comment_count"`
	IsProject    bool   `json:"is_project"`
}

// Collector defines the interface for data fetching
type Collector interface {
	FetchNewPosts(ctx context.Context, subreddit string, limit int) ([]RawPost, error)
}

// RefreshJob describes a registered periodic data refresh
type RefreshJob struct {
	JobID    string    `json:"job_id"`
	NextRun  time.Time `json:"next_run"`
	Interval string    `json:"interval"`
}
