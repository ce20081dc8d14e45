package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/hudsonmp/project-finder/internal/domain"
)

// MockClient implements domain.Collector but returns fake data
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

var mockTitles = []string{
	"I built a habit tracker with nothing but a spreadsheet and cron",
	"Show off: my side project hit 100 users this week",
	"How do I structure a Flask app for a recommendation engine?",
	"Launched my open source markdown notes app, feedback welcome",
	"Is it normal to feel stuck after the tutorial phase?",
}

func (mc *MockClient) FetchNewPosts(ctx context.Context, sub string, limit int) ([]domain.RawPost, error) {
	// Simulate network latency (nice for testing concurrency)
	time.Sleep(200 * time.Millisecond)

	var posts []domain.RawPost
	for i := 0; i < limit; i++ {
		title := mockTitles[i%len(mockTitles)]
		body := fmt.Sprintf("Simulated selftext for %s post %d.", sub, i)
		author := "simulated_user"
		if i%7 == 3 {
			// sprinkle in tombstones so the processing path gets exercised
			author = "[deleted]"
			body = "[removed]"
		}
		posts = append(posts, domain.RawPost{
			ID:          fmt.Sprintf("mock_%s_%d", sub, i),
			Title:       fmt.Sprintf("[%s] %s", sub, title),
			SelfText:    body,
			URL:         "http://localhost/mock-url",
			Author:      author,
			CreatedUTC:  float64(time.Now().Unix()),
			Subreddit:   sub,
			Score:       rand.Intn(500),
			NumComments: rand.Intn(50),
		})
	}
	return posts, nil
}
