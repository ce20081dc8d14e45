package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"golang.org/x/time/rate"

	"github.com/hudsonmp/project-finder/internal/config"
	"github.com/hudsonmp/project-finder/internal/domain"
)

// APIClient fetches posts through the authenticated Reddit API. It is
// read-only: the credentials grant no write scope and none is requested.
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

// NewAPIClient validates the configured credentials and builds a client.
// A missing credential returns *config.MissingCredentialsError naming
// exactly the unset variables.
func NewAPIClient(cfg *config.Config) (*APIClient, error) {
	if err := cfg.ValidateRedditCredentials(); err != nil {
		return nil, err
	}

	creds := reddit.Credentials{
		ID:       cfg.RedditClientID,
		Secret:   cfg.RedditClientSecret,
		Username: cfg.RedditUsername,
		Password: cfg.RedditPassword,
	}
	client, err := reddit.NewClient(creds, reddit.WithUserAgent(cfg.RedditUserAgent))
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}

	// Token bucket sized from the configured requests/minute budget
	perMinute := cfg.RedditRateLimit
	if perMinute < 1 {
		perMinute = 60
	}
	interval := time.Minute / time.Duration(perMinute)
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	return &APIClient{client: client, limiter: limiter}, nil
}

func (ac *APIClient) FetchNewPosts(ctx context.Context, sub string, limit int) ([]domain.RawPost, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.NewPosts(ctx, sub, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("authenticated api error: %w", err)
	}

	var result []domain.RawPost
	for _, p := range posts {
		result = append(result, domain.RawPost{
			ID:          p.ID,
			Title:       p.Title,
			SelfText:    p.Body,
			URL:         p.URL,
			Author:      p.Author,
			CreatedUTC:  float64(p.Created.Time.Unix()),
			Subreddit:   p.SubredditName,
			Score:       p.Score,
			NumComments: p.NumberOfComments,
		})
	}
	return result, nil
}
