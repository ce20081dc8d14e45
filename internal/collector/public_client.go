package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/hudsonmp/project-finder/internal/domain"
)

const publicBaseURL = "https://www.reddit.com"

// PublicClient reads the unauthenticated listing JSON. Reddit throttles
// this path hard, so the limiter is stricter than the API client's.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

type listingResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				ID          string  `json:"id"`
				Title       string  `json:"title"`
				SelfText    string  `json:"selftext"`
				URL         string  `json:"url"`
				Author      string  `json:"author"`
				CreatedUTC  float64 `json:"created_utc"`
				Subreddit   string  `json:"subreddit"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewPublicClient(userAgent string) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("REDDIT_USER_AGENT is required for public mode")
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON limit: 1 req / 2 seconds
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
		baseURL:   publicBaseURL,
	}, nil
}

func (pc *PublicClient) FetchNewPosts(ctx context.Context, sub string, limit int) ([]domain.RawPost, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/r/%s/new.json?limit=%d", pc.baseURL, sub, limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", pc.userAgent)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit public access status: %d", resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}

	var posts []domain.RawPost
	for _, child := range listing.Data.Children {
		d := child.Data
		posts = append(posts, domain.RawPost{
			ID:          d.ID,
			Title:       d.Title,
			SelfText:    d.SelfText,
			URL:         d.URL,
			Author:      d.Author,
			CreatedUTC:  d.CreatedUTC,
			Subreddit:   d.Subreddit,
			Score:       d.Score,
			NumComments: d.NumComments,
		})
	}
	return posts, nil
}
