package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result modes for the recommendation query surface
const (
	ResultModeFixed     = "fixed"     // return exactly N results
	ResultModeThreshold = "threshold" // return all results above threshold
)

// DefaultSubreddits are the communities scraped when no override file exists.
// Chosen for their relevance to programming projects.
var DefaultSubreddits = []string{
	"SideProject",
	"learnprogramming",
	"vibecoding",
	"ChatGPTCoding",
	"webdev",
}

// Config holds all application configuration
type Config struct {
	// Reddit API credentials for read-only access
	RedditClientID     string
	RedditClientSecret string
	RedditUsername     string
	RedditPassword     string
	RedditUserAgent    string

	// CollectorMode selects the fetch implementation: api, public, or mock
	CollectorMode string

	// Subreddits to scrape each cycle
	Subreddits []string

	// Pinecone settings, loaded for the embedding/retrieval stages
	PineconeAPIKey      string
	PineconeEnvironment string
	PineconeIndexName   string
	PineconeDimension   int

	// OpenAI settings, loaded for plan generation
	OpenAIAPIKey string
	OpenAIModel  string

	// Server settings
	Debug bool
	Port  string

	// Data refresh settings
	RefreshInterval      time.Duration
	MaxPostsPerSubreddit int

	// Search contains the similarity-threshold tuning block
	Search SearchConfig

	// API rate limits, requests per minute
	RedditRateLimit int
	OpenAIRateLimit int
}

// SearchConfig holds vector search tuning values
type SearchConfig struct {
	// BaseSimilarityThreshold can be adjusted dynamically within [Min, Max]
	BaseSimilarityThreshold float64
	MinSimilarityThreshold  float64
	MaxSimilarityThreshold  float64

	// QueryLengthThreshold is the character count above which a query is
	// considered detailed; SpecificityBoost raises the threshold for those
	QueryLengthThreshold int
	SpecificityBoost     float64

	// Interest category adjustment
	MaxInterestCategories  int
	InterestDiversityBoost float64

	// Result count bounds
	DefaultMaxRecommendations int
	MinRecommendations        int
	MaxRecommendations        int
	ResultMode                string
}

// Load reads configuration from the environment. It never fails: missing
// credentials are surfaced later by ValidateRedditCredentials so that
// startup in public or mock mode works without any Reddit secrets.
func Load() *Config {
	return &Config{
		RedditClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		RedditClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		RedditUsername:     os.Getenv("REDDIT_USERNAME"),
		RedditPassword:     os.Getenv("REDDIT_PASSWORD"),
		RedditUserAgent:    os.Getenv("REDDIT_USER_AGENT"),
		CollectorMode:      getEnvOrDefault("COLLECTOR_MODE", "api"),

		Subreddits: DefaultSubreddits,

		PineconeAPIKey:      os.Getenv("PINECONE_API_KEY"),
		PineconeEnvironment: os.Getenv("PINECONE_ENVIRONMENT"),
		PineconeIndexName:   "vibe-coding-projects",
		PineconeDimension:   384,

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  "o4-mini",

		Debug: getEnvAsBoolOrDefault("DEBUG", true),
		Port:  getEnvOrDefault("PORT", "5000"),

		RefreshInterval:      time.Duration(getEnvAsIntOrDefault("REFRESH_INTERVAL_HOURS", 48)) * time.Hour,
		MaxPostsPerSubreddit: getEnvAsIntOrDefault("MAX_POSTS_PER_SUBREDDIT", 50),

		Search: SearchConfig{
			BaseSimilarityThreshold:   0.75,
			MinSimilarityThreshold:    0.65,
			MaxSimilarityThreshold:    0.85,
			QueryLengthThreshold:      50,
			SpecificityBoost:          0.05,
			MaxInterestCategories:     5,
			InterestDiversityBoost:    0.03,
			DefaultMaxRecommendations: 10,
			MinRecommendations:        5,
			MaxRecommendations:        20,
			ResultMode:                ResultModeFixed,
		},

		RedditRateLimit: getEnvAsIntOrDefault("REDDIT_RATE_LIMIT", 60),
		OpenAIRateLimit: getEnvAsIntOrDefault("OPENAI_RATE_LIMIT", 20),
	}
}

// MissingCredentialsError reports which Reddit credential variables are unset
type MissingCredentialsError struct {
	Vars []string
}

func (e *MissingCredentialsError) Error() string {
	return "missing required Reddit credentials: " + strings.Join(e.Vars, ", ")
}

// ValidateRedditCredentials checks the three variables the authenticated
// client needs. The returned error names exactly the unset ones.
func (c *Config) ValidateRedditCredentials() error {
	var missing []string
	if c.RedditClientID == "" {
		missing = append(missing, "REDDIT_CLIENT_ID")
	}
	if c.RedditClientSecret == "" {
		missing = append(missing, "REDDIT_CLIENT_SECRET")
	}
	if c.RedditUserAgent == "" {
		missing = append(missing, "REDDIT_USER_AGENT")
	}
	if len(missing) > 0 {
		return &MissingCredentialsError{Vars: missing}
	}
	return nil
}

// Validate checks structural sanity. Credential presence is deliberately
// not checked here; see ValidateRedditCredentials.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port cannot be empty")
	}
	if len(c.Subreddits) == 0 {
		return errors.New("subreddit list cannot be empty")
	}
	if c.RefreshInterval < time.Minute {
		return errors.New("refresh interval must be at least one minute")
	}
	if c.MaxPostsPerSubreddit < 1 {
		return errors.New("max posts per subreddit must be at least 1")
	}
	if c.RedditRateLimit < 1 {
		return errors.New("reddit rate limit must be at least 1 request per minute")
	}
	switch c.CollectorMode {
	case "api", "public", "mock":
	default:
		return fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", c.CollectorMode)
	}
	if c.Search.ResultMode != ResultModeFixed && c.Search.ResultMode != ResultModeThreshold {
		return fmt.Errorf("result mode must be %q or %q", ResultModeFixed, ResultModeThreshold)
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
