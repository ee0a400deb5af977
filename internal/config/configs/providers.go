package configs

import "time"

// Attribution configures the channel-metrics provider. An empty APIKey or
// ShopID leaves sync unconfigured; /sync/metrics then reports the failure
// instead of pulling.
type Attribution struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://api.triplewhale.com/api/v2"`
	APIKey  string        `env:"API_KEY" envDefault:""`
	ShopID  string        `env:"SHOP_ID" envDefault:""`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Insight configures the generative-analysis provider.
type Insight struct {
	BaseURL   string        `env:"BASE_URL" envDefault:"https://api.anthropic.com"`
	APIKey    string        `env:"API_KEY" envDefault:""`
	Model     string        `env:"MODEL" envDefault:"claude-sonnet-4-5"`
	MaxTokens int           `env:"MAX_TOKENS" envDefault:"1000"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"60s"`
}

// Scraper configures the actor-based comment scraping service.
type Scraper struct {
	BaseURL      string        `env:"BASE_URL" envDefault:"https://api.apify.com"`
	Token        string        `env:"TOKEN" envDefault:""`
	ActorID      string        `env:"ACTOR_ID" envDefault:"BDec00yAmCm1QbMEI"`
	MaxComments  int           `env:"MAX_COMMENTS" envDefault:"100"`
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"5s"`
	MaxWait      time.Duration `env:"MAX_WAIT" envDefault:"2m"`
}
