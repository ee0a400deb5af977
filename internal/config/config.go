package config

import (
	"github.com/caarlos0/env/v11"

	"adforge/internal/config/configs"
)

// Config aggregates every configuration section. Fields are populated from
// environment variables via caarlos0/env; nested structs carry an envPrefix
// so their fields parse with the given prefix. Defaults live on the
// individual types in the configs package. Use Load to construct one.
type Config struct {
	// Env names the deployment environment (prod, dev). Only used for
	// logging context.
	Env string `env:"ENV" envDefault:"prod"`

	HTTP configs.HTTP     `envPrefix:"HTTP_"`
	Log  configs.Logger   `envPrefix:"LOG_"`
	Psql configs.Postgres `envPrefix:"PSQL_"`

	Redis configs.Redis `envPrefix:"REDIS_"`

	Attribution configs.Attribution `envPrefix:"ATTRIBUTION_"`
	Insight     configs.Insight     `envPrefix:"INSIGHT_"`
	Scraper     configs.Scraper     `envPrefix:"SCRAPER_"`

	Engine configs.Engine `envPrefix:"ENGINE_"`
}

// Load reads configuration from environment variables into a Config,
// applying defaults where no variable is set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
