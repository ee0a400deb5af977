package configs

import "time"

// Redis configures the transient notification feed. Leaving Addr empty
// disables redis entirely; the notifier then degrades to log-only.
type Redis struct {
	Addr     string        `env:"ADDRESS" envDefault:""`
	Password string        `env:"PASSWORD" envDefault:""`
	DB       int           `env:"DB" envDefault:"0"`
	TTL      time.Duration `env:"TTL" envDefault:"168h"`
}
