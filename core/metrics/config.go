package metrics

// Config holds configuration for the prometheus endpoint.
type Config struct {
	// Enabled toggles metrics collection and the scrape endpoint.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Path is the route the scrape endpoint is mounted on.
	Path string `mapstructure:"path" default:"/metrics"`
}
