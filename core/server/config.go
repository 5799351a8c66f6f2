package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// CronSecret is the bearer secret required by the scheduled sync trigger.
	// If empty, the cron endpoint accepts unauthenticated calls.
	CronSecret string `mapstructure:"cron_secret" default:""`
}

// RequiresCronAuth reports whether the scheduled trigger must present a secret.
func (c Config) RequiresCronAuth() bool {
	return c.CronSecret != ""
}
