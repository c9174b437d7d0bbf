package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TickIntervalSeconds controls how often the dispatch job runs.
	TickIntervalSeconds int
	// MaxMatchDistanceKm bounds the matcher's candidate radius.
	MaxMatchDistanceKm float64
	// CallTimeoutMs is the per-call deadline for outbound HTTP requests.
	CallTimeoutMs int

	NotifierBaseURL string
	// RedisAddr points at the live courier-location feed. Empty disables
	// location refresh; the matcher then scores on registry locations only.
	RedisAddr string
}
