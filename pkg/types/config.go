package types

type Config struct {
	Environment      string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort       uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	DatabaseSchema   string `envconfig:"DATABASE_SCHEMA" default:"scholartrack"`
	DatabaseMaxConns int32  `envconfig:"DATABASE_MAX_CONNS" default:"4"`
	ReadTimeoutSec   uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec  uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Supabase table used instead of Postgres when DATABASE_URL is empty
	SupabaseURL    string `envconfig:"SUPABASE_URL"`
	SupabaseAPIKey string `envconfig:"SUPABASE_API_KEY"`
	SupabaseTable  string `envconfig:"SUPABASE_TABLE" default:"scholarships"`

	// Exports are copied here when set
	S3BucketName string `envconfig:"S3_BUCKET_NAME"`

	// Dashboard behaviour
	DeadlineWindowDays int  `envconfig:"DEADLINE_WINDOW_DAYS" default:"30"`
	SeedSampleData     bool `envconfig:"SEED_SAMPLE_DATA" default:"true"`

	// View state cookie keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}

// HasBackend reports whether scholarships are synced to a remote table.
func (c *Config) HasBackend() bool {
	return c.DatabaseURL != "" || (c.SupabaseURL != "" && c.SupabaseAPIKey != "")
}
