package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Token signing
	TokenSecret    string `envconfig:"TOKEN_SECRET"`
	TokenTTLMin    uint   `envconfig:"TOKEN_TTL_MIN" default:"480"`
	TokenIssuer    string `envconfig:"TOKEN_ISSUER" default:"rutilahu"`
	CookieName     string `envconfig:"SESSION_COOKIE_NAME" default:"rutilahu_token"`
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes, base64
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes, base64

	// Document blob storage
	DocumentBucket    string `envconfig:"DOCUMENT_BUCKET" default:"rutilahu-documents"`
	DocumentKeyPrefix string `envconfig:"DOCUMENT_KEY_PREFIX" default:"documents"`

	// Generated report files
	ReportBucket    string `envconfig:"REPORT_BUCKET" default:"rutilahu-reports"`
	ReportKeyPrefix string `envconfig:"REPORT_KEY_PREFIX" default:"reports"`
}
