package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Redis     RedisConfig
	Invoice   InvoiceConfig
	Storage   StorageConfig
	PDF       PDFConfig
	Company   CompanyConfig

	// Warnings collected while loading, logged once the logger exists.
	Warnings []string
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// JWTConfig holds the shared secret used to verify tokens minted by the
// identity provider.
type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig is optional. An empty Addr disables the distributed lock and
// invoice numbering falls back to an in-process mutex.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type InvoiceConfig struct {
	LockTTL         time.Duration
	AllocateRetries int
}

// StorageConfig points at an S3-compatible bucket used to archive invoice PDFs.
type StorageConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

func (c StorageConfig) Enabled() bool {
	return c.Bucket != ""
}

// PDFConfig controls headless Chrome. An empty ChromeURL launches a local
// browser; otherwise the renderer attaches to a remote DevTools endpoint.
type PDFConfig struct {
	Timeout   time.Duration
	ChromeURL string
	NoSandbox bool
}

// CompanyConfig is printed on invoice documents, one legal entity per invoice type.
type CompanyConfig struct {
	IndiaName     string
	IndiaAddress  string
	IndiaGSTIN    string
	GlobalName    string
	GlobalAddress string
}

func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	var warnings []string
	if err := v.ReadInConfig(); err != nil {
		warnings = append(warnings, ".env file not found, using environment variables: "+err.Error())
	}

	return load(v, warnings)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "backoffice-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "backoffice")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("INVOICE_LOCK_TTL_SECONDS", 10)
	v.SetDefault("INVOICE_ALLOCATE_RETRIES", 3)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "auto")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_ACCESS_KEY_ID", "")
	v.SetDefault("S3_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_PUBLIC_URL", "")
	v.SetDefault("PDF_TIMEOUT_SECONDS", 30)
	v.SetDefault("PDF_CHROME_URL", "")
	v.SetDefault("PDF_NO_SANDBOX", false)
	v.SetDefault("COMPANY_INDIA_NAME", "")
	v.SetDefault("COMPANY_INDIA_ADDRESS", "")
	v.SetDefault("COMPANY_INDIA_GSTIN", "")
	v.SetDefault("COMPANY_GLOBAL_NAME", "")
	v.SetDefault("COMPANY_GLOBAL_ADDRESS", "")
}

func load(v *viper.Viper, warnings []string) *Config {
	setDefaults(v)

	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Invoice: InvoiceConfig{
			LockTTL:         time.Duration(v.GetInt("INVOICE_LOCK_TTL_SECONDS")) * time.Second,
			AllocateRetries: v.GetInt("INVOICE_ALLOCATE_RETRIES"),
		},
		Storage: StorageConfig{
			Bucket:          v.GetString("S3_BUCKET"),
			Region:          v.GetString("S3_REGION"),
			Endpoint:        v.GetString("S3_ENDPOINT"),
			AccessKeyID:     v.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("S3_SECRET_ACCESS_KEY"),
			PublicURL:       strings.TrimRight(v.GetString("S3_PUBLIC_URL"), "/"),
		},
		PDF: PDFConfig{
			Timeout:   time.Duration(v.GetInt("PDF_TIMEOUT_SECONDS")) * time.Second,
			ChromeURL: v.GetString("PDF_CHROME_URL"),
			NoSandbox: v.GetBool("PDF_NO_SANDBOX"),
		},
		Company: CompanyConfig{
			IndiaName:     v.GetString("COMPANY_INDIA_NAME"),
			IndiaAddress:  v.GetString("COMPANY_INDIA_ADDRESS"),
			IndiaGSTIN:    v.GetString("COMPANY_INDIA_GSTIN"),
			GlobalName:    v.GetString("COMPANY_GLOBAL_NAME"),
			GlobalAddress: v.GetString("COMPANY_GLOBAL_ADDRESS"),
		},
		Warnings: warnings,
	}
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
