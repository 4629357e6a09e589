package config

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Auth           AuthConfig           `mapstructure:"auth"`
	TOTP           TOTPConfig           `mapstructure:"totp"`
	Preview        PreviewConfig        `mapstructure:"preview"`
	Storage        StorageConfig        `mapstructure:"storage"`
	CloudStorage   CloudStorageConfig   `mapstructure:"cloud_storage"`
	Cache          CacheConfig          `mapstructure:"cache"`
	CORS           CORSConfig           `mapstructure:"cors"`
	Metrics        MetricsConfig        `mapstructure:"metrics"`
	Maintenance    MaintenanceConfig    `mapstructure:"maintenance"`
	EmergencyReset EmergencyResetConfig `mapstructure:"emergency_reset"`
	Bootstrap      BootstrapConfig      `mapstructure:"bootstrap"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Name            string `mapstructure:"name"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
}

// AuthConfig carries the fixed windows of the authentication subsystem.
// Defaults match production behaviour: 1h idle timeout, 5 attempts / 15min.
type AuthConfig struct {
	SessionTimeout   string `mapstructure:"session_timeout"`
	BruteForceWindow string `mapstructure:"brute_force_window"`
	MaxFailedLogins  int    `mapstructure:"max_failed_logins"`
	CookieName       string `mapstructure:"cookie_name"`
	CookieSecure     bool   `mapstructure:"cookie_secure"`
	CookieDomain     string `mapstructure:"cookie_domain"`
}

type TOTPConfig struct {
	Issuer string `mapstructure:"issuer"`
	Period uint   `mapstructure:"period"`
	Digits uint   `mapstructure:"digits"`
}

// PreviewConfig signs short-lived links to unpublished catalog entries.
type PreviewConfig struct {
	Secret string `mapstructure:"secret"`
	Expiry string `mapstructure:"expiry"`
}

type StorageConfig struct {
	Path             string   `mapstructure:"path"`
	MaxFileSizeMB    int      `mapstructure:"max_file_size_mb"`
	AllowedMimeTypes []string `mapstructure:"allowed_mime_types"`
}

type CloudStorageConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	Endpoint         string `mapstructure:"endpoint"`
	AccessKey        string `mapstructure:"access_key"` // Azure: Storage Account Name
	SecretKey        string `mapstructure:"secret_key"` // Azure: Storage Account Key
	PublicContainer  string `mapstructure:"public_container"`
	PrivateContainer string `mapstructure:"private_container"`
}

type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      string `mapstructure:"ttl"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type MaintenanceConfig struct {
	CronSecret string `mapstructure:"cron_secret"`
}

// EmergencyResetConfig restricts the unauthenticated password-reset escape
// hatch to an explicit set of source addresses.
type EmergencyResetConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowedAddresses []string `mapstructure:"allowed_addresses"`
}

// BootstrapConfig seeds the initial admin account when the table is empty.
type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults and env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Override with environment variables
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		cfg.Database.Host = dbHost
	}
	if dbPass := os.Getenv("DB_PASSWORD"); dbPass != "" {
		cfg.Database.Password = dbPass
	}
	if secret := os.Getenv("PREVIEW_SECRET"); secret != "" {
		cfg.Preview.Secret = secret
	}
	if secret := os.Getenv("CRON_SECRET"); secret != "" {
		cfg.Maintenance.CronSecret = secret
	}
	if pw := os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"); pw != "" {
		cfg.Bootstrap.AdminPassword = pw
	}
	if allow := os.Getenv("EMERGENCY_RESET_ALLOWED"); allow != "" {
		cfg.EmergencyReset.AllowedAddresses = strings.Split(allow, ",")
		cfg.EmergencyReset.Enabled = true
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("auth.session_timeout", "1h")
	v.SetDefault("auth.brute_force_window", "15m")
	v.SetDefault("auth.max_failed_logins", 5)
	v.SetDefault("auth.cookie_name", "cms_session")
	v.SetDefault("totp.issuer", "EastAfricom CMS")
	v.SetDefault("totp.period", 30)
	v.SetDefault("totp.digits", 6)
	v.SetDefault("preview.expiry", "24h")
	v.SetDefault("storage.path", "./storage/uploads")
	v.SetDefault("storage.max_file_size_mb", 10)
	v.SetDefault("storage.allowed_mime_types", []string{"image/jpeg", "image/png", "image/webp", "image/svg+xml"})
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// GetURL returns the postgres:// URL form used by golang-migrate.
func (c *DatabaseConfig) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Helper methods to parse duration strings

func (c *AuthConfig) GetSessionTimeout() (time.Duration, error) {
	return parseDuration(c.SessionTimeout)
}

func (c *AuthConfig) GetBruteForceWindow() (time.Duration, error) {
	return parseDuration(c.BruteForceWindow)
}

func (c *PreviewConfig) GetExpiry() (time.Duration, error) {
	return parseDuration(c.Expiry)
}

func (c *CacheConfig) GetTTL() (time.Duration, error) {
	return parseDuration(c.TTL)
}

func (c *ServerConfig) GetReadTimeout() (time.Duration, error) {
	return parseDuration(c.ReadTimeout)
}

func (c *ServerConfig) GetWriteTimeout() (time.Duration, error) {
	return parseDuration(c.WriteTimeout)
}

func (c *ServerConfig) GetShutdownTimeout() (time.Duration, error) {
	return parseDuration(c.ShutdownTimeout)
}

func (c *DatabaseConfig) GetConnMaxLifetime() (time.Duration, error) {
	return parseDuration(c.ConnMaxLifetime)
}

// TunePool applies the configured connection-pool limits to an open pool.
func (c *DatabaseConfig) TunePool(sqlDB *sql.DB) error {
	lifetime, err := c.GetConnMaxLifetime()
	if err != nil {
		return fmt.Errorf("invalid conn_max_lifetime: %w", err)
	}
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(lifetime)
	return nil
}

// parseDuration parses duration strings like "7d", "24h", "30m"
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}

	// Handle days (e.g., "7d")
	if len(s) > 1 && s[len(s)-1] == 'd' {
		days := s[:len(s)-1]
		var d int
		_, err := fmt.Sscanf(days, "%d", &d)
		if err != nil {
			return 0, fmt.Errorf("invalid duration format: %s", s)
		}
		return time.Duration(d) * 24 * time.Hour, nil
	}

	return time.ParseDuration(s)
}
