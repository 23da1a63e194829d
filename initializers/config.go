package initializers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig  `mapstructure:"server"`
	Log          LogConfig     `mapstructure:"log"`
	MySQL        MySQLConfig   `mapstructure:"mysql"`
	Redis        RedisConfig   `mapstructure:"redis"`
	Mongo        MongoConfig   `mapstructure:"mongo"`
	Storage      StorageConfig `mapstructure:"storage"`
	Auth         AuthConfig    `mapstructure:"auth"`
	Mail         MailConfig    `mapstructure:"mail"`
	Cache        CacheConfig   `mapstructure:"cache"`
	Cart         CartConfig    `mapstructure:"cart"`
	DegradedMode bool          `mapstructure:"degraded_mode"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	ExposeStack    bool     `mapstructure:"expose_stack"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type StorageConfig struct {
	Bucket         string `mapstructure:"bucket"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
	PlaceholderURL string `mapstructure:"placeholder_url"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type MailConfig struct {
	From        string `mapstructure:"from"`
	Password    string `mapstructure:"password"`
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPAddress string `mapstructure:"smtp_address"`
	NotifyTo    string `mapstructure:"notify_to"`
}

// Enabled reports whether enough is configured to send mail.
func (m MailConfig) Enabled() bool {
	return m.From != "" && m.SMTPAddress != "" && m.NotifyTo != ""
}

type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// CartConfig applies to server-side session carts.
type CartConfig struct {
	StockPolicy string        `mapstructure:"stock_policy"`
	SessionTTL  time.Duration `mapstructure:"session_ttl"`
}

func (c *MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// LoadEnv reads .env into the process environment when the file exists.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

// LoadConfig merges defaults, an optional YAML file named by CONFIG_FILE and
// the environment, in increasing priority. Nested keys map to upper-case
// environment names with dots replaced by underscores (mysql.host is
// MYSQL_HOST).
func LoadConfig() (*Config, error) {
	if err := LoadEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, err
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// envAliases accepts the variable names used by earlier deployments.
var envAliases = map[string][]string{
	"server.port":       {"SERVER_PORT", "PORT"},
	"auth.jwt_secret":   {"AUTH_JWT_SECRET", "JWT_SECRET"},
	"mail.from":         {"MAIL_FROM", "FROM_EMAIL"},
	"mail.password":     {"MAIL_PASSWORD", "FROM_EMAIL_PASSWORD"},
	"mail.smtp_host":    {"MAIL_SMTP_HOST", "FROM_EMAIL_SMTP"},
	"mail.smtp_address": {"MAIL_SMTP_ADDRESS", "SMTP_ADDRESS"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.expose_stack", false)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("log.level", "info")

	v.SetDefault("mysql.host", "localhost")
	v.SetDefault("mysql.port", 3306)
	v.SetDefault("mysql.username", "root")
	v.SetDefault("mysql.password", "")
	v.SetDefault("mysql.database", "storefront")
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("mysql.max_open_conns", 50)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	v.SetDefault("mongo.enabled", false)
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "storefront")
	v.SetDefault("mongo.collection", "audit_logs")

	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.public_base_url", "")
	v.SetDefault("storage.placeholder_url", "")

	v.SetDefault("auth.jwt_secret", "")

	v.SetDefault("mail.from", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.smtp_host", "")
	v.SetDefault("mail.smtp_address", "")
	v.SetDefault("mail.notify_to", "")

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 5*time.Minute)

	v.SetDefault("cart.stock_policy", "none")
	v.SetDefault("cart.session_ttl", 7*24*time.Hour)

	v.SetDefault("degraded_mode", false)
}
