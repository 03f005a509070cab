package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	OSMDB    DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Provider ProviderConfig
	Circuit  CircuitConfig
	Geometry GeometryConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// AdminLevels - уровни admin_level, для которых загружаются bbox
	AdminLevels []string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	StatsTTL time.Duration
}

type CacheConfig struct {
	MaxEntries      int
	JanitorInterval time.Duration
}

type LogConfig struct {
	Level string
}

// MirrorConfig - одно зеркало провайдера, сгруппированное по семейству
type MirrorConfig struct {
	ProviderID string
	URL        string
}

// ProviderConfig - настройки выполнения запросов к Overpass-совместимым зеркалам
type ProviderConfig struct {
	Mirrors           []MirrorConfig
	RequestTimeout    time.Duration
	MaxRetries        int
	BaseBackoff       time.Duration
	BackoffMultiplier float64
	MaxBackoff        time.Duration
	MinInterval       time.Duration
	UserAgent         string
}

type CircuitConfig struct {
	FailureThreshold int
	Cooldown         time.Duration
	HistorySize      int
}

type GeometryConfig struct {
	SimplifyTargetPoints int
	MaxMultipolygonRings int
}

type WorkerConfig struct {
	StatsPublishInterval time.Duration
	InstanceID           string
}

// Load читает .env из рабочей директории и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного env-файла; отсутствие файла не является ошибкой
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		OSMDB: DatabaseConfig{
			Enabled:         v.GetBool("BOUNDS_DB_ENABLED"),
			Host:            v.GetString("OSM_DB_HOST"),
			Port:            v.GetInt("OSM_DB_PORT"),
			User:            v.GetString("OSM_DB_USER"),
			Password:        v.GetString("OSM_DB_PASSWORD"),
			DBName:          v.GetString("OSM_DB_NAME"),
			SSLMode:         v.GetString("OSM_DB_SSLMODE"),
			MaxConns:        v.GetInt("OSM_DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("OSM_DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_IDLE_TIME")) * time.Second,
			AdminLevels:     parseList(v.GetString("BOUNDS_DB_ADMIN_LEVELS")),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			StatsTTL: time.Duration(v.GetInt("REDIS_STATS_TTL")) * time.Second,
		},
		Cache: CacheConfig{
			MaxEntries:      v.GetInt("CACHE_MAX_ENTRIES"),
			JanitorInterval: time.Duration(v.GetInt("CACHE_JANITOR_INTERVAL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Provider: ProviderConfig{
			Mirrors:           parseMirrors(v.GetString("PROVIDER_MIRRORS")),
			RequestTimeout:    time.Duration(v.GetInt("PROVIDER_TIMEOUT")) * time.Second,
			MaxRetries:        v.GetInt("PROVIDER_MAX_RETRIES"),
			BaseBackoff:       time.Duration(v.GetInt("PROVIDER_BASE_BACKOFF_MS")) * time.Millisecond,
			BackoffMultiplier: v.GetFloat64("PROVIDER_BACKOFF_MULTIPLIER"),
			MaxBackoff:        time.Duration(v.GetInt("PROVIDER_MAX_BACKOFF_MS")) * time.Millisecond,
			MinInterval:       time.Duration(v.GetInt("PROVIDER_MIN_INTERVAL_MS")) * time.Millisecond,
			UserAgent:         v.GetString("PROVIDER_USER_AGENT"),
		},
		Circuit: CircuitConfig{
			FailureThreshold: v.GetInt("CIRCUIT_FAILURE_THRESHOLD"),
			Cooldown:         time.Duration(v.GetInt("CIRCUIT_COOLDOWN_MS")) * time.Millisecond,
			HistorySize:      v.GetInt("CIRCUIT_HISTORY_SIZE"),
		},
		Geometry: GeometryConfig{
			SimplifyTargetPoints: v.GetInt("SIMPLIFY_TARGET_POINTS"),
			MaxMultipolygonRings: v.GetInt("MAX_MULTIPOLYGON_RINGS"),
		},
		Worker: WorkerConfig{
			StatsPublishInterval: time.Duration(v.GetInt("STATS_PUBLISH_INTERVAL")) * time.Second,
			InstanceID:           v.GetString("INSTANCE_ID"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if len(c.Provider.Mirrors) == 0 {
		c.Provider.Mirrors = []MirrorConfig{
			{ProviderID: "overpass", URL: "https://overpass-api.de/api/interpreter"},
			{ProviderID: "overpass", URL: "https://overpass.kumi.systems/api/interpreter"},
			{ProviderID: "overpass", URL: "https://overpass.private.coffee/api/interpreter"},
		}
	}
	if c.Provider.RequestTimeout == 0 {
		c.Provider.RequestTimeout = 30 * time.Second
	}
	if c.Provider.MaxRetries == 0 {
		c.Provider.MaxRetries = 3
	}
	if c.Provider.BaseBackoff == 0 {
		c.Provider.BaseBackoff = 1000 * time.Millisecond
	}
	if c.Provider.BackoffMultiplier == 0 {
		c.Provider.BackoffMultiplier = 2
	}
	if c.Provider.MaxBackoff == 0 {
		c.Provider.MaxBackoff = 30000 * time.Millisecond
	}
	if c.Provider.MinInterval == 0 {
		c.Provider.MinInterval = 15000 * time.Millisecond
	}
	if c.Provider.UserAgent == "" {
		c.Provider.UserAgent = "boundary-resolver/1.0"
	}

	if c.Circuit.FailureThreshold == 0 {
		c.Circuit.FailureThreshold = 5
	}
	if c.Circuit.Cooldown == 0 {
		c.Circuit.Cooldown = 2 * c.Provider.MaxBackoff
	}
	if c.Circuit.HistorySize == 0 {
		c.Circuit.HistorySize = 10
	}

	if c.Geometry.SimplifyTargetPoints == 0 {
		c.Geometry.SimplifyTargetPoints = 500
	}
	if c.Geometry.MaxMultipolygonRings == 0 {
		c.Geometry.MaxMultipolygonRings = 50
	}

	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 1024
	}
	if c.Cache.JanitorInterval == 0 {
		c.Cache.JanitorInterval = time.Minute
	}

	if c.Redis.StatsTTL == 0 {
		c.Redis.StatsTTL = 10 * time.Minute
	}
	if c.Worker.StatsPublishInterval == 0 {
		c.Worker.StatsPublishInterval = 30 * time.Second
	}
	if c.Worker.InstanceID == "" {
		if host, err := os.Hostname(); err == nil {
			c.Worker.InstanceID = host
		} else {
			c.Worker.InstanceID = "local"
		}
	}

	if len(c.OSMDB.AdminLevels) == 0 {
		c.OSMDB.AdminLevels = []string{"2", "4"}
	}
	if c.OSMDB.SSLMode == "" {
		c.OSMDB.SSLMode = "disable"
	}
}

// parseMirrors разбирает список вида "family=url,family=url"; url без семейства попадает в "overpass"
func parseMirrors(s string) []MirrorConfig {
	parts := parseList(s)
	if len(parts) == 0 {
		return nil
	}
	result := make([]MirrorConfig, 0, len(parts))
	for _, p := range parts {
		providerID, url, found := strings.Cut(p, "=")
		if !found {
			result = append(result, MirrorConfig{ProviderID: "overpass", URL: p})
			continue
		}
		providerID = strings.TrimSpace(providerID)
		url = strings.TrimSpace(url)
		if url == "" {
			continue
		}
		if providerID == "" {
			providerID = "overpass"
		}
		result = append(result, MirrorConfig{ProviderID: providerID, URL: url})
	}
	return result
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.OSMDB.Host,
		c.OSMDB.Port,
		c.OSMDB.User,
		c.OSMDB.Password,
		c.OSMDB.DBName,
		c.OSMDB.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
