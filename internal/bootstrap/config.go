package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort        string        `mapstructure:"SERVER_PORT"`
	GrpcPort          string        `mapstructure:"GRPC_PORT"`
	IsLocalCors       bool          `mapstructure:"LOCAL_CORS"`
	LogDevelopment    bool          `mapstructure:"LOG_DEVELOPMENT"`
	StorageType       string        `mapstructure:"STORAGE_TYPE"`
	MongoUri          string        `mapstructure:"MONGO_URI"`
	MongoDatabase     string        `mapstructure:"MONGO_DATABASE"`
	RedisUrl          string        `mapstructure:"REDIS_URL"`
	RatingCacheTTL    time.Duration `mapstructure:"RATING_CACHE_TTL"`
	TimedGameDuration time.Duration `mapstructure:"TIMED_GAME_DURATION"`
	TickInterval      time.Duration `mapstructure:"TICK_INTERVAL"`
	StartGrace        time.Duration `mapstructure:"START_GRACE"`
	ResultLinger      time.Duration `mapstructure:"RESULT_LINGER"`
	JoinTimeout       time.Duration `mapstructure:"JOIN_TIMEOUT"`
	StoreTimeout      time.Duration `mapstructure:"STORE_TIMEOUT"`
	DefaultRating     float64       `mapstructure:"DEFAULT_RATING"`
	RatingK           float64       `mapstructure:"RATING_K"`
}

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

var defaults = map[string]any{
	"SERVER_PORT":         "8080",
	"GRPC_PORT":           "8082",
	"LOCAL_CORS":          false,
	"LOG_DEVELOPMENT":     false,
	"STORAGE_TYPE":        StorageMemory,
	"MONGO_URI":           "mongodb://localhost:27017",
	"MONGO_DATABASE":      "gomoku",
	"REDIS_URL":           "",
	"RATING_CACHE_TTL":    "10m",
	"TIMED_GAME_DURATION": "150s",
	"TICK_INTERVAL":       "1s",
	"START_GRACE":         "3s",
	"RESULT_LINGER":       "30s",
	"JOIN_TIMEOUT":        "2m",
	"STORE_TIMEOUT":       "5s",
	"DEFAULT_RATING":      1000,
	"RATING_K":            32,
}

// Setup reads the dotenv file at cfgPath and overlays environment variables.
// A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
