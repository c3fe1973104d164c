package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"youtube-fetcher/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	RedisClient RedisClient `json:"redisClient"`
	YouTube     YouTube     `json:"youtube"`
	Worker      Worker      `json:"worker"`
}

type App struct {
	Port   int    `json:"port"`
	APIKey string `json:"apiKey"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Database int    `json:"database"`
}

// YouTube holds scraper and Data API v3 settings. Mode is LIVE or MOCK;
// MOCK serves cached responses only and needs no API keys.
type YouTube struct {
	Mode         string   `json:"mode"`
	APIKeys      []string `json:"apiKeys"`
	CacheDir     string   `json:"cacheDir"`
	Cookies      string   `json:"cookies"`
	UserAgent    string   `json:"userAgent"`
	ThumbnailDir string   `json:"thumbnailDir"`
}

type Worker struct {
	Count int `json:"count"`
}

var C Config

func init() {
	// Env files must be in place before any env fallback is consulted
	LoadEnvFromFile("config.env", ".env")
	LoadConfig()
	initApp(&C)
	initRedis(&C)
	initYouTube(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	if C.App.Port == 0 {
		if v := os.Getenv("PORT"); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				C.App.Port = port
			}
		}
		if C.App.Port == 0 {
			C.App.Port = 10001
		}
	}
	if C.App.APIKey == "" {
		C.App.APIKey = os.Getenv("YOUTUBE_FETCHER_API_KEY")
	}
	if C.Worker.Count == 0 {
		C.Worker.Count = 2
	}
}

func initRedis(C *Config) {
	if C.RedisClient.Host == "" {
		C.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if C.RedisClient.Port == "" {
		if v := os.Getenv("REDIS_PORT"); v != "" {
			C.RedisClient.Port = v
		} else {
			C.RedisClient.Port = "6379"
		}
	}
	if C.RedisClient.Password == "" {
		C.RedisClient.Password = os.Getenv("REDIS_PASSWORD")
	}
}

func initYouTube(C *Config) {
	if C.YouTube.Mode == "" {
		C.YouTube.Mode = os.Getenv("YOUTUBE_MODE")
	}
	C.YouTube.Mode = strings.ToUpper(C.YouTube.Mode)
	if C.YouTube.Mode == "" {
		C.YouTube.Mode = "MOCK"
	}
	if C.YouTube.CacheDir == "" {
		if v := os.Getenv("YOUTUBE_CACHE_DIR"); v != "" {
			C.YouTube.CacheDir = v
		} else {
			C.YouTube.CacheDir = "cache/youtube"
		}
	}
	if C.YouTube.Cookies == "" {
		C.YouTube.Cookies = os.Getenv("YOUTUBE_COOKIES")
	}
	if C.YouTube.UserAgent == "" {
		C.YouTube.UserAgent = os.Getenv("YOUTUBE_USER_AGENT")
	}
	if C.YouTube.ThumbnailDir == "" {
		C.YouTube.ThumbnailDir = os.Getenv("YOUTUBE_THUMBNAIL_DIR")
	}
	// Up to 12 keys via YOUTUBE_API_KEY_1..12, appended after any configured list
	for i := 1; i <= 12; i++ {
		key := strings.TrimSpace(os.Getenv(fmt.Sprintf("YOUTUBE_API_KEY_%d", i)))
		if key != "" {
			C.YouTube.APIKeys = append(C.YouTube.APIKeys, key)
		}
	}
	if len(C.YouTube.APIKeys) > 12 {
		C.YouTube.APIKeys = C.YouTube.APIKeys[:12]
	}
}
