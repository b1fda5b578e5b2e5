package config

import (
	"os"
	"strconv"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	PinterestAppID         string
	PinterestAppSecret     string
	PinterestRedirectURI   string
	PinterestBoardID       string
	InstagramClientID      string
	InstagramClientSecret  string
	InstagramRedirectURI   string
	TiktokClientKey        string
	TiktokClientSecret     string
	TiktokRedirectURI      string
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleRedirectURI      string
	ShopifyStoreDomain     string
	ShopifyAccessToken     string
	KlaviyoAPIKey          string
	KlaviyoListID          string
	PostgresURI            string
	RedisURI               string
	FrontendURL            string
	R2                     R2
	SecretKey              string
	CookieName             string
	WeekStartDay           string
	DefaultWeeklyQuota     int
	DigestRecipientProfile string
}

func LoadConfig() *Config {
	return &Config{
		PinterestAppID:        getEnv("PINTEREST_APP_ID", ""),
		PinterestAppSecret:    getEnv("PINTEREST_APP_SECRET", ""),
		PinterestRedirectURI:  getEnv("PINTEREST_REDIRECT_URI", ""),
		PinterestBoardID:      getEnv("PINTEREST_BOARD_ID", ""),
		InstagramClientID:     getEnv("INSTAGRAM_CLIENT_ID", ""),
		InstagramClientSecret: getEnv("INSTAGRAM_CLIENT_SECRET", ""),
		InstagramRedirectURI:  getEnv("INSTAGRAM_REDIRECT_URI", ""),
		TiktokClientKey:       getEnv("TIKTOK_CLIENT_KEY", ""),
		TiktokClientSecret:    getEnv("TIKTOK_CLIENT_SECRET", ""),
		TiktokRedirectURI:     getEnv("TIKTOK_REDIRECT_URI", ""),
		GoogleClientID:        getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:    getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:     getEnv("GOOGLE_REDIRECT_URI", ""),
		ShopifyStoreDomain:    getEnv("SHOPIFY_STORE_DOMAIN", ""),
		ShopifyAccessToken:    getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		KlaviyoAPIKey:         getEnv("KLAVIYO_API_KEY", ""),
		KlaviyoListID:         getEnv("KLAVIYO_LIST_ID", ""),
		PostgresURI:           getEnv("POSTGRES_URI", ""),
		RedisURI:              getEnv("REDIS_URI", ""),
		FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:              getEnv("SECRET_KEY", ""),
		CookieName:             getEnv("COOKIE_NAME", "havenhub_session"),
		WeekStartDay:           getEnv("WEEK_START_DAY", "monday"),
		DefaultWeeklyQuota:     getEnvInt("DEFAULT_WEEKLY_QUOTA", 10),
		DigestRecipientProfile: getEnv("DIGEST_RECIPIENT_PROFILE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
