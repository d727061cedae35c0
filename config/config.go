package config

import (
	"log"
	"os"
	"strconv"
)

const (
	defaultDatabasePath = "resolutions.db"
	defaultCommitEvery  = 1000
	defaultCrawlStep    = 1
)

type Config struct {
	// records portal root, eg. https://townname.iqm2.com
	BaseURL string

	// database path
	DatabasePath string

	// crawl settings: [CrawlStart, CrawlEnd) by CrawlStep
	CrawlStart int64
	CrawlEnd   int64
	CrawlStep  int64

	// whether to extract the full text body of each resolution
	IncludeBody bool

	// staged aggregates are committed every CommitEvery attempted ids
	CommitEvery int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvInt64OrDefault(envVar string, defaultVal int64) int64 {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func getEnvBoolOrDefault(envVar string, defaultVal bool) bool {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Invalid %s '%s'. Using default %t. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	cfg := Config{
		BaseURL:      os.Getenv("IQM_BASE_URL"),
		DatabasePath: getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		CrawlStart:   getEnvInt64OrDefault("CRAWL_START", 0),
		CrawlEnd:     getEnvInt64OrDefault("CRAWL_END", 0),
		CrawlStep:    getEnvInt64OrDefault("CRAWL_STEP", defaultCrawlStep),
		IncludeBody:  getEnvBoolOrDefault("INCLUDE_BODY", true),
		CommitEvery:  getEnvIntOrDefault("COMMIT_EVERY", defaultCommitEvery),
	}

	return cfg, nil
}
