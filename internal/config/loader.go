package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures environment driven configuration values for the planner service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	MongoURI      string
	MongoDatabase string
	ChatPageSize  int
	CORSOrigins   []string
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// required values and reporting localized error messages for missing entries.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "file:planner.db?_foreign_keys=on",
		MongoDatabase: "travel_planner",
		ChatPageSize:  30,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("PLANNER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "PLANNER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("PLANNER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if uri := strings.TrimSpace(os.Getenv("PLANNER_MONGO_URI")); uri == "" {
		missing = append(missing, "PLANNER_MONGO_URI")
	} else {
		cfg.MongoURI = uri
	}

	if database := strings.TrimSpace(os.Getenv("PLANNER_MONGO_DATABASE")); database != "" {
		cfg.MongoDatabase = database
	}

	if sizeValue := strings.TrimSpace(os.Getenv("PLANNER_CHAT_PAGE_SIZE")); sizeValue != "" {
		size, err := strconv.Atoi(sizeValue)
		if err != nil || size <= 0 {
			invalid = append(invalid, "PLANNER_CHAT_PAGE_SIZE")
		} else {
			cfg.ChatPageSize = size
		}
	}

	if originsValue := strings.TrimSpace(os.Getenv("PLANNER_CORS_ORIGINS")); originsValue != "" {
		origins := make([]string, 0, 2)
		for _, origin := range strings.Split(originsValue, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		cfg.CORSOrigins = origins
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("必須の環境変数が設定されていません: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("環境変数の値が不正です: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
