package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// Config holds process settings. Flags win over environment variables, which
// win over defaults.
type Config struct {
	Addr       string
	Origins    string
	DataDir    string // empty keeps sessions in memory only
	SessionTTL time.Duration
	LogLevel   log.Level
}

func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("chessrules", flag.ContinueOnError)

	addr := fs.String("addr", getenv("CHESSRULES_ADDR", ":3000"), "listen address")
	origins := fs.String("origins", getenv("CHESSRULES_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	dataDir := fs.String("data-dir", getenv("CHESSRULES_DATA_DIR", ""), "badger directory for session snapshots (empty = in memory)")
	ttl := fs.String("session-ttl", getenv("CHESSRULES_SESSION_TTL", "30m"), "idle time before a session is evicted from memory")
	level := fs.String("log-level", getenv("CHESSRULES_LOG_LEVEL", "info"), "trace, debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:    *addr,
		Origins: *origins,
		DataDir: *dataDir,
	}

	d, err := time.ParseDuration(*ttl)
	if err != nil || d <= 0 {
		return Config{}, fmt.Errorf("invalid session ttl %q", *ttl)
	}
	cfg.SessionTTL = d

	if cfg.LogLevel, err = parseLevel(*level); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// OriginList splits Origins for the websocket upgrader.
func (c Config) OriginList() []string {
	var out []string
	for _, o := range strings.Split(c.Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func parseLevel(s string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return log.LevelTrace, nil
	case "debug":
		return log.LevelDebug, nil
	case "info", "":
		return log.LevelInfo, nil
	case "warn", "warning":
		return log.LevelWarn, nil
	case "error":
		return log.LevelError, nil
	}
	return log.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
