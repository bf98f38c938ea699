package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/mind-engage/mindengage-grades/internal/grading"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthSecret      string
	EnableLocalAuth bool

	AdminUser     string
	AdminPassHash string // bcrypt
	// LoginRatePerMin caps /auth/login attempts per client IP.
	LoginRatePerMin int

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	LogLevel string
	LogFile  string

	EnableMetrics bool

	// Defaults for templates that do not carry their own rules/weights.
	Rules   grading.Rules
	Weights grading.WeightSplit
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	def := grading.DefaultRules()
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		AuthSecret:         envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		EnableLocalAuth:    envBool("ENABLE_LOCAL_AUTH", true),
		AdminUser:          envOr("ADMIN_USER", "admin"),
		AdminPassHash:      envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),
		LoginRatePerMin:    envInt("LOGIN_RATE_PER_MIN", 10),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://home.mindengage.ai"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000"),
		LogLevel:           envOr("LOG_LEVEL", "info"),
		LogFile:            envOr("LOG_FILE", "logs/grades.log"),
		EnableMetrics:      envBool("ENABLE_METRICS", true),
		Rules: grading.Rules{
			PointsPerCorrect: envFloat("GRADING_POINTS_PER_CORRECT", def.PointsPerCorrect),
			PenaltyPerWrong:  envFloat("GRADING_PENALTY_PER_WRONG", def.PenaltyPerWrong),
			MaxTestScore:     envFloat("GRADING_MAX_TEST_SCORE", def.MaxTestScore),
		},
		Weights: grading.NewWeightSplit(envInt("GRADING_TEST_WEIGHT", grading.DefaultTestWeight)),
	}
}

// CORSOrigins returns the allow-list for the current mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envFloat(k string, def float64) float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(k)), 64); err == nil {
		return v
	}
	return def
}
func envInt(k string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k))); err == nil {
		return v
	}
	return def
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
