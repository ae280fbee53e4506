package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const (
	AuthModeNone = "none"
	AuthModeDev  = "dev"
)

// Config содержит конфигурацию приложения
type Config struct {
	Env  string // local | staging | prod
	Port int

	// Database
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string
	DatabaseURLPooled string
	DatabaseURLDirect string // for migrations / DDL

	RunMigrationsOnStartup bool

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting (0 = disabled)
	RateLimitRPS   int
	RateLimitBurst int

	// PDF exports
	Blob BlobConfig

	// Authentication
	AuthMode      string // none | dev
	AuthRequired  bool
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Board columns; empty means monday..sunday
	PlanDays []string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	// ---------- Database ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	// ---------- Blob / S3 ----------
	presignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if presignTTL <= 0 {
		presignTTL = 900
	}
	region := strings.TrimSpace(os.Getenv("S3_REGION"))
	if region == "" {
		region = defaultS3Region
	}
	blobCfg := BlobConfig{
		Mode: parseBlobMode(os.Getenv("BLOB_MODE")),
		S3: S3Config{
			Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:            region,
			Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			PresignTTLSeconds: presignTTL,
			UsePathStyle:      parseBoolEnv("S3_USE_PATH_STYLE"),
		},
	}

	// ---------- Auth ----------
	authMode := strings.ToLower(strings.TrimSpace(os.Getenv("AUTH_MODE")))
	if authMode == "" {
		authMode = AuthModeNone
	}
	if authMode != AuthModeNone && authMode != AuthModeDev {
		log.Printf("WARN config: unknown AUTH_MODE=%q, fallback to none", authMode)
		authMode = AuthModeNone
	}
	authRequired := authMode != AuthModeNone && parseBoolEnv("AUTH_REQUIRED")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != "local" {
		log.Println("WARN config: JWT_SECRET is set to 'change_me' in non-local environment")
	}

	jwtIssuer := strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	if jwtIssuer == "" {
		jwtIssuer = "menu-board"
	}

	jwtTTLMinutes := envInt("JWT_TTL_MINUTES", 10080)
	if jwtTTLMinutes <= 0 {
		jwtTTLMinutes = 10080
	}

	return &Config{
		Env:               env,
		Port:              envInt("PORT", 8080),
		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		RunMigrationsOnStartup: parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP"),

		CORSAllowedOrigins:   parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env),
		CORSAllowCredentials: parseBoolEnv("CORS_ALLOW_CREDENTIALS"),

		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 0),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 0),

		Blob: blobCfg,

		AuthMode:      authMode,
		AuthRequired:  authRequired,
		JWTSecret:     jwtSecret,
		JWTIssuer:     jwtIssuer,
		JWTTTLMinutes: jwtTTLMinutes,

		PlanDays: splitList(os.Getenv("PLAN_DAYS"), true),
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	if strings.TrimSpace(raw) == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:5173"}
		}
		return nil
	}
	return splitList(raw, false)
}

// splitList splits a comma separated value, dropping blanks and duplicates.
func splitList(raw string, lower bool) []string {
	var out []string
	seen := map[string]bool{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if lower {
			p = strings.ToLower(p)
		}
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func parseBlobMode(raw string) string {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "":
		return BlobModeLocal
	case BlobModeLocal, BlobModeS3, BlobModeAuto:
		return mode
	default:
		log.Printf("WARN config: unknown BLOB_MODE=%q, fallback to %s", mode, BlobModeLocal)
		return BlobModeLocal
	}
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
