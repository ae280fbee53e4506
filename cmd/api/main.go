package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/menu-board/internal/config"
	"github.com/fdg312/menu-board/internal/dbmigrate"
	"github.com/fdg312/menu-board/internal/httpserver"
)

func main() {
	cfg := config.Load()

	printStartupBanner(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrationsOnStartup {
		dbURL, source, _, err := dbmigrate.SelectDatabaseURL(cfg, true)
		if err != nil {
			log.Fatalf("FATAL startup migrations: %v", err)
		}

		log.Printf("startup migrations: command=up using=%s", source)
		if err := dbmigrate.Run(ctx, "up", dbURL); err != nil {
			log.Fatalf("FATAL startup migrations failed: %v", err)
		}
		log.Printf("startup migrations: completed")
	}

	validateProductionConfig(cfg)

	server := httpserver.New(cfg)
	defer server.Close()

	if err := server.Start(ctx); err != nil {
		log.Printf("FATAL server: %v", err)
		return
	}
	log.Println("server stopped")
}

// printStartupBanner logs the resolved configuration. Secrets are only
// reported as "set" / "not set".
func printStartupBanner(cfg *config.Config) {
	log.Println("========== Menu Board API ==========")
	log.Printf("  env              = %s", cfg.Env)
	log.Printf("  port             = %d", cfg.Port)

	log.Println("---- database ----")
	log.Printf("  runtime_url      = %s", describeDBURL(cfg.DatabaseURL, cfg.DatabaseURLPooled))
	log.Printf("  pooled           = %s", setOrNot(cfg.DatabaseURLPooled))
	log.Printf("  direct           = %s", setOrNot(cfg.DatabaseURLDirect))
	log.Printf("  migrations_on_startup = %t", cfg.RunMigrationsOnStartup)

	log.Println("---- auth ----")
	log.Printf("  auth_mode        = %s", cfg.AuthMode)
	log.Printf("  auth_required    = %t", cfg.AuthRequired)
	log.Printf("  jwt_secret       = %s", secretStatus(cfg.JWTSecret, "change_me"))
	log.Printf("  jwt_ttl_minutes  = %d", cfg.JWTTTLMinutes)

	log.Println("---- board ----")
	if len(cfg.PlanDays) == 0 {
		log.Printf("  plan_days        = (default monday..sunday)")
	} else {
		log.Printf("  plan_days        = %s", strings.Join(cfg.PlanDays, ","))
	}
	log.Printf("  cors_origins     = %s", nonEmptyOrDash(strings.Join(cfg.CORSAllowedOrigins, ",")))
	log.Printf("  rate_limit_rps   = %d", cfg.RateLimitRPS)

	log.Println("---- export ----")
	log.Printf("  blob_mode        = %s", cfg.Blob.Mode)
	if cfg.Blob.Mode != config.BlobModeLocal {
		log.Printf("  s3: %s", cfg.Blob.S3.Summary())
	}

	log.Println("====================================")
}

// validateProductionConfig performs fatal checks that only matter in non-local envs.
func validateProductionConfig(cfg *config.Config) {
	isProd := cfg.Env == "production" || cfg.Env == "staging"

	if cfg.Blob.Mode == config.BlobModeS3 {
		if missing := cfg.Blob.S3.MissingRequired(); len(missing) > 0 {
			log.Fatalf("FATAL blob: BLOB_MODE=s3 but S3 config is incomplete, missing: %s", strings.Join(missing, ", "))
		}
	}

	if isProd && cfg.AuthRequired && cfg.JWTSecret == "change_me" {
		log.Fatalf("FATAL auth: JWT_SECRET must not be 'change_me' in %s with AUTH_REQUIRED=1", cfg.Env)
	}

	if isProd && cfg.AuthMode == config.AuthModeDev && !cfg.AuthRequired {
		log.Printf("WARN auth: AUTH_MODE=dev without AUTH_REQUIRED in %s, any caller may act as any person", cfg.Env)
	}

	if isProd && cfg.DatabaseURL == "" {
		log.Fatalf("FATAL db: no DATABASE_URL configured in %s", cfg.Env)
	}
}

func setOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func nonEmptyOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func secretStatus(v, insecureDefault string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "not set"
	}
	if v == insecureDefault {
		return fmt.Sprintf("set (DEFAULT, insecure '%s')", insecureDefault)
	}
	return "set (custom)"
}

func describeDBURL(runtime, pooled string) string {
	if runtime == "" {
		return "not set (will use in-memory storage)"
	}
	if pooled != "" && runtime == pooled {
		return "set (via DATABASE_URL_POOLED)"
	}
	return "set"
}
