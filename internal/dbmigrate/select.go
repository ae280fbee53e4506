package dbmigrate

import (
	"fmt"

	"github.com/fdg312/menu-board/internal/config"
)

// SelectDatabaseURL picks the connection used for DDL.
// Priority: DIRECT > DATABASE_URL > POOLED (with warning).
// If requireDirect is true, only DATABASE_URL_DIRECT is accepted.
func SelectDatabaseURL(cfg *config.Config, requireDirect bool) (dbURL string, source string, warning string, err error) {
	if requireDirect {
		if cfg.DatabaseURLDirect == "" {
			return "", "", "", fmt.Errorf("DATABASE_URL_DIRECT is required for startup migrations")
		}
		return cfg.DatabaseURLDirect, "DATABASE_URL_DIRECT", "", nil
	}

	switch {
	case cfg.DatabaseURLDirect != "":
		return cfg.DatabaseURLDirect, "DATABASE_URL_DIRECT", "", nil
	case cfg.DatabaseURLRaw != "":
		return cfg.DatabaseURLRaw, "DATABASE_URL", "", nil
	case cfg.DatabaseURLPooled != "":
		return cfg.DatabaseURLPooled, "DATABASE_URL_POOLED", "pooled connections may break goose locking; set DATABASE_URL_DIRECT", nil
	}

	return "", "", "", fmt.Errorf("no database URL configured (set DATABASE_URL_DIRECT or DATABASE_URL)")
}
