// internal/platform/di/shared/runtime_settings.go
package shared

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	appcfg "atelier/internal/infra/config"
)

const (
	// Secret Manager secret holding the SendGrid API key when the env var
	// is not set (Cloud Run deployments).
	defaultSendGridSecretName = "atelier-sendgrid-api-key"

	defaultCatalogCacheTTL = 60 * time.Second
)

// RuntimeSettings is env/config-resolved runtime settings (normalized once).
// It intentionally contains only "values" (no external clients).
//
// Policy:
// - Prefer config (cfg) where available.
// - Apply defaults to keep optional features usable out of the box.
// - Keep normalization (trim) here.
// - Keep hard validation in runtime_settings_validate.go.
type RuntimeSettings struct {
	// Transactional mail (order confirmations)
	MailFrom           string
	SendGridSecretName string

	// Catalog read cache
	CatalogCacheTTL time.Duration
}

// ResolveRuntimeSettings resolves and normalizes runtime settings from cfg/env.
//
// Notes:
// - This function is side-effect free (no logging).
// - It returns warnings as strings so callers can decide how to surface them.
func ResolveRuntimeSettings(cfg *appcfg.Config) (RuntimeSettings, []string, error) {
	if cfg == nil {
		return RuntimeSettings{}, nil, errors.New("shared.runtime_settings: cfg is nil")
	}

	var warns []string
	var s RuntimeSettings

	s.MailFrom = strings.TrimSpace(cfg.SendGridFrom)
	if s.MailFrom == "" {
		warns = append(warns, "SENDGRID_FROM is empty (order confirmation mail disabled)")
	}

	s.SendGridSecretName = getenvTrim("SENDGRID_SECRET_NAME")
	if s.SendGridSecretName == "" {
		s.SendGridSecretName = defaultSendGridSecretName
	}

	s.CatalogCacheTTL = defaultCatalogCacheTTL
	if raw := getenvTrim("CATALOG_CACHE_TTL_SECONDS"); raw != "" {
		sec, err := strconv.Atoi(raw)
		if err != nil || sec <= 0 {
			warns = append(warns, "CATALOG_CACHE_TTL_SECONDS is invalid (using default)")
		} else {
			s.CatalogCacheTTL = time.Duration(sec) * time.Second
		}
	}

	return s, warns, nil
}

func getenvTrim(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
