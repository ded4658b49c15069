// internal/platform/di/shared/runtime_settings_validate.go
package shared

import (
	"fmt"
	"strings"
)

// Validate performs hard validation for RuntimeSettings.
//
// Policy:
//   - This should be stricter than Normalize.
//   - It should fail fast for values that would cause undefined behavior,
//     while allowing optional features to remain disabled when settings are empty.
func (s RuntimeSettings) Validate() error {
	// Secret name must never be empty once resolved (default exists).
	if strings.TrimSpace(s.SendGridSecretName) == "" {
		return fmt.Errorf("shared.runtime_settings: SendGridSecretName is empty")
	}

	// MailFrom is optional, but if set it must look like an address.
	if v := strings.TrimSpace(s.MailFrom); v != "" && !strings.Contains(v, "@") {
		return fmt.Errorf("shared.runtime_settings: MailFrom is not an email address (got %q)", v)
	}

	if s.CatalogCacheTTL <= 0 {
		return fmt.Errorf("shared.runtime_settings: CatalogCacheTTL must be positive (got %v)", s.CatalogCacheTTL)
	}

	return nil
}
