package config

import (
	"strings"

	derrors "git.home.luguber.info/inful/docloc/internal/errors"
)

// Validate checks the resolved settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DocsRoot) == "" {
		return derrors.ValidationFailed("docs_root", "must not be empty")
	}
	switch {
	case strings.TrimSpace(c.Locale) == "":
		return derrors.ValidationFailed("locale", "must not be empty")
	case strings.ContainsAny(c.Locale, `/\`):
		return derrors.ValidationFailed("locale", "must be a single directory name").
			WithContext("locale", c.Locale)
	case c.Locale == "." || c.Locale == "..":
		return derrors.ValidationFailed("locale", "must not be a relative path element")
	}
	return nil
}
