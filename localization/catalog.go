// Package localization provides the LocaleCatalog collaborator: a
// read-only mapping from error/message codes to localized strings that the
// lexer, parser, and inspection packages route every user-facing message
// through, per spec.md §6.2.
package localization

import (
	"embed"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when a caller does not specify one.
const DefaultLocale = "en-US"

// Catalog is an injected, read-only mapping from message codes to localized
// strings. Implementations are expected to be cheap to query and safe for
// concurrent reads (the core itself is single-threaded, per spec.md §5, but
// a catalog may be shared across many core instances held by a caller).
type Catalog interface {
	// Lookup returns the localized string for code in the catalog's
	// locale, and whether the code was found.
	Lookup(code string) (string, bool)

	// Locale returns the BCP-47-ish locale tag this catalog serves, e.g.
	// "en-US".
	Locale() string
}

//go:embed catalogs/*.yaml
var embeddedCatalogs embed.FS

// mapCatalog is the simplest possible Catalog: a flat map loaded once from
// an embedded YAML resource, the same way the teacher's cmd/smpe_lint loads
// its lint configuration with gopkg.in/yaml.v3 (YAML is this module's
// config-loading idiom, carried from the teacher rather than reached for
// fresh).
type mapCatalog struct {
	locale string
	byCode map[string]string
}

func (c *mapCatalog) Lookup(code string) (string, bool) {
	s, ok := c.byCode[code]
	return s, ok
}

func (c *mapCatalog) Locale() string {
	return c.locale
}

// NewMapCatalog builds a Catalog directly from a code->message map, for
// callers that already have their strings in memory (e.g. loaded from a
// host application's own resource bundle).
func NewMapCatalog(locale string, byCode map[string]string) Catalog {
	cloned := make(map[string]string, len(byCode))
	for k, v := range byCode {
		cloned[k] = v
	}
	return &mapCatalog{locale: locale, byCode: cloned}
}

// Default returns the catalog for spec.md's default locale, en-US, parsed
// from the embedded catalogs/en-US.yaml resource.
func Default() Catalog {
	catalog, err := loadEmbedded(DefaultLocale)
	if err != nil {
		// The embedded resource is part of this module's source; a failure
		// here is a build-time invariant violation, not a runtime error a
		// caller can recover from.
		panic("localization: failed to load embedded default catalog: " + err.Error())
	}
	return catalog
}

func loadEmbedded(locale string) (Catalog, error) {
	raw, err := embeddedCatalogs.ReadFile("catalogs/" + locale + ".yaml")
	if err != nil {
		return nil, err
	}

	var byCode map[string]string
	if err := yaml.Unmarshal(raw, &byCode); err != nil {
		return nil, err
	}

	return &mapCatalog{locale: locale, byCode: byCode}, nil
}

// Load loads one of the catalogs embedded with this module by locale tag.
// Returns an error (rather than a fallback) if the locale has no embedded
// resource, so callers can decide whether to fall back to Default()
// themselves.
func Load(locale string) (Catalog, error) {
	return loadEmbedded(locale)
}
