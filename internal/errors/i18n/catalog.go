// Package i18n holds localized user-facing messages for error codes.
package i18n

import (
	"strings"
	"text/template"
)

// Code mirrors the string value of an error code. Codes are duplicated
// as strings to avoid an import cycle with the errors package.
type Code = string

// Catalog maps error codes to localized message templates.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog's locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for a code, substituting metadata into
// {{.Key}} placeholders. Missing codes and template failures fall back
// to the generic unknown-error message.
func (c *Catalog) Format(code string, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		msg = c.messages[CodeUnknown]
	}
	if len(metadata) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}

	tmpl, err := template.New("msg").Parse(msg)
	if err != nil {
		return msg
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, metadata); err != nil {
		return msg
	}
	return sb.String()
}

// GetCatalog returns the catalog for a locale, defaulting to en-US.
func GetCatalog(locale string) *Catalog {
	switch locale {
	case "en-US", "":
		return enUSCatalog
	default:
		return enUSCatalog
	}
}
