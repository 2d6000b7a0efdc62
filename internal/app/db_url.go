package app

import (
	"net/url"
	"strings"
)

const dbApplicationName = "talent-scout"

// normalizeDBURL fills connection parameters the service relies on without
// overriding anything set explicitly in DB_URL. Key/value DSNs are returned
// untouched.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	defaults := map[string]string{"application_name": dbApplicationName}
	if disablePreparedBinaryResult {
		defaults["disable_prepared_binary_result"] = "yes"
	}

	query := parsed.Query()
	changed := false
	for key, value := range defaults {
		if query.Get(key) != "" {
			continue
		}
		query.Set(key, value)
		changed = true
	}
	if !changed {
		return raw
	}
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(field, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}

	return ""
}
