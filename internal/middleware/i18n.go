package middleware

import (
	"context"
	"net/http"
	"strings"
)

type localeContextKey struct{}

// CountryLookup resolves an ISO country code for an IP address. An empty
// result means the country is unknown.
type CountryLookup func(ip string) string

// Locale resolves the caller's preferred locale (bn or en) from the
// X-Locale header, Accept-Language, or the request's GeoIP country, in that
// order. The result rides the request context.
func Locale(defaultLocale string, lookup CountryLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, defaultLocale, lookup)
			ctx := context.WithValue(r.Context(), localeContextKey{}, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocaleFromContext returns the resolved locale, defaulting to "bn".
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(localeContextKey{}).(string); ok && v != "" {
		return v
	}
	return "bn"
}

func detectLocale(r *http.Request, fallback string, lookup CountryLookup) string {
	if v := r.Header.Get("X-Locale"); v != "" {
		return normalizeLocale(v)
	}
	if v := parseAcceptLanguage(r.Header.Get("Accept-Language")); v != "" {
		return v
	}
	if lookup != nil {
		if country := lookup(ClientIP(r)); country != "" {
			if strings.EqualFold(country, "BD") {
				return "bn"
			}
			return "en"
		}
	}
	if fallback != "" {
		return normalizeLocale(fallback)
	}
	return "bn"
}

func parseAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		locale := strings.TrimSpace(strings.Split(part, ";")[0])
		if locale != "" {
			return normalizeLocale(locale)
		}
	}
	return ""
}

func normalizeLocale(locale string) string {
	if strings.HasPrefix(strings.ToLower(locale), "bn") {
		return "bn"
	}
	return "en"
}
