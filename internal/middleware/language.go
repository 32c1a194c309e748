package middleware

import (
	"context"
	"net/http"
	"strings"
)

const (
	// LangKey holds the negotiated language for the request.
	LangKey contextKey = "lang"

	// DefaultLanguage is used when negotiation fails.
	DefaultLanguage = "en"
)

var supportedLanguages = map[string]bool{
	"en": true,
	"ar": true,
}

// LanguageMiddleware negotiates the response language from the
// Accept-Language header. Only the first subtag is considered; anything
// outside the supported set falls back to English.
func LanguageMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := DefaultLanguage

			if header := r.Header.Get("Accept-Language"); header != "" {
				requested := strings.SplitN(header, ",", 2)[0]
				requested = strings.SplitN(requested, "-", 2)[0]
				requested = strings.TrimSpace(strings.ToLower(requested))
				if supportedLanguages[requested] {
					lang = requested
				}
			}

			ctx := context.WithValue(r.Context(), LangKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLang extracts the negotiated language from the request context,
// defaulting to English when the middleware did not run.
func GetLang(ctx context.Context) string {
	if lang, ok := ctx.Value(LangKey).(string); ok {
		return lang
	}
	return DefaultLanguage
}
