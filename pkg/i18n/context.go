package i18n

import (
	"context"
	"net/http"
)

type langContextKey struct{}

func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langContextKey{}, lang)
}

// LangFromContext returns the negotiated language, or "" if none was stored.
func LangFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	lang, _ := ctx.Value(langContextKey{}).(string)
	return lang
}

// Middleware stores the language negotiated from Accept-Language in the request context.
// An explicit "lang" query parameter takes precedence when it is supported.
func (t *Translator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := t.Negotiate(r.Header.Get("Accept-Language"))
		if q := r.URL.Query().Get("lang"); q != "" {
			if _, ok := t.translations[q]; ok {
				lang = q
			}
		}
		w.Header().Set("Content-Language", lang)
		next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
	})
}
