package middleware

import (
	"context"
	"net/http"

	"lexcaribe/ms_fiscal_core/internal/infrastructure/config"
)

// ReportTimeout extends the request context deadline on the DGII export
// endpoints. Building a 607 for a busy month walks every invoice of the
// period, so those handlers get a longer deadline than the default
// WriteTimeout allows.
func ReportTimeout(cfg config.HTTPSettings) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), cfg.ReportTimeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
