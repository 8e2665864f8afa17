package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/allisson/zkvault/internal/metrics"
	rotationDomain "github.com/allisson/zkvault/internal/rotation/domain"
)

// NewHandlerWithMetrics wraps handler so each rotation is recorded under the
// "rotation" domain, with the scope kind in the operation name (rotate_password).
func NewHandlerWithMetrics(handler Handler, m metrics.BusinessMetrics) Handler {
	return func(ctx context.Context, entry rotationDomain.Entry) error {
		start := time.Now()
		err := handler(ctx, entry)
		metrics.Observe(ctx, m, "rotation", "rotate_"+scopeKind(entry.Scope), start, err)
		return err
	}
}

func scopeKind(scope string) string {
	kind, _, _ := strings.Cut(scope, ":")
	if kind == "" {
		return "unknown"
	}
	return kind
}
