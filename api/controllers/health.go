package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/juanfvasquez/pedidos-backend/api/responses"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"go.uber.org/multierr"
)

// DependencyPinger is the connectivity probe for one backing service.
type DependencyPinger interface {
	Ping(ctx context.Context) error
}

// Live reports process liveness.
func Live() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Ready pings every named dependency and aggregates the failures into a
// single 503 so one response names everything that is down.
func Ready(logg *logger.Logger, deps map[string]DependencyPinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var combined error
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				combined = multierr.Append(combined, fmt.Errorf("%s: %w", name, err))
			}
		}
		if combined != nil {
			responses.WriteError(w, r, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
