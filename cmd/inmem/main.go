// Package main runs the auth core without a database using in-memory
// repositories. Useful for quick development, demos, and learning the API
// without Postgres or Redis. All data is lost when the server stops; for
// production use cmd/irridash.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tendant/chi-demo/app"

	"github.com/verdantops/irridash/pkg/guard"
	"github.com/verdantops/irridash/pkg/impersonate"
	"github.com/verdantops/irridash/pkg/metrics"
	"github.com/verdantops/irridash/pkg/notification"
	"github.com/verdantops/irridash/pkg/rbac"
)

const (
	jwtSecret  = "inmem-dev-secret-change-in-production"
	issuer     = "irridash-inmem"
	demoTenant = "demo-farm"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting in-memory auth core (no database required)")

	verifier, err := guard.NewJWTVerifier(jwtSecret)
	if err != nil {
		slog.Error("failed to create verifier", "err", err)
		os.Exit(1)
	}
	gate := guard.NewGate(verifier)

	notificationService := notification.NewService(
		notification.NewInMemoryRepository(),
		notification.WithNotifier(&notification.MockNotifier{}),
	)
	impersonateService := impersonate.NewService(
		impersonate.NewInMemoryAuditRepository(),
		impersonate.WithStartNotifier(notificationService),
	)

	printDemoTokens()

	server := app.NewApp(app.WithAppConfig(app.AppConfig{
		Server: app.Server{Host: "localhost", Port: 4000},
	}))
	app.RoutesHealthz(server.R)
	server.R.Handle("/metrics", metrics.Handler())
	server.R.Route("/api", func(r chi.Router) {
		impersonate.NewHandle(impersonateService, gate).Routes(r)
		notification.NewHandle(notificationService, gate).Routes(r)
	})

	server.Run()
}

// printDemoTokens mints one token per role so the API can be exercised with
// curl right away.
func printDemoTokens() {
	signer := guard.TokenSigner{
		Secret: []byte(jwtSecret),
		Issuer: issuer,
		Expiry: 12 * time.Hour,
	}

	demoUsers := []struct {
		userID string
		role   rbac.Role
	}{
		{"demo-super-admin", rbac.RoleSuperAdmin},
		{"demo-admin", rbac.RoleAdmin},
		{"demo-manager", rbac.RoleManager},
		{"demo-customer", rbac.RoleCustomer},
	}

	slog.Info("Demo tokens", "tenant", demoTenant)
	for _, u := range demoUsers {
		token, err := signer.Sign(u.userID, string(u.role))
		if err != nil {
			slog.Error("failed to mint demo token", "user", u.userID, "err", err)
			continue
		}
		slog.Info("token", "user", u.userID, "role", u.role, "bearer", token)
	}
}
