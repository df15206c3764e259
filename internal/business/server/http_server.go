package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/samber/oops"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/config"
	"github.com/openkcm/selfservice-datamanager/internal/datamanager"
)

// createHTTPServer creates the data API http server using the given config.
func createHTTPServer(_ context.Context, cfg *config.Config, manager *datamanager.Manager) *http.Server {
	h := &dataHandler{manager: manager}
	mux := http.NewServeMux()

	route := func(pattern, operationID string, fn http.HandlerFunc) {
		mux.Handle(pattern, newTraceMiddleware(cfg, operationID, fn))
	}

	route("GET /ping", "Ping", pingHandler(manager))

	route("POST /v1/session", "SignIn", h.signIn)
	route("DELETE /v1/session", "SignOut", h.signOut)

	route("GET /v1/client", "CurrentClient", h.currentClient)
	route("GET /v1/client/image", "ClientImage", h.clientImage)
	route("GET /v1/client/accounts", "ClientAccounts", h.clientAccounts)
	route("GET /v1/client/transactions", "RecentTransactions", h.recentTransactions)
	route("GET /v1/client/charges", "LocalClientCharges", h.localClientCharges)
	route("GET /v1/clients/{clientId}/charges", "ClientCharges", h.clientCharges)

	route("GET /v1/loans/{loanId}/charges", "LoanCharges", h.loanCharges)
	route("GET /v1/savings/{savingsId}/charges", "SavingsCharges", h.savingsCharges)

	route("GET /v1/notifications", "Notifications", h.notifications)
	route("GET /v1/notifications/unread-count", "UnreadNotificationsCount", h.unreadNotificationsCount)

	route("GET /v1/beneficiaries", "Beneficiaries", h.beneficiaries)
	route("POST /v1/transfers", "MakeTransfer", h.makeTransfer)

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: mux,
	}
}

// StartHTTPServer starts the HTTP server using the given config.
func StartHTTPServer(ctx context.Context, cfg *config.Config, manager *datamanager.Manager) error {
	if err := initMeters(ctx, cfg); err != nil {
		return err
	}

	server := createHTTPServer(ctx, cfg, manager)

	slogctx.Info(ctx, "Starting a listener", "address", server.Addr)

	// Addresses of the form network://address select the network, e.g.
	// unix:///tmp/datamanager.sock. Otherwise tcp is used.
	network := "tcp"
	if idx := strings.IndexRune(server.Addr, ':'); idx != -1 && len(server.Addr) > idx+3 && server.Addr[idx:idx+3] == "://" {
		network = server.Addr[:idx]
		server.Addr = server.Addr[idx+3:]
	}

	listener, err := new(net.ListenConfig).Listen(ctx, network, server.Addr)
	if err != nil {
		return oops.In("HTTP Server").
			WithContext(ctx).
			Wrapf(err, "Failed to create a listener")
	}

	slogctx.Info(ctx, "A listener started", "address", listener.Addr().String())

	go func() {
		slogctx.Info(ctx, "Serving an HTTP server", "address", listener.Addr().String())
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogctx.Error(ctx, "Failed to serve an HTTP server", "error", err)
		}

		slogctx.Info(ctx, "Stopped an HTTP server")
	}()

	<-ctx.Done()

	shutdownCtx, shutdownRelease := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer shutdownRelease()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return oops.In("HTTP Server").
			WithContext(ctx).
			Wrapf(err, "Failed shutting down HTTP server")
	}

	slogctx.Info(ctx, "Completed graceful shutdown of HTTP server")

	return nil
}
