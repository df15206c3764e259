package server

import (
	"net/http"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/selfservice-datamanager/internal/datamanager"
)

// pingHandler answers with pong and whether a session is active. It never
// calls the remote API.
func pingHandler(manager *datamanager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		active := false
		if manager != nil {
			active = manager.Session().Active()
		}

		slogctx.Debug(ctx, "Answering ping", "session_active", active)

		writeJSON(ctx, w, http.StatusOK, map[string]any{
			"result":        "ping",
			"sessionActive": active,
		})
	}
}
