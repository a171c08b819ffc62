package api

import (
	"context"
	"net/http"

	"github.com/Rebyuu/draw4friends/api/rest"
	"github.com/Rebyuu/draw4friends/api/ws"
	"github.com/Rebyuu/draw4friends/store"
)

type RelayAPI struct {
	restHandler *rest.Handler
	wsHandler   *ws.Handler
	shutdownCtx context.Context
}

// NewRelayAPI wires the broadcast hub, its registry and the REST
// surface around one canvas store. The hub goroutine it starts is the
// single writer for that store.
func NewRelayAPI(canvasStore store.CanvasStore, echoToSender bool, shutdownCtx context.Context) *RelayAPI {
	wsHub := ws.NewHub(canvasStore, echoToSender)
	go wsHub.Run(shutdownCtx)

	return &RelayAPI{
		restHandler: rest.NewHandler(canvasStore),
		wsHandler:   ws.NewHandler(wsHub),
		shutdownCtx: shutdownCtx,
	}
}

func (relayAPI *RelayAPI) RegisterRoutes(mux *http.ServeMux, requiredOrigin string) {
	// Health check endpoint (no auth required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/canvas", relayAPI.restHandler.HandleCanvas)

	wsUpgrader := relayAPI.wsHandler.NewWsUpgrader(requiredOrigin)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		relayAPI.wsHandler.ServeWS(wsUpgrader, w, r, relayAPI.shutdownCtx)
	})
}
