package rest

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/Rebyuu/draw4friends/store"
)

type Handler struct {
	Store store.CanvasStore
}

func NewHandler(canvasStore store.CanvasStore) *Handler {
	return &Handler{Store: canvasStore}
}

type canvasResponse struct {
	Data []json.RawMessage `json:"data"`
}

// HandleCanvas exposes the persisted log over plain HTTP, the same
// entries a websocket client receives in its init frame.
func (h *Handler) HandleCanvas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	entries, err := h.Store.Load(r.Context())
	if err != nil {
		log.Printf("Failed to load canvas: %v", err)
		http.Error(w, "failed to load canvas", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []json.RawMessage{}
	}

	h.sendResponse(w, canvasResponse{Data: entries})
}

func (h *Handler) sendResponse(w http.ResponseWriter, resp any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
