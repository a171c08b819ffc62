package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/Rebyuu/draw4friends/models"
	"github.com/Rebyuu/draw4friends/store"
)

type inboundMessage struct {
	sender *Client
	data   []byte
}

// Hub maintains the set of active clients, relays their frames to each
// other and owns every mutation of the canvas store. Running all of it
// on one goroutine is what serializes store writes: no two Append/Reset
// calls can ever interleave their read-modify-write.
type Hub struct {
	canvasStore  store.CanvasStore
	echoToSender bool

	// RegisterCh is deliberately unbuffered: ServeWS only starts the
	// read pump after the handoff, so a client's first inbound frame
	// cannot overtake its own registration (and its init message).
	RegisterCh   chan *Client
	UnregisterCh chan *Client
	InboundCh    chan inboundMessage

	registry *registry
}

func NewHub(canvasStore store.CanvasStore, echoToSender bool) *Hub {
	return &Hub{
		canvasStore:  canvasStore,
		echoToSender: echoToSender,
		RegisterCh:   make(chan *Client),
		UnregisterCh: make(chan *Client, 256),
		InboundCh:    make(chan inboundMessage, 1024),
		registry:     newRegistry(),
	}
}

const storeOpTimeout = 5 * time.Second

func (h *Hub) Run(shutdownCtx context.Context) {
	for {
		select {
		case client := <-h.RegisterCh:
			h.registry.register(client)
			h.sendInit(client)
			log.Printf("Client #%d connected (%d online)", client.id, h.registry.size())

		case client := <-h.UnregisterCh:
			if h.registry.unregister(client) {
				close(client.Send)
				log.Printf("Client #%d disconnected (%d online)", client.id, h.registry.size())
			}

		case msg := <-h.InboundCh:
			h.handleMessage(msg)

		case <-shutdownCtx.Done():
			return
		}
	}
}

// sendInit queues the replay of the persisted log as the very first
// frame on a new connection. A fresh install replays an empty list; a
// store failure degrades to the same, logged.
func (h *Hub) sendInit(client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), storeOpTimeout)
	defer cancel()

	entries, err := h.canvasStore.Load(ctx)
	if err != nil {
		log.Printf("Failed to load canvas for client #%d: %v", client.id, err)
		entries = []json.RawMessage{}
	}
	if entries == nil {
		entries = []json.RawMessage{}
	}

	initBytes, err := json.Marshal(models.InitMessage{Type: models.TypeInit, Data: entries})
	if err != nil {
		log.Printf("Failed to marshal init message: %v", err)
		return
	}

	// The send buffer of a brand-new client is empty, so this cannot
	// drop, and the write pump delivers it before any relayed frame.
	client.Send <- initBytes
}

// handleMessage runs the relay decision procedure for one inbound
// frame: classify, persist if asked to, fan out the original bytes.
func (h *Hub) handleMessage(msg inboundMessage) {
	switch models.ClassifyMessage(msg.data) {
	case models.KindInvalid:
		// Malformed input must never take down the relay and is not
		// worth surfacing to the sender either.
		log.Printf("Dropping malformed frame from client #%d", msg.sender.id)
		return

	case models.KindClear:
		ctx, cancel := context.WithTimeout(context.Background(), storeOpTimeout)
		if err := h.canvasStore.Reset(ctx); err != nil {
			// Non-fatal: the live clear still goes out, only the
			// replay for late joiners keeps the old strokes.
			log.Printf("Failed to reset canvas store: %v", err)
		}
		cancel()

	case models.KindStroke:
		if models.WantsPersist(msg.data) {
			ctx, cancel := context.WithTimeout(context.Background(), storeOpTimeout)
			if err := h.canvasStore.Append(ctx, json.RawMessage(msg.data)); err != nil {
				log.Printf("Failed to append stroke to canvas store: %v", err)
			}
			cancel()
		}
	}

	h.broadcast(msg.sender, msg.data)
}

// broadcast fans the original frame bytes out to the current members.
// Delivery is fire-and-forget: a recipient whose send buffer is full is
// skipped, and never aborts the rest of the fan-out.
func (h *Hub) broadcast(sender *Client, data []byte) {
	for _, member := range h.registry.members() {
		if member == sender && !h.echoToSender {
			continue
		}
		select {
		case member.Send <- data:
		default:
			log.Printf("Dropping frame for slow client #%d", member.id)
		}
	}
}
