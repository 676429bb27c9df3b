// Package ws streams run events to websocket subscribers. Each client
// subscribes to a single run; slow clients are dropped rather than allowed
// to stall the hub.
package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/harborgrid/gridiq/internal/domain"
)

type envelope struct {
	runID string
	data  []byte
}

// Hub fans persisted run events out to websocket clients.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	done       chan struct{}
	upgrader   websocket.Upgrader
}

// NewHub creates a hub. Run must be started on its own goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The demo UI is served from a different origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run processes register, unregister, and broadcast traffic until stop is
// closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case env := <-h.broadcast:
			for client := range h.clients {
				if client.runID != env.runID {
					continue
				}
				select {
				case client.send <- env.data:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		case <-stop:
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		}
	}
}

// Broadcast queues a run event for all subscribers of the run. It never
// blocks; under backpressure events are dropped from the stream (clients
// re-sync through the events endpoint).
func (h *Hub) Broadcast(runID string, event domain.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR: failed to marshal event for broadcast: %v", err)
		return
	}
	select {
	case h.broadcast <- envelope{runID: runID, data: data}:
	default:
		log.Printf("WARN: broadcast queue full, dropping event %s", event.EventID)
	}
}

// Serve upgrades the request and subscribes the connection to a run.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, runID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:   h,
		conn:  conn,
		runID: runID,
		send:  make(chan []byte, 64),
	}
	select {
	case h.register <- client:
	case <-h.done:
		// Hub already shut down; nobody will ever read the channel.
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()
	return nil
}
