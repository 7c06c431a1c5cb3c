// Package sse fans match events out to clients streaming a match.
package sse

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/dimitrije/pickup-api/internal/models"
	"github.com/google/uuid"
)

const (
	EventParticipantJoined = "participant_joined"
	EventParticipantLeft   = "participant_left"
	EventMatchFull         = "match_full"
	EventMatchUpdated      = "match_updated"
	EventMatchDeleted      = "match_deleted"
)

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type ParticipantEvent struct {
	MatchID  uuid.UUID `json:"match_id"`
	UserID   string    `json:"user_id"`
	UserName string    `json:"user_name,omitempty"`
	Position *int      `json:"position,omitempty"`
}

type MatchEvent struct {
	MatchID uuid.UUID     `json:"match_id"`
	Match   *models.Match `json:"match,omitempty"`
}

type Client struct {
	ID      string
	Matches map[uuid.UUID]bool
	Send    chan []byte
}

type MatchMessage struct {
	MatchID uuid.UUID
	Event   Event
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *MatchMessage
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *MatchMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Event)
			if err != nil {
				log.Printf("failed to encode %s event: %v", msg.Event.Type, err)
				continue
			}
			h.mu.RLock()
			for _, client := range h.clients {
				if client.Matches[msg.MatchID] {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Publish queues event for the subscribers of matchID. It never blocks; when
// the queue is full the event is dropped.
func (h *Hub) Publish(matchID uuid.UUID, event Event) bool {
	select {
	case h.broadcast <- &MatchMessage{MatchID: matchID, Event: event}:
		return true
	default:
		log.Printf("event queue full, dropped %s for match %s", event.Type, matchID)
		return false
	}
}

func (h *Hub) ParticipantJoined(p *models.Participant) {
	position := p.Position
	h.Publish(p.MatchID, Event{
		Type: EventParticipantJoined,
		Data: ParticipantEvent{MatchID: p.MatchID, UserID: p.UserID, UserName: p.UserName, Position: &position},
	})
}

// MatchFull is published after the join that took the last open spot.
func (h *Hub) MatchFull(matchID uuid.UUID) {
	h.Publish(matchID, Event{
		Type: EventMatchFull,
		Data: MatchEvent{MatchID: matchID},
	})
}

func (h *Hub) ParticipantLeft(matchID uuid.UUID, userID string) {
	h.Publish(matchID, Event{
		Type: EventParticipantLeft,
		Data: ParticipantEvent{MatchID: matchID, UserID: userID},
	})
}

func (h *Hub) MatchUpdated(match *models.Match) {
	h.Publish(match.ID, Event{
		Type: EventMatchUpdated,
		Data: MatchEvent{MatchID: match.ID, Match: match},
	})
}

func (h *Hub) MatchDeleted(matchID uuid.UUID) {
	h.Publish(matchID, Event{
		Type: EventMatchDeleted,
		Data: MatchEvent{MatchID: matchID},
	})
}
