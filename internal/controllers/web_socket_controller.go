package controllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Signaling message types. The first four come from clients; the hub relays
// offers, answers and candidates to the other peers of the room.
const (
	SignalJoinRoom     = "join-room"
	SignalOffer        = "webrtc-offer"
	SignalAnswer       = "webrtc-answer"
	SignalICECandidate = "webrtc-ice-candidate"
	SignalJoined       = "joined"
	SignalPeerJoined   = "peer-joined"
	SignalPeerLeft     = "peer-left"
	SignalError        = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
	sendBuffer     = 32
)

type SignalMessage struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	FromID  string          `json:"fromId,omitempty"`
	PeerID  string          `json:"peerId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type peer struct {
	id   string
	conn *websocket.Conn
	send chan SignalMessage
	room string
}

// SignalingHub relays WebRTC session setup between peers of a room. A peer
// is in at most one room at a time.
type SignalingHub struct {
	rooms    map[string]map[*peer]struct{}
	mu       sync.Mutex
	upgrader websocket.Upgrader
}

// NewSignalingHub accepts upgrades from origins, or from anywhere when
// origins is empty or contains "*".
func NewSignalingHub(origins []string) *SignalingHub {
	allowed := make(map[string]bool, len(origins))
	anyOrigin := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			anyOrigin = true
		}
		allowed[o] = true
	}
	return &SignalingHub{
		rooms: make(map[string]map[*peer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return anyOrigin || origin == "" || allowed[origin]
			},
		},
	}
}

// Handle upgrades GET /ws/signaling and serves the peer until it disconnects.
func (h *SignalingHub) Handle(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("signaling upgrade failed")
		return
	}
	p := &peer{id: uuid.NewString(), conn: conn, send: make(chan SignalMessage, sendBuffer)}
	logrus.WithField("peer_id", p.id).Info("signaling peer connected")

	go p.writePump()
	h.readPump(p)

	h.leave(p)
	close(p.send)
	logrus.WithField("peer_id", p.id).Info("signaling peer disconnected")
}

func (h *SignalingHub) readPump(p *peer) {
	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg SignalMessage
		if err := p.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("peer_id", p.id).Warn("signaling read failed")
			}
			return
		}
		h.dispatch(p, msg)
	}
}

func (h *SignalingHub) dispatch(p *peer, msg SignalMessage) {
	switch msg.Type {
	case SignalJoinRoom:
		if msg.RoomID == "" {
			p.deliver(SignalMessage{Type: SignalError, Payload: jsonString("roomId is required")})
			return
		}
		h.join(p, msg.RoomID)
	case SignalOffer, SignalAnswer, SignalICECandidate:
		if !h.relay(p, msg) {
			p.deliver(SignalMessage{Type: SignalError, RoomID: msg.RoomID, Payload: jsonString("join the room first")})
		}
	default:
		p.deliver(SignalMessage{Type: SignalError, Payload: jsonString("unknown message type " + msg.Type)})
	}
}

func (h *SignalingHub) join(p *peer, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if p.room != "" {
		h.removeLocked(p)
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*peer]struct{})
		h.rooms[room] = members
	}
	members[p] = struct{}{}
	p.room = room

	p.deliver(SignalMessage{Type: SignalJoined, RoomID: room, PeerID: p.id})
	for other := range members {
		if other != p {
			other.deliver(SignalMessage{Type: SignalPeerJoined, RoomID: room, PeerID: p.id})
		}
	}
	logrus.WithFields(logrus.Fields{"peer_id": p.id, "room": room, "peers": len(members)}).Debug("peer joined room")
}

// relay forwards msg to every other peer in the sender's room.
func (h *SignalingHub) relay(p *peer, msg SignalMessage) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if p.room == "" || (msg.RoomID != "" && msg.RoomID != p.room) {
		return false
	}
	out := SignalMessage{Type: msg.Type, RoomID: p.room, FromID: p.id, Payload: msg.Payload}
	for other := range h.rooms[p.room] {
		if other != p {
			other.deliver(out)
		}
	}
	return true
}

func (h *SignalingHub) leave(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(p)
}

func (h *SignalingHub) removeLocked(p *peer) {
	if p.room == "" {
		return
	}
	room := p.room
	members := h.rooms[room]
	delete(members, p)
	p.room = ""
	if len(members) == 0 {
		delete(h.rooms, room)
		return
	}
	for other := range members {
		other.deliver(SignalMessage{Type: SignalPeerLeft, RoomID: room, PeerID: p.id})
	}
}

// deliver queues msg without blocking; a peer that cannot keep up loses messages.
func (p *peer) deliver(msg SignalMessage) {
	select {
	case p.send <- msg:
	default:
		logrus.WithFields(logrus.Fields{"peer_id": p.id, "type": msg.Type}).Warn("signaling send buffer full, dropping message")
	}
}

func (p *peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func jsonString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
