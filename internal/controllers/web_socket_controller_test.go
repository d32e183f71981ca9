package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func signalingServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/signaling", NewSignalingHub(nil).Handle)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/signaling"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func expect(t *testing.T, conn *websocket.Conn, typ string) SignalMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg SignalMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("waiting for %s: %v", typ, err)
	}
	if msg.Type != typ {
		t.Fatalf("got %s, want %s", msg.Type, typ)
	}
	return msg
}

func TestSignalingRelaysWithinRoom(t *testing.T) {
	url := signalingServer(t)
	alice, bob := dial(t, url), dial(t, url)

	alice.WriteJSON(SignalMessage{Type: SignalJoinRoom, RoomID: "stall-7"})
	aliceID := expect(t, alice, SignalJoined).PeerID

	bob.WriteJSON(SignalMessage{Type: SignalJoinRoom, RoomID: "stall-7"})
	bobID := expect(t, bob, SignalJoined).PeerID
	if joined := expect(t, alice, SignalPeerJoined); joined.PeerID != bobID {
		t.Fatalf("peer-joined for %s, want %s", joined.PeerID, bobID)
	}

	offer := json.RawMessage(`{"sdp":"v=0"}`)
	alice.WriteJSON(SignalMessage{Type: SignalOffer, RoomID: "stall-7", Payload: offer})
	got := expect(t, bob, SignalOffer)
	if got.FromID != aliceID || string(got.Payload) != string(offer) {
		t.Fatalf("relayed offer: %+v", got)
	}

	alice.Close()
	if left := expect(t, bob, SignalPeerLeft); left.PeerID != aliceID {
		t.Fatalf("peer-left for %s, want %s", left.PeerID, aliceID)
	}
}

func TestSignalingRejectsRelayOutsideRoom(t *testing.T) {
	conn := dial(t, signalingServer(t))

	conn.WriteJSON(SignalMessage{Type: SignalAnswer, RoomID: "stall-7", Payload: json.RawMessage(`{}`)})
	expect(t, conn, SignalError)

	conn.WriteJSON(SignalMessage{Type: "shout"})
	expect(t, conn, SignalError)

	conn.WriteJSON(SignalMessage{Type: SignalJoinRoom})
	expect(t, conn, SignalError)
}
