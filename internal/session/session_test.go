package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Jaideep0802/CodePair/internal/models"
)

type envelopeCapture struct {
	envs []models.Envelope
}

func newEnvelopeCapture() *envelopeCapture { return &envelopeCapture{} }

func (c *envelopeCapture) hook(env models.Envelope) { c.envs = append(c.envs, env) }

func (c *envelopeCapture) list() []models.Envelope {
	out := make([]models.Envelope, len(c.envs))
	copy(out, c.envs)
	return out
}

func TestClientIDsAreUnique(t *testing.T) {
	a := NewClient(nil)
	b := NewClient(nil)
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
}

func TestClientSendWithHook(t *testing.T) {
	client := NewClient(nil)
	capture := newEnvelopeCapture()
	client.SetSendHook(capture.hook)

	if !client.Send(models.Envelope{Event: "ping"}) {
		t.Fatalf("hooked send should report delivered")
	}
	got := capture.list()
	if len(got) != 1 || got[0].Event != "ping" {
		t.Fatalf("expected envelope captured, got %#v", got)
	}
}

func TestClientSendWithoutConnReportsUndelivered(t *testing.T) {
	client := NewClient(nil)
	if client.Send(models.Envelope{Event: "noop"}) {
		t.Fatalf("send without a connection must report undelivered")
	}
}

func TestClientSendWritesToConn(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan models.Envelope, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var env models.Envelope
		if err := conn.ReadJSON(&env); err == nil {
			received <- env
		}
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	client := NewClient(conn)
	if !client.Send(models.Envelope{Event: "ping"}) {
		t.Fatalf("expected delivered=true for live connection")
	}

	select {
	case env := <-received:
		if env.Event != "ping" {
			t.Fatalf("unexpected envelope: %#v", env)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected envelope to be received")
	}
}

func TestHubRegisterGetUnregister(t *testing.T) {
	hub := NewHub()
	client := NewClient(nil)
	hub.Register(client)

	if got, ok := hub.Get(client.ID); !ok || got != client {
		t.Fatalf("expected registered client")
	}
	if hub.Count() != 1 {
		t.Fatalf("expected count 1, got %d", hub.Count())
	}

	hub.Unregister(client.ID)
	if _, ok := hub.Get(client.ID); ok {
		t.Fatalf("expected client removed")
	}
}

func TestHubSendUnicastExact(t *testing.T) {
	hub := NewHub()
	target := NewClient(nil)
	targetCap := newEnvelopeCapture()
	target.SetSendHook(targetCap.hook)
	other := NewClient(nil)
	other.SetSendHook(func(models.Envelope) { t.Fatal("unicast must not reach other clients") })
	hub.Register(target)
	hub.Register(other)

	if !hub.Send(target.ID, models.Envelope{Event: "signal"}) {
		t.Fatalf("expected delivery to registered client")
	}
	if got := targetCap.list(); len(got) != 1 || got[0].Event != "signal" {
		t.Fatalf("missing unicast envelope: %#v", got)
	}
}

func TestHubSendToMissingClientDropsSilently(t *testing.T) {
	hub := NewHub()
	if hub.Send("gone", models.Envelope{Event: "signal"}) {
		t.Fatalf("send to unknown id must report undelivered")
	}
}
