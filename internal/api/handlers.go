package api

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"
	"go.uber.org/zap"

	"github.com/Jaideep0802/CodePair/internal/config"
	"github.com/Jaideep0802/CodePair/internal/metrics"
	"github.com/Jaideep0802/CodePair/internal/models"
	"github.com/Jaideep0802/CodePair/internal/registry"
	"github.com/Jaideep0802/CodePair/internal/relay"
	"github.com/Jaideep0802/CodePair/internal/session"
	"github.com/Jaideep0802/CodePair/internal/utils"
)

type Handlers struct {
	log        *zap.Logger
	registry   *registry.Registry
	hub        *session.Hub
	relay      *relay.Relay
	upgrader   websocket.Upgrader
	iceServers []webrtc.ICEServer

	// Per-room dispatch locks, one set per namespace. Mutation and
	// fan-out for a room share one critical section so members never
	// observe broadcasts out of the registry's serialized order, while
	// unrelated rooms dispatch fully concurrently.
	codeLocks *roomLocks
	noteLocks *roomLocks
	callLocks *roomLocks
}

func NewHandlers(log *zap.Logger, cfg *config.Config) *Handlers {
	hub := session.NewHub()
	return &Handlers{
		log:        log,
		registry:   registry.New(),
		hub:        hub,
		relay:      relay.New(hub, log),
		upgrader:   websocket.Upgrader{CheckOrigin: checkOrigin(cfg.AllowedOrigin)},
		iceServers: utils.ICEServers(cfg),
		codeLocks:  newRoomLocks(),
		noteLocks:  newRoomLocks(),
		callLocks:  newRoomLocks(),
	}
}

// checkOrigin applies the same origin policy to WebSocket upgrades that
// the router's CORS layer applies to HTTP routes. Requests without an
// Origin header (non-browser clients) are always allowed.
func checkOrigin(allowed string) func(*http.Request) bool {
	if allowed == "" || allowed == "*" {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origin == allowed
	}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) ListLanguages(w http.ResponseWriter, _ *http.Request) {
	utils.JSON(w, http.StatusOK, models.SupportedLanguages())
}

func (h *Handlers) GetWebRTCConfig(w http.ResponseWriter, _ *http.Request) {
	utils.JSON(w, http.StatusOK, models.WebRTCConfig{ICEServers: h.iceServers})
}

/*** Session WebSocket: code rooms, note rooms, call rooms, signaling ***/

func (h *Handlers) SessionWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	client := session.NewClient(conn)
	h.hub.Register(client)
	metrics.ConnectionOpened()
	h.log.Info("client connected", zap.String("conn", client.ID))

	defer func() {
		h.hub.Unregister(client.ID)
		h.disconnect(client.ID)
		metrics.ConnectionClosed()
		metrics.SetActiveRooms(h.registry.Counts())
		h.log.Info("client disconnected", zap.String("conn", client.ID))
	}()

	for {
		var env models.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		h.dispatch(client, env)
	}
}

// dispatch routes one inbound event to the registry or the relay and fans
// out whatever deliveries come back. Malformed events (missing roomId or
// target) are dropped without a reply.
func (h *Handlers) dispatch(client *session.Client, env models.Envelope) {
	metrics.EventReceived(env.Event)

	switch env.Event {
	case models.EventJoin:
		var req models.JoinRequest
		decode(env.Data, &req)
		if req.RoomID == "" {
			h.dropMalformed(client.ID, env.Event)
			return
		}
		h.withRoom(h.codeLocks, req.RoomID, func() []registry.Delivery {
			return h.registry.JoinCode(client.ID, req.RoomID)
		})

	case models.EventJoinText:
		var req models.JoinRequest
		decode(env.Data, &req)
		if req.RoomID == "" {
			h.dropMalformed(client.ID, env.Event)
			return
		}
		h.withRoom(h.noteLocks, req.RoomID, func() []registry.Delivery {
			return h.registry.JoinNote(client.ID, req.RoomID)
		})

	case models.EventJoinVideo, models.EventRejoinVideo:
		var req models.JoinRequest
		decode(env.Data, &req)
		if req.RoomID == "" {
			h.dropMalformed(client.ID, env.Event)
			return
		}
		h.withRoom(h.callLocks, req.RoomID, func() []registry.Delivery {
			return h.registry.JoinCall(client.ID, req.RoomID)
		})

	case models.EventCodeChange:
		var req models.CodeChange
		decode(env.Data, &req)
		if req.RoomID == "" {
			h.dropMalformed(client.ID, env.Event)
			return
		}
		h.withRoom(h.codeLocks, req.RoomID, func() []registry.Delivery {
			return h.registry.SetCode(client.ID, req.RoomID, req.Code, req.Language)
		})

	case models.EventTextChange:
		var req models.TextChange
		decode(env.Data, &req)
		if req.RoomID == "" {
			h.dropMalformed(client.ID, env.Event)
			return
		}
		h.withRoom(h.noteLocks, req.RoomID, func() []registry.Delivery {
			return h.registry.SetNote(client.ID, req.RoomID, req.Content)
		})

	case models.EventLeave:
		var req models.JoinRequest
		decode(env.Data, &req)
		if req.RoomID == "" {
			h.dropMalformed(client.ID, env.Event)
			return
		}
		h.withRoom(h.callLocks, req.RoomID, func() []registry.Delivery {
			return h.registry.LeaveCall(client.ID, req.RoomID)
		})

	case models.EventSignal:
		var req models.SignalRequest
		decode(env.Data, &req)
		h.relay.Signal(client.ID, req)

	case models.EventCallStarted:
		var req models.CallStartedRequest
		decode(env.Data, &req)
		h.relay.CallStarted(client.ID, req.To)

	default:
		h.log.Debug("unknown event ignored",
			zap.String("conn", client.ID), zap.String("event", env.Event))
	}

	metrics.SetActiveRooms(h.registry.Counts())
}

func (h *Handlers) withRoom(locks *roomLocks, roomID string, op func() []registry.Delivery) {
	rl := locks.acquire(roomID)
	defer locks.release(rl)
	h.deliver(op())
}

// disconnect runs transport-level cleanup. Code and note removals emit
// nothing, so only the connection's call rooms need dispatch locks; they
// are taken in sorted order so concurrent disconnects cannot deadlock.
// The connection's read loop is gone, so its membership cannot grow
// between the snapshot and the cleanup.
func (h *Handlers) disconnect(connID string) {
	roomIDs := h.registry.CallRoomsOf(connID)
	sort.Strings(roomIDs)
	held := make([]*roomLock, 0, len(roomIDs))
	for _, id := range roomIDs {
		held = append(held, h.callLocks.acquire(id))
	}
	h.deliver(h.registry.Disconnect(connID))
	for i := len(held) - 1; i >= 0; i-- {
		h.callLocks.release(held[i])
	}
}

// deliver performs the best-effort sends a registry operation asked for.
// An undeliverable target means the connection went away between the
// decision and the write; the message is simply lost.
func (h *Handlers) deliver(ds []registry.Delivery) {
	for _, d := range ds {
		if !h.hub.Send(d.To, models.Envelope{Event: d.Event, Data: d.Data}) {
			h.log.Debug("delivery dropped",
				zap.String("to", d.To), zap.String("event", d.Event))
		}
	}
}

func (h *Handlers) dropMalformed(connID, event string) {
	h.log.Debug("malformed event dropped",
		zap.String("conn", connID), zap.String("event", event))
}

func decode(in interface{}, out interface{}) {
	b, _ := json.Marshal(in)
	_ = json.Unmarshal(b, out)
}
