package relay

import (
	"go.uber.org/zap"

	"github.com/Jaideep0802/CodePair/internal/models"
	"github.com/Jaideep0802/CodePair/internal/session"
)

// Relay forwards call-setup messages between two connections. It keeps no
// state and never looks at room membership: addressing is purely by
// connection id, and payloads stay opaque. Nothing is buffered; a message
// to a dead or missing target is lost and the peers renegotiate.
type Relay struct {
	hub *session.Hub
	log *zap.Logger
}

func New(hub *session.Hub, log *zap.Logger) *Relay {
	return &Relay{hub: hub, log: log}
}

// Signal forwards an opaque blob (offer, answer, ICE candidate) to the
// addressed connection, stamping the sender's id. An empty target drops
// the message.
func (r *Relay) Signal(from string, req models.SignalRequest) bool {
	if req.To == "" {
		r.log.Debug("signal without target dropped", zap.String("from", from))
		return false
	}
	delivered := r.hub.Send(req.To, models.Envelope{
		Event: models.EventSignal,
		Data:  models.SignalEvent{From: from, Type: req.Type, Data: req.Data},
	})
	if !delivered {
		r.log.Debug("signal target unavailable",
			zap.String("from", from), zap.String("to", req.To), zap.String("type", req.Type))
	}
	return delivered
}

// CallStarted tells the addressed connection that the sender has begun
// sending media. Same delivery contract as Signal, no payload.
func (r *Relay) CallStarted(from, to string) bool {
	if to == "" {
		return false
	}
	return r.hub.Send(to, models.Envelope{
		Event: models.EventCallStarted,
		Data:  models.CallStartedEvent{From: from},
	})
}
