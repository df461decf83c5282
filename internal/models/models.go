package models

import "github.com/pion/webrtc/v3"

// Language is a display tag passed through to clients; the server never
// interprets code contents.
type Language string

const (
	LangCPP  Language = "cpp"
	LangJava Language = "java"
)

// DefaultLanguage is the tag a freshly created code room starts with.
const DefaultLanguage = LangCPP

func SupportedLanguages() []Language {
	return []Language{LangCPP, LangJava}
}

// Envelope is the wire frame for every WebSocket message in both
// directions: an event name plus an event-specific payload.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Inbound event names.
const (
	EventJoin        = "join"
	EventJoinText    = "join-text"
	EventJoinVideo   = "join-video"
	EventRejoinVideo = "rejoin-video"
	EventCodeChange  = "code-change"
	EventTextChange  = "text-change"
	EventSignal      = "signal"
	EventCallStarted = "call-started"
	EventLeave       = "leave"
)

// Outbound-only event names.
const (
	EventJoined     = "joined"
	EventRoomFull   = "room-full"
	EventPeerJoined = "peer-joined"
	EventPeerLeft   = "peer-left"
)

/*** Inbound payloads ***/

type JoinRequest struct {
	RoomID string `json:"roomId"`
}

type CodeChange struct {
	RoomID   string   `json:"roomId"`
	Code     string   `json:"code"`
	Language Language `json:"language,omitempty"`
}

type TextChange struct {
	RoomID  string `json:"roomId"`
	Content string `json:"content"`
}

// SignalRequest addresses an opaque WebRTC blob (offer, answer, ICE
// candidate) to one peer. Data is never inspected.
type SignalRequest struct {
	To   string      `json:"to"`
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type CallStartedRequest struct {
	To string `json:"to"`
}

/*** Outbound payloads ***/

type CodeState struct {
	Code     string   `json:"code"`
	Language Language `json:"language"`
}

type NoteState struct {
	Content string `json:"content"`
}

// Joined tells a call-room joiner who their peer is. OtherID is null for
// the first participant.
type Joined struct {
	OtherID *string `json:"otherId"`
}

type PeerJoined struct {
	ID string `json:"id"`
}

type PeerLeft struct {
	ID string `json:"id"`
}

type SignalEvent struct {
	From string      `json:"from"`
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type CallStartedEvent struct {
	From string `json:"from"`
}

/*** HTTP responses ***/

// WebRTCConfig is served to browsers building their peer connections.
type WebRTCConfig struct {
	ICEServers []webrtc.ICEServer `json:"iceServers"`
}
