package registry

import (
	"sync"

	"github.com/Jaideep0802/CodePair/internal/models"
)

// CallRoomCapacity is the hard member limit for a call room.
const CallRoomCapacity = 2

// Room kind labels, used for metrics and diagnostics.
const (
	KindCode = "code"
	KindNote = "note"
	KindCall = "call"
)

// Delivery is one message the transport should attempt to send. Registry
// operations return deliveries instead of writing to sockets so that
// fan-out decisions stay testable without a live connection.
type Delivery struct {
	To    string
	Event string
	Data  interface{}
}

type codeRoom struct {
	members  []string
	code     string
	language models.Language
}

type noteRoom struct {
	members []string
	content string
}

type callRoom struct {
	members []string
}

// Registry owns all room state. The three namespaces are independent: a
// connection may sit in a code room, a note room, and a call room under
// unrelated ids. Each namespace has its own lock, so operations on
// different kinds never serialize against each other, and every operation
// is atomic with respect to the rooms it touches.
type Registry struct {
	codeMu    sync.Mutex
	codeRooms map[string]*codeRoom

	noteMu    sync.Mutex
	noteRooms map[string]*noteRoom

	callMu    sync.Mutex
	callRooms map[string]*callRoom
}

func New() *Registry {
	return &Registry{
		codeRooms: make(map[string]*codeRoom),
		noteRooms: make(map[string]*noteRoom),
		callRooms: make(map[string]*callRoom),
	}
}

// JoinCode adds connID to the code room, creating it on first join.
// Re-joining is a no-op. The joiner receives the current buffer only if
// one exists.
func (r *Registry) JoinCode(connID, roomID string) []Delivery {
	r.codeMu.Lock()
	defer r.codeMu.Unlock()

	room, ok := r.codeRooms[roomID]
	if !ok {
		room = &codeRoom{language: models.DefaultLanguage}
		r.codeRooms[roomID] = room
	}
	if !contains(room.members, connID) {
		room.members = append(room.members, connID)
	}
	if room.code == "" {
		return nil
	}
	return []Delivery{{
		To:    connID,
		Event: models.EventCodeChange,
		Data:  models.CodeState{Code: room.code, Language: room.language},
	}}
}

// SetCode overwrites the buffer (last writer wins) and returns a
// broadcast to every member except the sender. Unknown rooms are a no-op:
// an edit never creates a room.
func (r *Registry) SetCode(connID, roomID, code string, language models.Language) []Delivery {
	r.codeMu.Lock()
	defer r.codeMu.Unlock()

	room, ok := r.codeRooms[roomID]
	if !ok {
		return nil
	}
	room.code = code
	if language != "" {
		room.language = language
	}

	state := models.CodeState{Code: code, Language: room.language}
	var out []Delivery
	for _, id := range room.members {
		if id == connID {
			continue
		}
		out = append(out, Delivery{To: id, Event: models.EventCodeChange, Data: state})
	}
	return out
}

// JoinNote mirrors JoinCode for the note namespace.
func (r *Registry) JoinNote(connID, roomID string) []Delivery {
	r.noteMu.Lock()
	defer r.noteMu.Unlock()

	room, ok := r.noteRooms[roomID]
	if !ok {
		room = &noteRoom{}
		r.noteRooms[roomID] = room
	}
	if !contains(room.members, connID) {
		room.members = append(room.members, connID)
	}
	if room.content == "" {
		return nil
	}
	return []Delivery{{
		To:    connID,
		Event: models.EventTextChange,
		Data:  models.NoteState{Content: room.content},
	}}
}

// SetNote mirrors SetCode for the note namespace.
func (r *Registry) SetNote(connID, roomID, content string) []Delivery {
	r.noteMu.Lock()
	defer r.noteMu.Unlock()

	room, ok := r.noteRooms[roomID]
	if !ok {
		return nil
	}
	room.content = content

	state := models.NoteState{Content: content}
	var out []Delivery
	for _, id := range room.members {
		if id == connID {
			continue
		}
		out = append(out, Delivery{To: id, Event: models.EventTextChange, Data: state})
	}
	return out
}

// JoinCall adds connID to a call room. Re-joining is a silent no-op. A
// third distinct connection is told "room-full" and nothing changes. The
// joiner learns its peer's id (null when alone) and the peer is notified.
func (r *Registry) JoinCall(connID, roomID string) []Delivery {
	r.callMu.Lock()
	defer r.callMu.Unlock()

	room, ok := r.callRooms[roomID]
	if !ok {
		room = &callRoom{}
		r.callRooms[roomID] = room
	}
	if contains(room.members, connID) {
		return nil
	}
	if len(room.members) >= CallRoomCapacity {
		return []Delivery{{To: connID, Event: models.EventRoomFull, Data: struct{}{}}}
	}

	var other *string
	if len(room.members) == 1 {
		o := room.members[0]
		other = &o
	}
	room.members = append(room.members, connID)

	out := []Delivery{{To: connID, Event: models.EventJoined, Data: models.Joined{OtherID: other}}}
	if other != nil {
		out = append(out, Delivery{To: *other, Event: models.EventPeerJoined, Data: models.PeerJoined{ID: connID}})
	}
	return out
}

// LeaveCall removes connID from the call room, notifies whoever remains,
// and deletes the room once empty.
func (r *Registry) LeaveCall(connID, roomID string) []Delivery {
	r.callMu.Lock()
	defer r.callMu.Unlock()

	room, ok := r.callRooms[roomID]
	if !ok {
		return nil
	}
	room.members = remove(room.members, connID)

	var out []Delivery
	for _, id := range room.members {
		out = append(out, Delivery{To: id, Event: models.EventPeerLeft, Data: models.PeerLeft{ID: connID}})
	}
	if len(room.members) == 0 {
		delete(r.callRooms, roomID)
	}
	return out
}

// Disconnect is the transport-disconnect cleanup: connID is pulled out of
// every room in all three namespaces, emptied rooms are deleted, and
// remaining call-room peers get a peer-left.
func (r *Registry) Disconnect(connID string) []Delivery {
	r.codeMu.Lock()
	for id, room := range r.codeRooms {
		if !contains(room.members, connID) {
			continue
		}
		room.members = remove(room.members, connID)
		if len(room.members) == 0 {
			delete(r.codeRooms, id)
		}
	}
	r.codeMu.Unlock()

	r.noteMu.Lock()
	for id, room := range r.noteRooms {
		if !contains(room.members, connID) {
			continue
		}
		room.members = remove(room.members, connID)
		if len(room.members) == 0 {
			delete(r.noteRooms, id)
		}
	}
	r.noteMu.Unlock()

	var out []Delivery
	r.callMu.Lock()
	for id, room := range r.callRooms {
		if !contains(room.members, connID) {
			continue
		}
		room.members = remove(room.members, connID)
		for _, peer := range room.members {
			out = append(out, Delivery{To: peer, Event: models.EventPeerLeft, Data: models.PeerLeft{ID: connID}})
		}
		if len(room.members) == 0 {
			delete(r.callRooms, id)
		}
	}
	r.callMu.Unlock()
	return out
}

// CodeSnapshot returns the room's buffer, if the room exists.
func (r *Registry) CodeSnapshot(roomID string) (models.CodeState, bool) {
	r.codeMu.Lock()
	defer r.codeMu.Unlock()
	room, ok := r.codeRooms[roomID]
	if !ok {
		return models.CodeState{}, false
	}
	return models.CodeState{Code: room.code, Language: room.language}, true
}

// NoteSnapshot returns the room's buffer, if the room exists.
func (r *Registry) NoteSnapshot(roomID string) (models.NoteState, bool) {
	r.noteMu.Lock()
	defer r.noteMu.Unlock()
	room, ok := r.noteRooms[roomID]
	if !ok {
		return models.NoteState{}, false
	}
	return models.NoteState{Content: room.content}, true
}

// CallRoomsOf returns the ids of every call room connID belongs to.
func (r *Registry) CallRoomsOf(connID string) []string {
	r.callMu.Lock()
	defer r.callMu.Unlock()
	var out []string
	for id, room := range r.callRooms {
		if contains(room.members, connID) {
			out = append(out, id)
		}
	}
	return out
}

// CallMembers returns the call room's member ids in join order.
func (r *Registry) CallMembers(roomID string) []string {
	r.callMu.Lock()
	defer r.callMu.Unlock()
	room, ok := r.callRooms[roomID]
	if !ok {
		return nil
	}
	members := make([]string, len(room.members))
	copy(members, room.members)
	return members
}

// Counts reports how many rooms of each kind exist.
func (r *Registry) Counts() map[string]int {
	counts := make(map[string]int, 3)
	r.codeMu.Lock()
	counts[KindCode] = len(r.codeRooms)
	r.codeMu.Unlock()
	r.noteMu.Lock()
	counts[KindNote] = len(r.noteRooms)
	r.noteMu.Unlock()
	r.callMu.Lock()
	counts[KindCall] = len(r.callRooms)
	r.callMu.Unlock()
	return counts
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
