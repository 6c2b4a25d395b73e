package app

import (
	"errors"
	"sort"
	"sync"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrNotJoined = errors.New("app: session has not joined a room")

type sessionEntry struct {
	Membership domain.Membership
	Conn       core.SignalConnection
}

// Member is a point-in-time copy of one registry entry.
type Member struct {
	SID  core.SessionID
	Conn core.SignalConnection
	domain.Membership
}

// Registry is the single source of truth for room membership.
// At most one membership exists per session; rooms are derived from it.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[core.SessionID]*sessionEntry),
	}
}

// Join binds sid to room, replacing any previous membership of sid.
// It returns the replaced membership, if there was one.
func (r *Registry) Join(
	sid core.SessionID,
	conn core.SignalConnection,
	room domain.RoomID,
	username string,
) (domain.Membership, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, replaced := r.sessions[sid]
	r.sessions[sid] = &sessionEntry{
		Membership: domain.Membership{Room: room, Username: username},
		Conn:       conn,
	}
	ev := log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(room)).Str("username", username)
	if replaced {
		ev = ev.Str("from_room", string(prev.Membership.Room))
		ev.Msg("switched room")
		return prev.Membership, true
	}
	ev.Msg("joined room")
	return domain.Membership{}, false
}

// Leave drops the membership of sid. Leaving twice is not an error.
func (r *Registry) Leave(sid core.SessionID) (Member, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return Member{}, false
	}
	delete(r.sessions, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("room", string(e.Membership.Room)).Msg("left room")
	return Member{SID: sid, Conn: e.Conn, Membership: e.Membership}, true
}

func (r *Registry) Lookup(sid core.SessionID) (domain.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Membership, nil
	}
	return domain.Membership{}, ErrNotJoined
}

// MembersOf returns a snapshot of the room, in no particular order.
// Callers may send to the result without holding the registry lock.
func (r *Registry) MembersOf(room domain.RoomID) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Member, 0, len(r.sessions))
	for sid, e := range r.sessions {
		if e.Membership.Room == room {
			out = append(out, Member{SID: sid, Conn: e.Conn, Membership: e.Membership})
		}
	}
	return out
}

// Rooms lists every non-empty room with its size, sorted by name.
func (r *Registry) Rooms() []core.RoomInfo {
	r.mu.RLock()
	counts := make(map[domain.RoomID]int)
	for _, e := range r.sessions {
		counts[e.Membership.Room]++
	}
	r.mu.RUnlock()

	out := make([]core.RoomInfo, 0, len(counts))
	for name, n := range counts {
		out = append(out, core.RoomInfo{Name: name, MemberCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
