package session

import "github.com/dmitrijs2005/raisineat/internal/client/models"

// State is the derived lifecycle state of a session.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time copy of the session record.
type Snapshot struct {
	User          *models.User
	Token         string
	IsLoading     bool
	Error         string
	IsInitialized bool
}

// IsAuthenticated reports whether both the token and the user are set.
func (s Snapshot) IsAuthenticated() bool {
	return s.Token != "" && s.User != nil
}

// State derives the lifecycle state. Before initialization a loading
// snapshot is Initializing.
func (s Snapshot) State() State {
	switch {
	case !s.IsInitialized && s.IsLoading:
		return StateInitializing
	case !s.IsInitialized:
		return StateUninitialized
	case s.IsAuthenticated():
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

func (s Snapshot) clone() Snapshot {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
