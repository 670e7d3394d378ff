package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/raisineat/internal/client/api"
	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/dmitrijs2005/raisineat/internal/logging"
)

// Store is the part of the credential store the session persists to.
type Store interface {
	SaveToken(ctx context.Context, token string) error
	GetToken(ctx context.Context) string
	SaveUserData(ctx context.Context, data *models.StoredUserData) error
	GetUserData(ctx context.Context) *models.StoredUserData
	ClearAll(ctx context.Context) error
}

// Manager is the session state machine.
type Manager struct {
	auth   api.Authenticator
	store  Store
	logger logging.Logger

	// op serializes Login, Restore and Logout.
	op               sync.Mutex
	restoreAttempted bool

	mu   sync.RWMutex
	snap Snapshot

	subMu  sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

func NewManager(auth api.Authenticator, store Store, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		auth:   auth,
		store:  store,
		logger: logger.With("component", "session"),
		subs:   make(map[int]chan struct{}),
	}
}

// Login authenticates with the API, persists the result and marks the
// session authenticated. On failure the session keeps its user and token,
// Error holds the user-facing message and the error is returned.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	ctx = logging.WithOpID(ctx)
	m.op.Lock()
	defer m.op.Unlock()

	m.update(func(s *Snapshot) {
		s.IsLoading = true
		s.Error = ""
	})

	res, err := m.auth.Login(ctx, email, password)
	if err != nil {
		msg := api.Message(err)
		m.logger.Info(ctx, "login failed", "error", err)
		m.update(func(s *Snapshot) {
			s.IsLoading = false
			s.Error = msg
		})
		return err
	}

	m.persist(ctx, res)

	m.update(func(s *Snapshot) {
		s.User = res.User
		s.Token = res.Token
		s.IsInitialized = true
		s.IsLoading = false
		s.Error = ""
	})
	m.logger.Info(ctx, "login succeeded", "user_id", res.User.ID)
	return nil
}

// persist writes the token and the user data. Both writes are attempted;
// failures only get logged.
func (m *Manager) persist(ctx context.Context, res *models.AuthResult) {
	if err := m.store.SaveToken(ctx, res.Token); err != nil {
		m.logger.Warn(ctx, "persist token failed", "error", err)
	}
	data := &models.StoredUserData{Token: res.Token, User: res.User}
	if err := m.store.SaveUserData(ctx, data); err != nil {
		m.logger.Warn(ctx, "persist user data failed", "error", err)
	}
}

// Restore rebuilds the session from the store without contacting the
// server. It runs at most once and does nothing if the session is already
// initialized.
func (m *Manager) Restore(ctx context.Context) {
	ctx = logging.WithOpID(ctx)
	m.op.Lock()
	defer m.op.Unlock()

	if m.restoreAttempted || m.IsInitialized() {
		return
	}
	m.restoreAttempted = true

	m.update(func(s *Snapshot) { s.IsLoading = true })

	token := m.store.GetToken(ctx)
	data := m.store.GetUserData(ctx)

	restored := token != "" && data != nil && data.User != nil && data.Token == token
	m.update(func(s *Snapshot) {
		if restored {
			s.User = data.User
			s.Token = token
		}
		s.IsInitialized = true
		s.IsLoading = false
	})

	if restored {
		m.logger.Info(ctx, "session restored", "user_id", data.User.ID)
	} else {
		m.logger.Debug(ctx, "no stored session", "has_token", token != "", "has_user_data", data != nil)
	}
}

// Logout clears the store and the session. Store failures are logged and
// do not stop the transition.
func (m *Manager) Logout(ctx context.Context) {
	ctx = logging.WithOpID(ctx)
	m.op.Lock()
	defer m.op.Unlock()

	if err := m.store.ClearAll(ctx); err != nil {
		m.logger.Warn(ctx, "clear credential store failed", "error", err)
	}

	m.update(func(s *Snapshot) {
		s.User = nil
		s.Token = ""
		s.IsInitialized = true
		s.Error = ""
	})
	m.logger.Info(ctx, "logged out")
}

// ClearError drops the last login error.
func (m *Manager) ClearError() {
	m.update(func(s *Snapshot) { s.Error = "" })
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.clone()
}

func (m *Manager) State() State          { return m.Snapshot().State() }
func (m *Manager) IsAuthenticated() bool { return m.Snapshot().IsAuthenticated() }
func (m *Manager) IsInitialized() bool   { return m.Snapshot().IsInitialized }
func (m *Manager) IsLoading() bool       { return m.Snapshot().IsLoading }
func (m *Manager) Error() string         { return m.Snapshot().Error }
func (m *Manager) User() *models.User    { return m.Snapshot().User }

// Subscribe returns a channel that receives a value after every change and
// a func that stops delivery. Notifications coalesce: a slow reader sees
// at least one value after the latest change.
func (m *Manager) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	m.subMu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = ch
	m.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subMu.Lock()
			delete(m.subs, id)
			m.subMu.Unlock()
		})
	}
}

// update applies fn to the record as a whole and notifies subscribers.
func (m *Manager) update(fn func(s *Snapshot)) {
	m.mu.Lock()
	fn(&m.snap)
	m.mu.Unlock()

	m.subMu.Lock()
	defer m.subMu.Unlock()
	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
