package api

import (
	"fmt"

	"github.com/dmitrijs2005/raisineat/internal/client/models"
	"github.com/jonboulle/clockwork"
)

// TokenSource issues the session token for a freshly authenticated user.
type TokenSource interface {
	Token(user *models.User) string
}

// SyntheticTokens builds "token-<userId>-<epochMillis>". The backend issues
// no token, so this only identifies the session locally and grants nothing.
type SyntheticTokens struct {
	clock clockwork.Clock
}

func NewSyntheticTokens(clock clockwork.Clock) *SyntheticTokens {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SyntheticTokens{clock: clock}
}

func (s *SyntheticTokens) Token(user *models.User) string {
	return fmt.Sprintf("token-%s-%d", user.ID, s.clock.Now().UnixMilli())
}
