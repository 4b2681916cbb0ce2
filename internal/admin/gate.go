package admin

import (
	"context"

	"shopyz-be/internal/auth"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/session"

	"go.uber.org/zap"
)

// DefaultPassword unlocks the console when none is configured.
const DefaultPassword = "12346"

// Gate checks the console password. It only flips a per-session flag and is not an
// access control boundary for the data itself.
type Gate struct {
	hash string
}

func NewGate(password string) (*Gate, error) {
	if password == "" {
		password = DefaultPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Gate{hash: hash}, nil
}

func (g *Gate) Login(ctx context.Context, sess *session.State, password string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "admin"),
		zap.String("method", "Login"),
	)

	if !auth.CheckPasswordHash(password, g.hash) {
		log.Warn("admin login rejected")
		return ErrWrongPassword
	}
	sess.SetAdmin(true)
	log.Info("admin session opened")
	return nil
}

func (g *Gate) Logout(sess *session.State) {
	sess.SetAdmin(false)
}

// Require fails unless the session passed the gate.
func Require(sess *session.State) error {
	if !sess.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}
