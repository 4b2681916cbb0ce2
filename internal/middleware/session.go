package middleware

import (
	"net/http"

	"shopyz-be/internal/auth"
	"shopyz-be/internal/logger"
	"shopyz-be/internal/session"
	"shopyz-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sessions resolves the caller's session from its token, minting a new session and
// cookie when the token is missing or invalid.
type Sessions struct {
	issuer  *auth.Issuer
	manager *session.Manager
	secure  bool
}

func NewSessions(issuer *auth.Issuer, manager *session.Manager, secure bool) *Sessions {
	return &Sessions{issuer: issuer, manager: manager, secure: secure}
}

// SetCookie writes a fresh token for the session.
func (s *Sessions) SetCookie(w http.ResponseWriter, sessionID string, admin bool) error {
	token, err := s.issuer.Issue(sessionID, admin)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromCtx(ctx).With(zap.String("layer", "middleware"))

		var (
			sessionID string
			admin     bool
		)
		if tok := auth.ExtractAccessToken(r); tok != "" {
			claims, err := s.issuer.Parse(tok)
			if err != nil {
				log.Debug("discarding session token", zap.Error(err))
			} else {
				sessionID, admin = claims.SessionID, claims.Admin
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			if err := s.SetCookie(w, sessionID, false); err != nil {
				log.Error("failed to issue session token", zap.Error(err))
				utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		ctx = logger.WithSessionID(ctx, sessionID)
		state := s.manager.Get(ctx, sessionID)
		state.SetAdmin(admin)

		next.ServeHTTP(w, r.WithContext(session.WithState(ctx, state)))
	})
}
