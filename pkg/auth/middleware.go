package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"github.com/ghuser/lostfound/pkg/httpx"
	"github.com/ghuser/lostfound/pkg/logger"
)

const sessionName = "lostfound_session"

// Session value keys.
const (
	sessionUserIDKey = "user_id"
	sessionNameKey   = "name"
	sessionEmailKey  = "email"
	sessionRoleKey   = "role"
)

// Authenticator resolves the caller of a request.
type Authenticator interface {
	Authenticate(r *http.Request) (Identity, error)
}

// AccountResolver reloads the account behind a credential. It returns an
// error wrapping ErrUnauthenticated when the account no longer exists.
type AccountResolver interface {
	ResolveIdentity(ctx context.Context, userID uuid.UUID) (Identity, error)
}

// IdentityProvider authenticates requests by bearer token first and falls
// back to the session cookie. It also starts and ends both kinds of login.
type IdentityProvider struct {
	tokens   *TokenIssuer
	revoked  RevocationList
	sessions sessions.Store
	accounts AccountResolver
}

// NewIdentityProvider wires the token issuer, the token revocation list and
// the session store. revoked and store may be nil to disable those features.
func NewIdentityProvider(tokens *TokenIssuer, revoked RevocationList, store sessions.Store) *IdentityProvider {
	return &IdentityProvider{tokens: tokens, revoked: revoked, sessions: store}
}

// ResolveAccountsWith makes Authenticate reload the caller's account on every
// request, so role changes and deleted accounts take effect before issued
// tokens and sessions expire. Without a resolver the identity captured at
// login is trusted as is.
func (p *IdentityProvider) ResolveAccountsWith(accounts AccountResolver) {
	p.accounts = accounts
}

// Authenticate implements Authenticator.
func (p *IdentityProvider) Authenticate(r *http.Request) (Identity, error) {
	id, err := p.credentials(r)
	if err != nil || p.accounts == nil {
		return id, err
	}
	return p.accounts.ResolveIdentity(r.Context(), id.UserID)
}

func (p *IdentityProvider) credentials(r *http.Request) (Identity, error) {
	if raw, ok := bearerToken(r); ok {
		return p.fromToken(r, raw)
	}
	if p.sessions != nil {
		return p.fromSession(r)
	}
	return Identity{}, ErrUnauthenticated
}

func (p *IdentityProvider) fromToken(r *http.Request, raw string) (Identity, error) {
	claims, err := p.tokens.Parse(raw)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if p.revoked != nil {
		revoked, err := p.revoked.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			return Identity{}, err
		}
		if revoked {
			return Identity{}, fmt.Errorf("%w: token revoked", ErrUnauthenticated)
		}
	}
	id, err := claims.Identity()
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	return id, nil
}

func (p *IdentityProvider) fromSession(r *http.Request) (Identity, error) {
	session, err := p.sessions.Get(r, sessionName)
	if err != nil {
		// Undecodable cookies are the client's problem; anything else is the store's.
		var cookieErr securecookie.Error
		if errors.As(err, &cookieErr) && cookieErr.IsDecode() {
			return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return Identity{}, fmt.Errorf("load session: %w", err)
	}
	userID, _ := session.Values[sessionUserIDKey].(string)
	id, err := uuid.Parse(userID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: invalid session data", ErrUnauthenticated)
	}
	name, _ := session.Values[sessionNameKey].(string)
	email, _ := session.Values[sessionEmailKey].(string)
	role, _ := session.Values[sessionRoleKey].(string)
	return Identity{UserID: id, Name: name, Email: email, Role: role}, nil
}

// Login issues a bearer token for id and, when a session store is configured,
// also writes a session cookie so browser clients need not handle the token.
func (p *IdentityProvider) Login(w http.ResponseWriter, r *http.Request, id Identity) (string, error) {
	token, err := p.tokens.Issue(id)
	if err != nil {
		return "", err
	}
	if p.sessions == nil {
		return token, nil
	}

	// A stale or tampered cookie still yields a fresh session to overwrite.
	session, err := p.sessions.Get(r, sessionName)
	if session == nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	session.Values[sessionUserIDKey] = id.UserID.String()
	session.Values[sessionNameKey] = id.Name
	session.Values[sessionEmailKey] = id.Email
	session.Values[sessionRoleKey] = id.Role
	if err := session.Save(r, w); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Logout revokes the request's bearer token, if any, and destroys its session.
func (p *IdentityProvider) Logout(w http.ResponseWriter, r *http.Request) error {
	if raw, ok := bearerToken(r); ok && p.revoked != nil {
		claims, err := p.tokens.Parse(raw)
		if err == nil && claims.ExpiresAt != nil {
			if err := p.revoked.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				return err
			}
		}
	}
	if p.sessions == nil {
		return nil
	}
	session, _ := p.sessions.Get(r, sessionName)
	if session == nil {
		return nil
	}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}

// RequireAuth is a chi middleware that authenticates the request and injects
// the caller Identity into the request context.
// Returns 401 Unauthorized when no valid credentials are present.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireAuth(a Authenticator, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := a.Authenticate(r)
			if err != nil {
				if errors.Is(err, ErrUnauthenticated) {
					log.WarnContext(r.Context(), "authentication failed", "error", err)
					httpx.JSONError(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
					return
				}
				log.ErrorContext(r.Context(), "authentication backend failure", "error", err)
				httpx.JSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireRole returns middleware that rejects callers without the given role
// with 403. It must be mounted after RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := IdentityFromCtx(r.Context())
			if err != nil {
				httpx.JSONError(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
				return
			}
			if id.Role != role {
				httpx.JSONError(w, http.StatusForbidden, "Not authorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
