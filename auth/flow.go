package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/yeremiapane/table-reservation/sessions"
	"github.com/yeremiapane/table-reservation/utils"
)

type FlowConfig struct {
	LoginPath       string
	DefaultRedirect string
}

// LoginFlow drives Anonymous -> provider -> callback -> signed in (or failed).
type LoginFlow struct {
	provider        Provider
	signer          *StateSigner
	verifier        *Verifier
	sessions        *sessions.Manager
	loginPath       string
	defaultRedirect string
}

func NewLoginFlow(provider Provider, signer *StateSigner, verifier *Verifier, manager *sessions.Manager, cfg FlowConfig) *LoginFlow {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.DefaultRedirect == "" {
		cfg.DefaultRedirect = "/"
	}
	return &LoginFlow{
		provider:        provider,
		signer:          signer,
		verifier:        verifier,
		sessions:        manager,
		loginPath:       cfg.LoginPath,
		defaultRedirect: cfg.DefaultRedirect,
	}
}

func (f *LoginFlow) LoginPath() string {
	return f.loginPath
}

// FailureURL -> tujuan redirect ketika login gagal
func (f *LoginFlow) FailureURL() string {
	return f.loginPath + "?error=auth_failed"
}

// Begin stores the post-login destination and the state nonce, then returns the provider URL.
func (f *LoginFlow) Begin(ctx context.Context, w http.ResponseWriter, r *http.Request, rc *RequestContext) (string, error) {
	s := copySession(rc.Session)
	s.ReturnTo = f.destination(r)

	state, nonce, err := f.signer.Issue()
	if err != nil {
		return "", err
	}
	s.OAuthState = nonce

	id, err := f.sessions.Save(ctx, w, rc.SessionID, s)
	if err != nil {
		return "", err
	}
	rc.SessionID, rc.Session = id, s
	return f.provider.AuthCodeURL(state), nil
}

// Complete handles the provider callback and returns where the browser goes next. Failures are
// logged and always end on the login page; provider details never reach the client.
func (f *LoginFlow) Complete(ctx context.Context, w http.ResponseWriter, r *http.Request, rc *RequestContext) string {
	query := r.URL.Query()
	s := copySession(rc.Session)
	nonce := s.OAuthState
	s.OAuthState = ""

	if providerErr := query.Get("error"); providerErr != "" {
		utils.ErrorLogger.Warnf("OAuth callback returned provider error: %s", providerErr)
		return f.fail(ctx, w, rc, s)
	}
	if err := f.signer.Verify(query.Get("state"), nonce); err != nil {
		utils.ErrorLogger.Warnf("OAuth callback rejected: %v", err)
		return f.fail(ctx, w, rc, s)
	}

	profile, err := f.provider.Exchange(ctx, query.Get("code"))
	if err != nil {
		utils.ErrorLogger.Errorf("OAuth exchange failed: %v", err)
		return f.fail(ctx, w, rc, s)
	}

	result := f.verifier.Verify(ctx, profile)
	if !result.OK() {
		utils.ErrorLogger.Errorf("OAuth user lookup failed: %v", result.Err)
		return f.fail(ctx, w, rc, s)
	}

	dest := s.ReturnTo
	if dest == "" {
		dest = f.defaultRedirect
	}
	s.ReturnTo = ""
	s.UserID = result.User.ID

	id, err := f.sessions.Rotate(ctx, w, rc.SessionID, s)
	if err != nil {
		utils.ErrorLogger.Errorf("Failed to establish session: %v", err)
		return f.FailureURL()
	}
	rc.SessionID, rc.Session, rc.User = id, s, result.User

	utils.InfoLogger.Infof("User %s signed in", result.User.ID)
	return dest
}

// Logout destroys the session and returns the caller supplied destination when it is local.
func (f *LoginFlow) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request, rc *RequestContext) (string, error) {
	if err := f.sessions.Destroy(ctx, w, rc.SessionID); err != nil {
		return "", err
	}
	rc.SessionID, rc.Session, rc.User = "", &sessions.Session{}, nil

	if dest := r.URL.Query().Get("returnTo"); f.isSafe(dest) {
		return dest, nil
	}
	return f.defaultRedirect, nil
}

func (f *LoginFlow) fail(ctx context.Context, w http.ResponseWriter, rc *RequestContext, s *sessions.Session) string {
	if rc.SessionID != "" {
		if _, err := f.sessions.Save(ctx, w, rc.SessionID, s); err != nil {
			utils.ErrorLogger.Errorf("Failed to clear OAuth state: %v", err)
		}
	}
	return f.FailureURL()
}

// destination -> returnTo dari query, lalu Referer dari origin yang sama, lalu default
func (f *LoginFlow) destination(r *http.Request) string {
	if dest := r.URL.Query().Get("returnTo"); f.isSafe(dest) {
		return dest
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host != "" && ref.Host == r.Host {
		if dest := ref.RequestURI(); f.isSafe(dest) {
			return dest
		}
	}
	return f.defaultRedirect
}

// isSafe accepts local absolute paths only, and never the login pages themselves.
func (f *LoginFlow) isSafe(dest string) bool {
	if dest == "" || !strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "//") || strings.HasPrefix(dest, "/\\") {
		return false
	}
	path := dest
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	return path != f.loginPath && !strings.HasPrefix(path, "/auth/")
}

func copySession(s *sessions.Session) *sessions.Session {
	if s == nil {
		return &sessions.Session{}
	}
	cp := *s
	return &cp
}
