// Package session tracks the authenticated identity and decides which
// application areas each role can reach. Credential validation happens
// locally before any network call; gateway auth failures surface as
// messages and never change session state.
package session

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/kiranamart/storefront-client/gateway"
	"github.com/kiranamart/storefront-client/models"
)

var (
	ErrInvalidMobile      = errors.New("enter a 10 digit mobile number")
	ErrInvalidName        = errors.New("name must be at least 2 characters")
	ErrMissingCredentials = errors.New("admin email and password required")
)

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// TokenStore persists the session token across restarts.
type TokenStore interface {
	SaveSessionToken(token string) error
	LoadSessionToken() (string, error)
	ClearSessionToken() error
}

type Controller struct {
	gw      *gateway.Client
	tokens  TokenStore
	log     *logrus.Entry
	user    *models.User
	loading bool
}

func NewController(gw *gateway.Client, tokens TokenStore, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		gw:     gw,
		tokens: tokens,
		log:    logger.WithField("component", "session"),
	}
}

// Current returns the logged-in user, nil for guests.
func (s *Controller) Current() *models.User {
	return s.user
}

// Role returns the active role, RoleGuest when nobody is logged in.
func (s *Controller) Role() models.Role {
	if s.user == nil {
		return models.RoleGuest
	}
	return s.user.Role
}

func (s *Controller) Loading() bool { return s.loading }

// Login authenticates a customer by mobile number.
func (s *Controller) Login(ctx context.Context, mobile string) (*models.User, error) {
	mobile = strings.TrimSpace(mobile)
	if !mobilePattern.MatchString(mobile) {
		return nil, ErrInvalidMobile
	}

	s.loading = true
	defer func() { s.loading = false }()

	user, err := s.gw.CustomerLogin(ctx, mobile)
	if err != nil {
		return nil, err
	}
	s.user = user
	s.persistToken()
	s.log.WithField("user_id", user.ID).Info("Customer logged in")
	return user, nil
}

// Register creates a customer account and logs it in, the same flow
// the auth screen runs for register mode.
func (s *Controller) Register(ctx context.Context, name, mobile string) (*models.User, error) {
	name = strings.TrimSpace(name)
	mobile = strings.TrimSpace(mobile)
	if !mobilePattern.MatchString(mobile) {
		return nil, ErrInvalidMobile
	}
	if utf8.RuneCountInString(name) < 2 {
		return nil, ErrInvalidName
	}

	s.loading = true
	defer func() { s.loading = false }()

	if err := s.gw.CustomerRegister(ctx, name, mobile); err != nil {
		return nil, err
	}
	user, err := s.gw.CustomerLogin(ctx, mobile)
	if err != nil {
		return nil, err
	}
	s.user = user
	s.persistToken()
	s.log.WithField("user_id", user.ID).Info("Customer registered and logged in")
	return user, nil
}

// AdminLogin authenticates against the admin endpoint.
func (s *Controller) AdminLogin(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	s.loading = true
	defer func() { s.loading = false }()

	user, err := s.gw.AdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.user = user
	s.persistToken()
	s.log.WithField("user_id", user.ID).Info("Admin logged in")
	return user, nil
}

// Logout calls the role-specific logout endpoint and drops local
// session state. Local state is cleared even when the gateway call
// fails; the token is gone either way.
func (s *Controller) Logout(ctx context.Context) {
	if s.user == nil {
		return
	}
	var err error
	if s.user.Role == models.RoleAdmin {
		err = s.gw.AdminLogout(ctx)
	} else {
		err = s.gw.CustomerLogout(ctx)
	}
	if err != nil {
		s.log.Warn("Logout call failed: ", err)
	}
	s.clearLocal()
	s.log.Info("Logged out")
}

// Restore probes the backend for a previously authenticated session
// using the persisted token. Customer identity wins when both probes
// could succeed. A failed probe means "not logged in", never an error
// to show the user.
func (s *Controller) Restore(ctx context.Context) models.Role {
	token, err := s.tokens.LoadSessionToken()
	if err != nil {
		s.log.Warn("Failed to read stored session token: ", err)
		return models.RoleGuest
	}
	if token == "" {
		return models.RoleGuest
	}

	role, expired, readable := peekClaims(token)
	if readable && expired {
		s.log.Info("Stored session token expired, skipping probes")
		s.clearLocal()
		return models.RoleGuest
	}

	s.gw.SetToken(token)
	tokenRejected := true

	// A token that claims ADMIN cannot pass the customer probe, so
	// skip the wasted round trip. Unreadable tokens probe both.
	if role != string(models.RoleAdmin) {
		if user, probeErr := s.gw.CustomerMe(ctx); probeErr == nil {
			s.user = user
			s.log.WithField("user_id", user.ID).Info("Customer session restored")
			return models.RoleCustomer
		} else if !gateway.IsUnauthorized(probeErr) {
			tokenRejected = false
			s.log.Warn("Customer session probe failed: ", probeErr)
		}
	}

	// No dedicated admin probe exists; an authorized orders fetch
	// stands in for one.
	if _, probeErr := s.gw.AdminOrders(ctx); probeErr == nil {
		s.user = &models.User{ID: "admin-session", Name: "Admin", Role: models.RoleAdmin}
		s.log.Info("Admin session restored")
		return models.RoleAdmin
	} else if !gateway.IsUnauthorized(probeErr) {
		tokenRejected = false
		s.log.Warn("Admin session probe failed: ", probeErr)
	}

	// Only a gateway-reported 401 proves the token is dead. A transport
	// failure usually means the device is offline; keep the stored
	// token so the next start can try again.
	if tokenRejected {
		s.clearLocal()
	}
	return models.RoleGuest
}

func (s *Controller) persistToken() {
	if err := s.tokens.SaveSessionToken(s.gw.Token()); err != nil {
		s.log.Warn("Failed to persist session token: ", err)
	}
}

func (s *Controller) clearLocal() {
	s.user = nil
	s.gw.ClearToken()
	if err := s.tokens.ClearSessionToken(); err != nil {
		s.log.Warn("Failed to clear stored session token: ", err)
	}
}
