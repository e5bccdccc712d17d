// Package customer implements the mock account layer. Credentials live in an
// in-memory table seeded with two demo accounts; sessions are opaque tokens
// in the KV store. This is a stand-in for a future identity backend — it is
// deliberately not real authentication.
package customer

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront.GO/config"
	"storefront.GO/core/kvstore"
)

var (
	ErrInvalidCredentials = errors.New("customer: invalid email or password")
	ErrEmailTaken         = errors.New("customer: email already registered")
	ErrSessionNotFound    = errors.New("customer: session not found")
)

// AccountType distinguishes personal and business storefront accounts.
type AccountType string

const (
	AccountPersonal AccountType = "personal"
	AccountBusiness AccountType = "business"
)

// User is the account profile attached to a session.
type User struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Company string      `json:"company,omitempty"`
	Phone   string      `json:"phone,omitempty"`
}

// Session is an issued login: an opaque token plus the profile.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type record struct {
	user     User
	password string
}

// Service holds the credential table and issues sessions.
type Service struct {
	mu       sync.RWMutex
	accounts map[string]*record // keyed by lowercase email
	sessions kvstore.Store
	ttl      time.Duration
}

var (
	serviceInstance *Service
	serviceOnce     sync.Once
)

// GetService returns the singleton customer service.
func GetService() *Service {
	serviceOnce.Do(func() {
		config.LoadAppConfig()
		serviceInstance = NewService(kvstore.Default(), config.AppConfig.SessionTTL)
	})
	return serviceInstance
}

func NewService(sessions kvstore.Store, ttl time.Duration) *Service {
	s := &Service{
		accounts: make(map[string]*record),
		sessions: sessions,
		ttl:      ttl,
	}
	s.seedDemoAccounts()
	return s
}

// The two fixed demo accounts the storefront ships with.
func (s *Service) seedDemoAccounts() {
	s.accounts["demo@lockpoint.example"] = &record{
		user: User{
			ID:    "cust-demo-1",
			Email: "demo@lockpoint.example",
			Name:  "Demo Customer",
			Type:  AccountPersonal,
		},
		password: "demo1234",
	}
	s.accounts["business@lockpoint.example"] = &record{
		user: User{
			ID:      "cust-demo-2",
			Email:   "business@lockpoint.example",
			Name:    "Demo Business",
			Type:    AccountBusiness,
			Company: "LockPoint Facilities BV",
			Phone:   "+31 20 555 0100",
		},
		password: "business1234",
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *Service) issueSession(ctx context.Context, user User) (*Session, error) {
	token := uuid.NewString()
	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sessionKey(token), data, s.ttl); err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}

// Login checks the credential table and issues a session on success.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	s.mu.RLock()
	rec, ok := s.accounts[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(rec.password), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, rec.user)
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	Company  string      `json:"company"`
	Phone    string      `json:"phone"`
}

// Register appends an account to the in-memory table (process lifetime only)
// and logs the new customer straight in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.Name == "" {
		return nil, ErrInvalidCredentials
	}
	accountType := req.Type
	if accountType != AccountBusiness {
		accountType = AccountPersonal
	}

	s.mu.Lock()
	if _, exists := s.accounts[email]; exists {
		s.mu.Unlock()
		return nil, ErrEmailTaken
	}
	user := User{
		ID:      "cust-" + uuid.NewString(),
		Email:   email,
		Name:    req.Name,
		Type:    accountType,
		Company: req.Company,
		Phone:   req.Phone,
	}
	s.accounts[email] = &record{user: user, password: req.Password}
	s.mu.Unlock()

	log.Printf("customer: registered %s (%s)", email, accountType)
	return s.issueSession(ctx, user)
}

// Logout revokes a session token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, sessionKey(token))
}

// Authenticate resolves a session token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	data, err := s.sessions.Get(ctx, sessionKey(token))
	if err != nil {
		if err == kvstore.ErrNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Printf("customer: corrupt session %s: %v", token, err)
		return nil, ErrSessionNotFound
	}
	return &user, nil
}

// UpdateRequest carries profile changes; nil fields stay untouched.
type UpdateRequest struct {
	Name    *string `json:"name"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
}

// UpdateUser applies profile changes to the account table and the session.
func (s *Service) UpdateUser(ctx context.Context, token string, req UpdateRequest) (*User, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	s.mu.Lock()
	if rec, ok := s.accounts[user.Email]; ok {
		rec.user = *user
	}
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sessionKey(token), data, s.ttl); err != nil {
		return nil, err
	}
	return user, nil
}
