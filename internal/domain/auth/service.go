package auth

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"mediaconsole/internal/pkg/token"
)

// Service is the shared-credential login gate. One fixed username/password
// pair guards the whole admin surface; a successful login issues a session
// and a token carrying its id.
type Service struct {
	tokens   *token.Service
	registry *registry

	username     string
	password     string
	passwordHash string // bcrypt; wins over password when set
}

func NewService(tokens *token.Service, username, password, passwordHash string) *Service {
	return &Service{
		tokens:       tokens,
		registry:     newRegistry(),
		username:     username,
		password:     password,
		passwordHash: passwordHash,
	}
}

func (s *Service) checkPassword(password string) bool {
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) == 1
}

// Login validates the shared credential and issues a session token.
func (s *Service) Login(username, password string) (string, *Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(s.username), []byte(username)) == 1
	if !userOK || !s.checkPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	sess := Session{
		ID:       uuid.New().String(),
		Username: username,
		IssuedAt: time.Now(),
	}
	s.registry.add(sess)

	tok, err := s.tokens.Generate(sess.ID, username)
	if err != nil {
		s.registry.remove(sess.ID)
		return "", nil, err
	}
	return tok, &sess, nil
}

// Validate resolves a token into its live session. A token whose session
// has been logged out is rejected even if the signature is still valid.
func (s *Service) Validate(tokenStr string) (*Session, error) {
	claims, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return nil, ErrSessionExpired
	}
	sess, ok := s.registry.get(claims.SessionID)
	if !ok {
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// Logout ends the session. Repeating a logout is harmless.
func (s *Service) Logout(sessionID string) {
	s.registry.remove(sessionID)
}
