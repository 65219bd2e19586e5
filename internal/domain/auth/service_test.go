package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mediaconsole/internal/pkg/token"
)

func newService(t *testing.T, password, passwordHash string) *Service {
	t.Helper()
	tokens := token.New("test-secret", time.Hour)
	return NewService(tokens, "admin", password, passwordHash)
}

func TestLoginAndValidate(t *testing.T) {
	s := newService(t, "s3cret", "")

	tok, sess, err := s.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.Equal(t, "admin", sess.Username)

	resolved, err := s.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, resolved.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newService(t, "s3cret", "")

	_, _, err := s.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.Login("root", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	s := newService(t, "", string(hash))

	_, _, err = s.Login("admin", "s3cret")
	require.NoError(t, err)

	_, _, err = s.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	s := newService(t, "s3cret", "")

	tok, sess, err := s.Login("admin", "s3cret")
	require.NoError(t, err)

	s.Logout(sess.ID)

	// the signature is still valid but the session is gone
	_, err = s.Validate(tok)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// repeated logout is harmless
	s.Logout(sess.ID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	s := newService(t, "s3cret", "")
	_, err := s.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrSessionExpired)
}
