package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator checks basic auth credentials against a single configured
// identity. The password is stored as a digest: a bcrypt hash, or an
// unsalted sha256 hex digest for the default configuration.
type Authenticator struct {
	username     []byte
	passwordHash string
	bcrypt       bool
}

func NewAuthenticator(username, passwordHash string) *Authenticator {
	passwordHash = strings.TrimSpace(passwordHash)
	return &Authenticator{
		username:     []byte(username),
		passwordHash: passwordHash,
		bcrypt:       strings.HasPrefix(passwordHash, "$2"),
	}
}

// Authenticate returns the identity and true when both username and
// password match. Both comparisons always run.
func (a *Authenticator) Authenticate(username, password string) (string, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(username), a.username) == 1
	passOK := a.checkPassword(password)
	if !userOK || !passOK {
		return "", false
	}
	return username, true
}

func (a *Authenticator) checkPassword(password string) bool {
	if a.bcrypt {
		return bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)) == nil
	}
	sum := sha256.Sum256([]byte(password))
	digest := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(digest), []byte(strings.ToLower(a.passwordHash))) == 1
}
