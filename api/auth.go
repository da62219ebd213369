/*
auth.go - Optional Basic Auth for mutating routes

PURPOSE:
  A planner exposed beyond localhost should not accept anonymous writes.
  Credentials live in a secret file (format: username:argon2id-hash)
  created by cmd/hashpassword. When the file is absent the server runs
  unprotected, which is the normal local single-user mode.

HASHING:
  Argon2id with OWASP-recommended parameters, encoded as
  $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>.
*/
package api

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Auth holds the credentials mutating routes are checked against.
type Auth struct {
	User string
	hash string
}

// LoadAuth reads a secret file. A missing file is not an error: it
// returns (nil, nil) and the caller runs without auth.
func LoadAuth(path string) (*Auth, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}
	line := strings.TrimSpace(string(data))
	user, hash, ok := strings.Cut(line, ":")
	if !ok || user == "" || hash == "" {
		return nil, fmt.Errorf("invalid auth file format (expected username:hash)")
	}
	return &Auth{User: user, hash: hash}, nil
}

// Require wraps a handler with Basic Auth enforcement.
func (a *Auth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) == 1

		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifyPassword(pass, a.hash)
			if err != nil {
				log.Printf("Error verifying password: %v", err)
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", `Basic realm="Time-Off Planner"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

// HashPassword creates an Argon2id hash of the password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

// VerifyPassword checks a password against an encoded Argon2id hash.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, timeCost, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	got := argon2.IDKey([]byte(password), salt, timeCost, memory, uint8(threads), uint32(len(want)))
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}

// CreateAuthFile hashes the password and writes username:hash to path
// with read-only permissions.
func CreateAuthFile(path, username, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing auth file: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}
