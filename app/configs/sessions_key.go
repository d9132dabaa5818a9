package configs

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
)

const (
	authKeyLength = 64
	encKeyLength  = 32
	csrfKeyLength = 32
)

// SessionKeys sign and encrypt the admin session cookie. CSRFKey is only
// set by NewSessionKeys; at runtime it comes from CSRF_KEY.
type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
	CSRFKey []byte
}

func decodeKey(name, value string) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%s environment variable not set", name)
	}
	key, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s from Base64: %w", name, err)
	}
	return key, nil
}

func LoadSessionKeysFromEnv(env ENV) (*SessionKeys, error) {
	authKey, err := decodeKey("APP_AUTH_KEY", env.AppAuthKey)
	if err != nil {
		return nil, err
	}
	encKey, err := decodeKey("APP_ENC_KEY", env.AppEncKey)
	if err != nil {
		return nil, err
	}
	switch len(encKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding. Must be 16, 24, or 32 bytes for AES encryption", len(encKey))
	}
	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

// DecodeCSRFKey accepts a base64 encoded 32 byte key and falls back to the
// raw bytes of anything else. Empty disables CSRF protection.
func DecodeCSRFKey(raw string) []byte {
	if raw == "" {
		return nil
	}
	if key, err := base64.URLEncoding.DecodeString(raw); err == nil && len(key) == csrfKeyLength {
		return key
	}
	return []byte(raw)
}

func NewSessionKeys() (*SessionKeys, error) {
	keys := &SessionKeys{
		AuthKey: securecookie.GenerateRandomKey(authKeyLength),
		EncKey:  securecookie.GenerateRandomKey(encKeyLength),
		CSRFKey: securecookie.GenerateRandomKey(csrfKeyLength),
	}
	if keys.AuthKey == nil || keys.EncKey == nil || keys.CSRFKey == nil {
		return nil, fmt.Errorf("could not read enough randomness for session keys")
	}
	return keys, nil
}

// Env renders the keys as .env lines.
func (k *SessionKeys) Env() string {
	out := fmt.Sprintf("APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n",
		base64.URLEncoding.EncodeToString(k.AuthKey),
		base64.URLEncoding.EncodeToString(k.EncKey))
	if len(k.CSRFKey) > 0 {
		out += "CSRF_KEY=" + base64.URLEncoding.EncodeToString(k.CSRFKey) + "\n"
	}
	return out
}

// WriteKeyFile writes the keys to path, readable by the owner only.
func WriteKeyFile(path string, k *SessionKeys) error {
	if err := os.WriteFile(path, []byte(k.Env()), 0o600); err != nil {
		return fmt.Errorf("failed to write keys to file %s: %w", path, err)
	}
	return nil
}
