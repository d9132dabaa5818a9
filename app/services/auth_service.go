package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/go-admin-dashboard/app/models"
	"github.com/sirupsen/logrus"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AdminIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*AdminIdentity, error)
}

// SupabaseAuth signs in through the backend's password grant. Every
// account it accepts is treated as an admin.
type SupabaseAuth struct {
	client gotrue.Client
	log    *logrus.Entry
}

func NewSupabaseAuth(baseURL, apiKey string, log *logrus.Logger) *SupabaseAuth {
	client := gotrue.New("", apiKey).WithCustomGoTrueURL(strings.TrimRight(baseURL, "/") + "/auth/v1")
	return &SupabaseAuth{client: client, log: log.WithField("component", "auth")}
}

func (a *SupabaseAuth) SignIn(ctx context.Context, email, password string) (*AdminIdentity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	token, err := a.client.Token(types.TokenRequest{GrantType: "password", Email: email, Password: password})
	if err != nil {
		if rejectedCredentials(err) {
			a.log.WithField("email", email).Info("sign-in rejected")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("sign-in request: %w", err)
	}
	return &AdminIdentity{ID: token.User.ID.String(), Email: token.User.Email, Role: models.RoleAdmin}, nil
}

// rejectedCredentials reports a 400 or 401 from the token endpoint, which
// the client only surfaces in the error text.
func rejectedCredentials(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "status code 400") ||
		strings.Contains(msg, "status code 401") ||
		strings.Contains(msg, "invalid_grant")
}

// LocalAuth checks a single admin account configured in the environment.
type LocalAuth struct {
	email string
	hash  []byte
}

func NewLocalAuth(email, passwordHash string) *LocalAuth {
	return &LocalAuth{email: strings.ToLower(strings.TrimSpace(email)), hash: []byte(passwordHash)}
}

func (a *LocalAuth) SignIn(ctx context.Context, email, password string) (*AdminIdentity, error) {
	if a.email == "" || strings.ToLower(strings.TrimSpace(email)) != a.email {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &AdminIdentity{ID: a.email, Email: a.email, Role: models.RoleAdmin}, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
