package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

// DefaultUsers are the two built-in accounts used when the configuration
// lists none. Both share one fixed password; replace them through the
// users section of config.yaml.
var DefaultUsers = []types.UserConfig{
	{Username: "maestro", Password: "1234", Role: types.RoleTeacher},
	{Username: "padre", Password: "1234", Role: types.RoleParent, Children: []int64{1, 2}},
}

// ConfigProvider is a types.CredentialProvider backed by the users list of
// the configuration.
type ConfigProvider struct {
	users map[string]types.UserConfig
}

// NewConfigProvider validates users and indexes them by username. An
// empty list selects DefaultUsers.
func NewConfigProvider(users []types.UserConfig) (*ConfigProvider, error) {
	if len(users) == 0 {
		users = DefaultUsers
	}
	validate := validator.New(validator.WithRequiredStructEnabled())

	p := &ConfigProvider{users: make(map[string]types.UserConfig, len(users))}
	for i, u := range users {
		if err := validate.Struct(u); err != nil {
			return nil, fmt.Errorf("%w: users[%d]: %v", types.ErrInvalidUser, i, err)
		}
		if _, dup := p.users[u.Username]; dup {
			return nil, fmt.Errorf("%w: duplicate username %q", types.ErrInvalidUser, u.Username)
		}
		if u.PasswordHash != "" {
			if _, err := bcrypt.Cost([]byte(u.PasswordHash)); err != nil {
				return nil, fmt.Errorf("%w: users[%d]: password_hash: %v", types.ErrInvalidUser, i, err)
			}
		}
		p.users[u.Username] = u
	}
	return p, nil
}

// Authenticate returns the credential for username when password matches.
// Unknown users and wrong passwords both yield types.ErrAuthentication.
func (p *ConfigProvider) Authenticate(username, password string) (types.Credential, error) {
	u, ok := p.users[username]
	if !ok {
		return types.Credential{}, types.ErrAuthentication
	}
	if !passwordMatches(u, password) {
		return types.Credential{}, types.ErrAuthentication
	}

	cred := types.Credential{Username: u.Username, Role: u.Role}
	if u.Role == types.RoleParent {
		cred.PermittedIDs = slices.Clone(u.Children)
	}
	return cred, nil
}

func passwordMatches(u types.UserConfig, password string) bool {
	if u.PasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
		return err == nil
	}
	return subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1
}

// HashPassword returns a bcrypt hash suitable for password_hash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(h), nil
}

var _ types.CredentialProvider = (*ConfigProvider)(nil)
