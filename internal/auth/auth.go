// Package auth resolves the Jira Cloud credentials used for Basic auth.
// Credentials come from the environment first, then the config file.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/h0rv/sdq/internal/config"
)

// Credentials authenticate requests against a Jira site.
type Credentials struct {
	Email string // Account email, empty for a bare API key
	Token string // Atlassian API token
}

// BasicAuth returns the value for the Authorization header.
// An email:token pair is encoded as-is; a bare key is sent with an empty username.
func (c Credentials) BasicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Email+":"+c.Token))
}

// CredentialProvider defines the interface for obtaining Jira credentials.
// Implementations may use different sources (environment variables, config files, etc).
type CredentialProvider interface {
	GetCredentials() (Credentials, error)
}

// EnvProvider obtains credentials from JIRA_EMAIL and JIRA_API_TOKEN.
type EnvProvider struct{}

// GetCredentials reads JIRA_API_TOKEN and the optional JIRA_EMAIL.
// Returns an error if the token is not set or is empty.
func (e *EnvProvider) GetCredentials() (Credentials, error) {
	token := strings.TrimSpace(os.Getenv(config.EnvAPIToken))
	if token == "" {
		return Credentials{}, errors.New("JIRA_API_TOKEN environment variable not set or empty")
	}
	return Credentials{
		Email: strings.TrimSpace(os.Getenv(config.EnvEmail)),
		Token: token,
	}, nil
}

// ConfigProvider obtains credentials from the loaded config file.
type ConfigProvider struct {
	Config *config.Config
}

// GetCredentials returns the email and api_token from the config.
func (p *ConfigProvider) GetCredentials() (Credentials, error) {
	if p.Config == nil || strings.TrimSpace(p.Config.APIToken) == "" {
		return Credentials{}, errors.New("api_token not set in config file")
	}
	return Credentials{
		Email: strings.TrimSpace(p.Config.Email),
		Token: strings.TrimSpace(p.Config.APIToken),
	}, nil
}

// GetCredentials attempts to obtain Jira credentials using the following strategy:
// 1. Try JIRA_EMAIL / JIRA_API_TOKEN first
// 2. Fall back to the config file
// 3. Return a clear, actionable error if both fail
func GetCredentials(cfg *config.Config) (Credentials, error) {
	env := &EnvProvider{}
	creds, err := env.GetCredentials()
	if err == nil {
		return creds, nil
	}
	envErr := err

	file := &ConfigProvider{Config: cfg}
	creds, err = file.GetCredentials()
	if err == nil {
		return creds, nil
	}

	return Credentials{}, fmt.Errorf(
		"failed to obtain Jira credentials: %v and %v.\n"+
			"Please either:\n"+
			"  1. Set JIRA_EMAIL and JIRA_API_TOKEN, or\n"+
			"  2. Add email and api_token to %s",
		envErr, err, config.DefaultPath(),
	)
}
