package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvAuthEnabled    = "VERIFLOW_AUTH_ENABLED"
	EnvAuthIssuer     = "VERIFLOW_AUTH_ISSUER"
	EnvAuthClientID   = "VERIFLOW_AUTH_CLIENT_ID"
	EnvAuthDevSubject = "VERIFLOW_AUTH_DEV_SUBJECT"
	EnvAuthDevRole    = "VERIFLOW_AUTH_DEV_ROLE"
	EnvAuthDevBankID  = "VERIFLOW_AUTH_DEV_BANK_ID"
)

// AuthConfig holds OIDC verification settings. When disabled, a static
// development caller is resolved from the dev_* fields instead of a token.
type AuthConfig struct {
	Enabled    bool   `toml:"enabled"`
	Issuer     string `toml:"issuer"`
	ClientID   string `toml:"client_id"`
	DevSubject string `toml:"dev_subject"`
	DevRole    string `toml:"dev_role"`
	DevBankID  string `toml:"dev_bank_id"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	c.Enabled = overlay.Enabled

	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.DevSubject != "" {
		c.DevSubject = overlay.DevSubject
	}
	if overlay.DevRole != "" {
		c.DevRole = overlay.DevRole
	}
	if overlay.DevBankID != "" {
		c.DevBankID = overlay.DevBankID
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.DevSubject == "" {
		c.DevSubject = "dev-user"
	}
	if c.DevRole == "" {
		c.DevRole = "admin"
	}
	if c.DevBankID == "" {
		c.DevBankID = "dev-bank"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvAuthIssuer); v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(EnvAuthClientID); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv(EnvAuthDevSubject); v != "" {
		c.DevSubject = v
	}
	if v := os.Getenv(EnvAuthDevRole); v != "" {
		c.DevRole = v
	}
	if v := os.Getenv(EnvAuthDevBankID); v != "" {
		c.DevBankID = v
	}
}

func (c *AuthConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required when auth enabled")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required when auth enabled")
	}
	return nil
}
