// Package credentials hashes passwords and issues/decodes bearer tokens.
package credentials

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Manager holds the process-wide signing secret, token lifetime and bcrypt cost.
type Manager struct {
	secretKey string
	exp       time.Duration // zero means tokens carry no exp claim
	cost      int
}

// Opt configures a Manager.
type Opt func(*Manager)

// WithSecretKey sets the HMAC signing secret.
func WithSecretKey(secret string) Opt {
	return func(m *Manager) {
		m.secretKey = secret
	}
}

// WithExpiration sets the lifetime of issued tokens.
func WithExpiration(exp time.Duration) Opt {
	return func(m *Manager) {
		m.exp = exp
	}
}

// WithCost sets the bcrypt cost factor.
func WithCost(cost int) Opt {
	return func(m *Manager) {
		m.cost = cost
	}
}

// New creates a Manager. Defaults: empty secret, no expiration, bcrypt.DefaultCost.
func New(opts ...Opt) *Manager {
	m := &Manager{
		cost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
