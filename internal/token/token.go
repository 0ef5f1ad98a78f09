// Copyright 2026 The BhashAI Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token issues and verifies bearer tokens for programmatic API
// clients. Browser traffic uses cookie sessions; scripts and
// integrations exchange credentials for a short-lived signed token
// instead of replaying the password.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")
	ErrNotConfigured = errors.New("api token signing key not configured")
)

const issuer = "bhashai"

// Claims carried by an API token.
type Claims struct {
	UserID       string
	EnterpriseID string
	Role         string
}

// Service signs and verifies API tokens with a shared HS256 key.
type Service struct {
	signingKey []byte
	lifetime   time.Duration
}

// NewService creates a token service. An empty signing key disables
// token issuance; Issue and Verify then return ErrNotConfigured.
func NewService(signingKey string, lifetime time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		lifetime:   lifetime,
	}
}

// Issue creates a signed token for the given principal.
func (s *Service) Issue(c Claims) (string, error) {
	if len(s.signingKey) == 0 {
		return "", ErrNotConfigured
	}

	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":           issuer,
		"sub":           c.UserID,
		"enterprise_id": c.EnterpriseID,
		"role":          c.Role,
		"iat":           now.Unix(),
		"exp":           now.Add(s.lifetime).Unix(),
	})

	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (s *Service) Verify(raw string) (*Claims, error) {
	if len(s.signingKey) == 0 {
		return nil, ErrNotConfigured
	}

	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	sub, _ := mapClaims["sub"].(string)
	enterpriseID, _ := mapClaims["enterprise_id"].(string)
	role, _ := mapClaims["role"].(string)
	if sub == "" {
		return nil, ErrTokenInvalid
	}

	return &Claims{
		UserID:       sub,
		EnterpriseID: enterpriseID,
		Role:         role,
	}, nil
}
