/*
 * Copyright 2026 The Screenroom Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	// ErrUnexpectedSigningMethod is returned when the signing method is unexpected.
	ErrUnexpectedSigningMethod = fmt.Errorf("unexpected signing method")
)

// AccountClaims is a JWT claims struct for a provider account.
type AccountClaims struct {
	jwt.StandardClaims

	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// TokenProvider is a Provider backed by HMAC-signed JWTs. It serves as the
// default provider for deployments without an external identity service.
type TokenProvider struct {
	secretKey     string
	tokenDuration time.Duration
}

// NewTokenProvider creates a new TokenProvider.
func NewTokenProvider(secretKey string, tokenDuration time.Duration) *TokenProvider {
	return &TokenProvider{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
	}
}

// Generate generates a new token for the account.
func (p *TokenProvider) Generate(email, displayName string) (string, error) {
	claims := AccountClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(p.tokenDuration).Unix(),
		},
		Email:       email,
		DisplayName: displayName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(p.secretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signedToken, nil
}

// Verify verifies the given token and returns the account it was issued for.
func (p *TokenProvider) Verify(_ context.Context, bearer string) (*Account, error) {
	claims := &AccountClaims{}
	_, err := jwt.ParseWithClaims(bearer, claims, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("%s: %w", token.Method.Alg(), ErrUnexpectedSigningMethod)
		}
		return []byte(p.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	return &Account{
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
	}, nil
}
