// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/models"
)

func init() {
	// iat and exp carry milliseconds, so a token stays valid for its whole window.
	jwt.TimePrecision = time.Millisecond
}

// tokenService is the HS256 JWT implementation of TokenService.
//
// State machine of a token: Issued, then Valid until exp, Expired from exp
// on. Anything that fails signature, algorithm, issuer or required-claim
// checks is Malformed.
type tokenService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey []byte

	// issuer is the "iss" claim embedded in and required on every token.
	issuer string

	// window is how long an issued token remains valid.
	window time.Duration

	// now is the clock; replaced in tests.
	now func() time.Time
}

// NewTokenService builds a TokenService from the token settings of cfg.
func NewTokenService(cfg config.App) (TokenService, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrEmptyTokenSignKey
	}

	window := cfg.TokenDuration
	if window <= 0 {
		window = config.DefaultTokenDuration
	}

	return &tokenService{
		signKey: []byte(cfg.TokenSignKey),
		issuer:  cfg.TokenIssuer,
		window:  window,
		now:     time.Now,
	}, nil
}

func (s *tokenService) Issue(ctx context.Context, subject string) (models.Token, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.window)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Msg("error signing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.Token{RegisteredClaims: claims, SignedString: signed}, nil
}

func (s *tokenService) Verify(ctx context.Context, token string) (string, error) {
	log := logger.FromContext(ctx)

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		log.Debug().Str("func", "*tokenService.Verify").Msg("token is expired")
		return "", ErrTokenExpired
	}
	if err != nil {
		log.Debug().Err(err).Str("func", "*tokenService.Verify").Msg("token is malformed")
		return "", fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}

	return claims.Subject, nil
}
