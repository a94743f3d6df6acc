package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-seed-api/internal/crypto"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/store"
	"github.com/MKhiriev/go-seed-api/models"
)

// authService resolves bearer tokens to users and decides what they may touch.
type authService struct {
	userRepository store.UserRepository
	tokenService   TokenService
	hasher         crypto.PasswordHasher

	// absentUserHash is verified against when the login email is unknown,
	// so both rejections cost one Argon2 run.
	absentUserHash     string
	absentUserHashOnce sync.Once

	logger *logger.Logger
}

// NewAuthService constructs the AuthService over the identity store.
func NewAuthService(userRepository store.UserRepository, tokenService TokenService, hasher crypto.PasswordHasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenService:   tokenService,
		hasher:         hasher,
		logger:         logger,
	}
}

func (a *authService) ResolveCurrentIdentity(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	if token == "" {
		return models.User{}, ErrUnauthenticated
	}

	subject, err := a.tokenService.Verify(ctx, token)
	if err != nil {
		log.Debug().Err(err).Str("func", "*authService.ResolveCurrentIdentity").Msg("token rejected")
		return models.User{}, ErrUnauthenticated
	}

	user, found, err := a.userRepository.FindByEmail(ctx, subject)
	if err != nil {
		log.Err(err).Str("func", "*authService.ResolveCurrentIdentity").Msg("user lookup failed")
		return models.User{}, fmt.Errorf("error resolving current identity: %w", err)
	}
	if !found {
		log.Debug().Str("func", "*authService.ResolveCurrentIdentity").Msg("token subject is unknown")
		return models.User{}, ErrUnauthenticated
	}

	return user, nil
}

func (a *authService) AuthorizeSelf(current models.User, targetID string) error {
	if current.ID == "" || current.ID != targetID {
		return ErrForbidden
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) (models.Token, error) {
	log := logger.FromContext(ctx)

	user, found, err := a.userRepository.FindByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.Token{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !found {
		a.verifyAbsentUser(ctx, password)
	}
	if !found || !a.hasher.Verify(password, user.Password) {
		log.Info().Str("func", "*authService.Login").Bool("known_user", found).Msg("rejected login")
		return models.Token{}, ErrInvalidCredentials
	}

	return a.tokenService.Issue(ctx, user.Email)
}

func (a *authService) verifyAbsentUser(ctx context.Context, password string) {
	a.absentUserHashOnce.Do(func() {
		hash, err := a.hasher.Hash("absent-user-password")
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*authService.verifyAbsentUser").Msg("error hashing placeholder password")
			return
		}
		a.absentUserHash = hash
	})

	if a.absentUserHash != "" {
		a.hasher.Verify(password, a.absentUserHash)
	}
}
