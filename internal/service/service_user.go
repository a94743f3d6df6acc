package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-seed-api/internal/crypto"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/store"
	"github.com/MKhiriev/go-seed-api/internal/validators"
	"github.com/MKhiriev/go-seed-api/models"
)

type userService struct {
	userRepository store.UserRepository
	authService    AuthService
	hasher         crypto.PasswordHasher
	validator      validators.Validator
	now            func() time.Time

	logger *logger.Logger
}

// NewUserService constructs the UserService. Validation runs inside the
// service so that authorization is always decided first.
func NewUserService(userRepository store.UserRepository, authService AuthService, hasher crypto.PasswordHasher, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		authService:    authService,
		hasher:         hasher,
		validator:      validators.NewRequestValidator(),
		now:            time.Now,
		logger:         logger,
	}
}

func (s *userService) Create(ctx context.Context, registration models.UserRegistration) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, registration); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.checkConflicts(ctx, "", registration.Email, registration.Username); err != nil {
		return models.User{}, err
	}

	hash, err := s.hasher.Hash(registration.Password)
	if err != nil {
		log.Err(err).Str("func", "*userService.Create").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.userRepository.Create(ctx, models.User{
		Email:     registration.Email,
		Username:  registration.Username,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if errors.Is(err, store.ErrDuplicateKey) {
		return models.User{}, &ConflictError{Field: ConflictFieldEmail}
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.Create").Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (models.User, error) {
	user, found, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("error getting user: %w", err)
	}
	if !found {
		return models.User{}, ErrNotFound
	}

	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	return users, nil
}

func (s *userService) Update(ctx context.Context, current models.User, id string, patch models.UserPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.authService.AuthorizeSelf(current, id); err != nil {
		return models.User{}, err
	}

	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	if err := s.checkConflicts(ctx, id, deref(patch.Email), deref(patch.Username)); err != nil {
		return models.User{}, err
	}

	if patch.Password != nil {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			log.Err(err).Str("func", "*userService.Update").Msg("error hashing password")
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		patch.Password = &hash
	}

	now := s.now().UTC()
	patch.UpdatedAt = &now

	updated, found, err := s.userRepository.Update(ctx, id, patch)
	if errors.Is(err, store.ErrDuplicateKey) {
		return models.User{}, &ConflictError{Field: ConflictFieldEmail}
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.Update").Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}
	if !found {
		return models.User{}, ErrNotFound
	}

	return updated, nil
}

func (s *userService) Delete(ctx context.Context, current models.User, id string) error {
	if err := s.authService.AuthorizeSelf(current, id); err != nil {
		return err
	}

	deleted, err := s.userRepository.Delete(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Delete").Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	return nil
}

// checkConflicts looks for another user holding email or username. The
// first hit decides: a matching username wins over a matching email.
// Empty values are not checked.
func (s *userService) checkConflicts(ctx context.Context, selfID, email, username string) error {
	filters := make([]store.Fields, 0, 2)
	if email != "" {
		filters = append(filters, store.Fields{"email": email})
	}
	if username != "" {
		filters = append(filters, store.Fields{"username": username})
	}
	if len(filters) == 0 {
		return nil
	}

	existing, err := s.userRepository.GetByAttribute(ctx, filters...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.checkConflicts").Msg("conflict lookup failed")
		return fmt.Errorf("error checking user conflicts: %w", err)
	}

	for _, other := range existing {
		if other.ID == selfID {
			continue
		}
		if username != "" && other.Username == username {
			return &ConflictError{Field: ConflictFieldUsername}
		}
		return &ConflictError{Field: ConflictFieldEmail}
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
