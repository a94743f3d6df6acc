package service

import (
	"fmt"

	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/crypto"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/internal/store"
)

type Services struct {
	TokenService   TokenService
	AuthService    AuthService
	UserService    UserService
	ItemService    ItemService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.App.Argon2)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	tokenService, err := NewTokenService(cfg.App)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, storages.Documents, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	authService := NewAuthService(storages.UserRepository, tokenService, hasher, logger)

	return &Services{
		TokenService:   tokenService,
		AuthService:    authService,
		UserService:    NewUserService(storages.UserRepository, authService, hasher, logger),
		ItemService:    NewItemValidationService().Wrap(NewItemService(storages.ItemRepository, logger)),
		AppInfoService: appInfoService,
	}, nil
}
