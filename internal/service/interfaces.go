package service

import (
	"context"

	"github.com/MKhiriev/go-seed-api/models"
)

//go:generate mockgen -source=interfaces.go -destination=../handler/http/service_mock_test.go -package=http

// TokenService issues and verifies session tokens. Tokens are never stored.
type TokenService interface {
	// Issue signs a token for subject valid for the configured window.
	Issue(ctx context.Context, subject string) (models.Token, error)

	// Verify returns the subject of a valid token, [ErrTokenExpired] once
	// the window has passed and [ErrTokenMalformed] for anything else.
	Verify(ctx context.Context, token string) (string, error)
}

type AuthService interface {
	// ResolveCurrentIdentity returns the user the token was issued to.
	// Every token or lookup failure except store errors is [ErrUnauthenticated].
	ResolveCurrentIdentity(ctx context.Context, token string) (models.User, error)

	// AuthorizeSelf returns [ErrForbidden] unless current is the target user.
	AuthorizeSelf(current models.User, targetID string) error

	// Login checks credentials and issues a token. Unknown email and wrong
	// password are both [ErrInvalidCredentials].
	Login(ctx context.Context, email, password string) (models.Token, error)
}

type UserService interface {
	Create(ctx context.Context, registration models.UserRegistration) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, current models.User, id string, patch models.UserPatch) (models.User, error)
	Delete(ctx context.Context, current models.User, id string) error
}

type ItemService interface {
	Create(ctx context.Context, item models.Item) (models.Item, error)
	GetByID(ctx context.Context, id string) (models.Item, error)
	GetAll(ctx context.Context) ([]models.Item, error)
	Update(ctx context.Context, id string, patch models.ItemPatch) (models.Item, error)
	Delete(ctx context.Context, id string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string

	// CheckHealth pings the document store.
	CheckHealth(ctx context.Context) error
}

// ItemServiceWrapper defines middleware composition for ItemService.
// Implementations wrap an existing ItemService to add behavior such as
// logging or validating.
type ItemServiceWrapper interface {
	Wrap(ItemService) ItemService // returns a decorated ItemService applying additional behavior
}
