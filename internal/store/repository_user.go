package store

import (
	"context"

	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/models"
)

// userRepository is the [UserRepository] over the "user" collection.
type userRepository struct {
	*Gateway[models.User, models.UserPatch]
}

// NewUserRepository constructs a [UserRepository] backed by documents.
func NewUserRepository(documents DocumentStore, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		Gateway: NewGateway[models.User, models.UserPatch](documents, UserCollection),
	}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	users, err := r.GetByAttribute(ctx, Fields{"email": email})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.FindByEmail").Msg("error looking up user by email")
		return models.User{}, false, err
	}

	if len(users) == 0 {
		return models.User{}, false, nil
	}

	return users[0], true, nil
}
