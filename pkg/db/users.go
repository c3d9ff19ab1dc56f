package db

import (
	"context"

	"github.com/bearnovel/bearnovel/pkg/domain"
)

type UserInterface interface {
	// Create registers a new user with role User.
	//
	// Args
	//
	// - context.Context
	//
	// - *domain.RegisterSpec: user to be created
	//
	// - string: hash of the password
	//
	// Return
	//
	// - domain.User: created user
	//
	// - error: ErrConflict when the userName or email is taken.
	Create(context.Context, *domain.RegisterSpec, string) (domain.User, error)

	// Get returns a user by id. If not found, error is ErrMissing.
	Get(context.Context, int) (domain.User, error)

	// FindByName returns a user by userName. If not found, error is ErrMissing.
	FindByName(context.Context, string) (domain.User, error)

	// FindByEmail returns a user by email (case insensitive). If not found, error is ErrMissing.
	FindByEmail(context.Context, string) (domain.User, error)

	// FindByNickName returns a user by nickName. If not found, error is ErrMissing.
	FindByNickName(context.Context, string) (domain.User, error)

	// UpdateProfilePicture replaces the profile picture of a user.
	//
	// Args
	//
	// - context.Context
	//
	// - int: user id
	//
	// - string: content type of the picture
	//
	// - []byte: picture
	UpdateProfilePicture(context.Context, int, string, []byte) error
}
