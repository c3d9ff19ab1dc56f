// accounts implements use cases of user accounts: registration, sessions and profiles.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bearnovel/bearnovel/pkg/auth"
	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/rs/zerolog"
)

// Session is a pair of tokens issued on login.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Profile is what the user can see about themselves.
type Profile struct {
	UserName string
	Email    string
	NickName string

	// profile picture as data URI. empty when not uploaded.
	ProfilePicture string
}

var (
	ErrUnsupportedPicture = fmt.Errorf("%w: profile picture should be image/jpeg or image/png", domain.ErrInvalid)
	ErrEmptyPicture       = fmt.Errorf("%w: profile picture is empty", domain.ErrInvalid)
	ErrPictureTooLarge    = fmt.Errorf("%w: profile picture is too large", domain.ErrInvalid)
)

type Service interface {
	Register(ctx context.Context, param domain.RegisterParam) (domain.User, error)

	// Login authenticates the user by name (or email, if it contains '@') and password.
	//
	// When the user is not found or the password is wrong,
	// it returns an error wrapping domain.ErrUnauthenticated.
	Login(ctx context.Context, userNameOrEmail string, password string) (Session, error)

	// Refresh rotates the refresh token, and issues a new access token.
	Refresh(ctx context.Context, refreshToken string) (Session, error)

	Logout(ctx context.Context, userId int) error
	Me(ctx context.Context, userId int) (Profile, error)
	UploadProfilePicture(ctx context.Context, userId int, contentType string, picture []byte) error
}

type Config struct {
	MaxProfilePictureBytes int64
}

type service struct {
	users  kdb.UserInterface
	tokens auth.Tokens
	conf   Config
	logger zerolog.Logger
}

func New(users kdb.UserInterface, tokens auth.Tokens, conf Config, logger zerolog.Logger) Service {
	return &service{users: users, tokens: tokens, conf: conf, logger: logger}
}

func (s *service) Register(ctx context.Context, param domain.RegisterParam) (domain.User, error) {
	spec, err := param.Validate()
	if err != nil {
		return domain.User{}, err
	}
	hash, err := auth.HashPassword(spec.Password())
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.Create(ctx, spec, hash)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info().Int("user_id", user.Id).Str("user_name", user.UserName).Msg("user registered")
	return user, nil
}

var errBadCredential = fmt.Errorf("%w: user name, email or password is wrong", domain.ErrUnauthenticated)

func (s *service) Login(ctx context.Context, userNameOrEmail string, password string) (Session, error) {
	key := strings.TrimSpace(userNameOrEmail)
	if key == "" || password == "" {
		return Session{}, errBadCredential
	}

	var user domain.User
	var err error
	if domain.LooksLikeEmail(key) {
		user, err = s.users.FindByEmail(ctx, key)
	} else {
		user, err = s.users.FindByName(ctx, key)
	}
	if errors.Is(err, kdb.ErrMissing) {
		return Session{}, errBadCredential
	} else if err != nil {
		return Session{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return Session{}, errBadCredential
		}
		return Session{}, err
	}

	access, err := s.tokens.IssueAccess(ctx, user)
	if err != nil {
		return Session{}, err
	}
	refresh, err := s.tokens.IssueRefresh(ctx, user.Id)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	userId, refresh, err := s.tokens.Rotate(ctx, refreshToken)
	if err != nil {
		return Session{}, err
	}
	user, err := s.users.Get(ctx, userId)
	if errors.Is(err, kdb.ErrMissing) {
		return Session{}, errors.Join(domain.ErrUnauthenticated, err)
	} else if err != nil {
		return Session{}, err
	}
	access, err := s.tokens.IssueAccess(ctx, user)
	if err != nil {
		return Session{}, err
	}
	return Session{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) Logout(ctx context.Context, userId int) error {
	return s.tokens.Revoke(ctx, userId)
}

func (s *service) Me(ctx context.Context, userId int) (Profile, error) {
	user, err := s.users.Get(ctx, userId)
	if err != nil {
		return Profile{}, err
	}
	return Profile{
		UserName:       user.UserName,
		Email:          user.Email,
		NickName:       user.NickName,
		ProfilePicture: domain.DataURI(user.ProfilePictureContentType, user.ProfilePicture),
	}, nil
}

func (s *service) UploadProfilePicture(ctx context.Context, userId int, contentType string, picture []byte) error {
	switch contentType {
	case "image/jpeg", "image/png":
	default:
		return ErrUnsupportedPicture
	}
	if len(picture) == 0 {
		return ErrEmptyPicture
	}
	if 0 < s.conf.MaxProfilePictureBytes && s.conf.MaxProfilePictureBytes < int64(len(picture)) {
		return fmt.Errorf("%w (max %d bytes)", ErrPictureTooLarge, s.conf.MaxProfilePictureBytes)
	}
	return s.users.UpdateProfilePicture(ctx, userId, contentType, picture)
}
