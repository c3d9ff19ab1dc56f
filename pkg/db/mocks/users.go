package mocks

import (
	"context"

	kdb "github.com/bearnovel/bearnovel/pkg/db"
	"github.com/bearnovel/bearnovel/pkg/domain"
)

type UserCreateArgs struct {
	Spec         *domain.RegisterSpec
	PasswordHash string
}

type ProfilePictureArgs struct {
	UserId      int
	ContentType string
	Picture     []byte
}

type MockUserInterface struct {
	Impl struct {
		Create               func(context.Context, *domain.RegisterSpec, string) (domain.User, error)
		Get                  func(context.Context, int) (domain.User, error)
		FindByName           func(context.Context, string) (domain.User, error)
		FindByEmail          func(context.Context, string) (domain.User, error)
		FindByNickName       func(context.Context, string) (domain.User, error)
		UpdateProfilePicture func(context.Context, int, string, []byte) error
	}
	Calls struct {
		Create               CallLog[UserCreateArgs]
		Get                  CallLog[int]
		FindByName           CallLog[string]
		FindByEmail          CallLog[string]
		FindByNickName       CallLog[string]
		UpdateProfilePicture CallLog[ProfilePictureArgs]
	}
}

var _ kdb.UserInterface = &MockUserInterface{}

func NewMockUserInterface() *MockUserInterface {
	return &MockUserInterface{}
}

func (m *MockUserInterface) Create(ctx context.Context, spec *domain.RegisterSpec, passwordHash string) (domain.User, error) {
	m.Calls.Create = append(m.Calls.Create, UserCreateArgs{Spec: spec, PasswordHash: passwordHash})
	if m.Impl.Create == nil {
		return domain.User{}, errNotImplemented
	}
	return m.Impl.Create(ctx, spec, passwordHash)
}

func (m *MockUserInterface) Get(ctx context.Context, userId int) (domain.User, error) {
	m.Calls.Get = append(m.Calls.Get, userId)
	if m.Impl.Get == nil {
		return domain.User{}, errNotImplemented
	}
	return m.Impl.Get(ctx, userId)
}

func (m *MockUserInterface) FindByName(ctx context.Context, userName string) (domain.User, error) {
	m.Calls.FindByName = append(m.Calls.FindByName, userName)
	if m.Impl.FindByName == nil {
		return domain.User{}, errNotImplemented
	}
	return m.Impl.FindByName(ctx, userName)
}

func (m *MockUserInterface) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	m.Calls.FindByEmail = append(m.Calls.FindByEmail, email)
	if m.Impl.FindByEmail == nil {
		return domain.User{}, errNotImplemented
	}
	return m.Impl.FindByEmail(ctx, email)
}

func (m *MockUserInterface) FindByNickName(ctx context.Context, nickName string) (domain.User, error) {
	m.Calls.FindByNickName = append(m.Calls.FindByNickName, nickName)
	if m.Impl.FindByNickName == nil {
		return domain.User{}, errNotImplemented
	}
	return m.Impl.FindByNickName(ctx, nickName)
}

func (m *MockUserInterface) UpdateProfilePicture(ctx context.Context, userId int, contentType string, picture []byte) error {
	m.Calls.UpdateProfilePicture = append(
		m.Calls.UpdateProfilePicture,
		ProfilePictureArgs{UserId: userId, ContentType: contentType, Picture: picture},
	)
	if m.Impl.UpdateProfilePicture == nil {
		return errNotImplemented
	}
	return m.Impl.UpdateProfilePicture(ctx, userId, contentType, picture)
}
