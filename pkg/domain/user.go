package domain

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	MaxUserNameLength = 20
	MaxNickNameLength = 20
	MinPasswordLength = 6

	// bcrypt does not look beyond 72 bytes.
	MaxPasswordBytes = 72

	DefaultProfilePictureType = "image/jpeg"
)

type User struct {
	Id        int
	UserName  string
	Email     string
	NickName  string
	Role      Role
	CreatedAt time.Time

	PasswordHash string

	ProfilePicture            []byte
	ProfilePictureContentType string
}

// Author is the public face of a User.
type Author struct {
	Id             int
	UserName       string
	NickName       string
	ProfilePicture string
}

func (u User) Author() Author {
	return Author{
		Id:             u.Id,
		UserName:       u.UserName,
		NickName:       u.NickName,
		ProfilePicture: DataURI(u.ProfilePictureContentType, u.ProfilePicture),
	}
}

// DataURI encodes picture as "data:" URI.
//
// It returns empty string when there are no picture.
// When contentType is empty, it is assumed as DefaultProfilePictureType.
func DataURI(contentType string, picture []byte) string {
	if len(picture) == 0 {
		return ""
	}
	if contentType == "" {
		contentType = DefaultProfilePictureType
	}
	return fmt.Sprintf(
		"data:%s;base64,%s",
		contentType, base64.StdEncoding.EncodeToString(picture),
	)
}

var (
	ErrInvalidUser     = fmt.Errorf("%w: user", ErrInvalid)
	ErrInvalidUserName = fmt.Errorf("%w: userName", ErrInvalidUser)
	ErrInvalidEmail    = fmt.Errorf("%w: email", ErrInvalidUser)
	ErrInvalidNickName = fmt.Errorf("%w: nickName", ErrInvalidUser)
	ErrInvalidPassword = fmt.Errorf("%w: password", ErrInvalidUser)
)

type RegisterParam struct {
	UserName string
	Email    string
	Password string

	// optional. If empty, UserName is used.
	NickName string
}

// validate parameters and create RegisterSpec.
//
// return:
//
// - *RegisterSpec: validated spec
//
// - error: wraps ErrInvalidUser. if error is not nil, *RegisterSpec is nil.
func (rp RegisterParam) Validate() (*RegisterSpec, error) {
	userName := strings.TrimSpace(rp.UserName)
	switch {
	case userName == "":
		return nil, fmt.Errorf("%w: required", ErrInvalidUserName)
	case MaxUserNameLength < utf8.RuneCountInString(userName):
		return nil, fmt.Errorf("%w: too long (max %d)", ErrInvalidUserName, MaxUserNameLength)
	}
	for _, r := range userName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-._", r) {
			continue
		}
		return nil, fmt.Errorf("%w: unusable character %q", ErrInvalidUserName, r)
	}

	email := strings.TrimSpace(rp.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, fmt.Errorf("%w: not an address: %s", ErrInvalidEmail, email)
	}

	nickName := strings.TrimSpace(rp.NickName)
	if nickName == "" {
		nickName = userName
	}
	if MaxNickNameLength < utf8.RuneCountInString(nickName) {
		return nil, fmt.Errorf("%w: too long (max %d)", ErrInvalidNickName, MaxNickNameLength)
	}

	if err := ValidatePassword(rp.Password); err != nil {
		return nil, err
	}

	return &RegisterSpec{
		userName: userName,
		email:    email,
		nickName: nickName,
		password: rp.Password,
	}, nil
}

func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: too short (min %d)", ErrInvalidPassword, MinPasswordLength)
	}
	if MaxPasswordBytes < len(password) {
		return fmt.Errorf("%w: too long (max %d bytes)", ErrInvalidPassword, MaxPasswordBytes)
	}
	return nil
}

// User to be created.
//
// to instantiate this struct with validation, use `RegisterParam.Validate`.
type RegisterSpec struct {
	userName string
	email    string
	nickName string
	password string
}

func (rs *RegisterSpec) UserName() string {
	return rs.userName
}

func (rs *RegisterSpec) Email() string {
	return rs.email
}

func (rs *RegisterSpec) NickName() string {
	return rs.nickName
}

func (rs *RegisterSpec) Password() string {
	return rs.password
}

// LooksLikeEmail tells login name should be looked up as email or as user name.
func LooksLikeEmail(userNameOrEmail string) bool {
	return strings.Contains(userNameOrEmail, "@")
}
