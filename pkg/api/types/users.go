package types

import "github.com/bearnovel/bearnovel/pkg/accounts"

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	NickName string `json:"nickName,omitempty"`
}

type LoginRequest struct {
	UserNameOrEmail string `json:"userNameOrEmail"`
	Password        string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type Message struct {
	Message string `json:"message"`
}

type Profile struct {
	Email          string `json:"email"`
	UserName       string `json:"userName"`
	NickName       string `json:"nickName"`
	ProfilePicture string `json:"profilePicture"`
}

func ComposeProfile(p accounts.Profile) Profile {
	return Profile{
		Email:          p.Email,
		UserName:       p.UserName,
		NickName:       p.NickName,
		ProfilePicture: p.ProfilePicture,
	}
}
