package dto

import (
	userModel "tickoff/internal/domains/user/model"
	gModel "tickoff/shared/model"
	"tickoff/shared/timezone"
)

// Credentials is the body of both register and login.
type Credentials struct {
	Username string `json:"username" validate:"required,notblank,max=255"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type (
	RegisterRequest = Credentials
	LoginRequest    = Credentials
)

func (c *Credentials) ToUserModel(passwordHash string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		Username:     c.Username,
		PasswordHash: passwordHash,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type LoginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (l *LoginResponse) FromModel(user userModel.User, token string) {
	l.ID = user.ID
	l.Username = user.Username
	l.Token = token
}
