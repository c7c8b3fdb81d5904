package dto

import (
	"hotel/infras/jwt"
	userModel "hotel/internal/domains/user/model"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
)

type RegisterRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name"     validate:"required,max=100"`
	Phone    *string `json:"phone"    validate:"omitempty,max=30"`
}

// ToUserModel always yields a guest; a role in the request body is ignored.
func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	return userDto.NewUser(constant.ContextAnonymous, r.Email, r.Name, r.Phone, &hashedPassword, constant.RoleGuest)
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

type AuthResponse struct {
	Token     string               `json:"token"`
	ExpiresAt string               `json:"expiresAt"`
	User      userDto.UserResponse `json:"user"`
}

func (r *AuthResponse) FromToken(token jwt.Token, user userModel.User) {
	r.Token = token.AccessToken
	r.ExpiresAt = token.ExpiresAt.Format(constant.DateFormat)
	r.User.FromModel(user)
}

// ExternalIdentity is a person vouched for by a federated provider.
type ExternalIdentity struct {
	ProviderID string
	Email      string
	Name       string
	Avatar     string
}

type LinkGoogleRequest struct {
	GoogleID string `db:"google_id"`
	Avatar   string `db:"avatar"`
}
