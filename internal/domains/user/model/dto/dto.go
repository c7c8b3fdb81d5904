package dto

import (
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// CreateUserRequest is an admin creating an account with any role.
type CreateUserRequest struct {
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name"     validate:"required,max=100"`
	Phone    *string `json:"phone"    validate:"omitempty,max=30"`
	Role     string  `json:"role"     validate:"omitempty,oneof=guest staff admin"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	role := r.Role
	if role == "" {
		role = constant.RoleGuest
	}

	return NewUser(username, r.Email, r.Name, r.Phone, &hashedPassword, role)
}

// NewUser builds an active local account.
func NewUser(username, email, name string, phone, hashedPassword *string, role string) model.User {
	now := timezone.Now()

	return model.User{
		ID:           uuid.NewString(),
		Email:        shared.NormalizeEmail(email),
		Password:     hashedPassword,
		Name:         name,
		Phone:        phone,
		Role:         role,
		IsActive:     true,
		AuthProvider: constant.AuthProviderLocal,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

// UpdateUserRequest is an admin changing another account.
type UpdateUserRequest struct {
	Name     *string `db:"name"      json:"name"     validate:"omitempty,min=1,max=100"`
	Phone    *string `db:"phone"     json:"phone"    validate:"omitempty,max=30"`
	Role     *string `db:"role"      json:"role"     validate:"omitempty,oneof=guest staff admin"`
	IsActive *bool   `db:"is_active" json:"isActive"`
}

// UpdateProfileRequest is a caller changing their own account.
type UpdateProfileRequest struct {
	Name  *string `db:"name"  json:"name"  validate:"omitempty,min=1,max=100"`
	Phone *string `db:"phone" json:"phone" validate:"omitempty,max=30"`
}

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone,omitempty"`
	Role         string  `json:"role"`
	IsActive     bool    `json:"isActive"`
	Avatar       *string `json:"avatar,omitempty"`
	AuthProvider string  `json:"authProvider"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Name = model.Name
	r.Phone = model.Phone
	r.Role = model.Role
	r.IsActive = model.IsActive
	r.Avatar = model.Avatar
	r.AuthProvider = model.AuthProvider
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

func (r *GetUsersResponse) FromModels(models []model.User) {
	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}

	r.Count = len(models)
}
