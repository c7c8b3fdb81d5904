package model

import "hotel/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldRole         = "role"
	FieldIsActive     = "is_active"
	FieldGoogleID     = "google_id"
	FieldAvatar       = "avatar"
	FieldAuthProvider = "auth_provider"
)

// User is an account. Password is nil for accounts that only sign in through Google.
type User struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	Password     *string `db:"password"`
	Name         string  `db:"name"`
	Phone        *string `db:"phone"`
	Role         string  `db:"role"`
	IsActive     bool    `db:"is_active"`
	GoogleID     *string `db:"google_id"`
	Avatar       *string `db:"avatar"`
	AuthProvider string  `db:"auth_provider"`
	model.Metadata
}

func (u User) PasswordHash() string {
	if u.Password == nil {
		return ""
	}

	return *u.Password
}
