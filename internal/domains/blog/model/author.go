package model

import (
	"hotel/shared/failure"
	"hotel/shared/identity"
	"hotel/shared/validator"
	"net/http"
	"strings"
)

const (
	AuthorKindUser      = "user"
	AuthorKindAnonymous = "anonymous"
)

var (
	ErrAnonymousAuthor = &failure.Failure{Code: http.StatusBadRequest, Message: "name and email are required to comment anonymously"}
	ErrAuthorEmail     = &failure.Failure{Code: http.StatusBadRequest, Message: "a valid email is required to comment anonymously"}
)

// Author is who wrote a comment, decided once when the comment is made.
type Author interface {
	Kind() string
	stamp(c *Comment)
}

type Authenticated struct {
	UserID string
	Name   string
	Email  string
}

func (Authenticated) Kind() string {
	return AuthorKindUser
}

func (a Authenticated) stamp(c *Comment) {
	userID := a.UserID

	c.AuthorKind = AuthorKindUser
	c.UserID = &userID
	c.AuthorName = a.Name
	c.AuthorEmail = a.Email
	c.CreatedBy = a.UserID
	c.ModifiedBy = a.UserID
}

type Anonymous struct {
	Name  string
	Email string
}

func (Anonymous) Kind() string {
	return AuthorKindAnonymous
}

func (a Anonymous) stamp(c *Comment) {
	c.AuthorKind = AuthorKindAnonymous
	c.UserID = nil
	c.AuthorName = a.Name
	c.AuthorEmail = a.Email
	c.CreatedBy = AuthorKindAnonymous
	c.ModifiedBy = AuthorKindAnonymous
}

// AuthorFromRequest resolves the comment author. A signed-in caller is always
// the author and any supplied name or email is ignored.
func AuthorFromRequest(caller identity.Identity, name, email string) (Author, error) {
	if caller.UserID != "" {
		return Authenticated{UserID: caller.UserID, Name: caller.Name, Email: caller.Email}, nil
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" {
		return nil, ErrAnonymousAuthor
	}

	if err := validator.ValidateVar(email, "email"); err != nil {
		return nil, ErrAuthorEmail
	}

	return Anonymous{Name: name, Email: email}, nil
}

// Attribute stamps the author onto c.
func Attribute(c *Comment, author Author) {
	author.stamp(c)
}
