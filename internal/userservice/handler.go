package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/bloglist/internal/common"
)

var (
	ErrAuthenticationFailure = fmt.Errorf("unauthorized access")
)

func NewUserService(db *sql.DB, c *common.Cache, cfg TokenConfig) (*UserService, error) {
	tokens, err := NewTokenMaker(cfg)
	if err != nil {
		return nil, err
	}

	return &UserService{
		m:      newUserModel(db),
		c:      c,
		tokens: tokens,
	}, nil
}

// CreateUser registers a new user account.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Name:     name,
		Blogs:    []BlogRef{},
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and returns a signed access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*AuthToken, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return s.tokens.createToken(user)
}

// GetUserByAccessToken resolves a bearer token to its user.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	id, err := s.tokens.parseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			// the account was removed after the token was issued
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyUser(id)); ok {
		u := cached.(User)
		return &u, nil
	}

	user, err := s.m.getUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyUser(id), *user)

	return user, nil
}

// GetUsers lists all users together with the blogs they own.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	return s.m.getUsers(ctx)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
