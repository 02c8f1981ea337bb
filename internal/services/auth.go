package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/habithaven/internal/api"
	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
)

// ErrMissingToken is returned when a successful login carries no access token
var ErrMissingToken = errors.New("login response did not include an access token")

type AuthService struct {
	client Requester
}

func NewAuthService(client Requester) *AuthService {
	return &AuthService{client: client}
}

// LoginResult is the outcome of a successful login. User is zero when the
// backend only returned a token.
type LoginResult struct {
	User  models.User
	Token string
}

type RegisterInput struct {
	FullName string `json:"fullName" validate:"notblank,max=80"`
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// AccountInput carries profile fields; empty fields are left unchanged.
type AccountInput struct {
	FullName string `json:"fullName,omitempty" validate:"required_without_all=Username Email,max=80"`
	Username string `json:"username,omitempty" validate:"omitempty,min=3,max=30,username"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	res := s.client.Post(ctx, constants.EndpointLogin, map[string]string{
		"email":    email,
		"password": password,
	})
	if err := res.Err(); err != nil {
		return LoginResult{}, err
	}
	return decodeLogin(res.Data)
}

// decodeLogin finds the token in the payload object first, then at the top
// level of the body. The user may be nested under "user" or be the payload.
func decodeLogin(body []byte) (LoginResult, error) {
	obj, err := api.ObjectPayload(body)
	if err != nil {
		return LoginResult{}, err
	}

	var payload loginDTO
	if err := json.Unmarshal(obj, &payload); err != nil {
		return LoginResult{}, errors.Join(api.ErrMalformedPayload, err)
	}
	token := payload.token()
	if token == "" {
		var root loginDTO
		if err := json.Unmarshal(body, &root); err == nil {
			token = root.token()
		}
	}
	if token == "" {
		return LoginResult{}, ErrMissingToken
	}

	userRaw := obj
	if gjson.GetBytes(obj, "user").IsObject() {
		userRaw = payload.User
	}
	var u userDTO
	if err := json.Unmarshal(userRaw, &u); err != nil {
		return LoginResult{Token: token}, nil
	}
	return LoginResult{User: u.toModel(), Token: token}, nil
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	u, err := mutationOf(s.client.Post(ctx, constants.EndpointRegister, in), userDTO.toModel, "user")
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	return u, nil
}

func (s *AuthService) CurrentUser(ctx context.Context) (models.User, error) {
	u, err := objectOf(s.client.Get(ctx, constants.EndpointMyAccount), userDTO.toModel, "user")
	if err != nil {
		return models.User{}, fmt.Errorf("fetch current user: %w", err)
	}
	return u, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.Post(ctx, constants.EndpointLogout, nil).Err(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) UpdateAccount(ctx context.Context, in AccountInput) (models.User, error) {
	u, err := mutationOf(s.client.Patch(ctx, constants.EndpointUpdateAccount, in), userDTO.toModel, "user")
	if err != nil {
		return models.User{}, fmt.Errorf("update account: %w", err)
	}
	return u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) (models.User, error) {
	res := s.client.Patch(ctx, constants.EndpointChangePassword, map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
	u, err := mutationOf(res, userDTO.toModel, "user")
	if err != nil {
		return models.User{}, fmt.Errorf("change password: %w", err)
	}
	return u, nil
}
