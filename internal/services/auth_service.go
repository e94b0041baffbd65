package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"zarika/internal/apperr"
	"zarika/internal/domain"
	"zarika/internal/repos"
	"zarika/internal/validate"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (s *AuthService) Register(in RegisterInput) (*domain.User, error) {
	name, ok := validate.Name(in.Name)
	if !ok {
		return nil, apperr.Validation("name must be 2-60 characters")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		return nil, apperr.Validation("invalid email address")
	}
	phone := strings.TrimSpace(in.Phone)
	if phone != "" {
		if phone, ok = validate.Phone(phone); !ok {
			return nil, apperr.Validation("invalid phone number")
		}
	}
	if !validate.Password(in.Password) {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	if _, err := s.Users.ByEmail(email); err == nil {
		return nil, apperr.Conflict("email already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Phone: phone,
		Hash:  string(hash),
		Role:  domain.RoleCustomer,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
