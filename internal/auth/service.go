package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/jkz07/transcare/config"
	"github.com/jkz07/transcare/utils"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

var (
	ErrEmailTaken         = errors.New("email já cadastrado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrInvalidResetToken  = errors.New("token de redefinição inválido ou expirado")
)

const resetTokenTTL = 30 * time.Minute

type Service interface {
	Register(input RegisterInput) (*User, error)
	Login(input LoginInput) (*TokenPair, *User, error)
	Refresh(refreshToken string) (string, error)
	Logout(refreshToken string) error
	GetUserByID(userID uint) (User, error)

	RequestPasswordReset(email string) error
	ResetPassword(token string, newPassword string) error
}

type service struct {
	repo          Repository
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(r Repository, cfg *config.Config) Service {
	return &service{
		repo:          r,
		accessSecret:  cfg.JWTAccessSecret,
		refreshSecret: cfg.JWTRefreshSecret,
		accessTTL:     time.Duration(cfg.JWTAccessTTLHours) * time.Hour,
		refreshTTL:    time.Duration(cfg.JWTRefreshTTLHours) * time.Hour,
	}
}

// =============================
// Register
// =============================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func (s *service) Register(in RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	utils.PublishDomainEvent(utils.DomainEvent{
		UserID: user.ID,
		Source: "auth",
		Action: "USER_REGISTERED",
		Title:  "Bem-vinde ao TransCare",
		Body:   "Sua conta foi criada com sucesso.",
	})

	return user, nil
}

// =============================
// Login
// =============================

type LoginInput struct {
	Email    string
	Password string
}

func (s *service) Login(in LoginInput) (*TokenPair, *User, error) {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, user, nil
}

func (s *service) generateAccessToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.accessSecret))
}

func (s *service) generateRefreshToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.refreshTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.refreshSecret))
}

// =============================
// Refresh
// =============================

func (s *service) Refresh(refreshToken string) (string, error) {
	if utils.IsRefreshTokenRevoked(context.Background(), refreshToken) {
		return "", errors.New("refresh token revogado")
	}

	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.refreshSecret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("refresh token inválido")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["user_id"] == nil {
		return "", errors.New("refresh token inválido")
	}

	userID := uint(claims["user_id"].(float64))
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return "", ErrUserNotFound
	}

	return s.generateAccessToken(&user)
}

// =============================
// Logout
// =============================

// Logout revokes the refresh token for the remainder of its lifetime. The
// access token stays stateless and simply expires.
func (s *service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return utils.RevokeRefreshToken(context.Background(), refreshToken, s.refreshTTL)
}

// =============================
// Forgot Password
// =============================

func (s *service) RequestPasswordReset(email string) error {
	user, err := s.repo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return ErrUserNotFound
	}

	resetToken := uuid.NewString()
	if err := utils.SetResetToken(context.Background(), resetToken, user.ID, resetTokenTTL); err != nil {
		return errors.New("não foi possível salvar o token de redefinição")
	}

	if err := utils.SendPasswordResetEmail(user.Email, resetToken); err != nil {
		return errors.New("falha ao enviar o email de redefinição")
	}

	return nil
}

func (s *service) ResetPassword(token string, newPassword string) error {
	userID, err := utils.GetResetToken(context.Background(), token)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.repo.FindByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	if err := s.repo.Update(&user); err != nil {
		return errors.New("falha ao atualizar a senha")
	}

	_ = utils.DeleteResetToken(context.Background(), token)

	return nil
}

// =============================
// Get User By ID
// =============================

func (s *service) GetUserByID(userID uint) (User, error) {
	return s.repo.FindByID(userID)
}
