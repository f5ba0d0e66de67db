package service

import (
	"context"
	"errors"
	"time"

	"dxy/internal/config"
	"dxy/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Token kinds carried in the "tipo" claim.
const (
	TokenAcceso  = "access"
	TokenRefresh = "refresh"
)

var ErrCredenciales = errors.New("credenciales invalidas")

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

// authService authenticates the single store operator configured through
// OPERADOR_USUARIO and OPERADOR_PASSWORD_HASH.
type authService struct {
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{cfg: cfg, now: time.Now}
}

func (s *authService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.cfg.OperadorPasswordHash == "" || req.Username != s.cfg.OperadorUsuario {
		return nil, ErrCredenciales
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.OperadorPasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenciales
	}
	return s.emitir(req.Username)
}

func (s *authService) Refresh(_ context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	if tipo, _ := claims["tipo"].(string); tipo != TokenRefresh {
		return nil, errors.New("el token no es de refresco")
	}
	username, _ := claims["username"].(string)
	if username == "" || username != s.cfg.OperadorUsuario {
		return nil, errors.New("usuario no encontrado o inactivo")
	}
	return s.emitir(username)
}

func (s *authService) emitir(username string) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(username, TokenAcceso, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(username, TokenRefresh, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Username:     username,
	}, nil
}

func (s *authService) generateToken(username, tipo string, duration time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"username": username,
		"tipo":     tipo,
		"exp":      now.Add(duration).Unix(),
		"iat":      now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
