package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/storefront-api/internal/application/dto"
	"github.com/jhoicas/storefront-api/internal/domain"
	"github.com/jhoicas/storefront-api/internal/domain/entity"
	"github.com/jhoicas/storefront-api/internal/domain/repository"
	"github.com/jhoicas/storefront-api/pkg/jwt"
)

// BcryptCost costo fijo de hash de contraseñas.
const BcryptCost = 10

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y usuario actual.
type AuthUseCase struct {
	userRepo           repository.UserRepository
	jwtCfg             JWTConfig
	allowAdminRegister bool
}

// NewAuthUseCase construye el caso de uso de auth. allowAdminRegister habilita el
// auto-registro con role admin.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, allowAdminRegister bool) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, allowAdminRegister: allowAdminRegister}
}

// MaxPasswordBytes límite de bcrypt; se cuenta en bytes, no en caracteres.
const MaxPasswordBytes = 72

// HashPassword bcrypt con BcryptCost. Contraseñas de más de MaxPasswordBytes
// devuelven domain.ErrInvalidInput.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: la contraseña supera %d bytes", domain.ErrInvalidInput, MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail email sin espacios y en minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crea un usuario. Devuelve ErrEmailAlreadyExists si el email ya existe
// y ErrForbidden si pide role admin sin que esté habilitado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if role == entity.RoleAdmin && !uc.allowAdminRegister {
		return nil, domain.ErrForbidden
	}
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Nama)
	if email == "" || name == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	// el índice único cubre la carrera entre GetByEmail y Create
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica email/password y genera el JWT. Email desconocido y password
// incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		ID:        user.ID,
		Nama:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Token:     token,
		ExpiresAt: time.Now().Add(uc.TokenLifetime()),
	}, nil
}

// Me usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(user), nil
}

// TokenLifetime duración del token y de la cookie de sesión.
func (uc *AuthUseCase) TokenLifetime() time.Duration {
	return time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
}

// ToUserResponse mapea sin password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Nama:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
