package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmcastano/almacen-api/internal/application/dto"
	"github.com/jmcastano/almacen-api/internal/domain"
	"github.com/jmcastano/almacen-api/internal/domain/entity"
	"github.com/jmcastano/almacen-api/internal/domain/repository"
	"github.com/jmcastano/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y bootstrap
// del administrador inicial.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta sin permisos (los asigna luego un administrador).
// Devuelve ErrUsernameTaken si el username ya existe (case-insensitive).
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica username/password, genera JWT con los flags y retorna
// token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Claims{
		UserID:             user.ID,
		Username:           user.Username,
		IsAdmin:            user.IsAdmin,
		CanDefineProducts:  user.CanDefineProducts,
		CanViewReports:     user.CanViewReports,
		CanManageInventory: user.CanManageInventory,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *ToUserResponse(user)}, nil
}

// Me devuelve la cuenta autenticada (GET /api/user). nil, nil si no existe.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return ToUserResponse(user), nil
}

// EnsureBootstrapAdmin crea el administrador inicial si no existe ninguna
// cuenta con IsAdmin. Se llama una vez al arrancar, con credenciales de la
// configuración. Devuelve true si creó la cuenta.
func (uc *AuthUseCase) EnsureBootstrapAdmin(username, password string) (bool, error) {
	admins, err := uc.userRepo.CountAdmins()
	if err != nil {
		return false, err
	}
	if admins > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(admin); err != nil {
		return false, err
	}
	return true, nil
}

// ToUserResponse convierte la entidad a su representación pública.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                 u.ID,
		Username:           u.Username,
		IsAdmin:            u.IsAdmin,
		CanDefineProducts:  u.CanDefineProducts,
		CanViewReports:     u.CanViewReports,
		CanManageInventory: u.CanManageInventory,
		CreatedAt:          u.CreatedAt,
	}
}
