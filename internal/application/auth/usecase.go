package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/validation"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, perfil y cambio de password.
type AuthUseCase struct {
	managerRepo repository.ManagerRepository
	validate    *validation.Validator
	jwtCfg      JWTConfig
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(managerRepo repository.ManagerRepository, validate *validation.Validator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{managerRepo: managerRepo, validate: validate, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea un manager con rol manager y devuelve token + perfil.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	manager, err := uc.create(ctx, in, entity.RoleManager)
	if err != nil {
		return nil, err
	}
	return uc.issue(manager)
}

// CreateAdmin crea un manager con rol admin (bootstrap; no expuesto por HTTP).
func (uc *AuthUseCase) CreateAdmin(ctx context.Context, in dto.RegisterRequest) (*dto.ManagerResponse, error) {
	manager, err := uc.create(ctx, in, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return toManagerResponse(manager), nil
}

func (uc *AuthUseCase) create(ctx context.Context, in dto.RegisterRequest, role string) (*entity.Manager, error) {
	in.Email = normalizeEmail(in.Email)
	in.Firstname = strings.TrimSpace(in.Firstname)
	in.Lastname = strings.TrimSpace(in.Lastname)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	existing, err := uc.managerRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	manager := &entity.Manager{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Email:        in.Email,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		PasswordHash: string(hash),
		Role:         role,
		Status:       entity.ManagerStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// el índice único cubre la carrera entre GetByEmail y Create
	if err := uc.managerRepo.Create(ctx, manager); err != nil {
		return nil, err
	}
	return manager, nil
}

// Login verifica email/password y emite el token. Email inexistente y password
// incorrecto producen el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	manager, err := uc.managerRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if manager.Status == entity.ManagerStatusBlocked {
		return nil, domain.ErrForbidden
	}
	return uc.issue(manager)
}

// Me perfil del manager autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, managerID string) (*dto.ManagerResponse, error) {
	manager, err := uc.managerRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, domain.ErrManagerNotFound
	}
	return toManagerResponse(manager), nil
}

// ChangePassword único camino que modifica la credencial. Password actual incorrecto = no autorizado.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, managerID string, in dto.ChangePasswordRequest) error {
	if err := uc.validate.Struct(in); err != nil {
		return err
	}
	manager, err := uc.managerRepo.GetByID(ctx, managerID)
	if err != nil {
		return err
	}
	if manager == nil {
		return domain.ErrManagerNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.managerRepo.UpdatePassword(ctx, manager.ID, string(hash), uc.now().UTC())
}

// Authenticate valida el token y que el manager siga existiendo. Lo usa el middleware HTTP.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.Manager, error) {
	managerID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	manager, err := uc.managerRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if manager == nil || manager.Status == entity.ManagerStatusBlocked {
		return nil, domain.ErrUnauthorized
	}
	return manager, nil
}

func (uc *AuthUseCase) issue(manager *entity.Manager) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, manager.ID, manager.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Manager: *toManagerResponse(manager)}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toManagerResponse(m *entity.Manager) *dto.ManagerResponse {
	if m == nil {
		return nil
	}
	return &dto.ManagerResponse{
		ID:          m.ID,
		Firstname:   m.Firstname,
		Lastname:    m.Lastname,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Role:        m.Role,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
