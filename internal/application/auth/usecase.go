package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
	"github.com/WelintondosSantos/Sistoque/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticação por matrícula + senha e cadastro de usuários.
type AuthUseCase struct {
	usuarioRepo     repository.UsuarioRepository
	centroCustoRepo repository.CentroCustoRepository
	jwtCfg          JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, centroCustoRepo repository.CentroCustoRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, centroCustoRepo: centroCustoRepo, jwtCfg: jwtCfg}
}

// Login verifica matrícula/senha, gera o JWT e retorna token + usuário.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.GetByMatricula(in.Matricula)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !usuario.Ativo {
		return nil, domain.ErrForbidden
	}
	centroCusto := ""
	if usuario.CentroCustoID != nil {
		centroCusto = *usuario.CentroCustoID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, centroCusto, usuario.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Usuario: *toUsuarioResponse(usuario)}, nil
}

// RegisterUser cria um usuário (restrito a admin no handler): hasheia a senha
// com bcrypt e persiste. Matrícula duplicada falha com ErrDuplicate.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	existing, err := uc.usuarioRepo.GetByMatricula(in.Matricula)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	role := in.Role
	switch role {
	case entity.RoleAdmin, entity.RoleAlmoxarife, entity.RoleRequisitante:
	case "":
		role = entity.RoleRequisitante
	default:
		return nil, domain.ErrInvalidInput
	}
	var centroCusto *string
	if in.CentroCustoID != "" {
		cc, err := uc.centroCustoRepo.GetByID(in.CentroCustoID)
		if err != nil {
			return nil, err
		}
		if cc == nil {
			return nil, domain.ErrNotFound
		}
		centroCusto = &in.CentroCustoID
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nome := in.Nome
	if nome == "" {
		nome = in.Matricula
	}
	usuario := &entity.Usuario{
		ID:            uuid.New().String(),
		Matricula:     in.Matricula,
		Nome:          nome,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Role:          role,
		CentroCustoID: centroCusto,
		Ativo:         true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UsuarioResponse{
		ID:        u.ID,
		Matricula: u.Matricula,
		Nome:      u.Nome,
		Email:     u.Email,
		Role:      u.Role,
		Ativo:     u.Ativo,
		CreatedAt: u.CreatedAt,
	}
	if u.CentroCustoID != nil {
		resp.CentroCustoID = *u.CentroCustoID
	}
	return resp
}
