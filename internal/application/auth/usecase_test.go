package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/WelintondosSantos/Sistoque/internal/application/auth"
	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
	pkgjwt "github.com/WelintondosSantos/Sistoque/pkg/jwt"
)

type usuarios struct {
	porMatricula map[string]*entity.Usuario
	errLeitura   error // quando setado, as leituras falham com este erro
}

var _ repository.UsuarioRepository = (*usuarios)(nil)

func (r *usuarios) Create(u *entity.Usuario) error {
	if _, ok := r.porMatricula[u.Matricula]; ok {
		return domain.ErrDuplicate
	}
	r.porMatricula[u.Matricula] = u
	return nil
}

func (r *usuarios) GetByID(id string) (*entity.Usuario, error) {
	for _, u := range r.porMatricula {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *usuarios) GetByMatricula(matricula string) (*entity.Usuario, error) {
	if r.errLeitura != nil {
		return nil, r.errLeitura
	}
	u, ok := r.porMatricula[matricula]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *usuarios) List(int, int) ([]*entity.Usuario, error)         { return nil, nil }
func (r *usuarios) ListByRoles(...string) ([]*entity.Usuario, error) { return nil, nil }

type centrosCusto struct{ porID map[string]*entity.CentroCusto }

var _ repository.CentroCustoRepository = (*centrosCusto)(nil)

func (r *centrosCusto) Create(cc *entity.CentroCusto) error { r.porID[cc.ID] = cc; return nil }
func (r *centrosCusto) GetByID(id string) (*entity.CentroCusto, error) {
	cc, ok := r.porID[id]
	if !ok {
		return nil, nil
	}
	return cc, nil
}
func (r *centrosCusto) List() ([]*entity.CentroCusto, error) { return nil, nil }

var testJWT = auth.JWTConfig{Secret: "segredo-de-teste", ExpMinutes: 60, Issuer: "sistoque-test"}

func novoUseCase(t *testing.T) (*auth.AuthUseCase, *usuarios, *centrosCusto) {
	t.Helper()
	us := &usuarios{porMatricula: make(map[string]*entity.Usuario)}
	ccs := &centrosCusto{porID: map[string]*entity.CentroCusto{
		"cc-1": {ID: "cc-1", Nome: "Administração", Ativo: true},
	}}
	return auth.NewAuthUseCase(us, ccs, testJWT), us, ccs
}

func seedUsuario(t *testing.T, us *usuarios, matricula, senha, role string, ativo bool) *entity.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	require.NoError(t, err)
	cc := "cc-1"
	u := &entity.Usuario{
		ID: "user-" + matricula, Matricula: matricula, Nome: "Fulano",
		PasswordHash: string(hash), Role: role, CentroCustoID: &cc, Ativo: ativo,
	}
	us.porMatricula[matricula] = u
	return u
}

func TestLogin_CredenciaisValidasGeramToken(t *testing.T) {
	uc, us, _ := novoUseCase(t)
	seedUsuario(t, us, "100001", "senha-forte", entity.RoleAlmoxarife, true)

	resp, err := uc.Login(dto.LoginRequest{Matricula: "100001", Password: "senha-forte"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "100001", resp.Usuario.Matricula)

	// O token carrega identidade, centro de custo e papel.
	userID, centroCustoID, role, err := pkgjwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-100001", userID)
	assert.Equal(t, "cc-1", centroCustoID)
	assert.Equal(t, entity.RoleAlmoxarife, role)
}

func TestLogin_SenhaErrada(t *testing.T) {
	uc, us, _ := novoUseCase(t)
	seedUsuario(t, us, "100001", "senha-forte", entity.RoleAdmin, true)

	_, err := uc.Login(dto.LoginRequest{Matricula: "100001", Password: "senha-errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_MatriculaDesconhecida(t *testing.T) {
	uc, _, _ := novoUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Matricula: "999999", Password: "qualquer"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInativoBloqueado(t *testing.T) {
	uc, us, _ := novoUseCase(t)
	seedUsuario(t, us, "100001", "senha-forte", entity.RoleAdmin, false)

	_, err := uc.Login(dto.LoginRequest{Matricula: "100001", Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterUser_CriaComHashEDefaults(t *testing.T) {
	uc, us, _ := novoUseCase(t)

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Matricula: "100010", Password: "senha-nova", CentroCustoID: "cc-1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleRequisitante, resp.Role, "papel vazio assume requisitante")
	assert.Equal(t, "100010", resp.Nome, "nome vazio assume a matrícula")
	assert.Equal(t, "cc-1", resp.CentroCustoID)

	criado := us.porMatricula["100010"]
	require.NotNil(t, criado)
	assert.NotEqual(t, "senha-nova", criado.PasswordHash, "a senha nunca é persistida em claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(criado.PasswordHash), []byte("senha-nova")))
}

func TestRegisterUser_MatriculaDuplicada(t *testing.T) {
	uc, us, _ := novoUseCase(t)
	seedUsuario(t, us, "100001", "x", entity.RoleAdmin, true)

	_, err := uc.RegisterUser(dto.RegisterRequest{Matricula: "100001", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegisterUser_FalhaDeLeituraNaoValeComoMatriculaLivre(t *testing.T) {
	// Um erro transitório do banco na consulta de matrícula deve abortar o
	// cadastro, não ser tratado como "matrícula disponível".
	uc, us, _ := novoUseCase(t)
	falha := errors.New("conexão perdida")
	us.errLeitura = falha

	_, err := uc.RegisterUser(dto.RegisterRequest{Matricula: "100020", Password: "x"})
	require.ErrorIs(t, err, falha)
	assert.Empty(t, us.porMatricula)
}

func TestRegisterUser_RoleInvalido(t *testing.T) {
	uc, _, _ := novoUseCase(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{Matricula: "100011", Password: "x", Role: "gerente"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_CentroCustoInexistente(t *testing.T) {
	uc, _, _ := novoUseCase(t)

	_, err := uc.RegisterUser(dto.RegisterRequest{Matricula: "100012", Password: "x", CentroCustoID: "cc-zzz"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
