package entity

import "time"

// Papéis válidos para Usuario (grupos do sistema).
const (
	RoleAdmin        = "admin"
	RoleAlmoxarife   = "almoxarife"
	RoleRequisitante = "requisitante"
)

// Usuario representa uma conta do sistema. Login é a matrícula do funcionário.
type Usuario struct {
	ID            string
	Matricula     string // login único
	Nome          string
	Email         string
	PasswordHash  string // bcrypt, nunca em claro após persistência
	Role          string
	CentroCustoID *string // obrigatório para requisitantes criarem requisições
	Ativo         bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CentroCusto é a unidade organizacional requisitante (diretoria, lotação,
// divisão). Parent opcional forma a hierarquia.
type CentroCusto struct {
	ID       string
	Nome     string
	ParentID *string
	Ativo    bool
}
