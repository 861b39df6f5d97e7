package dto

import "time"

// LoginRequest credenciais de acesso (matrícula + senha).
type LoginRequest struct {
	Matricula string `json:"matricula"`
	Password  string `json:"password"`
}

// LoginResponse token JWT + dados do usuário autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// RegisterRequest criação de usuário (restrita a admin).
type RegisterRequest struct {
	Matricula     string `json:"matricula"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role"`
	CentroCustoID string `json:"centro_custo_id"`
}

// UsuarioResponse representação pública de um usuário.
type UsuarioResponse struct {
	ID            string    `json:"id"`
	Matricula     string    `json:"matricula"`
	Nome          string    `json:"nome"`
	Email         string    `json:"email,omitempty"`
	Role          string    `json:"role"`
	CentroCustoID string    `json:"centro_custo_id,omitempty"`
	Ativo         bool      `json:"ativo"`
	CreatedAt     time.Time `json:"created_at"`
}
