package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound            = errors.New("recurso não encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("não autorizado")
	ErrForbidden           = errors.New("acesso negado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrSemCentroCusto      = errors.New("usuário sem centro de custo associado")
	ErrSaldoNegativo       = errors.New("operação deixaria o lote com saldo negativo")
	ErrEstoqueInsuficiente = errors.New("estoque insuficiente para atender a requisição")
	ErrPeriodoFechado      = errors.New("período com fechamento ativo; movimentação bloqueada")
	ErrFechamentoDuplicado = errors.New("já existe fechamento ativo para o período")
	ErrStatusInvalido      = errors.New("status da requisição não permite a operação")
	ErrRequisicaoVazia     = errors.New("requisição sem itens")
	ErrNenhumAlmoxarifado  = errors.New("nenhum almoxarifado ativo encontrado")
)
