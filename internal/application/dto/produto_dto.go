package dto

import "time"

// CreateProdutoRequest cadastro de produto no catálogo.
type CreateProdutoRequest struct {
	CategoriaID        string  `json:"categoria_id"`
	CodigoProduto      string  `json:"codigo_produto"`
	NomeProduto        string  `json:"nome_produto"`
	DescricaoDetalhada string  `json:"descricao_detalhada"`
	UnidadeMedida      string  `json:"unidade_medida"`
	EstoqueMinimo      int64   `json:"estoque_minimo"`
	ClasseID           *string `json:"classe_id,omitempty"`
	PDMID              *string `json:"pdm_id,omitempty"`
	NaturezaDespesaID  *string `json:"natureza_despesa_id,omitempty"`
}

// UpdateProdutoRequest atualização de produto (código não muda).
type UpdateProdutoRequest struct {
	NomeProduto        string `json:"nome_produto"`
	DescricaoDetalhada string `json:"descricao_detalhada"`
	UnidadeMedida      string `json:"unidade_medida"`
	EstoqueMinimo      int64  `json:"estoque_minimo"`
	Ativo              *bool  `json:"ativo,omitempty"`
}

// ProdutoResponse representação de um produto.
type ProdutoResponse struct {
	ID                 string    `json:"id"`
	CategoriaID        string    `json:"categoria_id"`
	CodigoProduto      string    `json:"codigo_produto"`
	NomeProduto        string    `json:"nome_produto"`
	DescricaoDetalhada string    `json:"descricao_detalhada,omitempty"`
	UnidadeMedida      string    `json:"unidade_medida"`
	EstoqueMinimo      int64     `json:"estoque_minimo"`
	Ativo              bool      `json:"ativo"`
	DataCadastro       time.Time `json:"data_cadastro"`
}
