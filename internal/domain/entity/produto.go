package entity

import "time"

// Produto representa um material do catálogo do almoxarifado.
// Saldo e custo médio não são armazenados aqui: derivam dos lotes e dos
// movimentos de ENTRADA (ver domain/estoque).
type Produto struct {
	ID                string
	CategoriaID       string
	CodigoProduto     string // código único do material
	NomeProduto       string
	DescricaoDetalhada string
	UnidadeMedida     string
	EstoqueMinimo     int64
	Ativo             bool
	ClasseID          *string
	PDMID             *string
	NaturezaDespesaID *string
	DataCadastro      time.Time
}
