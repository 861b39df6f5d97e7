package dto

// CreateAlmoxarifadoRequest cadastro de um depósito físico.
type CreateAlmoxarifadoRequest struct {
	Nome        string `json:"nome"`
	Codigo      string `json:"codigo"`
	Localizacao string `json:"localizacao"`
}

// CreateCentroCustoRequest cadastro de uma unidade requisitante.
type CreateCentroCustoRequest struct {
	Nome     string  `json:"nome"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CreateCategoriaRequest cadastro de categoria do catálogo.
type CreateCategoriaRequest struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}
