package entity

// Categoria agrupa produtos do catálogo (ex: Material de Expediente).
type Categoria struct {
	ID        string
	Nome      string
	Descricao string
}

// Classe de material (ex: 7520 - Material de Papelaria).
type Classe struct {
	ID        string
	Codigo    string
	Descricao string
}

// PDM é o Padrão Descritivo de Material.
type PDM struct {
	ID        string
	Codigo    string
	Descricao string
}

// NaturezaDespesa associada a um produto para fins orçamentários.
type NaturezaDespesa struct {
	ID        string
	Codigo    string
	Descricao string
}
