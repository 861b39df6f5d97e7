package entity

// Almoxarifado é o depósito físico onde o estoque é guardado.
type Almoxarifado struct {
	ID          string
	Nome        string
	Codigo      string
	Localizacao string
	Ativo       bool
}
