package repository

import "github.com/WelintondosSantos/Sistoque/internal/domain/entity"

// CatalogoRepository agrupa as tabelas paramétricas do catálogo de materiais
// (categoria, classe, PDM, natureza de despesa). Mutação só via cadastro/seed.
type CatalogoRepository interface {
	CreateCategoria(c *entity.Categoria) error
	ListCategorias() ([]*entity.Categoria, error)
	GetCategoriaByNome(nome string) (*entity.Categoria, error)

	CreateClasse(c *entity.Classe) error
	GetClasseByCodigo(codigo string) (*entity.Classe, error)

	CreatePDM(p *entity.PDM) error
	GetPDMByCodigo(codigo string) (*entity.PDM, error)

	CreateNaturezaDespesa(n *entity.NaturezaDespesa) error
	GetNaturezaDespesaByCodigo(codigo string) (*entity.NaturezaDespesa, error)
}
