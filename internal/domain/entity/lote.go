package entity

import "time"

// Lote agrupa a quantidade de um produto que compartilha uma data de validade,
// rastreada separadamente para o consumo FEFO. Unicidade: (produto, data_validade).
// QuantidadeAtual é um cache desnormalizado do somatório dos movimentos do lote;
// só é alterado pelo caminho transacional do registrador de movimentos.
type Lote struct {
	ID              string
	ProdutoID       string
	CodigoLote      string // referência externa opcional (NF, lote do fornecedor)
	DataValidade    time.Time
	QuantidadeAtual int64 // invariante: >= 0
	DataEntrada     time.Time
}

// Vazio informa se o lote não tem mais saldo. Lotes zerados nunca são
// apagados: permanecem como trilha de auditoria.
func (l *Lote) Vazio() bool { return l.QuantidadeAtual <= 0 }
