package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de um fechamento mensal.
const (
	FechamentoATIVO     = "ATIVO"
	FechamentoCANCELADO = "CANCELADO"
)

// FechamentoMensal é o cabeçalho do snapshot de estoque de um período.
// Só pode existir um fechamento ATIVO por (mês, ano). Nunca é apagado:
// a reabertura apenas transiciona ATIVO -> CANCELADO com auditoria.
type FechamentoMensal struct {
	ID               string
	Mes              int
	Ano              int
	ResponsavelID    string
	Status           string
	DataFechamento   time.Time
	CanceladoPorID   *string
	DataCancelamento *time.Time
}

// PosicaoEstoqueMensal é uma linha imutável do snapshot: a posição de um
// produto no instante do fechamento.
type PosicaoEstoqueMensal struct {
	ID               string
	FechamentoID     string
	ProdutoID        string
	QuantidadeFinal  int64
	CustoMedioFinal  decimal.Decimal
	ValorTotalFinal  decimal.Decimal
}

// UltimoInstante devolve o último instante do período fechado (fim do mês, UTC).
func (f *FechamentoMensal) UltimoInstante() time.Time {
	inicio := time.Date(f.Ano, time.Month(f.Mes), 1, 0, 0, 0, 0, time.UTC)
	return inicio.AddDate(0, 1, 0).Add(-time.Nanosecond)
}
