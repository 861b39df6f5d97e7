// Package estoque concentra os serviços puros do razão de estoque:
// custo médio ponderado, normalização de sinal e o plano de consumo FEFO.
package estoque

import (
	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
)

// Entrada é a visão mínima de um movimento de ENTRADA para fins de custeio.
type Entrada struct {
	Quantidade    int64
	ValorUnitario decimal.Decimal
}

// CustoMedio calcula o custo médio ponderado de um produto a partir do
// histórico de ENTRADAs: Σ(qtd·valor) / Σ(qtd). Retorna zero quando não há
// entradas (política explícita; nunca divide por zero).
func CustoMedio(entradas []Entrada) decimal.Decimal {
	var valorTotal decimal.Decimal
	var qtdTotal int64
	for _, e := range entradas {
		valorTotal = valorTotal.Add(e.ValorUnitario.Mul(decimal.NewFromInt(e.Quantidade)))
		qtdTotal += e.Quantidade
	}
	if qtdTotal == 0 {
		return decimal.Zero
	}
	return valorTotal.Div(decimal.NewFromInt(qtdTotal))
}

// NormalizarQuantidade aplica a convenção de sinal do razão: quem chama
// sempre pensa em magnitudes positivas de retirada, o armazenamento precisa
// de deltas assinados para o invariante de replay. SAIDA vira negativa
// independentemente do sinal recebido; ENTRADA e AJUSTE passam como vieram.
func NormalizarQuantidade(tipo string, quantidade int64) int64 {
	if tipo == entity.MovimentoSAIDA && quantidade > 0 {
		return -quantidade
	}
	return quantidade
}
