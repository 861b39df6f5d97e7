package estoque

import (
	"context"

	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados àquela tx. Garante atomicidade para o motor de estoque:
// qualquer erro desfaz todos os movimentos e ajustes de lote da operação.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotes repository.LoteRepository,
		movimentos repository.MovimentoRepository,
		requisicoes repository.RequisicaoRepository,
	) error) error

	// RunFechamento abre a transação do snapshot mensal em REPEATABLE READ,
	// para que a leitura de saldos e custos seja um corte consistente mesmo
	// com atendimentos sendo commitados em paralelo.
	RunFechamento(ctx context.Context, fn func(
		produtos repository.ProdutoRepository,
		lotes repository.LoteRepository,
		fechamentos repository.FechamentoRepository,
	) error) error
}
