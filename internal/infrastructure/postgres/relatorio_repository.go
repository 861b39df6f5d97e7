package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

var _ repository.RelatorioRepository = (*RelatorioRepo)(nil)

// RelatorioRepo implementação das consultas agregadas de relatório.
// Somente leitura: roda direto no pool, fora de transação.
type RelatorioRepo struct {
	q Querier
}

// NewRelatorioRepository constrói o adaptador de relatórios.
func NewRelatorioRepository(q Querier) *RelatorioRepo {
	return &RelatorioRepo{q: q}
}

// ConsumoPorCentroCusto agrega itens de requisições ATENDIDAs no intervalo
// [inicio, fim) para os centros de custo informados (todos, se vazio).
// O custo médio vem do histórico de ENTRADAs até o fim do intervalo.
func (r *RelatorioRepo) ConsumoPorCentroCusto(ctx context.Context, inicio, fim time.Time, centroCustoIDs []string) ([]repository.ConsumoResult, error) {
	query := `
		WITH custos AS (
			SELECT l.produto_id,
				COALESCE(SUM(m.quantidade * m.valor_unitario) / NULLIF(SUM(m.quantidade), 0), 0) AS custo_medio
			FROM movimentos_estoque m
			JOIN lotes l ON l.id = m.lote_id
			WHERE m.tipo = 'ENTRADA' AND m.data < $2
			GROUP BY l.produto_id
		)
		SELECT p.id, p.nome_produto, p.unidade_medida,
			SUM(COALESCE(i.quantidade_atendida, 0)) AS quantidade_total,
			COALESCE(c.custo_medio, 0) AS custo_medio,
			SUM(COALESCE(i.quantidade_atendida, 0)) * COALESCE(c.custo_medio, 0) AS valor_total
		FROM itens_requisicao i
		JOIN requisicoes req ON req.id = i.requisicao_id
		JOIN produtos p ON p.id = i.produto_id
		LEFT JOIN custos c ON c.produto_id = p.id
		WHERE req.status = 'ATENDIDA'
			AND req.data_atendimento >= $1 AND req.data_atendimento < $2
			AND (cardinality($3::text[]) = 0 OR req.centro_custo_id = ANY($3))
		GROUP BY p.id, p.nome_produto, p.unidade_medida, c.custo_medio
		HAVING SUM(COALESCE(i.quantidade_atendida, 0)) > 0
		ORDER BY valor_total DESC`
	rows, err := r.q.Query(ctx, query, inicio, fim, centroCustoIDs)
	if err != nil {
		return nil, fmt.Errorf("consumo por centro de custo: %w", err)
	}
	defer rows.Close()

	var out []repository.ConsumoResult
	for rows.Next() {
		var c repository.ConsumoResult
		if err := rows.Scan(&c.ProdutoID, &c.NomeProduto, &c.UnidadeMedida, &c.QuantidadeTotal, &c.CustoMedio, &c.ValorTotal); err != nil {
			return nil, fmt.Errorf("scan consumo: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PosicaoEstoque devolve a posição corrente de todos os produtos ativos, com
// saldo somado dos lotes e custo médio recalculado do razão.
func (r *RelatorioRepo) PosicaoEstoque(ctx context.Context) ([]repository.PosicaoResult, error) {
	query := `
		WITH saldos AS (
			SELECT produto_id, COALESCE(SUM(quantidade_atual), 0) AS saldo
			FROM lotes GROUP BY produto_id
		),
		custos AS (
			SELECT l.produto_id,
				COALESCE(SUM(m.quantidade * m.valor_unitario) / NULLIF(SUM(m.quantidade), 0), 0) AS custo_medio
			FROM movimentos_estoque m
			JOIN lotes l ON l.id = m.lote_id
			WHERE m.tipo = 'ENTRADA'
			GROUP BY l.produto_id
		)
		SELECT p.id, p.codigo_produto, p.nome_produto, p.unidade_medida,
			COALESCE(s.saldo, 0) AS saldo_total,
			p.estoque_minimo,
			COALESCE(c.custo_medio, 0) AS custo_medio,
			COALESCE(s.saldo, 0) * COALESCE(c.custo_medio, 0) AS valor_total,
			COALESCE(s.saldo, 0) < p.estoque_minimo AS abaixo_minimo
		FROM produtos p
		LEFT JOIN saldos s ON s.produto_id = p.id
		LEFT JOIN custos c ON c.produto_id = p.id
		WHERE p.ativo
		ORDER BY p.codigo_produto`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("posicao de estoque: %w", err)
	}
	defer rows.Close()

	var out []repository.PosicaoResult
	for rows.Next() {
		var p repository.PosicaoResult
		if err := rows.Scan(&p.ProdutoID, &p.CodigoProduto, &p.NomeProduto, &p.UnidadeMedida,
			&p.SaldoTotal, &p.EstoqueMinimo, &p.CustoMedio, &p.ValorTotal, &p.AbaixoMinimo); err != nil {
			return nil, fmt.Errorf("scan posicao: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
