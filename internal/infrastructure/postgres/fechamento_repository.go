package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

var _ repository.FechamentoRepository = (*FechamentoRepo)(nil)

// FechamentoRepo implementação do porto FechamentoRepository sobre PostgreSQL.
// Um índice único parcial em (mes, ano) WHERE status = 'ATIVO' garante no
// banco a regra de um fechamento ATIVO por período.
type FechamentoRepo struct {
	q Querier
}

// NewFechamentoRepository constrói o adaptador de fechamentos. Passar pool ou tx (Querier).
func NewFechamentoRepository(q Querier) *FechamentoRepo {
	return &FechamentoRepo{q: q}
}

const fechamentoColumns = `id, mes, ano, responsavel_id, status, data_fechamento, cancelado_por_id, data_cancelamento`

func scanFechamento(row pgx.Row) (*entity.FechamentoMensal, error) {
	var f entity.FechamentoMensal
	err := row.Scan(
		&f.ID, &f.Mes, &f.Ano, &f.ResponsavelID, &f.Status,
		&f.DataFechamento, &f.CanceladoPorID, &f.DataCancelamento,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create persiste o cabeçalho do fechamento. Período ATIVO duplicado vira domain.ErrDuplicate.
func (r *FechamentoRepo) Create(f *entity.FechamentoMensal) error {
	query := `
		INSERT INTO fechamentos_mensais (id, mes, ano, responsavel_id, status, data_fechamento)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.Mes, f.Ano, f.ResponsavelID, f.Status, f.DataFechamento,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fechamento: %w", err)
	}
	return nil
}

// GetByID obtém um fechamento por ID.
func (r *FechamentoRepo) GetByID(id string) (*entity.FechamentoMensal, error) {
	query := `SELECT ` + fechamentoColumns + ` FROM fechamentos_mensais WHERE id = $1`
	f, err := scanFechamento(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fechamento: %w", err)
	}
	return f, nil
}

// GetAtivoPorPeriodo devolve o fechamento ATIVO de (mes, ano), se existir.
func (r *FechamentoRepo) GetAtivoPorPeriodo(mes, ano int) (*entity.FechamentoMensal, error) {
	query := `SELECT ` + fechamentoColumns + `
		FROM fechamentos_mensais WHERE mes = $1 AND ano = $2 AND status = $3`
	f, err := scanFechamento(r.q.QueryRow(context.Background(), query, mes, ano, entity.FechamentoATIVO))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fechamento ativo: %w", err)
	}
	return f, nil
}

// UltimoAtivo devolve o fechamento ATIVO mais recente (maior ano, mes).
func (r *FechamentoRepo) UltimoAtivo() (*entity.FechamentoMensal, error) {
	query := `SELECT ` + fechamentoColumns + `
		FROM fechamentos_mensais WHERE status = $1
		ORDER BY ano DESC, mes DESC LIMIT 1`
	f, err := scanFechamento(r.q.QueryRow(context.Background(), query, entity.FechamentoATIVO))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ultimo fechamento: %w", err)
	}
	return f, nil
}

// Update persiste transição de status e auditoria de cancelamento.
func (r *FechamentoRepo) Update(f *entity.FechamentoMensal) error {
	query := `
		UPDATE fechamentos_mensais
		SET status = $2, cancelado_por_id = $3, data_cancelamento = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, f.ID, f.Status, f.CanceladoPorID, f.DataCancelamento)
	if err != nil {
		return fmt.Errorf("update fechamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista fechamentos, períodos mais recentes primeiro.
func (r *FechamentoRepo) List(limit, offset int) ([]*entity.FechamentoMensal, error) {
	query := `SELECT ` + fechamentoColumns + `
		FROM fechamentos_mensais
		ORDER BY ano DESC, mes DESC, data_fechamento DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list fechamentos: %w", err)
	}
	defer rows.Close()

	var out []*entity.FechamentoMensal
	for rows.Next() {
		f, err := scanFechamento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fechamento: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreatePosicao persiste uma linha do snapshot. Linhas nunca mudam depois.
func (r *FechamentoRepo) CreatePosicao(p *entity.PosicaoEstoqueMensal) error {
	query := `
		INSERT INTO posicoes_estoque_mensal (id, fechamento_id, produto_id, quantidade_final, custo_medio_final, valor_total_final)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.FechamentoID, p.ProdutoID, p.QuantidadeFinal, p.CustoMedioFinal, p.ValorTotalFinal,
	)
	if err != nil {
		return fmt.Errorf("insert posicao: %w", err)
	}
	return nil
}

// ListPosicoes lista as linhas do snapshot de um fechamento.
func (r *FechamentoRepo) ListPosicoes(fechamentoID string) ([]*entity.PosicaoEstoqueMensal, error) {
	query := `
		SELECT p.id, p.fechamento_id, p.produto_id, p.quantidade_final, p.custo_medio_final, p.valor_total_final
		FROM posicoes_estoque_mensal p
		JOIN produtos pr ON pr.id = p.produto_id
		WHERE p.fechamento_id = $1
		ORDER BY pr.codigo_produto`
	rows, err := r.q.Query(context.Background(), query, fechamentoID)
	if err != nil {
		return nil, fmt.Errorf("list posicoes: %w", err)
	}
	defer rows.Close()

	var out []*entity.PosicaoEstoqueMensal
	for rows.Next() {
		var p entity.PosicaoEstoqueMensal
		if err := rows.Scan(&p.ID, &p.FechamentoID, &p.ProdutoID, &p.QuantidadeFinal, &p.CustoMedioFinal, &p.ValorTotalFinal); err != nil {
			return nil, fmt.Errorf("scan posicao: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
