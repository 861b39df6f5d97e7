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

var _ repository.RequisicaoRepository = (*RequisicaoRepo)(nil)

// RequisicaoRepo implementação do porto RequisicaoRepository sobre PostgreSQL.
type RequisicaoRepo struct {
	q Querier
}

// NewRequisicaoRepository constrói o adaptador de requisições. Passar pool ou tx (Querier).
func NewRequisicaoRepository(q Querier) *RequisicaoRepo {
	return &RequisicaoRepo{q: q}
}

const requisicaoColumns = `id, solicitante_id, centro_custo_id, status, data_criacao,
	data_finalizacao, atendido_por_id, data_atendimento, estornado_por_id, data_estorno, motivo_estorno`

func scanRequisicao(row pgx.Row) (*entity.Requisicao, error) {
	var req entity.Requisicao
	err := row.Scan(
		&req.ID, &req.SolicitanteID, &req.CentroCustoID, &req.Status, &req.DataCriacao,
		&req.DataFinalizacao, &req.AtendidoPorID, &req.DataAtendimento,
		&req.EstornadoPorID, &req.DataEstorno, &req.MotivoEstorno,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create persiste o cabeçalho de uma requisição.
func (r *RequisicaoRepo) Create(req *entity.Requisicao) error {
	query := `
		INSERT INTO requisicoes (id, solicitante_id, centro_custo_id, status, data_criacao)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.SolicitanteID, req.CentroCustoID, req.Status, req.DataCriacao,
	)
	if err != nil {
		return fmt.Errorf("insert requisicao: %w", err)
	}
	return nil
}

// GetByID carrega a requisição com os itens.
func (r *RequisicaoRepo) GetByID(id string) (*entity.Requisicao, error) {
	query := `SELECT ` + requisicaoColumns + ` FROM requisicoes WHERE id = $1`
	req, err := scanRequisicao(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisicao: %w", err)
	}
	if err := r.carregarItens(req); err != nil {
		return nil, err
	}
	return req, nil
}

// GetAbertaPorSolicitante devolve a requisição ABERTO do usuário, se houver.
func (r *RequisicaoRepo) GetAbertaPorSolicitante(solicitanteID string) (*entity.Requisicao, error) {
	query := `SELECT ` + requisicaoColumns + `
		FROM requisicoes WHERE solicitante_id = $1 AND status = $2`
	req, err := scanRequisicao(r.q.QueryRow(context.Background(), query, solicitanteID, entity.RequisicaoABERTO))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get requisicao aberta: %w", err)
	}
	if err := r.carregarItens(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Update persiste status e campos de auditoria do cabeçalho.
func (r *RequisicaoRepo) Update(req *entity.Requisicao) error {
	query := `
		UPDATE requisicoes
		SET status = $2, data_finalizacao = $3, atendido_por_id = $4, data_atendimento = $5,
			estornado_por_id = $6, data_estorno = $7, motivo_estorno = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, req.DataFinalizacao, req.AtendidoPorID, req.DataAtendimento,
		req.EstornadoPorID, req.DataEstorno, req.MotivoEstorno,
	)
	if err != nil {
		return fmt.Errorf("update requisicao: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPendentes lista requisições FINALIZADAs aguardando atendimento, FIFO.
func (r *RequisicaoRepo) ListPendentes(limit, offset int) ([]*entity.Requisicao, error) {
	query := `SELECT ` + requisicaoColumns + `
		FROM requisicoes WHERE status = $1
		ORDER BY data_finalizacao
		LIMIT $2 OFFSET $3`
	return r.listRequisicoes(query, entity.RequisicaoFINALIZADA, limit, offset)
}

// ListBySolicitante lista as requisições do usuário, mais recentes primeiro.
func (r *RequisicaoRepo) ListBySolicitante(solicitanteID string, limit, offset int) ([]*entity.Requisicao, error) {
	query := `SELECT ` + requisicaoColumns + `
		FROM requisicoes WHERE solicitante_id = $1
		ORDER BY data_criacao DESC
		LIMIT $2 OFFSET $3`
	return r.listRequisicoes(query, solicitanteID, limit, offset)
}

func (r *RequisicaoRepo) listRequisicoes(query string, args ...any) ([]*entity.Requisicao, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requisicoes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Requisicao
	for rows.Next() {
		req, err := scanRequisicao(rows)
		if err != nil {
			return nil, fmt.Errorf("scan requisicao: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range out {
		if err := r.carregarItens(req); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *RequisicaoRepo) carregarItens(req *entity.Requisicao) error {
	query := `
		SELECT id, requisicao_id, produto_id, quantidade, quantidade_atendida
		FROM itens_requisicao WHERE requisicao_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, req.ID)
	if err != nil {
		return fmt.Errorf("list itens: %w", err)
	}
	defer rows.Close()

	req.Itens = nil
	for rows.Next() {
		var item entity.ItemRequisicao
		if err := rows.Scan(&item.ID, &item.RequisicaoID, &item.ProdutoID, &item.Quantidade, &item.QuantidadeAtendida); err != nil {
			return fmt.Errorf("scan item: %w", err)
		}
		req.Itens = append(req.Itens, &item)
	}
	return rows.Err()
}

// AddItem persiste um item. (requisição, produto) duplicado vira domain.ErrDuplicate.
func (r *RequisicaoRepo) AddItem(item *entity.ItemRequisicao) error {
	query := `
		INSERT INTO itens_requisicao (id, requisicao_id, produto_id, quantidade)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.RequisicaoID, item.ProdutoID, item.Quantidade,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetItem obtém o item da requisição para um produto, se houver.
func (r *RequisicaoRepo) GetItem(requisicaoID, produtoID string) (*entity.ItemRequisicao, error) {
	query := `
		SELECT id, requisicao_id, produto_id, quantidade, quantidade_atendida
		FROM itens_requisicao WHERE requisicao_id = $1 AND produto_id = $2`
	var item entity.ItemRequisicao
	err := r.q.QueryRow(context.Background(), query, requisicaoID, produtoID).Scan(
		&item.ID, &item.RequisicaoID, &item.ProdutoID, &item.Quantidade, &item.QuantidadeAtendida,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// GetItemByID obtém um item por ID.
func (r *RequisicaoRepo) GetItemByID(itemID string) (*entity.ItemRequisicao, error) {
	query := `
		SELECT id, requisicao_id, produto_id, quantidade, quantidade_atendida
		FROM itens_requisicao WHERE id = $1`
	var item entity.ItemRequisicao
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&item.ID, &item.RequisicaoID, &item.ProdutoID, &item.Quantidade, &item.QuantidadeAtendida,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &item, nil
}

// UpdateItem persiste quantidade solicitada e atendida do item.
func (r *RequisicaoRepo) UpdateItem(item *entity.ItemRequisicao) error {
	query := `
		UPDATE itens_requisicao SET quantidade = $2, quantidade_atendida = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, item.ID, item.Quantidade, item.QuantidadeAtendida)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItem remove um item (só permitido enquanto a requisição está ABERTO;
// regra aplicada no caso de uso).
func (r *RequisicaoRepo) DeleteItem(itemID string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM itens_requisicao WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
