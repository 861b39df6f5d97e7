package estoque_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WelintondosSantos/Sistoque/internal/application/estoque"
	"github.com/WelintondosSantos/Sistoque/internal/domain"
	"github.com/WelintondosSantos/Sistoque/internal/domain/entity"
	"github.com/WelintondosSantos/Sistoque/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória com semântica transacional (snapshot + restore no erro),
// para exercitar os casos de uso sem PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	produtos    map[string]*entity.Produto
	lotes       map[string]*entity.Lote
	movimentos  []*entity.MovimentoEstoque
	requisicoes map[string]*entity.Requisicao
	itens       map[string]*entity.ItemRequisicao
	fechamentos map[string]*entity.FechamentoMensal
	posicoes    []*entity.PosicaoEstoqueMensal
	almox       *entity.Almoxarifado
}

func newMemStore() *memStore {
	return &memStore{
		produtos:    make(map[string]*entity.Produto),
		lotes:       make(map[string]*entity.Lote),
		requisicoes: make(map[string]*entity.Requisicao),
		itens:       make(map[string]*entity.ItemRequisicao),
		fechamentos: make(map[string]*entity.FechamentoMensal),
		almox:       &entity.Almoxarifado{ID: "almox-1", Nome: "Central", Codigo: "ALM-01", Ativo: true},
	}
}

type memSnapshot struct {
	lotes       map[string]entity.Lote
	movimentos  int
	requisicoes map[string]entity.Requisicao
	itens       map[string]entity.ItemRequisicao
	fechamentos map[string]entity.FechamentoMensal
	posicoes    int
}

// snapshot copia o estado mutável; movimentos e posições são append-only,
// então basta guardar o comprimento.
func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		lotes:       make(map[string]entity.Lote, len(s.lotes)),
		movimentos:  len(s.movimentos),
		requisicoes: make(map[string]entity.Requisicao, len(s.requisicoes)),
		itens:       make(map[string]entity.ItemRequisicao, len(s.itens)),
		fechamentos: make(map[string]entity.FechamentoMensal, len(s.fechamentos)),
		posicoes:    len(s.posicoes),
	}
	for k, v := range s.lotes {
		snap.lotes[k] = *v
	}
	for k, v := range s.requisicoes {
		cp := *v
		cp.Itens = nil
		snap.requisicoes[k] = cp
	}
	for k, v := range s.itens {
		snap.itens[k] = *v
	}
	for k, v := range s.fechamentos {
		snap.fechamentos[k] = *v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.lotes = make(map[string]*entity.Lote, len(snap.lotes))
	for k, v := range snap.lotes {
		cp := v
		s.lotes[k] = &cp
	}
	s.movimentos = s.movimentos[:snap.movimentos]
	s.requisicoes = make(map[string]*entity.Requisicao, len(snap.requisicoes))
	for k, v := range snap.requisicoes {
		cp := v
		s.requisicoes[k] = &cp
	}
	s.itens = make(map[string]*entity.ItemRequisicao, len(snap.itens))
	for k, v := range snap.itens {
		cp := v
		s.itens[k] = &cp
	}
	s.fechamentos = make(map[string]*entity.FechamentoMensal, len(snap.fechamentos))
	for k, v := range snap.fechamentos {
		cp := v
		s.fechamentos[k] = &cp
	}
	s.posicoes = s.posicoes[:snap.posicoes]
}

// ── LoteRepository ────────────────────────────────────────────────────────────

type memLotes struct{ s *memStore }

var _ repository.LoteRepository = memLotes{}

func (r memLotes) Create(l *entity.Lote) error {
	for _, e := range r.s.lotes {
		if e.ProdutoID == l.ProdutoID && e.DataValidade.Equal(l.DataValidade) {
			return domain.ErrDuplicate
		}
	}
	cp := *l
	r.s.lotes[l.ID] = &cp
	return nil
}

func (r memLotes) GetByID(id string) (*entity.Lote, error) {
	l, ok := r.s.lotes[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r memLotes) GetByProdutoEValidade(produtoID string, validade time.Time) (*entity.Lote, error) {
	for _, l := range r.s.lotes {
		if l.ProdutoID == produtoID && l.DataValidade.Equal(validade) {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memLotes) ListByProduto(produtoID string) ([]*entity.Lote, error) {
	var out []*entity.Lote
	for _, l := range r.s.lotes {
		if l.ProdutoID == produtoID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataValidade.Before(out[j].DataValidade) })
	return out, nil
}

func (r memLotes) ListarDisponiveis(produtoID string) ([]*entity.Lote, error) {
	todos, _ := r.ListByProduto(produtoID)
	var out []*entity.Lote
	for _, l := range todos {
		if l.QuantidadeAtual > 0 {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memLotes) ListarDisponiveisForUpdate(produtoID string) ([]*entity.Lote, error) {
	return r.ListarDisponiveis(produtoID)
}

func (r memLotes) AjustarQuantidade(loteID string, delta int64) error {
	l, ok := r.s.lotes[loteID]
	if !ok {
		return domain.ErrNotFound
	}
	if l.QuantidadeAtual+delta < 0 {
		return domain.ErrSaldoNegativo
	}
	l.QuantidadeAtual += delta
	return nil
}

func (r memLotes) SaldoTotal(produtoID string) (int64, error) {
	var total int64
	for _, l := range r.s.lotes {
		if l.ProdutoID == produtoID {
			total += l.QuantidadeAtual
		}
	}
	return total, nil
}

// CustoMedioAte reproduz a média ponderada das ENTRADAs até asOf,
// usando as quantidades originais dos movimentos.
func (r memLotes) CustoMedioAte(produtoID string, asOf time.Time) (decimal.Decimal, error) {
	sumQ := decimal.Zero
	sumV := decimal.Zero
	for _, m := range r.s.movimentos {
		if m.Tipo != entity.MovimentoENTRADA || m.Data.After(asOf) || m.LoteID == nil {
			continue
		}
		lote, ok := r.s.lotes[*m.LoteID]
		if !ok || lote.ProdutoID != produtoID || m.ValorUnitario == nil {
			continue
		}
		q := decimal.NewFromInt(m.Quantidade)
		sumQ = sumQ.Add(q)
		sumV = sumV.Add(q.Mul(*m.ValorUnitario))
	}
	if sumQ.IsZero() {
		return decimal.Zero, nil
	}
	return sumV.Div(sumQ), nil
}

// ── MovimentoRepository ───────────────────────────────────────────────────────

type memMovimentos struct{ s *memStore }

var _ repository.MovimentoRepository = memMovimentos{}

func (r memMovimentos) Create(m *entity.MovimentoEstoque) error {
	cp := *m
	r.s.movimentos = append(r.s.movimentos, &cp)
	return nil
}

func (r memMovimentos) GetByID(id string) (*entity.MovimentoEstoque, error) {
	for _, m := range r.s.movimentos {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memMovimentos) ListByProduto(produtoID string, from, to *time.Time, limit, offset int) ([]*entity.MovimentoEstoque, error) {
	var out []*entity.MovimentoEstoque
	for _, m := range r.s.movimentos {
		if m.LoteID == nil {
			continue
		}
		lote, ok := r.s.lotes[*m.LoteID]
		if !ok || lote.ProdutoID != produtoID {
			continue
		}
		if from != nil && m.Data.Before(*from) {
			continue
		}
		if to != nil && m.Data.After(*to) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Data.After(out[j].Data) })
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r memMovimentos) ListByLote(loteID string) ([]*entity.MovimentoEstoque, error) {
	var out []*entity.MovimentoEstoque
	for _, m := range r.s.movimentos {
		if m.LoteID != nil && *m.LoteID == loteID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Data.Before(out[j].Data) })
	return out, nil
}

// ── RequisicaoRepository ──────────────────────────────────────────────────────

type memRequisicoes struct{ s *memStore }

var _ repository.RequisicaoRepository = memRequisicoes{}

func (r memRequisicoes) Create(req *entity.Requisicao) error {
	cp := *req
	cp.Itens = nil
	r.s.requisicoes[req.ID] = &cp
	return nil
}

func (r memRequisicoes) GetByID(id string) (*entity.Requisicao, error) {
	req, ok := r.s.requisicoes[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	cp.Itens = r.itensDe(id)
	return &cp, nil
}

func (r memRequisicoes) itensDe(requisicaoID string) []*entity.ItemRequisicao {
	var out []*entity.ItemRequisicao
	for _, it := range r.s.itens {
		if it.RequisicaoID == requisicaoID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r memRequisicoes) GetAbertaPorSolicitante(solicitanteID string) (*entity.Requisicao, error) {
	for _, req := range r.s.requisicoes {
		if req.SolicitanteID == solicitanteID && req.Status == entity.RequisicaoABERTO {
			return r.GetByID(req.ID)
		}
	}
	return nil, nil
}

func (r memRequisicoes) Update(req *entity.Requisicao) error {
	if _, ok := r.s.requisicoes[req.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *req
	cp.Itens = nil
	r.s.requisicoes[req.ID] = &cp
	return nil
}

func (r memRequisicoes) ListPendentes(limit, offset int) ([]*entity.Requisicao, error) {
	var out []*entity.Requisicao
	for _, req := range r.s.requisicoes {
		if req.Status == entity.RequisicaoFINALIZADA {
			full, _ := r.GetByID(req.ID)
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memRequisicoes) ListBySolicitante(solicitanteID string, limit, offset int) ([]*entity.Requisicao, error) {
	var out []*entity.Requisicao
	for _, req := range r.s.requisicoes {
		if req.SolicitanteID == solicitanteID {
			full, _ := r.GetByID(req.ID)
			out = append(out, full)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memRequisicoes) AddItem(item *entity.ItemRequisicao) error {
	for _, it := range r.s.itens {
		if it.RequisicaoID == item.RequisicaoID && it.ProdutoID == item.ProdutoID {
			return domain.ErrDuplicate
		}
	}
	cp := *item
	r.s.itens[item.ID] = &cp
	return nil
}

func (r memRequisicoes) GetItem(requisicaoID, produtoID string) (*entity.ItemRequisicao, error) {
	for _, it := range r.s.itens {
		if it.RequisicaoID == requisicaoID && it.ProdutoID == produtoID {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memRequisicoes) GetItemByID(itemID string) (*entity.ItemRequisicao, error) {
	it, ok := r.s.itens[itemID]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r memRequisicoes) UpdateItem(item *entity.ItemRequisicao) error {
	if _, ok := r.s.itens[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.itens[item.ID] = &cp
	return nil
}

func (r memRequisicoes) DeleteItem(itemID string) error {
	if _, ok := r.s.itens[itemID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.itens, itemID)
	return nil
}

// ── FechamentoRepository ──────────────────────────────────────────────────────

type memFechamentos struct{ s *memStore }

var _ repository.FechamentoRepository = memFechamentos{}

func (r memFechamentos) Create(f *entity.FechamentoMensal) error {
	if f.Status == entity.FechamentoATIVO {
		for _, e := range r.s.fechamentos {
			if e.Mes == f.Mes && e.Ano == f.Ano && e.Status == entity.FechamentoATIVO {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *f
	r.s.fechamentos[f.ID] = &cp
	return nil
}

func (r memFechamentos) GetByID(id string) (*entity.FechamentoMensal, error) {
	f, ok := r.s.fechamentos[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r memFechamentos) GetAtivoPorPeriodo(mes, ano int) (*entity.FechamentoMensal, error) {
	for _, f := range r.s.fechamentos {
		if f.Mes == mes && f.Ano == ano && f.Status == entity.FechamentoATIVO {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memFechamentos) UltimoAtivo() (*entity.FechamentoMensal, error) {
	var ultimo *entity.FechamentoMensal
	for _, f := range r.s.fechamentos {
		if f.Status != entity.FechamentoATIVO {
			continue
		}
		if ultimo == nil || f.Ano > ultimo.Ano || (f.Ano == ultimo.Ano && f.Mes > ultimo.Mes) {
			cp := *f
			ultimo = &cp
		}
	}
	return ultimo, nil
}

func (r memFechamentos) Update(f *entity.FechamentoMensal) error {
	if _, ok := r.s.fechamentos[f.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *f
	r.s.fechamentos[f.ID] = &cp
	return nil
}

func (r memFechamentos) List(limit, offset int) ([]*entity.FechamentoMensal, error) {
	var out []*entity.FechamentoMensal
	for _, f := range r.s.fechamentos {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ano != out[j].Ano {
			return out[i].Ano > out[j].Ano
		}
		return out[i].Mes > out[j].Mes
	})
	return out, nil
}

func (r memFechamentos) CreatePosicao(p *entity.PosicaoEstoqueMensal) error {
	cp := *p
	r.s.posicoes = append(r.s.posicoes, &cp)
	return nil
}

func (r memFechamentos) ListPosicoes(fechamentoID string) ([]*entity.PosicaoEstoqueMensal, error) {
	var out []*entity.PosicaoEstoqueMensal
	for _, p := range r.s.posicoes {
		if p.FechamentoID == fechamentoID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── ProdutoRepository ─────────────────────────────────────────────────────────

type memProdutos struct{ s *memStore }

var _ repository.ProdutoRepository = memProdutos{}

func (r memProdutos) Create(p *entity.Produto) error {
	for _, e := range r.s.produtos {
		if e.CodigoProduto == p.CodigoProduto {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.produtos[p.ID] = &cp
	return nil
}

func (r memProdutos) GetByID(id string) (*entity.Produto, error) {
	p, ok := r.s.produtos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memProdutos) GetByCodigo(codigo string) (*entity.Produto, error) {
	for _, p := range r.s.produtos {
		if p.CodigoProduto == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memProdutos) Update(p *entity.Produto) error {
	if _, ok := r.s.produtos[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.produtos[p.ID] = &cp
	return nil
}

func (r memProdutos) List(limit, offset int) ([]*entity.Produto, error) {
	var out []*entity.Produto
	for _, p := range r.s.produtos {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NomeProduto < out[j].NomeProduto })
	return out, nil
}

func (r memProdutos) ListAtivos() ([]*entity.Produto, error) {
	var out []*entity.Produto
	for _, p := range r.s.produtos {
		if p.Ativo {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CodigoProduto < out[j].CodigoProduto })
	return out, nil
}

// ── AlmoxarifadoRepository ────────────────────────────────────────────────────

type memAlmoxarifados struct{ s *memStore }

var _ repository.AlmoxarifadoRepository = memAlmoxarifados{}

func (r memAlmoxarifados) Create(a *entity.Almoxarifado) error {
	r.s.almox = a
	return nil
}

func (r memAlmoxarifados) GetByID(id string) (*entity.Almoxarifado, error) {
	if r.s.almox != nil && r.s.almox.ID == id {
		cp := *r.s.almox
		return &cp, nil
	}
	return nil, nil
}

func (r memAlmoxarifados) PrimeiroAtivo() (*entity.Almoxarifado, error) {
	if r.s.almox == nil || !r.s.almox.Ativo {
		return nil, domain.ErrNenhumAlmoxarifado
	}
	cp := *r.s.almox
	return &cp, nil
}

func (r memAlmoxarifados) List() ([]*entity.Almoxarifado, error) {
	if r.s.almox == nil {
		return nil, nil
	}
	cp := *r.s.almox
	return []*entity.Almoxarifado{&cp}, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// memTxRunner simula a atomicidade: qualquer erro restaura o estado anterior.
type memTxRunner struct{ s *memStore }

var _ estoque.TxRunner = memTxRunner{}

func (t memTxRunner) Run(ctx context.Context, fn func(
	lotes repository.LoteRepository,
	movimentos repository.MovimentoRepository,
	requisicoes repository.RequisicaoRepository,
) error) error {
	snap := t.s.snapshot()
	if err := fn(memLotes{t.s}, memMovimentos{t.s}, memRequisicoes{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

func (t memTxRunner) RunFechamento(ctx context.Context, fn func(
	produtos repository.ProdutoRepository,
	lotes repository.LoteRepository,
	fechamentos repository.FechamentoRepository,
) error) error {
	snap := t.s.snapshot()
	if err := fn(memProdutos{t.s}, memLotes{t.s}, memFechamentos{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
