// Package pdf implementa os relatórios impressos do almoxarifado com Maroto v2:
// o relatório de consumo por centro de custo e o espelho de requisição.
//
// Layout A4 do relatório de consumo:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Produto | UM | Qtde | Custo Médio | Valor Total     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GERAL                                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/WelintondosSantos/Sistoque/internal/application/dto"
	apprelatorio "github.com/WelintondosSantos/Sistoque/internal/application/relatorio"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var (
	_ apprelatorio.ConsumoPDFGenerator    = (*MarotoPDFGenerator)(nil)
	_ apprelatorio.RequisicaoPDFGenerator = (*MarotoPDFGenerator)(nil)
)

// MarotoPDFGenerator renderiza os relatórios em PDF usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GerarConsumoPDF gera o PDF do relatório de consumo e devolve seus bytes.
func (g *MarotoPDFGenerator) GerarConsumoPDF(_ context.Context, filtro dto.ConsumoFiltro, resp dto.ConsumoResponse) ([]byte, error) {
	m := maroto.New(baseConfig("Relatório de Consumo por Centro de Custo"))

	m.AddRows(tituloRow("RELATÓRIO DE CONSUMO POR CENTRO DE CUSTO",
		fmt.Sprintf("Período: %s a %s", filtro.DataInicio, filtro.DataFim)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(consumoHeaderRow())
	for _, linha := range resp.Linhas {
		m.AddRows(consumoDetailRow(linha))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("VALOR TOTAL GERAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(3).Add(text.New("R$ "+resp.ValorTotalGeral.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 1,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar relatório de consumo: %w", err)
	}
	return doc.GetBytes(), nil
}

// GerarRequisicaoPDF gera o espelho de uma requisição e devolve seus bytes.
func (g *MarotoPDFGenerator) GerarRequisicaoPDF(_ context.Context, req dto.RequisicaoResponse) ([]byte, error) {
	m := maroto.New(baseConfig("Requisição de Materiais"))

	m.AddRows(tituloRow("REQUISIÇÃO DE MATERIAIS",
		fmt.Sprintf("Requisição #%s   |   Status: %s", req.ID, req.Status)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Criada em: %s   |   Centro de custo: %s",
			req.DataCriacao.Format("02/01/2006 15:04"), req.CentroCustoID),
			props.Text{Size: 8, Top: 1, Color: colorGray}),
	)))

	m.AddRows(requisicaoHeaderRow())
	for _, item := range req.Itens {
		m.AddRows(requisicaoDetailRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(12).Add(
		col.New(6).Add(text.New("Valor solicitado: R$ "+req.ValorTotalSolicitado.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1,
		})),
		col.New(6).Add(text.New("Valor atendido: R$ "+req.ValorTotalAtendido.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			Color: colorPrimary,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar espelho de requisição: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func baseConfig(titulo string) *entity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(titulo, true).
		Build()
}

// tituloRow: título em destaque com subtítulo.
func tituloRow(titulo, subtitulo string) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitulo, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
	)
}

func consumoHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 5, align.Left),
		h("UM", 1, align.Center),
		h("Qtde", 2, align.Right),
		h("Custo Médio", 2, align.Right),
		h("Valor Total", 2, align.Right),
	)
}

func consumoDetailRow(linha dto.ConsumoRow) core.Row {
	return row.New(7).Add(
		col.New(5).Add(text.New(linha.NomeProduto, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(linha.UnidadeMedida, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", linha.QuantidadeTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New("R$ "+linha.CustoMedio.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New("R$ "+linha.ValorTotal.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func requisicaoHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 5, align.Left),
		h("UM", 1, align.Center),
		h("Solicitado", 2, align.Right),
		h("Atendido", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

func requisicaoDetailRow(item dto.ItemRequisicaoResponse) core.Row {
	atendido := "—"
	if item.QuantidadeAtendida != nil {
		atendido = fmt.Sprintf("%d", *item.QuantidadeAtendida)
	}
	return row.New(7).Add(
		col.New(5).Add(text.New(item.NomeProduto, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(1).Add(text.New(item.UnidadeMedida, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantidade), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New(atendido, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(2).Add(text.New("R$ "+item.ValorSolicitado.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}
