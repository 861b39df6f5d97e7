package dto

import "github.com/shopspring/decimal"

// ConsumoFiltro filtros do relatório de consumo por centro de custo.
// Datas no formato 2006-01-02; o fim é inclusivo (vira fim do dia na consulta).
type ConsumoFiltro struct {
	DataInicio     string   `json:"data_inicio" query:"data_inicio"`
	DataFim        string   `json:"data_fim" query:"data_fim"`
	CentroCustoIDs []string `json:"centros_de_custo" query:"centros_de_custo"`
}

// ConsumoRow linha do relatório de consumo.
type ConsumoRow struct {
	ProdutoID       string          `json:"produto_id"`
	NomeProduto     string          `json:"nome_produto"`
	UnidadeMedida   string          `json:"unidade_medida"`
	QuantidadeTotal int64           `json:"quantidade_total"`
	CustoMedio      decimal.Decimal `json:"custo_medio"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
}

// ConsumoResponse relatório completo com total geral.
type ConsumoResponse struct {
	Linhas          []ConsumoRow    `json:"linhas"`
	ValorTotalGeral decimal.Decimal `json:"valor_total_geral"`
}
