package estoque

import "github.com/WelintondosSantos/Sistoque/internal/domain/entity"

// Retirada é uma parcela do plano FEFO: quanto sacar de qual lote.
type Retirada struct {
	Lote       *entity.Lote
	Quantidade int64
}

// PlanoFEFO é o resultado do planejamento de consumo para um item.
type PlanoFEFO struct {
	Retiradas []Retirada
	Atendido  int64
	Faltante  int64 // > 0 quando os lotes se esgotam antes da necessidade
}

// PlanejarFEFO percorre os lotes em ordem crescente de validade (first-expire,
// first-out) e monta o plano de retiradas para a quantidade necessária.
// Os lotes devem vir já ordenados por validade e filtrados a saldo > 0 — é o
// contrato de LoteRepository.ListarDisponiveis. A função não altera os lotes;
// quem executa o plano é o caso de uso, dentro da transação.
func PlanejarFEFO(lotes []*entity.Lote, necessario int64) PlanoFEFO {
	plano := PlanoFEFO{}
	if necessario <= 0 {
		return plano
	}
	restante := necessario
	for _, lote := range lotes {
		if restante <= 0 {
			break
		}
		if lote.QuantidadeAtual <= 0 {
			continue
		}
		retirar := lote.QuantidadeAtual
		if restante < retirar {
			retirar = restante
		}
		plano.Retiradas = append(plano.Retiradas, Retirada{Lote: lote, Quantidade: retirar})
		restante -= retirar
	}
	plano.Atendido = necessario - restante
	plano.Faltante = restante
	return plano
}
