package production

import (
	"context"

	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el motor de producción atados a esa tx.
//
// La ejecución de un lote (asignaciones FEFO -> movimientos -> transición de
// estado) debe ser atómica: o se persiste todo, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		lotRepo repository.LotRepository,
		prodLotRepo repository.ProductionLotRepository,
		consRepo repository.ConsumptionRepository,
		planRepo repository.PlanRepository,
	) error) error
}
