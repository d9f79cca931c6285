package stock

import (
	"context"

	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para las escrituras
// del libro de movimientos (recepción, merma, ajuste, traslado).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		lotRepo repository.LotRepository,
	) error) error
}
