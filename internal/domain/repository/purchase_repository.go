package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
)

// PurchaseOrderRepository es el puerto de órdenes de compra a proveedor.
type PurchaseOrderRepository interface {
	// Create persiste la orden con sus líneas en una sola operación.
	Create(order *entity.PurchaseOrder, lines []*entity.PurchaseOrderLine) error

	GetByID(id string) (*entity.PurchaseOrder, error)
	GetLines(orderID string) ([]*entity.PurchaseOrderLine, error)

	// PurchasesTotal valora las líneas de órdenes del período al costo unitario
	// del ingrediente (insumo de la proyección contable).
	PurchasesTotal(from, to time.Time) (decimal.Decimal, error)
}
