package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/catering-pro/internal/domain"
	"github.com/tu-usuario/catering-pro/internal/domain/entity"
	"github.com/tu-usuario/catering-pro/internal/domain/repository"
)

// LedgerUseCase registra movimientos de stock de forma transaccional
// (RECEPTION, LOSS, ADJUSTMENT, TRANSFER) y expone la consulta de disponible.
//
// El libro es append-only: toda operación crea movimientos nuevos; ninguna
// rectificación edita o borra movimientos existentes.
type LedgerUseCase struct {
	txRunner       TxRunner
	storeRepo      repository.StoreRepository
	ingredientRepo repository.IngredientRepository
	lotRepo        repository.LotRepository
	movRepo        repository.MovementRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	storeRepo repository.StoreRepository,
	ingredientRepo repository.IngredientRepository,
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:       txRunner,
		storeRepo:      storeRepo,
		ingredientRepo: ingredientRepo,
		lotRepo:        lotRepo,
		movRepo:        movRepo,
	}
}

// ReceptionInput entrada para registrar una recepción de mercancía.
// Crea (o reutiliza) el lote por clave natural y apunta un movimiento positivo.
type ReceptionInput struct {
	StoreID      string
	IngredientID string
	SupplierID   string // opcional
	LotCode      string // opcional
	ExpiryDate   *time.Time
	Quantity     decimal.Decimal // magnitud, siempre > 0
	Unit         string
	ExternalRef  string
	UserID       string
}

// MovementInput entrada para mermas, ajustes y traslados.
type MovementInput struct {
	StoreID      string
	ToStoreID    string // solo TRANSFER
	IngredientID string
	LotID        string          // opcional salvo consumos por lote
	Quantity     decimal.Decimal // magnitud > 0; en ADJUSTMENT admite signo, nunca cero
	Unit         string
	ExternalRef  string
	Comment      string
	UserID       string
}

// RegisterReception valida el referencial, resuelve el lote por clave natural
// (tienda, ingrediente, proveedor, código) y apunta el movimiento RECEPTION,
// todo dentro de una transacción.
func (uc *LedgerUseCase) RegisterReception(ctx context.Context, in ReceptionInput) (lotID, movementID string, err error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || !entity.IsKnownUnit(in.Unit) {
		return "", "", domain.ErrInvalidInput
	}
	if err := uc.checkReferential(in.StoreID, in.IngredientID); err != nil {
		return "", "", err
	}

	now := time.Now().UTC()
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, lotRepo repository.LotRepository) error {
		lot, err := lotRepo.FindByNaturalKey(in.StoreID, in.IngredientID, in.SupplierID, in.LotCode)
		if err != nil {
			return err
		}
		if lot == nil {
			lot = &entity.Lot{
				ID:           uuid.New().String(),
				StoreID:      in.StoreID,
				IngredientID: in.IngredientID,
				SupplierID:   in.SupplierID,
				LotCode:      in.LotCode,
				ExpiryDate:   in.ExpiryDate,
				Unit:         in.Unit,
				CreatedAt:    now,
			}
			if err := lotRepo.Create(lot); err != nil {
				return err
			}
		}
		lotID = lot.ID

		movementID, err = movRepo.Append(&entity.StockMovement{
			Type:         entity.MovementTypeReception,
			StoreID:      in.StoreID,
			IngredientID: in.IngredientID,
			LotID:        lot.ID,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Timestamp:    now,
			ExternalRef:  in.ExternalRef,
			CreatedAt:    now,
			CreatedBy:    in.UserID,
		})
		return err
	})
	if err != nil {
		return "", "", err
	}
	return lotID, movementID, nil
}

// RegisterLoss apunta una merma (movimiento negativo). Verifica que el
// disponible del lote (o del ingrediente, si no hay lote) cubra la cantidad.
func (uc *LedgerUseCase) RegisterLoss(ctx context.Context, in MovementInput) (string, error) {
	return uc.registerNegative(ctx, entity.MovementTypeLoss, in)
}

// RegisterAdjustment apunta un ajuste firmado (positivo o negativo, nunca cero).
// Los ajustes negativos verifican el disponible como una salida.
func (uc *LedgerUseCase) RegisterAdjustment(ctx context.Context, in MovementInput) (string, error) {
	if in.Quantity.IsZero() || !entity.IsKnownUnit(in.Unit) {
		return "", domain.ErrInvalidInput
	}
	if err := uc.checkReferential(in.StoreID, in.IngredientID); err != nil {
		return "", err
	}
	if in.Quantity.LessThan(decimal.Zero) {
		neg := in
		neg.Quantity = in.Quantity.Neg()
		return uc.registerNegative(ctx, entity.MovementTypeAdjustment, neg)
	}

	now := time.Now().UTC()
	var movementID string
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.LotRepository) error {
		var err error
		movementID, err = movRepo.Append(&entity.StockMovement{
			Type:         entity.MovementTypeAdjustment,
			StoreID:      in.StoreID,
			IngredientID: in.IngredientID,
			LotID:        in.LotID,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Timestamp:    now,
			ExternalRef:  in.ExternalRef,
			Comment:      in.Comment,
			CreatedAt:    now,
			CreatedBy:    in.UserID,
		})
		return err
	})
	return movementID, err
}

// RegisterTransfer apunta el par salida/entrada de un traslado entre tiendas
// en una sola transacción. Si el traslado va atado a un lote, se resuelve (o
// crea) el lote espejo en la tienda destino para conservar la trazabilidad.
func (uc *LedgerUseCase) RegisterTransfer(ctx context.Context, in MovementInput) error {
	if !in.Quantity.GreaterThan(decimal.Zero) || !entity.IsKnownUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	if in.ToStoreID == "" || in.ToStoreID == in.StoreID {
		return domain.ErrInvalidInput
	}
	if err := uc.checkReferential(in.StoreID, in.IngredientID); err != nil {
		return err
	}
	if err := uc.checkStore(in.ToStoreID); err != nil {
		return err
	}

	now := time.Now().UTC()
	return uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, lotRepo repository.LotRepository) error {
		var originLot *entity.Lot
		if in.LotID != "" {
			var err error
			originLot, err = lotRepo.GetByID(in.LotID)
			if err != nil {
				return err
			}
			if originLot == nil || originLot.StoreID != in.StoreID {
				return domain.ErrNotFound
			}
		}

		if err := uc.ensureAvailable(movRepo, lotRepo, in.StoreID, in.IngredientID, in.LotID, in.Quantity); err != nil {
			return err
		}

		// Salida en origen.
		if _, err := movRepo.Append(&entity.StockMovement{
			Type:         entity.MovementTypeTransfer,
			StoreID:      in.StoreID,
			IngredientID: in.IngredientID,
			LotID:        in.LotID,
			Quantity:     in.Quantity.Neg(),
			Unit:         in.Unit,
			Timestamp:    now,
			ExternalRef:  in.ExternalRef,
			Comment:      in.Comment,
			CreatedAt:    now,
			CreatedBy:    in.UserID,
		}); err != nil {
			return err
		}

		// Lote espejo en destino (misma clave natural, misma caducidad).
		destLotID := ""
		if originLot != nil {
			destLot, err := lotRepo.FindByNaturalKey(in.ToStoreID, in.IngredientID, originLot.SupplierID, originLot.LotCode)
			if err != nil {
				return err
			}
			if destLot == nil {
				destLot = &entity.Lot{
					ID:           uuid.New().String(),
					StoreID:      in.ToStoreID,
					IngredientID: in.IngredientID,
					SupplierID:   originLot.SupplierID,
					LotCode:      originLot.LotCode,
					ExpiryDate:   originLot.ExpiryDate,
					Unit:         originLot.Unit,
					CreatedAt:    now,
				}
				if err := lotRepo.Create(destLot); err != nil {
					return err
				}
			}
			destLotID = destLot.ID
		}

		// Entrada en destino.
		_, err := movRepo.Append(&entity.StockMovement{
			Type:         entity.MovementTypeTransfer,
			StoreID:      in.ToStoreID,
			IngredientID: in.IngredientID,
			LotID:        destLotID,
			Quantity:     in.Quantity,
			Unit:         in.Unit,
			Timestamp:    now,
			ExternalRef:  in.ExternalRef,
			Comment:      in.Comment,
			CreatedAt:    now,
			CreatedBy:    in.UserID,
		})
		return err
	})
}

// Available devuelve el disponible derivado de (tienda, ingrediente[, lote]).
// Lectura pura: recalcula desde los movimientos persistidos en cada llamada.
func (uc *LedgerUseCase) Available(_ context.Context, storeID, ingredientID, lotID string) (decimal.Decimal, error) {
	if err := uc.checkReferential(storeID, ingredientID); err != nil {
		return decimal.Zero, err
	}
	if lotID == "" {
		return uc.movRepo.SumAvailable(storeID, ingredientID)
	}
	lot, err := uc.lotRepo.GetByID(lotID)
	if err != nil {
		return decimal.Zero, err
	}
	if lot == nil || lot.StoreID != storeID || lot.IngredientID != ingredientID {
		return decimal.Zero, domain.ErrNotFound
	}
	return uc.movRepo.SumAvailableForLot(storeID, ingredientID, lotID)
}

// Movements lista el histórico de un ingrediente para auditoría, más recientes
// primero, con paginación y rango de fechas opcional.
func (uc *LedgerUseCase) Movements(_ context.Context, storeID, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if err := uc.checkReferential(storeID, ingredientID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movRepo.ListByIngredient(storeID, ingredientID, from, to, limit, offset)
}

func (uc *LedgerUseCase) registerNegative(ctx context.Context, movType string, in MovementInput) (string, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || !entity.IsKnownUnit(in.Unit) {
		return "", domain.ErrInvalidInput
	}
	if err := uc.checkReferential(in.StoreID, in.IngredientID); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	var movementID string
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, lotRepo repository.LotRepository) error {
		if in.LotID != "" {
			lot, err := lotRepo.GetByID(in.LotID)
			if err != nil {
				return err
			}
			if lot == nil || lot.StoreID != in.StoreID || lot.IngredientID != in.IngredientID {
				return domain.ErrNotFound
			}
		}
		if err := uc.ensureAvailable(movRepo, lotRepo, in.StoreID, in.IngredientID, in.LotID, in.Quantity); err != nil {
			return err
		}
		var err error
		movementID, err = movRepo.Append(&entity.StockMovement{
			Type:         movType,
			StoreID:      in.StoreID,
			IngredientID: in.IngredientID,
			LotID:        in.LotID,
			Quantity:     in.Quantity.Neg(),
			Unit:         in.Unit,
			Timestamp:    now,
			ExternalRef:  in.ExternalRef,
			Comment:      in.Comment,
			CreatedAt:    now,
			CreatedBy:    in.UserID,
		})
		return err
	})
	return movementID, err
}

// ensureAvailable verifica que la salida no deje el saldo en negativo.
//
// Antes de sumar movimientos bloquea los lotes de (tienda, ingrediente) con
// FOR UPDATE: en READ COMMITTED dos salidas concurrentes verían el mismo saldo
// y ambas pasarían la verificación. El lock serializa a los escritores.
func (uc *LedgerUseCase) ensureAvailable(movRepo repository.MovementRepository, lotRepo repository.LotRepository, storeID, ingredientID, lotID string, qty decimal.Decimal) error {
	if _, err := lotRepo.ListByIngredientForUpdate(storeID, ingredientID); err != nil {
		return err
	}
	var available decimal.Decimal
	var err error
	if lotID != "" {
		available, err = movRepo.SumAvailableForLot(storeID, ingredientID, lotID)
	} else {
		available, err = movRepo.SumAvailable(storeID, ingredientID)
	}
	if err != nil {
		return err
	}
	if available.LessThan(qty) {
		return domain.ErrInsufficientStock
	}
	return nil
}

func (uc *LedgerUseCase) checkReferential(storeID, ingredientID string) error {
	if storeID == "" || ingredientID == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.checkStore(storeID); err != nil {
		return err
	}
	ingredient, err := uc.ingredientRepo.GetByID(ingredientID)
	if err != nil {
		return err
	}
	if ingredient == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *LedgerUseCase) checkStore(storeID string) error {
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return nil
}
