package inventory_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/entregas-epp/internal/application/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	domaininv "github.com/jhoicas/entregas-epp/internal/domain/inventory"
	"github.com/jhoicas/entregas-epp/internal/domain/repository"
	"github.com/jhoicas/entregas-epp/internal/infrastructure/memory"
)

func newStore() *memory.Store {
	s := memory.NewStore()
	s.PutEquipment(
		&entity.EquipmentStock{ID: "E", Name: "Casco", QuantityOnHand: 10, ReorderThreshold: 5, CriticalThreshold: 2},
		&entity.EquipmentStock{ID: "F", Name: "Overol", HasVariants: true, Variants: []entity.StockVariant{
			{ID: "S", Label: "Small", QuantityOnHand: 10, ReorderThreshold: 4, CriticalThreshold: 1},
			{ID: "M", Label: "Medium", QuantityOnHand: 10},
		}},
	)
	return s
}

func applyInTx(t *testing.T, s *memory.Store, adj domaininv.Adjustments) ([]inventory.StockChange, error) {
	t.Helper()
	ctx := context.Background()
	applier := inventory.NewStockApplier()
	var changes []inventory.StockChange
	err := s.Run(ctx, func(stockRepo repository.EquipmentStockRepository, _ repository.DeliveryRepository, movRepo repository.StockMovementRepository) error {
		var err error
		changes, err = applier.Apply(ctx, stockRepo, movRepo, adj, inventory.ApplyRef{DeliveryID: "D1", UserID: "u1", At: time.Now()})
		return err
	})
	return changes, err
}

func stock(t *testing.T, s *memory.Store, id string) *entity.EquipmentStock {
	t.Helper()
	st, err := s.EquipmentStocks().Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, st)
	return st
}

func TestApply_Escalar(t *testing.T) {
	s := newStore()
	changes, err := applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "E"}: -3})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, int64(10), changes[0].Before)
	assert.Equal(t, int64(7), changes[0].After)
	assert.Equal(t, entity.StockLevelOK, changes[0].Level)
	assert.Equal(t, int64(7), stock(t, s, "E").QuantityOnHand)
}

func TestApply_TallasRecalculaTotal(t *testing.T) {
	s := newStore()
	changes, err := applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "F", VariantID: "S"}: -4})
	require.NoError(t, err)
	assert.Equal(t, entity.StockLevelOK, changes[0].Level)

	f := stock(t, s, "F")
	v, _ := f.Variant("S")
	assert.Equal(t, int64(6), v.QuantityOnHand)
	assert.Equal(t, int64(16), f.QuantityOnHand)
}

func TestApply_StockInsuficienteNoEscribeNada(t *testing.T) {
	s := newStore()
	_, err := applyInTx(t, s, domaininv.Adjustments{
		{EquipmentID: "E"}:                -3,
		{EquipmentID: "F", VariantID: "M"}: -11,
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "F", stockErr.EquipmentID)
	assert.Equal(t, "M", stockErr.VariantID)
	assert.Equal(t, int64(10), stockErr.Available)
	assert.Equal(t, int64(11), stockErr.Requested)

	assert.Equal(t, int64(10), stock(t, s, "E").QuantityOnHand, "E no debe cambiar")
	assert.Equal(t, int64(20), stock(t, s, "F").QuantityOnHand)
	movs, _ := s.Movements().ListByEquipment(context.Background(), "E", 10, 0)
	assert.Empty(t, movs)
}

func TestApply_TallaInexistente(t *testing.T) {
	s := newStore()
	_, err := applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "F", VariantID: "XL"}: -1})
	assert.ErrorIs(t, err, domain.ErrVariantNotFound)
}

func TestApply_TallaSobreEquipoEscalarYViceversa(t *testing.T) {
	s := newStore()
	_, err := applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "E", VariantID: "S"}: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "F"}: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_EquipoInexistente(t *testing.T) {
	s := newStore()
	_, err := applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "NOPE"}: -1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApply_SinAjustesNoToca(t *testing.T) {
	s := newStore()
	changes, err := applyInTx(t, s, domaininv.Adjustments{})
	require.NoError(t, err)
	assert.Empty(t, changes)
	assert.Equal(t, int64(1), stock(t, s, "E").Version)
}

func TestApply_RegistraKardexYNivel(t *testing.T) {
	s := newStore()
	changes, err := applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "E"}: -8})
	require.NoError(t, err)
	assert.Equal(t, entity.StockLevelCritical, changes[0].Level)

	movs, err := s.Movements().ListByEquipment(context.Background(), "E", 10, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeDeliveryOut, movs[0].Type)
	assert.Equal(t, int64(-8), movs[0].Delta)
	assert.Equal(t, int64(2), movs[0].BalanceAfter)
	assert.Equal(t, "D1", movs[0].DeliveryID)

	_, err = applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "E"}: 5})
	require.NoError(t, err)
	movs, _ = s.Movements().ListByEquipment(context.Background(), "E", 10, 0)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeDeliveryReturn, movs[0].Type)
}

// Un ajuste que desborda int64 se rechaza como entrada inválida y no escribe nada.
func TestApply_DesbordamientoRechazado(t *testing.T) {
	s := newStore()
	_, err := applyInTx(t, s, domaininv.Adjustments{
		{EquipmentID: "E"}:                 math.MaxInt64,
		{EquipmentID: "F", VariantID: "S"}: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(10), stock(t, s, "E").QuantityOnHand)
	v, ok := stock(t, s, "F").Variant("S")
	require.True(t, ok)
	assert.Equal(t, int64(10), v.QuantityOnHand)

	_, err = applyInTx(t, s, domaininv.Adjustments{{EquipmentID: "F", VariantID: "M"}: math.MaxInt64})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
