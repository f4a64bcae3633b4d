package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

func TestRecomputeAggregate_SumaTallas(t *testing.T) {
	e := &entity.EquipmentStock{
		ID:             "F",
		HasVariants:    true,
		QuantityOnHand: 999, // valor externo: se ignora
		Variants: []entity.StockVariant{
			{ID: "S", QuantityOnHand: 6},
			{ID: "M", QuantityOnHand: 10},
		},
	}
	e.RecomputeAggregate()
	assert.Equal(t, int64(16), e.QuantityOnHand)
}

func TestRecomputeAggregate_SinTallasNoCambia(t *testing.T) {
	e := &entity.EquipmentStock{ID: "E", QuantityOnHand: 7}
	e.RecomputeAggregate()
	assert.Equal(t, int64(7), e.QuantityOnHand)
}

func TestClone_NoComparteTallas(t *testing.T) {
	e := &entity.EquipmentStock{ID: "F", HasVariants: true, Variants: []entity.StockVariant{{ID: "S", QuantityOnHand: 1}}}
	c := e.Clone()
	v, ok := c.Variant("S")
	require.True(t, ok)
	v.QuantityOnHand = 50

	orig, _ := e.Variant("S")
	assert.Equal(t, int64(1), orig.QuantityOnHand)
}

func TestClassifyStock(t *testing.T) {
	assert.Equal(t, entity.StockLevelOK, entity.ClassifyStock(20, 10, 5))
	assert.Equal(t, entity.StockLevelReorder, entity.ClassifyStock(10, 10, 5))
	assert.Equal(t, entity.StockLevelCritical, entity.ClassifyStock(5, 10, 5))
	assert.Equal(t, entity.StockLevelCritical, entity.ClassifyStock(0, 0, 0))
}

func TestDelivery_RecalculateTotal(t *testing.T) {
	d := &entity.Delivery{Items: []entity.DeliveryLineItem{
		{EquipmentID: "CASCO", Quantity: 2, UnitCost: decimal.RequireFromString("15000.50")},
		{EquipmentID: "GUANTES", Quantity: 3, UnitCost: decimal.NewFromInt(4000)},
	}}
	d.RecalculateTotal()
	assert.True(t, decimal.RequireFromString("42001").Equal(d.TotalAmount), d.TotalAmount.String())
}
