package inventory_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
	"github.com/jhoicas/entregas-epp/internal/domain/inventory"
)

func item(eq, variant string, qty int64) entity.DeliveryLineItem {
	return entity.DeliveryLineItem{EquipmentID: eq, VariantID: variant, Quantity: qty}
}

func TestComputeDelta_Crear(t *testing.T) {
	adj := inventory.ComputeDelta(nil, []entity.DeliveryLineItem{item("E", "", 3)})
	assert.Equal(t, inventory.Adjustments{{EquipmentID: "E"}: -3}, adj)
}

func TestComputeDelta_EdicionAumentaConsumo(t *testing.T) {
	adj := inventory.ComputeDelta(
		[]entity.DeliveryLineItem{item("E", "", 3)},
		[]entity.DeliveryLineItem{item("E", "", 5)},
	)
	assert.Equal(t, int64(-2), adj[inventory.StockKey{EquipmentID: "E"}])
}

func TestComputeDelta_EdicionDisminuyeConsumo(t *testing.T) {
	adj := inventory.ComputeDelta(
		[]entity.DeliveryLineItem{item("E", "", 5)},
		[]entity.DeliveryLineItem{item("E", "", 2)},
	)
	assert.Equal(t, int64(3), adj[inventory.StockKey{EquipmentID: "E"}])
}

func TestComputeDelta_AgrupaLineasRepetidasYTallas(t *testing.T) {
	adj := inventory.ComputeDelta(nil, []entity.DeliveryLineItem{
		item("F", "S", 1), item("F", "S", 3), item("F", "M", 2), item("E", "", 1),
	})
	assert.Equal(t, inventory.Adjustments{
		{EquipmentID: "F", VariantID: "S"}: -4,
		{EquipmentID: "F", VariantID: "M"}: -2,
		{EquipmentID: "E"}:                 -1,
	}, adj)
}

func TestComputeDelta_OmiteNetoCero(t *testing.T) {
	adj := inventory.ComputeDelta(
		[]entity.DeliveryLineItem{item("E", "", 2), item("F", "S", 1)},
		[]entity.DeliveryLineItem{item("F", "S", 1), item("E", "", 1), item("E", "", 1)},
	)
	assert.Empty(t, adj)
}

func TestComputeDelta_CambioDeTalla(t *testing.T) {
	adj := inventory.ComputeDelta(
		[]entity.DeliveryLineItem{item("F", "S", 2)},
		[]entity.DeliveryLineItem{item("F", "M", 2)},
	)
	assert.Equal(t, int64(2), adj[inventory.StockKey{EquipmentID: "F", VariantID: "S"}])
	assert.Equal(t, int64(-2), adj[inventory.StockKey{EquipmentID: "F", VariantID: "M"}])
}

func TestAdjustments_SortedYEquipmentIDs(t *testing.T) {
	adj := inventory.Adjustments{
		{EquipmentID: "Z"}:                  1,
		{EquipmentID: "A", VariantID: "M"}:  -1,
		{EquipmentID: "A", VariantID: "L"}:  -2,
	}
	sorted := adj.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, inventory.StockAdjustment{EquipmentID: "A", VariantID: "L", Delta: -2}, sorted[0])
	assert.Equal(t, inventory.StockAdjustment{EquipmentID: "A", VariantID: "M", Delta: -1}, sorted[1])
	assert.Equal(t, []string{"A", "Z"}, adj.EquipmentIDs())
}

// randomItems genera líneas aleatorias sobre un catálogo pequeño para provocar colisiones.
func randomItems(r *rand.Rand) []entity.DeliveryLineItem {
	keys := []inventory.StockKey{
		{EquipmentID: "E"}, {EquipmentID: "G"},
		{EquipmentID: "F", VariantID: "S"}, {EquipmentID: "F", VariantID: "M"},
	}
	n := r.Intn(6)
	out := make([]entity.DeliveryLineItem, 0, n)
	for i := 0; i < n; i++ {
		k := keys[r.Intn(len(keys))]
		out = append(out, item(k.EquipmentID, k.VariantID, int64(1+r.Intn(9))))
	}
	return out
}

// apply suma los ajustes a un estado de stock por posición.
func apply(state map[inventory.StockKey]int64, adj inventory.Adjustments) map[inventory.StockKey]int64 {
	out := make(map[inventory.StockKey]int64, len(state))
	for k, v := range state {
		out[k] = v
	}
	for k, d := range adj {
		out[k] += d
	}
	return out
}

func TestComputeDelta_Propiedades(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	base := map[inventory.StockKey]int64{}

	for i := 0; i < 500; i++ {
		prev := randomItems(r)
		next := randomItems(r)

		// Delta(x, x) == {}
		assert.Empty(t, inventory.ComputeDelta(prev, prev))

		// Delta(x, []) == −Delta([], x)
		assert.Equal(t, inventory.ComputeDelta(nil, prev).Negate(), inventory.ComputeDelta(prev, nil))

		// base → prev → next == base → next
		afterPrev := apply(base, inventory.ComputeDelta(nil, prev))
		viaEdit := apply(afterPrev, inventory.ComputeDelta(prev, next))
		direct := apply(base, inventory.ComputeDelta(nil, next))
		for k := range direct {
			assert.Equal(t, direct[k], viaEdit[k])
		}
		for k := range viaEdit {
			assert.Equal(t, direct[k], viaEdit[k])
		}

		// independiente del orden
		shuffled := entity.CloneLineItems(next)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, inventory.ComputeDelta(prev, next), inventory.ComputeDelta(prev, shuffled))
	}
}
