package inventory

import (
	"sort"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// StockKey posición de stock: equipo + talla (vacía para equipos sin tallas).
type StockKey struct {
	EquipmentID string
	VariantID   string
}

// StockAdjustment cambio neto a aplicar sobre una posición de stock.
// Delta negativo = consumo, positivo = devolución.
type StockAdjustment struct {
	EquipmentID string
	VariantID   string
	Delta       int64
}

// Adjustments ajustes netos por posición. Nunca contiene deltas en cero.
type Adjustments map[StockKey]int64

// ComputeDelta calcula los ajustes que llevan el stock de "como si se hubiera entregado previous"
// a "como si se hubiera entregado next": por cada posición, Σprevious − Σnext.
// Crear = ComputeDelta(nil, items); eliminar = ComputeDelta(items, nil).
// Es puro: no conoce el stock actual ni depende del orden de las listas.
func ComputeDelta(previous, next []entity.DeliveryLineItem) Adjustments {
	out := make(Adjustments)
	for _, it := range previous {
		out[StockKey{EquipmentID: it.EquipmentID, VariantID: it.VariantID}] += it.Quantity
	}
	for _, it := range next {
		out[StockKey{EquipmentID: it.EquipmentID, VariantID: it.VariantID}] -= it.Quantity
	}
	for k, d := range out {
		if d == 0 {
			delete(out, k)
		}
	}
	return out
}

// Negate invierte el signo de todos los ajustes.
func (a Adjustments) Negate() Adjustments {
	out := make(Adjustments, len(a))
	for k, d := range a {
		out[k] = -d
	}
	return out
}

// Sorted devuelve los ajustes ordenados por (equipo, talla).
func (a Adjustments) Sorted() []StockAdjustment {
	out := make([]StockAdjustment, 0, len(a))
	for k, d := range a {
		out = append(out, StockAdjustment{EquipmentID: k.EquipmentID, VariantID: k.VariantID, Delta: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EquipmentID != out[j].EquipmentID {
			return out[i].EquipmentID < out[j].EquipmentID
		}
		return out[i].VariantID < out[j].VariantID
	})
	return out
}

// EquipmentIDs IDs de equipo distintos, ordenados (orden estable de lectura/bloqueo).
func (a Adjustments) EquipmentIDs() []string {
	seen := make(map[string]struct{}, len(a))
	ids := make([]string, 0, len(a))
	for k := range a {
		if _, ok := seen[k.EquipmentID]; ok {
			continue
		}
		seen[k.EquipmentID] = struct{}{}
		ids = append(ids, k.EquipmentID)
	}
	sort.Strings(ids)
	return ids
}
