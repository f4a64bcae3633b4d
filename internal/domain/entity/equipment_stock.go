package entity

import "time"

// StockVariant es una subdivisión de inventario de un equipo (p. ej. una talla).
type StockVariant struct {
	ID                string
	Label             string
	QuantityOnHand    int64
	ReorderThreshold  int64
	CriticalThreshold int64
}

// EquipmentStock es la fuente de verdad de la cantidad disponible de un EPP.
// Si HasVariants, el stock se lleva por talla y QuantityOnHand es el total derivado
// (suma de tallas); si no, QuantityOnHand es el escalar y Variants va vacío.
// Version es el token de concurrencia optimista: cada escritura confirmada lo incrementa.
type EquipmentStock struct {
	ID                string
	Name              string // solo lectura: lo administra el catálogo
	HasVariants       bool
	Variants          []StockVariant
	QuantityOnHand    int64
	ReorderThreshold  int64
	CriticalThreshold int64
	Version           int64
	UpdatedAt         time.Time
}

// Variant busca la talla por ID. El puntero apunta al slice del registro.
func (e *EquipmentStock) Variant(id string) (*StockVariant, bool) {
	for i := range e.Variants {
		if e.Variants[i].ID == id {
			return &e.Variants[i], true
		}
	}
	return nil, false
}

// RecomputeAggregate recalcula QuantityOnHand como suma de tallas.
// No hace nada en equipos sin tallas.
func (e *EquipmentStock) RecomputeAggregate() {
	if !e.HasVariants {
		return
	}
	var total int64
	for _, v := range e.Variants {
		total += v.QuantityOnHand
	}
	e.QuantityOnHand = total
}

// Level clasifica la posición de stock del equipo o de una de sus tallas.
func (e *EquipmentStock) Level(variantID string) StockLevel {
	if variantID != "" {
		if v, ok := e.Variant(variantID); ok {
			return ClassifyStock(v.QuantityOnHand, v.ReorderThreshold, v.CriticalThreshold)
		}
		return StockLevelOK
	}
	return ClassifyStock(e.QuantityOnHand, e.ReorderThreshold, e.CriticalThreshold)
}

// Clone copia profunda (las tallas no se comparten).
func (e *EquipmentStock) Clone() *EquipmentStock {
	if e == nil {
		return nil
	}
	c := *e
	if e.Variants != nil {
		c.Variants = make([]StockVariant, len(e.Variants))
		copy(c.Variants, e.Variants)
	}
	return &c
}
