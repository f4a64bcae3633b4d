package entity

// StockLevel semáforo de inventario según umbrales de reorden y crítico.
type StockLevel string

const (
	StockLevelOK       StockLevel = "OK"
	StockLevelReorder  StockLevel = "REORDER"
	StockLevelCritical StockLevel = "CRITICAL"
)

// ClassifyStock: qty <= crítico → CRITICAL; qty <= reorden → REORDER; si no OK.
// Un umbral en 0 solo se activa con stock agotado.
func ClassifyStock(qty, reorder, critical int64) StockLevel {
	switch {
	case qty <= critical:
		return StockLevelCritical
	case qty <= reorder:
		return StockLevelReorder
	default:
		return StockLevelOK
	}
}
