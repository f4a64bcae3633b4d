package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// WriteSQL escribe un seed idempotente: upsert de cada equipo y reemplazo de sus tallas, en una transacción.
// Reejecutarlo deja el catálogo igual al CSV (incrementa version para invalidar lecturas en curso).
func WriteSQL(w io.Writer, stocks []*entity.EquipmentStock) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "-- Catálogo de stock EPP (%d equipos)\n", len(stocks))
	bw.WriteString("BEGIN;\n\n")
	for _, st := range stocks {
		fmt.Fprintf(bw, "INSERT INTO equipment_stock (id, name, has_variants, quantity_on_hand, reorder_threshold, critical_threshold)\n")
		fmt.Fprintf(bw, "VALUES ('%s', '%s', %t, %d, %d, %d)\n",
			escapeSQL(st.ID), escapeSQL(st.Name), st.HasVariants, st.QuantityOnHand, st.ReorderThreshold, st.CriticalThreshold)
		bw.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, has_variants = EXCLUDED.has_variants,\n")
		bw.WriteString("  quantity_on_hand = EXCLUDED.quantity_on_hand, reorder_threshold = EXCLUDED.reorder_threshold,\n")
		bw.WriteString("  critical_threshold = EXCLUDED.critical_threshold, version = equipment_stock.version + 1, updated_at = now();\n")
		fmt.Fprintf(bw, "DELETE FROM equipment_variants WHERE equipment_id = '%s';\n", escapeSQL(st.ID))
		if len(st.Variants) > 0 {
			bw.WriteString("INSERT INTO equipment_variants (equipment_id, variant_id, label, quantity_on_hand, reorder_threshold, critical_threshold) VALUES\n")
			for i, v := range st.Variants {
				sep := ","
				if i == len(st.Variants)-1 {
					sep = ";"
				}
				fmt.Fprintf(bw, "  ('%s', '%s', '%s', %d, %d, %d)%s\n",
					escapeSQL(st.ID), escapeSQL(v.ID), escapeSQL(v.Label), v.QuantityOnHand, v.ReorderThreshold, v.CriticalThreshold, sep)
			}
		}
		bw.WriteString("\n")
	}
	bw.WriteString("COMMIT;\n")
	return bw.Flush()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
