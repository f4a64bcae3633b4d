// Package catalog carga el catálogo de stock de EPP desde el CSV que exportan las hojas de cálculo
// y lo convierte en un seed SQL idempotente.
//
// Columnas (encabezado obligatorio, en español o inglés, sin importar mayúsculas):
//
//	codigo|equipment_id, nombre|name, talla|variant_id, etiqueta_talla|variant_label,
//	cantidad|quantity_on_hand, reorden|reorder_threshold, critico|critical_threshold
//
// Un equipo con tallas ocupa una fila por talla; un equipo sin tallas, una sola fila con talla vacía.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/entregas-epp/internal/domain"
	"github.com/jhoicas/entregas-epp/internal/domain/entity"
)

// Codificaciones aceptadas por Load.
const (
	EncodingAuto   = "auto"
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
	EncodingCP1252 = "windows-1252"
)

var columnAliases = map[string]string{
	"codigo": "equipment_id", "código": "equipment_id", "equipment_id": "equipment_id",
	"nombre": "name", "name": "name",
	"talla": "variant_id", "variant_id": "variant_id",
	"etiqueta_talla": "variant_label", "variant_label": "variant_label",
	"cantidad": "quantity_on_hand", "quantity_on_hand": "quantity_on_hand",
	"reorden": "reorder_threshold", "reorder_threshold": "reorder_threshold",
	"critico": "critical_threshold", "crítico": "critical_threshold", "critical_threshold": "critical_threshold",
}

// Load lee el CSV en la codificación indicada (auto: UTF-8 si es válido, si no ISO-8859-1).
// El separador (',' o ';') se detecta en el encabezado. Devuelve los equipos en orden de aparición,
// con el total de los equipos con tallas ya recalculado.
func Load(r io.Reader, enc string) ([]*entity.EquipmentStock, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: leer: %w", err)
	}
	decoded, err := decode(raw, enc)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(decoded))
	cr.Comma = detectComma(decoded)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: catálogo vacío", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("catalog: encabezado: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		order []string
		byID  = make(map[string]*entity.EquipmentStock)
	)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: fila %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrInvalidInput, line, err)
		}

		st, seen := byID[row.equipmentID]
		if !seen {
			st = &entity.EquipmentStock{ID: row.equipmentID, Name: row.name, HasVariants: row.variantID != ""}
			byID[st.ID] = st
			order = append(order, st.ID)
		}
		if err := addRow(st, row, seen); err != nil {
			return nil, fmt.Errorf("%w: fila %d: %v", domain.ErrInvalidInput, line, err)
		}
	}

	out := make([]*entity.EquipmentStock, 0, len(order))
	for _, id := range order {
		st := byID[id]
		st.RecomputeAggregate()
		out = append(out, st)
	}
	return out, nil
}

type csvRow struct {
	equipmentID, name, variantID, variantLabel string
	qty, reorder, critical                     int64
}

func addRow(st *entity.EquipmentStock, row csvRow, seen bool) error {
	if st.HasVariants != (row.variantID != "") {
		return fmt.Errorf("el equipo %s mezcla filas con y sin talla", st.ID)
	}
	if !st.HasVariants {
		if seen {
			return fmt.Errorf("equipo %s duplicado", st.ID)
		}
		st.QuantityOnHand = row.qty
		st.ReorderThreshold = row.reorder
		st.CriticalThreshold = row.critical
		return nil
	}
	if _, dup := st.Variant(row.variantID); dup {
		return fmt.Errorf("talla %s duplicada en %s", row.variantID, st.ID)
	}
	if st.Name == "" {
		st.Name = row.name
	}
	st.Variants = append(st.Variants, entity.StockVariant{
		ID:                row.variantID,
		Label:             row.variantLabel,
		QuantityOnHand:    row.qty,
		ReorderThreshold:  row.reorder,
		CriticalThreshold: row.critical,
	})
	// Umbrales del equipo: suma de los de sus tallas.
	st.ReorderThreshold += row.reorder
	st.CriticalThreshold += row.critical
	return nil
}

func parseRow(rec []string, cols map[string]int) (csvRow, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	num := func(name string) (int64, error) {
		s := get(name)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s %q no es un entero", name, s)
		}
		if n < 0 {
			return 0, fmt.Errorf("%s negativo (%d)", name, n)
		}
		return n, nil
	}

	row := csvRow{
		equipmentID:  get("equipment_id"),
		name:         get("name"),
		variantID:    get("variant_id"),
		variantLabel: get("variant_label"),
	}
	if row.equipmentID == "" {
		return row, errors.New("código de equipo vacío")
	}
	var err error
	if row.qty, err = num("quantity_on_hand"); err != nil {
		return row, err
	}
	if row.reorder, err = num("reorder_threshold"); err != nil {
		return row, err
	}
	if row.critical, err = num("critical_threshold"); err != nil {
		return row, err
	}
	return row, nil
}

func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if name, ok := columnAliases[key]; ok {
			cols[name] = i
		}
	}
	for _, required := range []string{"equipment_id", "quantity_on_hand"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: falta la columna %s", domain.ErrInvalidInput, required)
		}
	}
	return cols, nil
}

func decode(raw []byte, enc string) ([]byte, error) {
	var e encoding.Encoding
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", EncodingAuto:
		if utf8.Valid(raw) {
			e = unicode.UTF8BOM
		} else {
			e = charmap.ISO8859_1
		}
	case EncodingUTF8, "utf8":
		e = unicode.UTF8BOM
	case EncodingLatin1, "latin1", "iso8859-1":
		e = charmap.ISO8859_1
	case EncodingCP1252, "cp1252":
		e = charmap.Windows1252
	default:
		return nil, fmt.Errorf("%w: codificación no soportada %q", domain.ErrInvalidInput, enc)
	}
	out, _, err := transform.Bytes(e.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("catalog: decodificar %s: %w", enc, err)
	}
	return out, nil
}

// detectComma ';' si el encabezado tiene más punto y coma que comas (exportación regional de Excel).
func detectComma(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
