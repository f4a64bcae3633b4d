package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/entregas-epp/internal/domain"
)

const sampleCSV = `codigo,nombre,talla,etiqueta_talla,cantidad,reorden,critico
CASCO,Casco dieléctrico,,,50,10,3
BOTAS,Botas de seguridad,40,Talla 40,8,5,2
BOTAS,Botas de seguridad,42,Talla 42,12,5,2

GAFAS,Gafas de protección,,,4,10,5
`

func TestLoad_UTF8(t *testing.T) {
	stocks, err := Load(strings.NewReader(sampleCSV), EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, stocks, 3)

	casco := stocks[0]
	assert.Equal(t, "CASCO", casco.ID)
	assert.Equal(t, "Casco dieléctrico", casco.Name)
	assert.False(t, casco.HasVariants)
	assert.Equal(t, int64(50), casco.QuantityOnHand)
	assert.Equal(t, int64(10), casco.ReorderThreshold)

	botas := stocks[1]
	assert.True(t, botas.HasVariants)
	require.Len(t, botas.Variants, 2)
	assert.Equal(t, int64(20), botas.QuantityOnHand, "total derivado de las tallas")
	assert.Equal(t, int64(10), botas.ReorderThreshold)
	v, ok := botas.Variant("42")
	require.True(t, ok)
	assert.Equal(t, "Talla 42", v.Label)

	assert.Equal(t, "GAFAS", stocks[2].ID)
}

func TestLoad_Latin1PuntoYComa(t *testing.T) {
	src := "Código;Nombre;Cantidad\nGUANTES;Guantes de nitrilo talla única;30\nTAPA;Protector auditivo;7\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	stocks, err := Load(strings.NewReader(latin1), EncodingAuto)
	require.NoError(t, err)
	require.Len(t, stocks, 2)
	assert.Equal(t, "Guantes de nitrilo talla única", stocks[0].Name)
	assert.Equal(t, int64(7), stocks[1].QuantityOnHand)
}

func TestLoad_UTF8ConBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("equipment_id,quantity_on_hand\nCASCO,5\n")...)
	stocks, err := Load(bytes.NewReader(data), EncodingAuto)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "CASCO", stocks[0].ID)
}

func TestLoad_Errores(t *testing.T) {
	cases := map[string]string{
		"sin columna cantidad": "codigo,nombre\nCASCO,Casco\n",
		"cantidad negativa":    "codigo,cantidad\nCASCO,-1\n",
		"cantidad no numérica": "codigo,cantidad\nCASCO,diez\n",
		"código vacío":         "codigo,cantidad\n,3\n",
		"mezcla tallas":        "codigo,talla,cantidad\nBOTAS,40,3\nBOTAS,,2\n",
		"talla duplicada":      "codigo,talla,cantidad\nBOTAS,40,3\nBOTAS,40,2\n",
		"equipo duplicado":     "codigo,cantidad\nCASCO,3\nCASCO,2\n",
		"vacío":                "",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src), EncodingUTF8)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := Load(strings.NewReader(sampleCSV), "ebcdic")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriteSQL(t *testing.T) {
	stocks, err := Load(strings.NewReader("codigo,nombre,talla,cantidad\nBOTAS,Botas O'Neil,40,8\nBOTAS,Botas O'Neil,42,12\nCASCO,Casco,,5\n"), EncodingUTF8)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSQL(&buf, stocks))
	sql := buf.String()

	assert.True(t, strings.HasPrefix(sql, "-- Catálogo de stock EPP (2 equipos)"))
	assert.Contains(t, sql, "VALUES ('BOTAS', 'Botas O''Neil', true, 20, 0, 0)")
	assert.Contains(t, sql, "('BOTAS', '42', '', 12, 0, 0);")
	assert.Contains(t, sql, "VALUES ('CASCO', 'Casco', false, 5, 0, 0)")
	assert.Equal(t, 2, strings.Count(sql, "DELETE FROM equipment_variants"))
	assert.True(t, strings.HasSuffix(sql, "COMMIT;\n"))
}
