// Package export genera archivos CSV para descarga (productos, movimientos de stock).
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Table encabezado más filas de un CSV.
type Table struct {
	Header []string
	Rows   [][]string
}

// Append agrega una fila. Debe tener tantas columnas como el encabezado.
func (t *Table) Append(cols ...string) {
	t.Rows = append(t.Rows, cols)
}

// CSV serializa la tabla con separador coma y fin de línea CRLF (compatible con Excel).
func (t *Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write(t.Header); err != nil {
		return nil, fmt.Errorf("export: encabezado: %w", err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return nil, fmt.Errorf("export: fila %d tiene %d columnas, se esperaban %d", i, len(row), len(t.Header))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: fila %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
