package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zola-inventory-api/pkg/export"
)

func TestTable_CSV(t *testing.T) {
	tbl := export.Table{Header: []string{"nome", "preço"}}
	tbl.Append("Queijo, muçarela", "R$ 10,50")
	tbl.Append("Farinha", "R$ 4,00")

	out, err := tbl.CSV()
	require.NoError(t, err)
	assert.Equal(t, "nome,preço\r\n\"Queijo, muçarela\",\"R$ 10,50\"\r\nFarinha,\"R$ 4,00\"\r\n", string(out))
}

func TestTable_CSV_ColumnasIncorrectas(t *testing.T) {
	tbl := export.Table{Header: []string{"a", "b"}}
	tbl.Append("solo-una")

	_, err := tbl.CSV()
	assert.Error(t, err)
}
