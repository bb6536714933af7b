package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"amparo/internal/reporting/models"
)

func TestWriteXLSX(t *testing.T) {
	table := &models.Table{
		Name:    "batch-items",
		Title:   "Cesta on 15/05/2024",
		Columns: []string{"Code", "Beneficiary", "Delivered"},
		Rows: [][]string{
			{"A-1", "Ana", "[x]"},
			{"A-2", "Maria da Conceição", "[ ]"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"batch-items"}, f.GetSheetList())
	rows, err := f.GetRows("batch-items")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Cesta on 15/05/2024"}, rows[0])
	assert.Equal(t, table.Columns, rows[1])
	assert.Equal(t, []string{"A-2", "Maria da Conceição", "[ ]"}, rows[3])

	w, err := f.GetColWidth("batch-items", "B")
	require.NoError(t, err)
	assert.InDelta(t, 20, w, 0.01)
}

func TestWriteXLSXEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, &models.Table{Title: "Nothing", Columns: []string{"Code"}}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Report")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Nothing"}, {"Code"}}, rows)
}

func TestSheetNameIsTruncated(t *testing.T) {
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz01234", sheetName("abcdefghijklmnopqrstuvwxyz0123456789"))
	assert.Equal(t, "amparo-health.xlsx", FileName(&models.Table{Name: "health"}))
}
