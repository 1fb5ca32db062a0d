package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

func sampleDocs() []domain.Document {
	return []domain.Document{
		{
			ID: "a.pdf", Title: "Alpha", Type: "pdf", Language: "en", Size: 2048,
			CreationDate: time.Date(2022, 5, 6, 7, 8, 9, 0, time.UTC),
			Keywords: []domain.Keyword{
				{Value: "football", Type: domain.KeywordManual},
				{Value: "sport", Type: domain.KeywordML},
			},
		},
		{ID: "b.txt", Title: "Beta"},
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleDocs()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{
		"a.pdf", "Alpha", "pdf", "en", "2048", "2022-05-06 07:08:09", "football (MANUAL), sport (ML)",
	}, rows[1])
	assert.Equal(t, "b.txt", rows[2][0])
	assert.Equal(t, "Beta", rows[2][1])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs.xlsx")
	require.NoError(t, SaveXLSX(path, sampleDocs()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", value)
}

func TestSaveXLSX_BadPath(t *testing.T) {
	err := SaveXLSX(filepath.Join(t.TempDir(), "missing", "docs.xlsx"), sampleDocs())
	assert.Error(t, err)
}

func TestFormatKeywords(t *testing.T) {
	assert.Equal(t, "", FormatKeywords(nil))
	assert.Equal(t, "a (KWM)", FormatKeywords([]domain.Keyword{{Value: "a", Type: domain.KeywordModelType}}))
}

func TestXLSX_Export(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX{}.Export(&buf, sampleDocs()))
	assert.NotZero(t, buf.Len())
}
