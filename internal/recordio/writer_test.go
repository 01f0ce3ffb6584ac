package recordio

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lldbank/lld-validator/internal/logging"
	"lldbank/lld-validator/internal/models"
	"lldbank/lld-validator/internal/runerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string, delimiter rune) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	r := csv.NewReader(f)
	r.Comma = delimiter
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestOutputPath(t *testing.T) {
	dir := filepath.Join("data", "lld")
	assert.Equal(t, filepath.Join(dir, "maret_2024_03_validated.csv"), OutputPath(filepath.Join(dir, "maret.csv"), 2024, 3))
	assert.Equal(t, filepath.Join(dir, "maret_2024_11_validated_discrepancies.csv"), ReportPath(filepath.Join(dir, "maret.csv"), 2024, 11))
	assert.True(t, strings.Contains(OutputPath("x.csv", 2024, 1), ValidatedMarker))
}

func TestCheckWritable(t *testing.T) {
	t.Run("new file is probed and removed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		require.NoError(t, CheckWritable(path))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("existing file is left intact", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		require.NoError(t, os.WriteFile(path, []byte("keep"), 0o600))
		require.NoError(t, CheckWritable(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(data))
	})

	t.Run("unwritable location", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing-dir", "out.csv")
		err := CheckWritable(path)
		assert.True(t, runerror.IsContention(err))
		assert.Contains(t, err.Error(), "close it and run again")
	})
}

func TestWriter_WriteAnnotated(t *testing.T) {
	dir := t.TempDir()
	table := &Table{
		Header: []string{"nama_penerima", "kategori_penerima", "stt", "keterangan"},
		Rows: [][]string{
			{"Kedutaan Besar Jepang", "E0", "2000", "x"},
			{"PT Wilmar", "E0", "2000"},
		},
	}
	discrepancies := []models.Discrepancy{
		{Row: 2, Column: models.ColReceiverCategory, Current: "E0", Suggested: "B0", Name: "Kedutaan Besar Jepang", BankCode: "", Status: "JP"},
		{Row: 2, Column: models.ColReceiverStatus, Current: "JP", Suggested: "ID, N1", Name: "Kedutaan Besar Jepang", Status: "JP"},
	}

	logger := logging.NewMockLogger()
	out := filepath.Join(dir, "lld_2024_03_validated.csv")
	require.NoError(t, NewWriter(',', logger).WriteAnnotated(out, table, discrepancies))

	rows := readAll(t, out, ',')
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"nama_penerima", "kategori_penerima", "stt", "keterangan", AnnotationColumn}, rows[0])
	assert.Equal(t, []string{"Kedutaan Besar Jepang", "E0", "2000", "x"}, rows[1][:4])
	assert.Equal(t,
		"[kategori_penerima]\nSuggested category: B0\nName: Kedutaan Besar Jepang\nBank code: \nStatus: JP\n\n"+
			"[status_penerima]\nSuggested status: ID, N1\nName: Kedutaan Besar Jepang\nBank code: \nStatus: JP",
		rows[1][4])
	assert.Equal(t, []string{"PT Wilmar", "E0", "2000", "", ""}, rows[2])

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
	assert.True(t, logger.HasEntry("INFO", "Annotated copy written"))
}

func TestWriter_WriteReport(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(';', logging.NewMockLogger())

	t.Run("with discrepancies", func(t *testing.T) {
		path := filepath.Join(dir, "report.csv")
		want := []models.Discrepancy{
			{Row: 3, Column: models.ColPayerCategory, Current: "E0", Suggested: "C0", Name: "Bank Indonesia", BankCode: "222", Status: "ID"},
		}
		require.NoError(t, w.WriteReport(path, want))

		rows := readAll(t, path, ';')
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"row", "column", "current", "suggested", "name", "bank_code", "status"}, rows[0])
		assert.Equal(t, []string{"3", "kategori_pembayar", "E0", "C0", "Bank Indonesia", "222", "ID"}, rows[1])
	})

	t.Run("empty report still has a header", func(t *testing.T) {
		path := filepath.Join(dir, "empty.csv")
		require.NoError(t, w.WriteReport(path, nil))

		rows := readAll(t, path, ';')
		require.Len(t, rows, 1)
		assert.Equal(t, "row", rows[0][0])
	})
}
