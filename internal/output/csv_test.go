package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MichalMitros/pdsa-generator/internal/output"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitColumns(t *testing.T) {
	assert.Equal(t,
		"Campaign,Budget,DSA Website,DSA Language,DSA targeting source,DSA page feeds,Ad Group,Max CPM,"+
			"Target CPM,Ad Group Type,Dynamic Ad Target Condition 1,Dynamic Ad Target Value 1,Ad type,"+
			"Description Line 1#Original,Description Line 1,Image",
		strings.Join(output.Columns, ","),
		"should have exact column names in order",
	)
	assert.Len(t, output.Values(models.Row{}), len(output.Columns), "should return value for every column")
	assert.Equal(t, "SKU1", output.Values(models.Row{AdGroup: "SKU1"})[6], "should put ad group in its column")
}

func TestUnitWriteTableUTF16(t *testing.T) {
	table := output.CampaignTable([]models.Row{
		{Campaign: "PDSA Products", DSAWebsite: "example.com"},
		{Campaign: "PDSA Products", AdGroup: "SKU1", Description: "Zażółć gęślą jaźń, \"quoted\""},
	})

	var buf bytes.Buffer
	require.NoError(t, output.WriteTable(&buf, table, output.UTF16), "should write table")

	assert.Equal(t, []byte{0xFF, 0xFE}, buf.Bytes()[:2], "should start with little endian byte order mark")
	assert.Equal(t, 'C', rune(buf.Bytes()[2]), "should encode characters on two bytes")
	assert.Equal(t, byte(0), buf.Bytes()[3], "should encode characters on two bytes")

	got, err := output.ReadTable(&buf)

	require.NoError(t, err, "should read written table")
	assert.Equal(t, table, got, "should read the same table")
}

func TestUnitReadTableBadEncoding(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteTable(&buf, output.CampaignTable(nil), nil), "should write UTF-8 table")

	_, err := output.ReadTable(&buf)

	require.ErrorIs(t, err, output.ErrBadEncoding, "should report encoding mismatch")
}

func TestUnitWriteFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "output.csv")
	table := &models.Table{Header: []string{"Page URL", "Custom label"}, Rows: [][]string{{"https://example.com", "a; PDSA"}}}

	require.NoError(t, output.WriteFile(p, table, nil), "should write file")

	content, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "Page URL,Custom label\nhttps://example.com,a; PDSA\n", string(content), "should write UTF-8 csv")
}

func TestUnitStageFile(t *testing.T) {
	folder := t.TempDir()
	p := filepath.Join(folder, "output.csv")
	require.NoError(t, os.WriteFile(p, []byte("previous"), 0o644))
	table := &models.Table{Header: []string{"a"}, Rows: [][]string{{"1"}}}

	t.Run("discard", func(t *testing.T) {
		staged, err := output.StageFile(p, table, nil)
		require.NoError(t, err, "should stage file")

		staged.Discard()

		content, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(content), "discarded file shouldn't replace existing one")
		entries, err := os.ReadDir(folder)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "should remove staged file")
	})

	t.Run("commit", func(t *testing.T) {
		staged, err := output.StageFile(p, table, nil)
		require.NoError(t, err, "should stage file")

		require.NoError(t, staged.Commit(), "should commit staged file")
		staged.Discard()

		content, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "a\n1\n", string(content), "committed file should replace existing one")
		entries, err := os.ReadDir(folder)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "shouldn't leave staged file")
	})
}
