package reconciler_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/MichalMitros/pdsa-generator/internal/output"
	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"github.com/MichalMitros/pdsa-generator/internal/platform/objectstore"
	"github.com/MichalMitros/pdsa-generator/internal/reconciler"
	"github.com/MichalMitros/pdsa-generator/internal/reconciler/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const adType = "Expanded Dynamic Search Ad"

var rows = []models.Row{
	{Campaign: "PDSA Products", DSAWebsite: "example.com"},
	{Campaign: "PDSA Products", AdGroup: "SKU1", AdType: adType, OriginalDescription: "Buy it", Description: "Buy it today"},
	{Campaign: "PDSA Products", AdGroup: "SKU1", AdType: adType, OriginalDescription: "New", Description: "Edited by hand"},
	{Campaign: "PDSA Products", AdGroup: "SKU1", TargetValue: "product_SKU1"},
	{Campaign: "PDSA Products", AdGroup: "SKU1", Image: "images/SKU1/a_sq.jpg"},
	{Campaign: "PDSA Products", AdGroup: "SKU2", AdType: adType, OriginalDescription: "Computed", Description: ""},
	{Campaign: "PDSA Products", AdGroup: "SKU3", AdType: adType, OriginalDescription: "Buy SKU3", Description: "Buy SKU3"},
	{Campaign: "PDSA Products", AdGroup: "SKU3", AdType: adType},
	{Campaign: "PDSA Categories", AdGroup: "shoes", AdType: adType, OriginalDescription: "Great shoes", Description: "Great shoes"},
}

func writeOutput(t *testing.T, table *models.Table, enc bool) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "output.csv")
	if enc {
		require.NoError(t, output.WriteFile(p, table, output.UTF16))
	} else {
		require.NoError(t, output.WriteFile(p, table, nil))
	}

	return p
}

func TestUnitLoad(t *testing.T) {
	logger := zerolog.Nop()
	p := writeOutput(t, output.CampaignTable(rows), true)

	previous, err := reconciler.NewReconciler(reconciler.Files{}, &logger).Load(context.TODO(), p)

	require.NoError(t, err, "should load previous output")
	assert.Equal(t, reconciler.Previous{
		{Campaign: "PDSA Products", AdGroup: "SKU1", Templated: true}: "Buy it today",
		{Campaign: "PDSA Products", AdGroup: "SKU1"}:                  "Edited by hand",
		{Campaign: "PDSA Products", AdGroup: "SKU3", Templated: true}: "Buy SKU3",
		{Campaign: "PDSA Categories", AdGroup: "shoes"}:               "Great shoes",
	}, previous, "should keep non-empty description of every ad by its own key")
}

func TestUnitLoadRecoverable(t *testing.T) {
	tests := map[string]struct {
		path func(t *testing.T) string
	}{
		"missing file": {
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.csv") },
		},
		"UTF-8 file": {
			path: func(t *testing.T) string { return writeOutput(t, output.CampaignTable(rows), false) },
		},
		"unknown columns": {
			path: func(t *testing.T) string {
				return writeOutput(t, &models.Table{Header: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}, true)
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := zerolog.New(&logs)

			previous, err := reconciler.NewReconciler(reconciler.Files{}, &logger).Load(context.TODO(), tt.path(t))

			require.NoError(t, err, "shouldn't fail")
			assert.Empty(t, previous, "should return empty previous output")
		})
	}
}

func TestUnitLoadBadEncodingIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	p := writeOutput(t, output.CampaignTable(rows), false)

	_, err := reconciler.NewReconciler(reconciler.Files{}, &logger).Load(context.TODO(), p)

	require.NoError(t, err, "shouldn't fail")
	assert.Contains(t, logs.String(), `"level":"warn"`, "should log warning")
	assert.Contains(t, logs.String(), "previous output can't be decoded", "should log decoding problem")
}

func TestUnitLoadRemote(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("not exists", func(t *testing.T) {
		opener := mocks.NewOpener(t)
		opener.On("Open", mock.Anything, "output/output.csv").Return(nil, objectstore.ErrNotExist)

		previous, err := reconciler.NewReconciler(opener, &logger).Load(context.TODO(), "output/output.csv")

		require.NoError(t, err, "missing remote output shouldn't fail")
		assert.Empty(t, previous, "should return empty previous output")
	})

	t.Run("open error", func(t *testing.T) {
		opener := mocks.NewOpener(t)
		opener.On("Open", mock.Anything, "output/output.csv").Return(nil, assert.AnError)

		_, err := reconciler.NewReconciler(opener, &logger).Load(context.TODO(), "output/output.csv")

		require.ErrorIs(t, err, assert.AnError, "should return open error")
	})

	t.Run("stored output", func(t *testing.T) {
		content, err := os.ReadFile(writeOutput(t, output.CampaignTable(rows), true))
		require.NoError(t, err)
		opener := mocks.NewOpener(t)
		opener.On("Open", mock.Anything, "output/output.csv").Return(io.NopCloser(bytes.NewReader(content)), nil)

		previous, err := reconciler.NewReconciler(opener, &logger).Load(context.TODO(), "output/output.csv")

		require.NoError(t, err, "should load stored output")
		assert.Len(t, previous, 4, "should read stored descriptions")
	})
}
