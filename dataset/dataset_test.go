package dataset

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/campaign_analyzer/domain/models"
)

const sample = "plataforma,fecha_campana,costo_total,clicks,activa\n" +
	"Facebook,2024-01-01,10.5,3,true\n" +
	"TikTok,2024-01-08,,4,false\n" +
	",NA,20,5,true\n"

func TestReadTypes(t *testing.T) {
	ds, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	rows, cols := ds.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, []models.ColumnInfo{
		{Name: "plataforma", DType: models.DTypeObject},
		{Name: "fecha_campana", DType: models.DTypeObject},
		{Name: "costo_total", DType: models.DTypeFloat},
		{Name: "clicks", DType: models.DTypeInt},
		{Name: "activa", DType: models.DTypeBool},
	}, ds.DTypes())
	assert.Equal(t, []string{"costo_total", "clicks", "activa"}, ds.NumericColumns())

	cost, err := ds.Float("costo_total")
	require.NoError(t, err)
	assert.Equal(t, 10.5, cost[0])
	assert.True(t, math.IsNaN(cost[1]))
	assert.Equal(t, 20.0, cost[2])

	active, err := ds.Float("activa")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1}, active)

	values, missing, err := ds.Strings("plataforma")
	require.NoError(t, err)
	assert.Equal(t, "TikTok", values[1])
	assert.Equal(t, []bool{false, false, true}, missing)
}

func TestReadSparseIntsAsFloat(t *testing.T) {
	ds, err := Read(strings.NewReader("clicks,impresiones,activa\n3,10,true\n,20,false\n5,30,true\n"))
	require.NoError(t, err)

	assert.Equal(t, models.DTypeFloat, ds.DType("clicks"))
	assert.Equal(t, models.DTypeInt, ds.DType("impresiones"))
	assert.Equal(t, []string{"clicks", "impresiones", "activa"}, ds.NumericColumns())
	assert.Equal(t, []string{"clicks", "impresiones"}, ds.NumberColumns())

	clicks, err := ds.Float("clicks")
	require.NoError(t, err)
	assert.Equal(t, 3.0, clicks[0])
	assert.True(t, math.IsNaN(clicks[1]))
	assert.Equal(t, 5.0, clicks[2])

	missing, err := ds.Missing("clicks")
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, missing)
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Read(strings.NewReader("a,b\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Read(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)

	ds, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	_, err = ds.Float("plataforma")
	assert.ErrorIs(t, err, ErrNotNumeric)
	_, err = ds.Float("roas")
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorIs(t, ds.Require("plataforma", "roas"), ErrMissingColumn)
	assert.NoError(t, ds.Require("plataforma", "clicks"))
}

func TestReadBOMAndDelimiter(t *testing.T) {
	data := "\xEF\xBB\xBFTipo Campaña;Costo\nAwareness;1\nTráfico;2\n"
	ds, err := Read(strings.NewReader(data), WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"tipo_campana", "costo"}, ds.Names())
}

func TestReadWithoutHeader(t *testing.T) {
	ds, err := Read(strings.NewReader("1,2\n3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, ds.Names())
	rows, _ := ds.Shape()
	assert.Equal(t, 2, rows)
}

func TestParseDates(t *testing.T) {
	ds, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	_, _, err = ds.Dates("fecha_campana")
	assert.Error(t, err)

	require.NoError(t, ds.ParseDates("fecha_campana"))
	assert.Equal(t, models.DTypeDatetime, ds.DType("fecha_campana"))
	assert.NotContains(t, ds.NumericColumns(), "fecha_campana")

	dates, missing, err := ds.Dates("fecha_campana")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), dates[1])
	assert.Equal(t, []bool{false, false, true}, missing)

	head := ds.Head(10)
	require.Len(t, head, 3)
	assert.Equal(t, []string{"Facebook", "2024-01-01", "10.5", "3", "true"}, head[0])
	assert.Equal(t, "NaN", head[1][2])
	assert.Equal(t, "NaT", head[2][1])
}

func TestParseDatesRejectsGarbage(t *testing.T) {
	ds, err := Read(strings.NewReader("fecha_campana\n2024-01-01\nyesterday\n"))
	require.NoError(t, err)
	err = ds.ParseDates("fecha_campana")
	assert.ErrorIs(t, err, ErrBadDate)
	assert.Equal(t, models.DTypeObject, ds.DType("fecha_campana"))
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for _, v := range []string{"2024-03-05", "05/03/2024", "2024/03/05", "2024-03-05T00:00:00Z"} {
		got, err := ParseDate(v)
		require.NoError(t, err, v)
		assert.Equal(t, want, got, v)
	}
}

func TestLoadCompressed(t *testing.T) {
	dir := t.TempDir()
	payload := []byte(sample)

	plain := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(plain, payload, 0644))

	gzPath := filepath.Join(dir, "data.csv.gz")
	var gzBuf bytes.Buffer
	gw := gzip.NewWriter(&gzBuf)
	_, err := gw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(gzPath, gzBuf.Bytes(), 0644))

	lzPath := filepath.Join(dir, "data.csv.lz4")
	var lzBuf bytes.Buffer
	lw := lz4.NewWriter(&lzBuf)
	_, err = lw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, lw.Close())
	require.NoError(t, os.WriteFile(lzPath, lzBuf.Bytes(), 0644))

	zipPath := filepath.Join(dir, "data.zip")
	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	small, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = small.Write([]byte("x"))
	require.NoError(t, err)
	big, err := zw.Create("data.csv")
	require.NoError(t, err)
	_, err = big.Write(payload)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(zipPath, zipBuf.Bytes(), 0644))

	for _, path := range []string{plain, gzPath, lzPath, zipPath} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			ds, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, path, ds.Source)
			rows, cols := ds.Shape()
			assert.Equal(t, 3, rows)
			assert.Equal(t, 5, cols)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
