package dataset

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	constituents2018 = "code,weight\nSHSE.600000,0.65\nSZSE.000001,0.92\n"
	klines2018       = "code,time,close,volume,amount\n" +
		"SHSE.600000,2018-01-02,12.72,100,1272\n" +
		"SHSE.600000,2018-01-03,12.66,200,2532\n" +
		"SZSE.000002,2018-01-02,32.56,50,1628\n"
)

func writeFile(t *testing.T, dir, name, body string) {
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hs300stocks_2018.csv", constituents2018)
	writeFile(t, dir, "hs300stocks_kdata_2018.csv", klines2018)

	records, err := NewLoader(dir).Load(2018)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "SHSE.600000", records[0].Code)
	assert.True(t, records[0].HasWeight)
	assert.Equal(t, 0.65, records[0].Weight)

	// left join keeps codes that are not index members
	assert.Equal(t, "SZSE.000002", records[2].Code)
	assert.False(t, records[2].HasWeight)
}

func TestLoader_LoadMissingYear(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(2019)
	assert.Error(t, err)
}

func TestLoader_ConstituentYears(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hs300stocks_2019.csv", constituents2018)
	writeFile(t, dir, "hs300stocks_2014.csv", constituents2018)
	writeFile(t, dir, "hs300stocks_kdata_2014.csv", klines2018)
	writeFile(t, dir, "notes.txt", "")

	years, err := NewLoader(dir).ConstituentYears()
	require.NoError(t, err)
	assert.Equal(t, []int{2014, 2019}, years)
}

func writeZip(t *testing.T, path string, files map[string]string) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	for name, body := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.zip")
	writeZip(t, src, map[string]string{
		"data/hs300stocks_2018.csv":       constituents2018,
		"data/hs300stocks_kdata_2018.csv": klines2018,
	})

	dst := filepath.Join(dir, "out")
	files, err := ExtractZip(src, dst)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	records, err := NewLoader(filepath.Join(dst, "data")).Load(2018)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestExtractZip_PathTraversal(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	writeZip(t, src, map[string]string{
		"../escape.csv": "x",
	})

	_, err := ExtractZip(src, filepath.Join(dir, "out"))
	assert.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "escape.csv"))
	assert.True(t, os.IsNotExist(statErr))
}
