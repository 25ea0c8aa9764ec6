package tsv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		open func(string) (*Writer, error)
		want string
	}{
		{name: "tab", open: NewWriterFile, want: "Label\tValue\nweightCap\t0.05\n"},
		{name: "comma", open: NewCSVWriterFile, want: "Label,Value\nweightCap,0.05\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, tt.name)
			w, err := tt.open(p)
			require.NoError(t, err)
			require.NoError(t, w.Write([]string{"Label", "Value"}))
			require.NoError(t, w.Write([]string{"weightCap", "0.05"}))
			require.NoError(t, w.Close())

			data, err := os.ReadFile(p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestAppendWriterFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "trials.tsv")
	for i := 0; i < 2; i++ {
		w, err := AppendWriterFile(p)
		require.NoError(t, err)
		require.NoError(t, w.Write([]string{"a", "b"}))
		require.NoError(t, w.Close())
	}

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\na\tb\n", string(data))
}
