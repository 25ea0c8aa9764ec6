package style

import (
	"bytes"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestPercentString(t *testing.T) {
	assert.Equal(t, "+1.23%", PercentString(0.0123, 2))
	assert.Equal(t, "-5.0%", PercentString(-0.05, 1))
	assert.Equal(t, "0.00%", PercentString(0, 2))
}

func TestSignColor(t *testing.T) {
	assert.Equal(t, PositiveColor, SignColor(0.1))
	assert.Equal(t, NegativeColor, SignColor(0))
}

func TestNewTable(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "Weights", table.Row{"Code", "Weight"})
	tbl.AppendRow(table.Row{"600000", 0.05})
	tbl.Render()
	assert.Contains(t, buf.String(), "600000")
	assert.Contains(t, buf.String(), "Weights")
}
