package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	assert.False(t, p.Color())

	p.Success("saved")
	p.Warn("careful")
	p.Error("failed")
	p.Label("stdout:")
	p.Hint("tip")
	p.Println("plain", 1)
	p.Print("raw")
	p.Prompt("sure? ")

	assert.Equal(t, "saved\ncareful\nfailed\nstdout:\ntip\nplain 1\nrawsure? ", buf.String())
	assert.Same(t, &buf, p.Writer())
}
