package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndexResolveFirstLine(t *testing.T) {
	text := []byte("hello world\nsecond line\n")
	li := NewLineIndex(text)

	line, col := li.Resolve(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = li.Resolve(6)
	assert.Equal(t, 1, line)
	assert.Equal(t, 7, col)
}

func TestLineIndexResolveSecondLine(t *testing.T) {
	text := []byte("hello world\nsecond line\n")
	li := NewLineIndex(text)

	line, col := li.Resolve(12)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	line, col = li.Resolve(19)
	assert.Equal(t, 2, line)
	assert.Equal(t, 8, col)
}

func TestLineIndexLineExtractsText(t *testing.T) {
	text := []byte("alpha\nbeta\ngamma")
	li := NewLineIndex(text)

	assert.Equal(t, "alpha", li.Line(text, 1))
	assert.Equal(t, "beta", li.Line(text, 2))
	assert.Equal(t, "gamma", li.Line(text, 3))
	assert.Equal(t, "", li.Line(text, 4))
	assert.Equal(t, "", li.Line(text, 0))
}

func TestLineIndexNoTrailingNewline(t *testing.T) {
	text := []byte("only line")
	li := NewLineIndex(text)

	line, col := li.Resolve(4)
	assert.Equal(t, 1, line)
	assert.Equal(t, 5, col)
	assert.Equal(t, "only line", li.Line(text, 1))
}
