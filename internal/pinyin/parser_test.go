package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate(t *testing.T) {
	p := NewParser()

	readings := p.Annotate("浩然")
	require.Len(t, readings, 2)
	assert.Equal(t, "浩", readings[0].Char)
	assert.Equal(t, "hào", readings[0].Primary())
	assert.Equal(t, "然", readings[1].Char)
	assert.Equal(t, "rán", readings[1].Primary())
}

func TestAnnotateUnknownCharacter(t *testing.T) {
	p := NewParser()

	readings := p.Annotate("x")
	require.Len(t, readings, 1)
	assert.Empty(t, readings[0].Primary())
}

func TestRomanize(t *testing.T) {
	p := NewParser()
	assert.Equal(t, "hào rán", p.Romanize("浩然"))
	assert.Equal(t, "hào x", p.Romanize("浩x"))
}
