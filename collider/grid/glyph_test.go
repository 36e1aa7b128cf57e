package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharToValueParsesOperatorGlyph(t *testing.T) {
	v, ok := CharToValue('+')
	assert.True(t, ok)
	assert.Equal(t, TagAdd, v.Tag)
	assert.True(t, v.Powered)
}

func TestCharToValueParsesLowercaseOperatorLetter(t *testing.T) {
	v, ok := CharToValue('s')
	assert.True(t, ok)
	assert.Equal(t, TagStore, v.Tag)
}

func TestCharToValueParsesDigitLiteral(t *testing.T) {
	v, ok := CharToValue('7')
	assert.True(t, ok)
	assert.Equal(t, Literal(7), v)
}

func TestCharToValueParsesUppercaseLetterAsLiteral(t *testing.T) {
	v, ok := CharToValue('A')
	assert.True(t, ok)
	assert.Equal(t, Literal(10), v)

	v, ok = CharToValue('Z')
	assert.True(t, ok)
	assert.Equal(t, Literal(35), v)
}

func TestCharToValueRejectsUnknownCharacter(t *testing.T) {
	_, ok := CharToValue('?')
	assert.False(t, ok)
}

func TestCharForValueRoundTripsOperators(t *testing.T) {
	for c := range tagByGlyph {
		v, ok := CharToValue(c)
		assert.True(t, ok)
		assert.Equal(t, c, CharForValue(v))
	}
}

func TestCharForValueRendersLiteralsAsDigitOrUppercase(t *testing.T) {
	assert.Equal(t, '0', CharForValue(Literal(0)))
	assert.Equal(t, '9', CharForValue(Literal(9)))
	assert.Equal(t, 'A', CharForValue(Literal(10)))
	assert.Equal(t, 'Z', CharForValue(Literal(35)))
}

func TestCharForValueRendersEmptyCellAsDot(t *testing.T) {
	assert.Equal(t, rune(EmptyGlyph), CharForValue(None))
}
