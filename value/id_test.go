package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	assert.Equal(t, ID(0), NewID(""))
	assert.Equal(t, NewID("volume"), NewID("volume"))
	assert.NotEqual(t, NewID("volume"), NewID("Volume"))
	assert.Equal(t, "volume", NewID("volume").String())
}

func TestNewIDNormalizes(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"
	assert.Equal(t, NewID(composed), NewID(decomposed))
	assert.Equal(t, composed, NewID(decomposed).String())
}

func TestIDStringUnknown(t *testing.T) {
	assert.Equal(t, "#0000abcd", ID(0xabcd).String())
	assert.Equal(t, "", ID(0).String())
}
