package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPseudonymizer_Reference(t *testing.T) {
	p, err := NewPseudonymizer("test-key")
	require.NoError(t, err)

	ref := p.Reference("1012345678")
	assert.Len(t, ref, 32)
	assert.NotContains(t, ref, "1012345678")
	assert.Equal(t, ref, p.Reference(" 1012345678 "))
	assert.NotEqual(t, ref, p.Reference("1012345679"))
	assert.Equal(t, "anonymous", p.Reference(""))

	other, err := NewPseudonymizer("another-key")
	require.NoError(t, err)
	assert.NotEqual(t, ref, other.Reference("1012345678"))
}

func TestNewPseudonymizer_KeyLength(t *testing.T) {
	_, err := NewPseudonymizer("")
	assert.Error(t, err)

	_, err = NewPseudonymizer(strings.Repeat("k", 65))
	assert.Error(t, err)

	_, err = NewPseudonymizer(strings.Repeat("k", 64))
	assert.NoError(t, err)
}
