package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustParseUint(t *testing.T) {
	assert.EqualValues(t, 42, MustParseUint("42"))
	assert.EqualValues(t, 0, MustParseUint(""))
	assert.EqualValues(t, 0, MustParseUint("-1"))
	assert.EqualValues(t, 0, MustParseUint("abc"))
}
