package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	assert.Equal(t, 12.5, ToFloat(12.5))
	assert.Equal(t, 42.0, ToFloat(42))
	assert.Equal(t, 19.99, ToFloat("19.99"))
	assert.Equal(t, 3.5, ToFloat(" 3.5 "))
	assert.Equal(t, 0.0, ToFloat("not a number"))
	assert.Equal(t, 7.0, ToFloat([]byte("7")))
}

func TestCentsToAmount(t *testing.T) {
	assert.Equal(t, 20.0, CentsToAmount(2000))
	assert.Equal(t, 0.99, CentsToAmount(99))
	assert.Equal(t, 0.0, CentsToAmount(0))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "5", ToString(5))
}
