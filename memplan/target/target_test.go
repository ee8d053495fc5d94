package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTarget_KnownBackends(t *testing.T) {
	cases := []struct {
		name string
		want uint64
	}{
		{"bm1680", 512 * 1024},
		{"bm1682", 1024 * 1024},
		{"bm1880", 64 * 1024},
	}
	for _, tc := range cases {
		tgt := NewTarget(tc.name)
		assert.Equal(t, tc.name, tgt.Name())
		assert.Equal(t, tc.want, tgt.LocalMemSize())
	}
}

func TestNewTarget_EmptyNameDefaultsToBM1880(t *testing.T) {
	tgt := NewTarget("")
	assert.Equal(t, "bm1880", tgt.Name())
	assert.Equal(t, uint64(64*1024), tgt.LocalMemSize())
}

func TestNewTarget_UnknownNamePanics(t *testing.T) {
	assert.Panics(t, func() { NewTarget("tpu9000") })
}

func TestIsValidTarget(t *testing.T) {
	assert.True(t, IsValidTarget("bm1680"))
	assert.True(t, IsValidTarget(""))
	assert.False(t, IsValidTarget("tpu9000"))
}

func TestNewGenericTarget(t *testing.T) {
	tgt := NewGenericTarget("lab-board", 123456)
	assert.Equal(t, "lab-board", tgt.Name())
	assert.Equal(t, uint64(123456), tgt.LocalMemSize())

	anon := NewGenericTarget("", 1)
	assert.Equal(t, "generic", anon.Name())
}
