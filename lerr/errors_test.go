package lerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lucent-lang/lucent/lerr"
	"github.com/lucent-lang/lucent/loc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesDefaultMessage(t *testing.T) {
	err := lerr.New(lerr.TwoFloatPoints, loc.NewRange(loc.Unknown("a")))
	assert.Equal(t, lerr.TwoFloatPoints.String(), err.Msg)
}

func TestNewfOverridesMessage(t *testing.T) {
	err := lerr.Newf(lerr.NSLoadError, loc.NewRange(loc.Unknown("a")), "couldn't find namespace '%s'", "a.b")
	assert.Equal(t, "couldn't find namespace 'a.b'", err.Msg)
}

func TestErrorStringIncludesLocation(t *testing.T) {
	l := loc.Location{NS: "a.b", Line: 2, Col: 5, Known: true}
	err := lerr.New(lerr.InvalidDigitForNumber, loc.NewRange(l))
	assert.Equal(t, "a.b:2:5: invalid number format", err.Error())
}

func TestIsMatchesByKind(t *testing.T) {
	a := lerr.New(lerr.EOFWhileScanningAList, loc.NewRange(loc.Unknown("x")))
	b := lerr.New(lerr.EOFWhileScanningAList, loc.NewRange(loc.Unknown("y")))
	c := lerr.New(lerr.EOFWhileScanningAString, loc.NewRange(loc.Unknown("x")))

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := lerr.New(lerr.NSAddToSMError, loc.NewRange(loc.Unknown("x"))).Wrap(cause)

	require.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestKindStringOutOfRange(t *testing.T) {
	assert.Equal(t, "Kind(99)", lerr.Kind(99).String())
}
