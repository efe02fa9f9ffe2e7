package ppcutils_test

import (
	"errors"
	"testing"

	"github.com/acubelab/ppcutils"
	"github.com/stretchr/testify/assert"
)

func TestHarnessErrorWithMessage(t *testing.T) {
	newErr := ppcutils.ErrOutputNotEmpty.WithMessage("/tmp/out")
	assert.Equal(
		t, "Output directory is not empty: /tmp/out", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, ppcutils.ErrOutputNotEmpty)
	assert.NotErrorIs(t, newErr, ppcutils.ErrOutputNotWritable)
}

func TestHarnessErrorWrap(t *testing.T) {
	originalErr := errors.New("permission denied")
	newErr := ppcutils.ErrOutputNotCreatable.Wrap(originalErr)
	expectedMessage := "Cannot create output directory: permission denied"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, ppcutils.ErrOutputNotCreatable, "harness error not set as parent")
}

func TestHarnessErrorChained(t *testing.T) {
	newErr := ppcutils.ErrCommandFailed.WithMessage("tar -xf a").Wrap(errors.New("exit status 2"))
	assert.Equal(t, "Command failed: tar -xf a: exit status 2", newErr.Error())
	assert.ErrorIs(t, newErr, ppcutils.ErrCommandFailed)
}

func TestIsPreflight(t *testing.T) {
	assert.True(t, ppcutils.IsPreflight(ppcutils.ErrNotAbsolute.WithMessage("a.tar")))
	assert.True(
		t,
		ppcutils.IsPreflight(ppcutils.ErrOutputNotWritable.Wrap(errors.New("read-only file system"))))
	assert.False(t, ppcutils.IsPreflight(ppcutils.ErrCommandFailed.WithMessage("tar -xf a")))
	assert.False(t, ppcutils.IsPreflight(ppcutils.ErrMalformedRecord))
	assert.False(t, ppcutils.IsPreflight(errors.New("disk full")))
}
