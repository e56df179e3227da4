package interop

import "testing"

import "github.com/stretchr/testify/require"

import "defs"
import "util"

func TestEnvOwnership(t *testing.T) {
	t.Parallel()

	e := MkEnv(defs.Tid_t(7), true)
	require.Equal(t, defs.Tid_t(7), e.Owner())
	require.True(t, e.Checked())

	e.AssertOwner(defs.Tid_t(7))

	defer func() {
		_, ok := recover().(util.Fatal_t)
		require.True(t, ok)
	}()
	e.AssertOwner(defs.Tid_t(8))
}

func TestEnvUncheckedSkipsAssertion(t *testing.T) {
	t.Parallel()

	e := MkEnv(defs.Tid_t(7), false)
	e.AssertOwner(defs.Tid_t(8))
}

func TestEnvWithoutOwnerFatal(t *testing.T) {
	t.Parallel()

	defer func() {
		_, ok := recover().(util.Fatal_t)
		require.True(t, ok)
	}()
	MkEnv(defs.TidInvalid, true)
}
