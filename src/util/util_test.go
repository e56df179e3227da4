package util

import "testing"

import "github.com/stretchr/testify/require"

func TestRound(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, Roundup(0, 4096))
	require.Equal(t, 4096, Roundup(1, 4096))
	require.Equal(t, 4096, Roundup(4096, 4096))
	require.Equal(t, 8192, Roundup(4097, 4096))
	require.Equal(t, 4096, Rounddown(8191, 4096))
	require.Equal(t, uintptr(0x2000), Roundup(uintptr(0x1001), uintptr(0x1000)))
}

func TestMin(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, Min(1, 2))
	require.Equal(t, int64(-5), Min(int64(3), int64(-5)))
}

func TestFatalf(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		f, ok := r.(Fatal_t)
		require.True(t, ok)
		require.Equal(t, "broke: 7", f.Error())
	}()
	Fatalf("broke: %d", 7)
}

func TestCheck(t *testing.T) {
	t.Parallel()

	Check(true, "fine")
	defer func() {
		_, ok := recover().(Fatal_t)
		require.True(t, ok)
	}()
	Check(false, "not fine")
}
