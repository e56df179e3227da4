// Package util contains helper functions used across the runtime.
package util

import "fmt"

// Int is satisfied by all built-in integer types.
type Int interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Min returns the smaller of a and b.
func Min[T Int](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Rounddown aligns v down to the nearest multiple of b.
func Rounddown[T Int](v, b T) T {
	return v - (v % b)
}

// Roundup aligns v up to the nearest multiple of b.
func Roundup[T Int](v, b T) T {
	return Rounddown(v+b-1, b)
}

// Fatal_t is the abort signal raised for invariant violations and OS
// resource failures. The thread core never recovers one; a Fatal_t that
// reaches the top of a thread terminates the process.
type Fatal_t struct {
	Msg string
}

func (f Fatal_t) Error() string {
	return f.Msg
}

// Fatalf formats an abort message and panics with a Fatal_t.
func Fatalf(format string, args ...interface{}) {
	panic(Fatal_t{Msg: fmt.Sprintf(format, args...)})
}

// Check aborts via Fatalf when cond is false.
func Check(cond bool, msg string) {
	if !cond {
		Fatalf("check failed: %s", msg)
	}
}
