package tlist

import "sync/atomic"
import "unsafe"

/// Sysatomic_t is a numeric budget that can be atomically taken and
/// returned.
type Sysatomic_t int64

/// Syslimit_t tracks the process-wide limits the registry enforces.
type Syslimit_t struct {
	// live registered threads
	Threads Sysatomic_t
}

/// Syslimit describes the configured limits.
var Syslimit *Syslimit_t = MkSyslimit()

/// MkSyslimit returns a pointer to the default set of limits.
func MkSyslimit() *Syslimit_t {
	return &Syslimit_t{
		Threads: 1e4,
	}
}

func (s *Sysatomic_t) _aptr() *int64 {
	return (*int64)(unsafe.Pointer(s))
}

/// Given returns n slots to the budget.
func (s *Sysatomic_t) Given(n uint) {
	atomic.AddInt64(s._aptr(), int64(n))
}

/// Taken tries to take n slots from the budget and reports whether it
/// succeeded.
func (s *Sysatomic_t) Taken(n uint) bool {
	g := atomic.AddInt64(s._aptr(), -int64(n))
	if g >= 0 {
		return true
	}
	atomic.AddInt64(s._aptr(), int64(n))
	return false
}

/// Take takes one slot and reports whether it succeeded.
func (s *Sysatomic_t) Take() bool {
	return s.Taken(1)
}

/// Give returns one slot.
func (s *Sysatomic_t) Give() {
	s.Given(1)
}
