// Package interop holds the native-interop handles handed to code that
// crosses between managed and native execution.
package interop

import "defs"

import "util"

/// Vm_t is the process-wide interop handle. One exists per runtime; it
/// carries the extended-checking flag per-thread environments inherit.
type Vm_t struct {
	CheckInterop bool
}

/// MkVm returns the process interop handle.
func MkVm(check bool) *Vm_t {
	return &Vm_t{CheckInterop: check}
}

/// Env_t is the per-thread interop environment. Each control block owns
/// exactly one and only that thread may use it.
type Env_t struct {
	owner defs.Tid_t
	check bool
}

/// MkEnv builds the environment for the owning thread. check enables the
/// extended ownership assertions.
func MkEnv(owner defs.Tid_t, check bool) *Env_t {
	if owner == defs.TidInvalid {
		util.Fatalf("interop env without an owner")
	}
	return &Env_t{owner: owner, check: check}
}

/// Owner returns the owning thread's id.
func (e *Env_t) Owner() defs.Tid_t {
	return e.owner
}

/// Checked reports whether extended checking is on.
func (e *Env_t) Checked() bool {
	return e.check
}

/// AssertOwner aborts when extended checking is on and tid is not the
/// owning thread. Cross-thread use of an env is a programming defect, not
/// an environmental condition.
func (e *Env_t) AssertOwner(tid defs.Tid_t) {
	if e.check && tid != e.owner {
		util.Fatalf("interop env of thread %d used from thread %d", e.owner, tid)
	}
}
