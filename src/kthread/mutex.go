package kthread

import "sync"
import "sync/atomic"
import "unsafe"

import "util"

/// Mutex_t is a mutual exclusion lock that tracks which thread holds it.
/// The name is diagnostic only. The zero value is not useful; use MkMutex.
type Mutex_t struct {
	name string
	lock sync.Mutex
	// stored only by the holder while the lock is held; nil when unheld.
	// Accessed through atomic loads/stores so the non-owner misuse check
	// and Owner() stay race-clean.
	owner *Thread_t
}

/// MkMutex returns an unheld mutex.
func MkMutex(name string) *Mutex_t {
	return &Mutex_t{name: name}
}

/// Lock blocks until the mutex is acquired and records the caller as
/// owner. Not reentrant: a second Lock from the owner deadlocks.
func (m *Mutex_t) Lock() {
	m.lock.Lock()
	m.setowner(Current())
}

/// TryLock attempts a non-blocking acquisition and reports whether it
/// succeeded. On success the caller is recorded as owner; on failure the
/// mutex is untouched.
func (m *Mutex_t) TryLock() bool {
	if !m.lock.TryLock() {
		return false
	}
	m.setowner(Current())
	return true
}

/// Unlock releases the mutex. The caller must be the owner; anything else
/// aborts. An unheld mutex has no owner.
func (m *Mutex_t) Unlock() {
	if t := Current(); m.Owner() != t {
		util.Fatalf("unlock of %s by non-owner %v", m.name, t)
	}
	m.setowner(nil)
	m.lock.Unlock()
}

/// Owner returns the thread holding m at the instant of the load, or nil
/// when unheld. Only stable when the caller itself holds the mutex.
func (m *Mutex_t) Owner() *Thread_t {
	ptr := (*unsafe.Pointer)(unsafe.Pointer(&m.owner))
	return (*Thread_t)(atomic.LoadPointer(ptr))
}

func (m *Mutex_t) setowner(t *Thread_t) {
	ptr := (*unsafe.Pointer)(unsafe.Pointer(&m.owner))
	atomic.StorePointer(ptr, unsafe.Pointer(t))
}

/// Name returns the diagnostic name.
func (m *Mutex_t) Name() string {
	return m.name
}
