package kthread

import "sync"
import "sync/atomic"
import "unsafe"

import "golang.org/x/sys/unix"

import "util"

// The current-thread slot: a process-wide table from native tid to control
// block. Current() runs on every managed/native crossing, so the read path
// takes no lock; it walks bucket chains through atomic pointer loads while
// installs and removals serialize on the bucket lock.

const tlsbuckets = 256

type tlselem_t struct {
	tid  int
	t    *Thread_t
	next *tlselem_t
}

type tlsbucket_t struct {
	sync.Mutex
	first *tlselem_t
}

type tlstab_t struct {
	tab [tlsbuckets]tlsbucket_t
}

var tlsself tlstab_t
var tlsonce sync.Once

// tlsinit double-checks that the fresh table resolves nothing for the
// installing thread.
func tlsinit() {
	if tlsself.get(unix.Gettid()) != nil {
		util.Fatalf("newly-created thread-local slot is not empty")
	}
}

func (tt *tlstab_t) bucket(tid int) *tlsbucket_t {
	return &tt.tab[uint(tid)%tlsbuckets]
}

func (tt *tlstab_t) get(tid int) *Thread_t {
	for e := tlsload(&tt.bucket(tid).first); e != nil; e = tlsload(&e.next) {
		if e.tid == tid {
			return e.t
		}
	}
	return nil
}

func (tt *tlstab_t) set(tid int, t *Thread_t) bool {
	b := tt.bucket(tid)
	b.Lock()
	defer b.Unlock()

	for e := b.first; e != nil; e = e.next {
		if e.tid == tid {
			return false
		}
	}
	tlsstore(&b.first, &tlselem_t{tid: tid, t: t, next: b.first})
	return true
}

func (tt *tlstab_t) del(tid int) bool {
	b := tt.bucket(tid)
	b.Lock()
	defer b.Unlock()

	var last *tlselem_t
	for e := b.first; e != nil; e = e.next {
		if e.tid == tid {
			if last == nil {
				tlsstore(&b.first, e.next)
			} else {
				tlsstore(&last.next, e.next)
			}
			return true
		}
		last = e
	}
	return false
}

func tlsload(e **tlselem_t) *tlselem_t {
	ptr := (*unsafe.Pointer)(unsafe.Pointer(e))
	return (*tlselem_t)(atomic.LoadPointer(ptr))
}

func tlsstore(p **tlselem_t, n *tlselem_t) {
	ptr := (*unsafe.Pointer)(unsafe.Pointer(p))
	atomic.StorePointer(ptr, unsafe.Pointer(n))
}

/// Current returns the calling OS thread's control block. Valid only
/// between publication (Create/Attach) and ClearCurrent on that thread;
/// anything else is a programming defect and aborts.
func Current() *Thread_t {
	t := tlsself.get(unix.Gettid())
	if t == nil {
		util.Fatalf("no control block installed for tid %d", unix.Gettid())
	}
	return t
}

/// SetCurrent installs t as the calling OS thread's control block. One
/// installation per OS thread; a second is fatal.
func SetCurrent(t *Thread_t) {
	tlsonce.Do(tlsinit)
	if t == nil {
		util.Fatalf("install of no control block")
	}
	tid := unix.Gettid()
	if !tlsself.set(tid, t) {
		util.Fatalf("control block already installed for tid %d", tid)
	}
}

/// ClearCurrent removes the calling OS thread's control block, fatally if
/// none is installed.
func ClearCurrent() {
	tid := unix.Gettid()
	if !tlsself.del(tid) {
		util.Fatalf("no control block installed for tid %d", tid)
	}
}
