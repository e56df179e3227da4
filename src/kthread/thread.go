package kthread

import "fmt"
import "runtime"
import "sync/atomic"
import "unsafe"

import "golang.org/x/sys/unix"

import "conf"
import "defs"
import "interop"
import "mem"
import "util"

/// State_t enumerates the lifecycle states of a thread.
type State_t int32

const (
	S_NEW State_t = iota
	S_RUNNABLE
	S_BLOCKED
	S_WAITING
	S_TIMEDWAITING
	S_NATIVE
	S_TERMINATED
)

var statenames = []string{
	"New",
	"Runnable",
	"Blocked",
	"Waiting",
	"TimedWaiting",
	"Native",
	"Terminated",
}

/// String returns the diagnostic name of the state.
func (s State_t) String() string {
	if s >= S_NEW && s <= S_TERMINATED {
		return statenames[s-S_NEW]
	}
	return fmt.Sprintf("State[%d]", int32(s))
}

/// Thread_t is the per-OS-thread control block. Exactly one exists per
/// live OS thread in the runtime; no two blocks resolve to the same
/// thread. The stack, pending-exception slot and interop env belong to the
/// block's own thread; collaborators writing them bring their own
/// synchronization.
type Thread_t struct {
	id    defs.Tid_t
	tid   int64 // native OS thread id, valid once Runnable
	state int32
	// stacks grow downward: limit < base
	stackbase  uintptr
	stacklimit uintptr
	stack      *mem.Memmap_t // nil for attached threads
	exc        defs.Object_i
	env        *interop.Env_t
}

var tidnext int64

func mktcb() *Thread_t {
	t := &Thread_t{id: defs.Tid_t(atomic.AddInt64(&tidnext, 1))}
	t.state = int32(S_NEW)
	t.initCpu()
	return t
}

// initCpu performs platform register-file setup before the thread runs
// managed code. amd64 needs nothing beyond what the OS thread carries.
func (t *Thread_t) initCpu() {
}

/// Entry_t is the workload a created thread executes. It receives the
/// thread's own control block and signals completion by returning.
type Entry_t func(*Thread_t)

/// Create provisions a guarded stack sized per rt, builds a control block
/// and starts a detached OS thread running entry. The block is fully
/// initialized before the thread starts, so the caller may register it
/// with the thread registry immediately. A mapping failure is fatal; there
/// is no fallback size and no retry.
func Create(rt *conf.Runtime_t, entry Entry_t) *Thread_t {
	stack, ok := mem.Map(rt.Stacksize(), mem.PROT_READ|mem.PROT_WRITE)
	if !ok {
		util.Fatalf("failed to allocate thread stack (%d bytes)", rt.Stacksize())
	}

	t := mktcb()
	// the high end of the mapping is the base
	t.stacklimit = stack.Addr()
	t.stackbase = stack.Limit()
	t.stack = stack

	go t.tramp(rt, entry)
	return t
}

// tramp is the entry trampoline of a created thread. Returning with the
// goroutine still locked makes the scheduler discard the OS thread, the
// equivalent of a detached thread exiting.
func (t *Thread_t) tramp(rt *conf.Runtime_t, entry Entry_t) {
	runtime.LockOSThread()
	atomic.StoreInt64(&t.tid, int64(unix.Gettid()))
	SetCurrent(t)
	t.env = interop.MkEnv(t.id, rt.Vm().CheckInterop)
	t.SetState(S_RUNNABLE)

	entry(t)

	t.SetState(S_TERMINATED)
	ClearCurrent()
	t.stack.Unmap()
	t.stack = nil
}

/// Attach adopts the calling OS thread, one the runtime did not create,
/// into the runtime. The caller must have pinned itself with
/// runtime.LockOSThread and must register the returned block with the
/// thread registry before treating itself as attached.
func Attach(rt *conf.Runtime_t) *Thread_t {
	t := mktcb()

	// Best-effort bounds for a stack this runtime did not map: round the
	// address of a local up to the page boundary and assume the
	// configured size below it. A heuristic, not a hard bound.
	var local int
	base := util.Roundup(uintptr(unsafe.Pointer(&local)), uintptr(mem.PGSIZE))
	t.stackbase = base
	t.stacklimit = base - uintptr(util.Roundup(rt.Stacksize(), mem.PGSIZE))

	atomic.StoreInt64(&t.tid, int64(unix.Gettid()))
	t.SetState(S_RUNNABLE)
	SetCurrent(t)
	t.env = interop.MkEnv(t.id, rt.Vm().CheckInterop)
	return t
}

/// Detach marks the calling thread terminated and removes its control
/// block from the current-thread slot. Only the block's own thread may
/// detach it; the caller unregisters from the registry first.
func (t *Thread_t) Detach() {
	if Current() != t {
		util.Fatalf("detach of %v from the wrong thread", t)
	}
	t.SetState(S_TERMINATED)
	ClearCurrent()
}

/// GetId returns the process-unique logical id.
func (t *Thread_t) GetId() defs.Tid_t {
	return t.id
}

/// GetNativeId returns the native OS thread id.
func (t *Thread_t) GetNativeId() int {
	return int(atomic.LoadInt64(&t.tid))
}

/// GetState returns the current lifecycle state.
func (t *Thread_t) GetState() State_t {
	return State_t(atomic.LoadInt32(&t.state))
}

/// SetState records a state transition. Transitions are made by the
/// thread itself or by runtime code acting on its behalf; Terminated is
/// only ever self-inflicted.
func (t *Thread_t) SetState(s State_t) {
	atomic.StoreInt32(&t.state, int32(s))
}

/// Stackbase returns the high end of the stack.
func (t *Thread_t) Stackbase() uintptr {
	return t.stackbase
}

/// Stacklimit returns the low end of the stack.
func (t *Thread_t) Stacklimit() uintptr {
	return t.stacklimit
}

/// Exception returns the pending exception, or nil.
func (t *Thread_t) Exception() defs.Object_i {
	return t.exc
}

/// SetException attaches e to the pending-exception slot, replacing any
/// previous value.
func (t *Thread_t) SetException(e defs.Object_i) {
	t.exc = e
}

/// ClearException empties the pending-exception slot.
func (t *Thread_t) ClearException() {
	t.exc = nil
}

/// Env returns the thread's interop environment. Usable only by the
/// owning thread.
func (t *Thread_t) Env() *interop.Env_t {
	return t.env
}

/// String renders the block for diagnostics.
func (t *Thread_t) String() string {
	return fmt.Sprintf("Thread[%p,id=%d,tid=%d,state=%v]",
		t, t.id, t.GetNativeId(), t.GetState())
}
