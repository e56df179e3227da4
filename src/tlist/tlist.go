// Package tlist is the process-wide registry of live control blocks. It
// enforces the clean-shutdown invariant: by the time the registry is torn
// down, every thread but the one doing the teardown must have unregistered.
package tlist

import "defs"
import "kthread"
import "util"

/// Threadlist_t is the registry. Membership is keyed by logical thread id;
/// insertion order carries no meaning. All mutation happens under the
/// registry's own mutex.
type Threadlist_t struct {
	lock    *kthread.Mutex_t
	members map[defs.Tid_t]*kthread.Thread_t
}

/// MkThreadlist allocates the registry and its guarding mutex.
func MkThreadlist() *Threadlist_t {
	return &Threadlist_t{
		lock:    kthread.MkMutex("Threadlist.lock"),
		members: make(map[defs.Tid_t]*kthread.Thread_t),
	}
}

/// Register adds t to the registry. Registering a member twice is a
/// programming defect and aborts; so is exhausting the process thread
/// budget.
func (tl *Threadlist_t) Register(t *kthread.Thread_t) {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	if _, ok := tl.members[t.GetId()]; ok {
		util.Fatalf("%v registered twice", t)
	}
	if !Syslimit.Threads.Take() {
		util.Fatalf("out of thread slots")
	}
	tl.members[t.GetId()] = t
}

/// Unregister removes t. Removing a non-member aborts.
func (tl *Threadlist_t) Unregister(t *kthread.Thread_t) {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	if _, ok := tl.members[t.GetId()]; !ok {
		util.Fatalf("unregister of unknown %v", t)
	}
	delete(tl.members, t.GetId())
	Syslimit.Threads.Give()
}

/// Member reports whether t is registered.
func (tl *Threadlist_t) Member(t *kthread.Thread_t) bool {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	_, ok := tl.members[t.GetId()]
	return ok
}

/// Len returns the number of registered threads.
func (tl *Threadlist_t) Len() int {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	return len(tl.members)
}

/// Destroy tears the registry down. At most the calling thread itself may
/// still be registered; anything else means daemon threads were not shut
/// down cleanly, which is fatal. The registry is unusable afterwards.
func (tl *Threadlist_t) Destroy() {
	tl.lock.Lock()
	defer tl.lock.Unlock()

	if len(tl.members) > 1 {
		util.Fatalf("daemon threads were not shut down cleanly (%d still registered)",
			len(tl.members))
	}
	for _, t := range tl.members {
		if t != kthread.Current() {
			util.Fatalf("%v still registered at teardown", t)
		}
		Syslimit.Threads.Give()
	}
	tl.members = nil
}
