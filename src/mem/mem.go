package mem

import "unsafe"

import "golang.org/x/sys/unix"

import "util"

/// PGSHIFT is the base-2 exponent for the page size.
const PGSHIFT uint = 12

/// PGSIZE is the size of a single page in bytes.
const PGSIZE int = 1 << PGSHIFT

/// Protection bits accepted by Map.
const (
	PROT_NONE  = unix.PROT_NONE
	PROT_READ  = unix.PROT_READ
	PROT_WRITE = unix.PROT_WRITE
)

/// Memmap_t describes one anonymous mapping handed out by Map. The usable
/// region sits above a single inaccessible guard page, so a stack running
/// off its low end faults instead of scribbling over neighboring memory.
type Memmap_t struct {
	raw []byte // whole mapping including the guard page
	buf []byte // usable region
}

/// Map allocates size bytes of anonymous read/write-able memory, rounded up
/// to PGSIZE, with the requested protection. It returns false if the OS
/// refuses the mapping; callers in the thread core treat that as fatal.
func Map(size int, prot int) (*Memmap_t, bool) {
	if size <= 0 {
		return nil, false
	}
	size = util.Roundup(size, PGSIZE)
	raw, err := unix.Mmap(-1, 0, size+PGSIZE, unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, false
	}
	if err := unix.Mprotect(raw[PGSIZE:], prot); err != nil {
		unix.Munmap(raw)
		return nil, false
	}
	return &Memmap_t{raw: raw, buf: raw[PGSIZE:]}, true
}

/// Addr returns the low end of the usable region.
func (m *Memmap_t) Addr() uintptr {
	return uintptr(unsafe.Pointer(&m.buf[0]))
}

/// Limit returns the high end of the usable region.
func (m *Memmap_t) Limit() uintptr {
	return m.Addr() + uintptr(len(m.buf))
}

/// Size returns the usable size in bytes.
func (m *Memmap_t) Size() int {
	return len(m.buf)
}

/// Buf exposes the usable region.
func (m *Memmap_t) Buf() []byte {
	return m.buf
}

/// Unmap releases the mapping, guard page included. The region must not be
/// touched afterwards.
func (m *Memmap_t) Unmap() {
	if m.raw == nil {
		util.Fatalf("double unmap")
	}
	if err := unix.Munmap(m.raw); err != nil {
		util.Fatalf("munmap: %v", err)
	}
	m.raw = nil
	m.buf = nil
}
