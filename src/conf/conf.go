// Package conf carries the process-wide runtime configuration consumed by
// the thread core. Values come from built-in defaults, an optional TOML
// file and ART_* environment overrides, in that order.
package conf

import "strings"

import "github.com/google/uuid"
import "github.com/spf13/viper"

import "interop"
import "mem"
import "util"

/// DefStacksize is the stack handed to created threads when the
/// configuration does not say otherwise.
const DefStacksize int = 1 << 20

/// Runtime_t is the runtime configuration. It is built once at bootstrap
/// and read-only afterwards.
type Runtime_t struct {
	stacksize    int
	checkinterop bool
	instance     string
	vm           *interop.Vm_t
}

/// MkRuntime builds a configuration without touching files or the
/// environment.
func MkRuntime(stacksize int, checkinterop bool) *Runtime_t {
	if stacksize < mem.PGSIZE {
		util.Fatalf("configured stack size %d below one page", stacksize)
	}
	return &Runtime_t{
		stacksize:    stacksize,
		checkinterop: checkinterop,
		instance:     uuid.NewString(),
		vm:           interop.MkVm(checkinterop),
	}
}

/// Load reads the configuration. path may be empty, in which case only
/// defaults and environment overrides apply. Keys: thread.stack_size,
/// interop.check; the matching environment variables are
/// ART_THREAD_STACK_SIZE and ART_INTEROP_CHECK. A present-but-unreadable
/// config file is fatal; a missing threading substrate configuration has no
/// safe fallback posture beyond the defaults.
func Load(path string) *Runtime_t {
	v := viper.New()
	v.SetDefault("thread.stack_size", DefStacksize)
	v.SetDefault("interop.check", false)

	v.SetConfigType("toml")
	v.SetEnvPrefix("ART")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			util.Fatalf("runtime config %s: %v", path, err)
		}
	}

	return MkRuntime(v.GetInt("thread.stack_size"), v.GetBool("interop.check"))
}

/// Stacksize returns the configured thread stack size in bytes.
func (rt *Runtime_t) Stacksize() int {
	return rt.stacksize
}

/// CheckInterop reports whether extended interop checking is on.
func (rt *Runtime_t) CheckInterop() bool {
	return rt.checkinterop
}

/// Instance returns this runtime instance's identifier, used only in
/// diagnostics.
func (rt *Runtime_t) Instance() string {
	return rt.instance
}

/// Vm returns the process interop handle.
func (rt *Runtime_t) Vm() *interop.Vm_t {
	return rt.vm
}
