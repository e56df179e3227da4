package kthread

import "fmt"

import "defs"
import "jstr"
import "util"

/// ExcMsgMax bounds the message rendered by ThrowNewExceptionf. Longer
/// output is truncated, deliberately: exception text is diagnostic, the
/// bound keeps the throw path allocation-predictable.
const ExcMsgMax = 512

/// ThrowNewException builds an instance of the named exception class with
/// msg and attaches it to t's pending-exception slot, replacing any value
/// already there. Failure to build the exception itself (class or
/// constructor unresolvable, allocation refused) is a VM-integrity failure
/// and aborts; there is no fallback exception representation.
func ThrowNewException(cl defs.Classlinker_i, t *Thread_t, className string, msg string) {
	util.Check(t != nil, "throw against no thread")
	util.Check(cl != nil, "throw without a class linker")

	ec := cl.FindSystemClass(className)
	if ec == nil {
		util.Fatalf("unresolvable exception class %s", className)
	}

	exc := ec.NewInstance()
	if exc == nil {
		util.Fatalf("failed to allocate %s", ec.Descriptor())
	}

	jmsg := cl.AllocString(jstr.DecodeMutf8([]byte(msg)))
	if jmsg == nil {
		util.Fatalf("failed to allocate message string for %s", className)
	}

	ctor := ec.FindDirectMethod("<init>", "(Ljava/lang/String;)V")
	if ctor == nil {
		util.Fatalf("%s has no (Ljava/lang/String;)V constructor", ec.Descriptor())
	}
	ctor.InvokeDirect(exc, jmsg)

	t.SetException(exc)
}

/// ThrowNewExceptionf is ThrowNewException with a printf-style message,
/// rendered into at most ExcMsgMax bytes.
func ThrowNewExceptionf(cl defs.Classlinker_i, t *Thread_t, className string, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if len(msg) > ExcMsgMax {
		msg = msg[:ExcMsgMax]
		// don't leave a severed multibyte sequence at the cut
		for len(msg) > 0 && msg[len(msg)-1]&0xc0 == 0x80 {
			msg = msg[:len(msg)-1]
		}
		if len(msg) > 0 && msg[len(msg)-1]&0xc0 == 0xc0 {
			msg = msg[:len(msg)-1]
		}
	}
	ThrowNewException(cl, t, className, msg)
}
