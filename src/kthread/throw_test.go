package kthread

import "strings"
import "testing"
import "unicode/utf16"

import "github.com/stretchr/testify/require"

import "defs"

// A small in-memory class/object system standing in for the class-loading
// collaborator.

type fakestr_t struct {
	u []uint16
}

func (s *fakestr_t) Class() defs.Class_i { return nil }
func (s *fakestr_t) Utf16() []uint16     { return s.u }

type fakeobj_t struct {
	class *fakeclass_t
	msg   defs.Strobj_i
}

func (o *fakeobj_t) Class() defs.Class_i { return o.class }

type fakemethod_t struct {
	name string
	sig  string
}

func (m *fakemethod_t) Name() string      { return m.name }
func (m *fakemethod_t) Signature() string { return m.sig }

func (m *fakemethod_t) InvokeDirect(this defs.Object_i, args ...defs.Object_i) {
	this.(*fakeobj_t).msg = args[0].(defs.Strobj_i)
}

type fakeclass_t struct {
	desc string
	ctor *fakemethod_t
}

func (c *fakeclass_t) Descriptor() string { return c.desc }

func (c *fakeclass_t) NewInstance() defs.Object_i {
	return &fakeobj_t{class: c}
}

func (c *fakeclass_t) FindDirectMethod(name, sig string) defs.Method_i {
	if c.ctor != nil && c.ctor.name == name && c.ctor.sig == sig {
		return c.ctor
	}
	return nil
}

type fakelinker_t struct {
	classes map[string]*fakeclass_t
}

func (l *fakelinker_t) FindSystemClass(name string) defs.Class_i {
	c, ok := l.classes[name]
	if !ok {
		return nil
	}
	return c
}

func (l *fakelinker_t) AllocString(u []uint16) defs.Strobj_i {
	return &fakestr_t{u: u}
}

func mklinker(names ...string) *fakelinker_t {
	l := &fakelinker_t{classes: make(map[string]*fakeclass_t)}
	for _, n := range names {
		l.classes[n] = &fakeclass_t{
			desc: "L" + strings.ReplaceAll(n, ".", "/") + ";",
			ctor: &fakemethod_t{name: "<init>", sig: "(Ljava/lang/String;)V"},
		}
	}
	return l
}

func excmsg(t *testing.T, th *Thread_t) string {
	t.Helper()
	o, ok := th.Exception().(*fakeobj_t)
	require.True(t, ok)
	require.NotNil(t, o.msg)
	return string(utf16.Decode(o.msg.Utf16()))
}

func TestThrowNewException(t *testing.T) {
	cl := mklinker("java.lang.IllegalStateException")
	th := mktcb()

	require.Nil(t, th.Exception())
	ThrowNewException(cl, th, "java.lang.IllegalStateException", "bad state")

	require.NotNil(t, th.Exception())
	require.Same(t, defs.Class_i(cl.classes["java.lang.IllegalStateException"]),
		th.Exception().Class())
	require.Equal(t, "bad state", excmsg(t, th))
}

func TestThrowReplacesPending(t *testing.T) {
	cl := mklinker("java.lang.IllegalStateException", "java.lang.NullPointerException")
	th := mktcb()

	ThrowNewException(cl, th, "java.lang.IllegalStateException", "first")
	ThrowNewException(cl, th, "java.lang.NullPointerException", "second")

	require.Equal(t, "Ljava/lang/NullPointerException;",
		th.Exception().Class().Descriptor())
	require.Equal(t, "second", excmsg(t, th))
}

func TestThrowUnknownClassFatal(t *testing.T) {
	cl := mklinker("java.lang.IllegalStateException")
	th := mktcb()

	requireFatal(t, func() {
		ThrowNewException(cl, th, "java.lang.NoSuchException", "nope")
	})
	require.Nil(t, th.Exception())
}

func TestThrowMissingConstructorFatal(t *testing.T) {
	cl := mklinker("java.lang.Error")
	cl.classes["java.lang.Error"].ctor = nil
	th := mktcb()

	requireFatal(t, func() {
		ThrowNewException(cl, th, "java.lang.Error", "boom")
	})
}

func TestThrowfFormats(t *testing.T) {
	cl := mklinker("java.lang.IllegalArgumentException")
	th := mktcb()

	ThrowNewExceptionf(cl, th, "java.lang.IllegalArgumentException",
		"index %d out of range %d", 7, 3)
	require.Equal(t, "index 7 out of range 3", excmsg(t, th))
}

func TestThrowfTruncates(t *testing.T) {
	cl := mklinker("java.lang.Error")
	th := mktcb()

	long := strings.Repeat("x", ExcMsgMax+100)
	ThrowNewExceptionf(cl, th, "java.lang.Error", "%s", long)
	require.Equal(t, strings.Repeat("x", ExcMsgMax), excmsg(t, th))
}

func TestThrowfTruncatesCleanly(t *testing.T) {
	cl := mklinker("java.lang.Error")
	th := mktcb()

	// multibyte run: the cut must not leave a severed sequence behind
	long := strings.Repeat("é", ExcMsgMax)
	ThrowNewExceptionf(cl, th, "java.lang.Error", "%s", long)
	got := excmsg(t, th)
	require.LessOrEqual(t, len(got), ExcMsgMax)
	for _, r := range got {
		require.Equal(t, 'é', r)
	}
}

func TestThrowNilThreadFatal(t *testing.T) {
	cl := mklinker("java.lang.Error")
	requireFatal(t, func() {
		ThrowNewException(cl, nil, "java.lang.Error", "no thread")
	})
}
