package defs

/// Tid_t identifies a thread for the lifetime of the process. Ids are
/// never reused.
type Tid_t int64

/// TidInvalid is never assigned to a thread.
const TidInvalid Tid_t = 0

/// Object_i is a reference to a managed heap object.
type Object_i interface {
	Class() Class_i
}

/// Strobj_i is a managed string object. The payload is UTF-16 code units,
/// the representation the object system stores.
type Strobj_i interface {
	Object_i
	Utf16() []uint16
}

/// Method_i is a resolved method of a managed class. InvokeDirect runs the
/// method against this with the given arguments; for constructors this is
/// the freshly allocated instance.
type Method_i interface {
	Name() string
	Signature() string
	InvokeDirect(this Object_i, args ...Object_i)
}

/// Class_i is a resolved managed class.
type Class_i interface {
	Descriptor() string
	NewInstance() Object_i
	FindDirectMethod(name, sig string) Method_i
}

/// Classlinker_i is the class-loading collaborator. It resolves system
/// classes by name and allocates managed strings from UTF-16 payloads.
/// Both return nil on failure; callers in the thread core treat nil as a
/// VM-integrity failure.
type Classlinker_i interface {
	FindSystemClass(name string) Class_i
	AllocString(utf16 []uint16) Strobj_i
}
