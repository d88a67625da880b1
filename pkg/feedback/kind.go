package feedback

import (
	"fmt"
	"strings"
)

// Kind identifies one of the six dimensions that events are classified by.
type Kind uint8

// The kinds, in the order their bits are packed (most significant first).
const (
	KindCase Kind = iota
	KindAction
	KindWhen
	KindResolve
	KindUnresolved
	KindErrors
	nKinds
)

var kindNames = [nKinds]string{
	"case", "action", "when", "resolve", "unresolved", "errors"}

func (k Kind) String() string {
	if k >= nKinds {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Size returns the number of values of the kind.
func (k Kind) Size() int { return len(valueInfos[k]) }

// Kinds returns all the kinds, in packing order.
func Kinds() []Kind {
	return []Kind{KindCase, KindAction, KindWhen, KindResolve, KindUnresolved, KindErrors}
}

// Value is a value of one of the kinds. It is implemented by Case, Action,
// When, Resolve, UnresolvedCount and ErrorCount.
type Value interface {
	Kind() Kind
	// Ordinal returns the position of the value within its kind.
	Ordinal() int
	String() string
	// Doc returns a short human-readable description.
	Doc() string
}

// Case classifies the snippet an event is about.
type Case uint8

// Possible values of Case.
const (
	Import Case = iota
	Class
	Interface
	Enum
	Annotation
	Record
	Method
	VarDecl
	VarInit
	Expression
	VarValue
	Assignment
	Statement
)

// Action is what happened to the snippet.
type Action uint8

// Possible values of Action.
const (
	Added Action = iota
	Modified
	Replaced
	Overwrote
	Dropped
	Used
)

// When tells whether the event is about the entered snippet or an update to
// a dependent one.
type When uint8

// Possible values of When.
const (
	Primary When = iota
	Update
)

// Resolve is the resolution state of the snippet.
type Resolve uint8

// Possible values of Resolve.
const (
	OK Resolve = iota
	Defined
	NotDefined
)

// UnresolvedCount buckets the number of unresolved references.
type UnresolvedCount uint8

// Possible values of UnresolvedCount.
const (
	Unresolved0 UnresolvedCount = iota
	Unresolved1
	Unresolved2
)

// ErrorCount buckets the number of errors.
type ErrorCount uint8

// Possible values of ErrorCount.
const (
	Error0 ErrorCount = iota
	Error1
	Error2
)

type valueInfo struct {
	name string
	doc  string
}

var valueInfos = [nKinds][]valueInfo{
	KindCase: {
		{"import", "import declaration"},
		{"class", "class declaration"},
		{"interface", "interface declaration"},
		{"enum", "enum declaration"},
		{"annotation", "annotation interface declaration"},
		{"record", "record declaration"},
		{"method", "method declaration -- note: {type}==parameter-types"},
		{"vardecl", "variable declaration without init"},
		{"varinit", "variable declaration with init"},
		{"expression", "expression -- note: {name}==scratch-variable-name"},
		{"varvalue", "variable value expression"},
		{"assignment", "assign variable"},
		{"statement", "statement"},
	},
	KindAction: {
		{"added", "snippet has been added"},
		{"modified", "an existing snippet has been modified"},
		{"replaced", "an existing snippet has been replaced with a new snippet"},
		{"overwrote", "an existing snippet has been overwritten"},
		{"dropped", "snippet has been dropped"},
		{"used", "snippet was used when it cannot be"},
	},
	KindWhen: {
		{"primary", "the entered snippet"},
		{"update", "an update to a dependent snippet"},
	},
	KindResolve: {
		{"ok", "resolved correctly"},
		{"defined", "defined despite recoverably unresolved references"},
		{"notdefined", "not defined because of recoverably unresolved references"},
	},
	KindUnresolved: {
		{"unresolved0", "no names are unresolved"},
		{"unresolved1", "one name is unresolved"},
		{"unresolved2", "two or more names are unresolved"},
	},
	KindErrors: {
		{"error0", "no errors"},
		{"error1", "one error"},
		{"error2", "two or more errors"},
	},
}

func nameOf(k Kind, i int) string {
	if i < 0 || i >= len(valueInfos[k]) {
		return fmt.Sprintf("%s(%d)", k, i)
	}
	return valueInfos[k][i].name
}

func docOf(k Kind, i int) string {
	if i < 0 || i >= len(valueInfos[k]) {
		return ""
	}
	return valueInfos[k][i].doc
}

func (v Case) Kind() Kind        { return KindCase }
func (v Case) Ordinal() int      { return int(v) }
func (v Case) String() string    { return nameOf(KindCase, int(v)) }
func (v Case) Doc() string       { return docOf(KindCase, int(v)) }
func (v Action) Kind() Kind      { return KindAction }
func (v Action) Ordinal() int    { return int(v) }
func (v Action) String() string  { return nameOf(KindAction, int(v)) }
func (v Action) Doc() string     { return docOf(KindAction, int(v)) }
func (v When) Kind() Kind        { return KindWhen }
func (v When) Ordinal() int      { return int(v) }
func (v When) String() string    { return nameOf(KindWhen, int(v)) }
func (v When) Doc() string       { return docOf(KindWhen, int(v)) }
func (v Resolve) Kind() Kind     { return KindResolve }
func (v Resolve) Ordinal() int   { return int(v) }
func (v Resolve) String() string { return nameOf(KindResolve, int(v)) }
func (v Resolve) Doc() string    { return docOf(KindResolve, int(v)) }

func (v UnresolvedCount) Kind() Kind     { return KindUnresolved }
func (v UnresolvedCount) Ordinal() int   { return int(v) }
func (v UnresolvedCount) String() string { return nameOf(KindUnresolved, int(v)) }
func (v UnresolvedCount) Doc() string    { return docOf(KindUnresolved, int(v)) }
func (v ErrorCount) Kind() Kind          { return KindErrors }
func (v ErrorCount) Ordinal() int        { return int(v) }
func (v ErrorCount) String() string      { return nameOf(KindErrors, int(v)) }
func (v ErrorCount) Doc() string         { return docOf(KindErrors, int(v)) }

func valueOf(k Kind, i int) Value {
	switch k {
	case KindCase:
		return Case(i)
	case KindAction:
		return Action(i)
	case KindWhen:
		return When(i)
	case KindResolve:
		return Resolve(i)
	case KindUnresolved:
		return UnresolvedCount(i)
	default:
		return ErrorCount(i)
	}
}

var valuesByName = map[string]Value{}

func init() {
	for _, k := range Kinds() {
		for i, info := range valueInfos[k] {
			valuesByName[info.name] = valueOf(k, i)
		}
	}
}

// LookupValue finds a value by its name. Names are matched
// case-insensitively.
func LookupValue(name string) (Value, bool) {
	v, ok := valuesByName[strings.ToLower(name)]
	return v, ok
}

// Values returns all values of a kind, in ordinal order.
func Values(k Kind) []Value {
	vs := make([]Value, k.Size())
	for i := range vs {
		vs[i] = valueOf(k, i)
	}
	return vs
}

// CountUnresolved returns the bucket for n unresolved references.
func CountUnresolved(n int) UnresolvedCount {
	switch {
	case n <= 0:
		return Unresolved0
	case n == 1:
		return Unresolved1
	default:
		return Unresolved2
	}
}

// CountErrors returns the bucket for n errors.
func CountErrors(n int) ErrorCount {
	switch {
	case n <= 0:
		return Error0
	case n == 1:
		return Error1
	default:
		return Error2
	}
}
