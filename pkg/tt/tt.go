// Package tt supports table-driven tests with little boilerplate.
//
// A table is a list of cases built with Args(...).Rets(...); Test calls the
// function under test with each case's arguments and compares the return
// values with go-cmp, reporting a diff on mismatch.
package tt

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Table is a list of test cases.
type Table []*Case

// Case is one test case: arguments and the expected return values.
type Case struct {
	args     []any
	wantRets []any
}

// Args returns a new Case with the given arguments.
func Args(args ...any) *Case { return &Case{args: args} }

// Rets sets the expected return values and returns the receiver. An expected
// value may be a Matcher, in which case its Match method decides whether the
// actual value is acceptable.
func (c *Case) Rets(rets ...any) *Case {
	c.wantRets = rets
	return c
}

// FnToTest describes a function to test.
type FnToTest struct {
	name    string
	body    any
	argsFmt string
	retsFmt string
	opts    []cmp.Option
}

// Fn makes a new FnToTest with the given name and body.
func Fn(name string, body any) *FnToTest {
	return &FnToTest{name: name, body: body, opts: []cmp.Option{exportAll}}
}

// ArgsFmt sets the format used for the arguments in test failure messages.
func (fn *FnToTest) ArgsFmt(s string) *FnToTest {
	fn.argsFmt = s
	return fn
}

// RetsFmt sets the format used for the return values in test failure
// messages.
func (fn *FnToTest) RetsFmt(s string) *FnToTest {
	fn.retsFmt = s
	return fn
}

// CmpOpts adds options passed to cmp when comparing return values.
func (fn *FnToTest) CmpOpts(opts ...cmp.Option) *FnToTest {
	fn.opts = append(fn.opts, opts...)
	return fn
}

// T is the subset of testing.T used by Test.
type T interface {
	Helper()
	Errorf(format string, args ...any)
}

// Test calls fn with the arguments of each case and checks the return values.
func Test(t T, fn *FnToTest, tests Table) {
	t.Helper()
	for _, test := range tests {
		rets := call(fn.body, test.args)
		if match(test.wantRets, rets, fn.opts) {
			continue
		}
		var args string
		if fn.argsFmt == "" {
			args = sprintCommaDelimited(test.args...)
		} else {
			args = fmt.Sprintf(fn.argsFmt, test.args...)
		}
		var diff string
		if fn.retsFmt == "" {
			diff = cmp.Diff(test.wantRets, rets, append(fn.opts, cmpMatchers)...)
		} else {
			diff = cmp.Diff(fmt.Sprintf(fn.retsFmt, test.wantRets...),
				fmt.Sprintf(fn.retsFmt, rets...))
		}
		t.Errorf("%s(%s) returns (-Wanted +Actual):\n%s", fn.name, args, diff)
	}
}

// RetValue is the type of the argument to Matcher.Match.
type RetValue any

// Matcher decides whether an actual return value is acceptable.
type Matcher interface {
	// Match reports whether a return value is considered a match. The argument
	// is of type RetValue so that it cannot be implemented accidentally.
	Match(RetValue) bool
}

// Any is a Matcher that matches any value.
var Any Matcher = anyMatcher{}

type anyMatcher struct{}

func (anyMatcher) Match(RetValue) bool { return true }

// ErrorIs returns a Matcher for errors that match target with errors.Is
// semantics (or are nil when target is nil).
func ErrorIs(target error) Matcher { return errorIsMatcher{target} }

type errorIsMatcher struct{ target error }

func (m errorIsMatcher) Match(v RetValue) bool {
	err, _ := v.(error)
	if m.target == nil {
		return err == nil
	}
	return err != nil && errors.Is(err, m.target)
}

// Return values are often errors or other types with unexported fields, which
// cmp refuses to look into by default.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Makes cmp consider a Matcher equal to any value it accepts, so that the
// diff only highlights real mismatches.
var cmpMatchers = cmp.FilterValues(
	func(x, y any) bool {
		_, xm := x.(Matcher)
		_, ym := y.(Matcher)
		return xm || ym
	},
	cmp.Comparer(func(x, y any) bool {
		if m, ok := x.(Matcher); ok {
			return m.Match(y)
		}
		return y.(Matcher).Match(x)
	}))

func match(want, actual []any, opts []cmp.Option) bool {
	if len(want) != len(actual) {
		return false
	}
	for i, w := range want {
		if m, ok := w.(Matcher); ok {
			if !m.Match(actual[i]) {
				return false
			}
		} else if !cmp.Equal(w, actual[i], opts...) {
			return false
		}
	}
	return true
}

func call(fn any, args []any) []any {
	argsReflect := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			// reflect.ValueOf(nil) returns a zero Value, so use the zero value
			// of the parameter type instead.
			argsReflect[i] = reflect.Zero(reflect.TypeOf(fn).In(i))
			continue
		}
		argsReflect[i] = reflect.ValueOf(arg)
	}
	retsReflect := reflect.ValueOf(fn).Call(argsReflect)
	rets := make([]any, len(retsReflect))
	for i, ret := range retsReflect {
		rets[i] = ret.Interface()
	}
	return rets
}

func sprintCommaDelimited(args ...any) string {
	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, arg)
	}
	return sb.String()
}
