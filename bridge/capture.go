package bridge

import (
	"github.com/dop251/goja"

	"github.com/otelwasm/jsbridge/native"
)

// couldNotPrint replaces the text of a host value whose conversion to a
// string itself threw.
const couldNotPrint = "(could not print error)"

// ThrownException retains a value thrown by host code so it can travel
// through native code that only understands Go errors.
//
// A ThrownException holds either the original Error object or a string. It
// is consumed by Take or Rethrow, which leave the empty default behind, so a
// capture is rethrown at most once. Always handle it by pointer.
type ThrownException struct {
	vm   *goja.Runtime
	obj  *goja.Object
	text string
}

// CaptureThrown retains value, which was thrown inside vm. Error objects are
// kept by reference; strings are kept verbatim; anything else is converted
// with the runtime's default string conversion.
func CaptureThrown(vm *goja.Runtime, value goja.Value) *ThrownException {
	if value == nil {
		return &ThrownException{text: "undefined"}
	}
	if obj, ok := errorObject(vm, value); ok {
		return &ThrownException{vm: vm, obj: obj, text: safeString(value)}
	}
	if s, ok := value.Export().(string); ok {
		return &ThrownException{text: s}
	}
	return &ThrownException{text: safeString(value)}
}

// ThrownString returns a capture holding only text.
func ThrownString(s string) *ThrownException {
	return &ThrownException{text: s}
}

// WrapThrown packages t as the unclassified I/O error native code passes
// around in place of host exceptions.
func WrapThrown(t *ThrownException) error {
	return &native.IOError{Kind: native.IOKindOther, Err: t}
}

func (t *ThrownException) Error() string { return t.text }

// HoldsObject reports whether the capture still holds an Error object.
func (t *ThrownException) HoldsObject() bool { return t.obj != nil }

// Take moves the captured value out of t, leaving the empty default.
func (t *ThrownException) Take() ThrownException {
	taken := *t
	*t = ThrownException{}
	return taken
}

// RethrowKind says how a consumed capture is raised again.
type RethrowKind uint8

const (
	// RethrowMessage raises a new base exception carrying Message.
	RethrowMessage RethrowKind = iota
	// RethrowOriginal raises Value unchanged.
	RethrowOriginal
)

// RethrowAction is the result of consuming a ThrownException.
type RethrowAction struct {
	Kind    RethrowKind
	Value   *goja.Object
	Message string

	runtime *goja.Runtime
}

// Rethrow consumes t. The original object is returned for RethrowOriginal;
// Message always carries the captured text. A second call yields an empty
// RethrowMessage action.
func (t *ThrownException) Rethrow() RethrowAction {
	taken := t.Take()
	if taken.obj != nil {
		return RethrowAction{Kind: RethrowOriginal, Value: taken.obj, Message: taken.text, runtime: taken.vm}
	}
	return RethrowAction{Kind: RethrowMessage, Message: taken.text}
}

// errorObject reports whether v is an Error instance of vm.
func errorObject(vm *goja.Runtime, v goja.Value) (obj *goja.Object, ok bool) {
	obj, ok = v.(*goja.Object)
	if !ok || obj == nil {
		return nil, false
	}
	if obj.ClassName() == "Error" {
		return obj, true
	}

	// Proxies may throw from their prototype trap.
	defer func() {
		if recover() != nil {
			obj, ok = nil, false
		}
	}()
	errorCtor, isObj := vm.Get("Error").(*goja.Object)
	if !isObj {
		return nil, false
	}
	errorProto := errorCtor.Get("prototype")
	for p := obj.Prototype(); p != nil; p = p.Prototype() {
		if p.SameAs(errorProto) {
			return obj, true
		}
	}
	return nil, false
}

// safeString converts v to a string, tolerating a throwing toString.
func safeString(v goja.Value) (s string) {
	defer func() {
		if recover() != nil {
			s = couldNotPrint
		}
	}()
	return v.String()
}
