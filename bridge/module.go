package bridge

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/otelwasm/jsbridge/native/protocol"
)

const (
	registerErrorsFunction = "registerErrors"
	errorsProperty         = "Errors"
)

// Module is the native module object scripts call into. Every operation
// exported through it funnels its failures through Throw.
type Module struct {
	vm        *goja.Runtime
	obj       *goja.Object
	registry  *Registry
	logger    *zap.Logger
	errorCtor goja.Value
}

// NativeFunc implements an exported operation. A non-nil error is raised in
// the calling script as a host exception.
type NativeFunc func(call Call) (any, error)

// NewModule creates the native module object for vm. The object exposes
// registerErrors, through which the errors module installs its classes into
// registry.
func NewModule(vm *goja.Runtime, registry *Registry, logger *zap.Logger) *Module {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Module{
		vm:        vm,
		obj:       vm.NewObject(),
		registry:  registry,
		logger:    logger,
		errorCtor: vm.Get("Error"),
	}
	_ = m.obj.Set(registerErrorsFunction, m.registerErrors)
	return m
}

// Object returns the module object handed to scripts.
func (m *Module) Object() *goja.Object { return m.obj }

// Runtime returns the runtime the module belongs to.
func (m *Module) Runtime() *goja.Runtime { return m.vm }

func (m *Module) registerErrors(call goja.FunctionCall) goja.Value {
	errorsModule, ok := call.Argument(0).(*goja.Object)
	if !ok {
		m.Throw(errors.New("registerErrors expects the errors module object"), registerErrorsFunction)
	}
	if err := m.registry.Install(m.vm, errorsModule); err != nil {
		m.Throw(fmt.Errorf("bridge: %w", err), registerErrorsFunction)
	}
	if err := m.obj.Set(errorsProperty, errorsModule); err != nil {
		m.Throw(err, registerErrorsFunction)
	}
	return goja.Undefined()
}

// Export makes fn callable from scripts as module[name].
func (m *Module) Export(name string, fn NativeFunc) error {
	return m.obj.Set(name, func(fc goja.FunctionCall) goja.Value {
		result, err := fn(Call{FunctionCall: fc, m: m})
		if err != nil {
			m.Throw(err, name)
		}
		if result == nil {
			return goja.Undefined()
		}
		return m.vm.ToValue(result)
	})
}

// Throw raises err in the host runtime as an exception attributed to
// operation. It never returns: the exception leaves as a panic that goja
// turns into a JavaScript throw at the native call boundary.
func (m *Module) Throw(err error, operation string) {
	panic(m.Exception(err, operation))
}

// Exception returns the value Throw would raise for err. A captured host
// exception carried by err is consumed.
func (m *Module) Exception(err error, operation string) goja.Value {
	c := Classify(err)
	m.logger.Debug("raising host exception", zap.String("operation", operation), zap.Object("error", c))

	switch {
	case c.Pending != nil:
		return c.Pending.Value()
	case c.Thrown != nil:
		action := c.Thrown.Rethrow()
		if action.Kind == RethrowOriginal && action.runtime == m.vm {
			return action.Value
		}
		return m.plainError(action.Message)
	}

	if obj := m.NewError(c.Kind, c.Message, operation, c.Props); obj != nil {
		return obj
	}
	// Make sure we still throw something.
	return m.plainError(c.Message)
}

// Call is the invocation of an exported operation.
type Call struct {
	goja.FunctionCall
	m *Module
}

// StringArg returns argument i converted to a string.
func (c Call) StringArg(i int) string {
	return c.Argument(i).String()
}

// Callback returns argument i as a host function.
func (c Call) Callback(i int) (Callback, error) {
	fn, ok := goja.AssertFunction(c.Argument(i))
	if !ok {
		return Callback{}, fmt.Errorf("argument %d is not a function", i)
	}
	return Callback{m: c.m, fn: fn}, nil
}

// Callback is a host function handed to native code.
type Callback struct {
	m  *Module
	fn goja.Callable
}

// Invoke calls the host function. Anything it throws is captured and
// returned as the unclassified I/O error produced by WrapThrown, so the
// original value can be rethrown once control returns to the runtime.
func (cb Callback) Invoke(args ...any) (goja.Value, error) {
	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = cb.m.vm.ToValue(arg)
	}

	result, err := cb.fn(goja.Undefined(), values...)
	if err != nil {
		var ex *goja.Exception
		if errors.As(err, &ex) {
			return nil, WrapThrown(CaptureThrown(cb.m.vm, ex.Value()))
		}
		return nil, err
	}
	return result, nil
}

// CallbackError converts an error message reported by the host callback fn
// into the protocol error native stores return.
func CallbackError(fn, message string) error {
	return protocol.NewApplicationCallback(fn, &callbackError{message: message})
}

type callbackError struct {
	message string
}

func (e *callbackError) Error() string { return "callback error " + e.message }
