package bridge

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/otelwasm/jsbridge/native/protocol"
)

// NewError constructs a host exception of class kind by calling the
// registered constructor with (message, kind|undefined, operation,
// props|undefined). It returns nil if the exception could not be built; the
// failure is logged and the caller must raise a plain error instead.
func (m *Module) NewError(kind Kind, message, operation string, props Props) *goja.Object {
	obj, err := m.construct(kind, message, operation, props)
	if err != nil {
		m.logger.Warn("could not construct "+kind.String(),
			zap.String("operation", operation),
			zap.String("failure", describeFailure(err)),
		)
		return nil
	}
	return obj
}

func (m *Module) construct(kind Kind, message, operation string, props Props) (*goja.Object, error) {
	class, vm, err := m.registry.class(kind)
	if err != nil {
		return nil, err
	}
	if vm != m.vm {
		return nil, fmt.Errorf("error classes belong to another runtime: %w", ErrRegistryNotInstalled)
	}

	var obj *goja.Object
	err = tryHost(func() error {
		nameArg := goja.Undefined()
		if kind != KindNone {
			nameArg = m.vm.ToValue(string(kind))
		}
		propsArg := goja.Undefined()
		if props != nil {
			p, err := m.propsObject(props)
			if err != nil {
				return err
			}
			propsArg = p
		}

		var err error
		obj, err = m.vm.New(class, m.vm.ToValue(message), nameArg, m.vm.ToValue(operation), propsArg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func (m *Module) propsObject(props Props) (*goja.Object, error) {
	obj := m.vm.NewObject()
	for key, value := range props {
		if err := obj.Set(key, m.toHost(value)); err != nil {
			return nil, fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return obj, nil
}

func (m *Module) toHost(value any) goja.Value {
	switch v := value.(type) {
	case protocol.Address:
		addr := m.vm.NewObject()
		_ = addr.Set("name", v.Name)
		_ = addr.Set("deviceId", v.DeviceID)
		return addr
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return m.vm.NewArray(items...)
	default:
		return m.vm.ToValue(v)
	}
}

// plainError returns a bare Error carrying message. It is what gets thrown
// when no registered class could be constructed.
func (m *Module) plainError(message string) goja.Value {
	var obj *goja.Object
	err := tryHost(func() error {
		var err error
		obj, err = m.vm.New(m.errorCtor, m.vm.ToValue(message))
		return err
	})
	if err != nil {
		return m.vm.NewGoError(errors.New(message))
	}
	return obj
}

// describeFailure renders a construction failure for logging.
func describeFailure(err error) (s string) {
	defer func() {
		if recover() != nil {
			s = couldNotPrint
		}
	}()
	return err.Error()
}
