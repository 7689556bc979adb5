package bridge

import (
	"fmt"
	"sync/atomic"

	"github.com/dop251/goja"
)

// Registry is the table of host exception classes, keyed by Kind, plus the
// base class. It is installed once and read without locking afterwards.
type Registry struct {
	requireAllKinds bool
	table           atomic.Pointer[classTable]
}

type classTable struct {
	vm    *goja.Runtime
	base  goja.Value
	kinds map[Kind]goja.Value
}

// NewRegistry returns an empty registry. When requireAllKinds is set,
// Install rejects errors modules that do not export a class for every Kind.
func NewRegistry(requireAllKinds bool) *Registry {
	return &Registry{requireAllKinds: requireAllKinds}
}

// Install reads the exception classes exported by errorsModule. Only the
// first successful call takes effect; later calls fail with
// ErrRegistryInstalled.
func (r *Registry) Install(vm *goja.Runtime, errorsModule *goja.Object) error {
	if r.table.Load() != nil {
		return ErrRegistryInstalled
	}

	t := &classTable{vm: vm, kinds: make(map[Kind]goja.Value, len(knownKinds))}
	err := tryHost(func() error {
		base := errorsModule.Get(BaseClassName)
		if _, ok := goja.AssertFunction(base); !ok {
			return fmt.Errorf("%s: %w", BaseClassName, ErrBaseClassMissing)
		}
		t.base = base

		for _, kind := range knownKinds {
			class := errorsModule.Get(string(kind))
			if _, ok := goja.AssertFunction(class); ok {
				t.kinds[kind] = class
				continue
			}
			if r.requireAllKinds {
				return fmt.Errorf("%s: %w", kind, ErrKindClassMissing)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !r.table.CompareAndSwap(nil, t) {
		return ErrRegistryInstalled
	}
	return nil
}

// Installed reports whether Install has succeeded.
func (r *Registry) Installed() bool {
	return r.table.Load() != nil
}

// class returns the constructor for kind, falling back to the base class
// for KindNone and for kinds the errors module does not export.
func (r *Registry) class(kind Kind) (goja.Value, *goja.Runtime, error) {
	t := r.table.Load()
	if t == nil {
		return nil, nil, ErrRegistryNotInstalled
	}
	if class, ok := t.kinds[kind]; ok {
		return class, t.vm, nil
	}
	return t.base, t.vm, nil
}

// tryHost runs fn and converts a host exception raised as a panic into an
// error. Other panics propagate.
func tryHost(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch x := r.(type) {
			case *goja.Exception:
				err = x
			case goja.Value:
				err = &hostFailure{value: x}
			default:
				panic(r)
			}
		}
	}()
	return fn()
}

// hostFailure is a host value raised while the bridge was calling into the
// runtime outside of a script.
type hostFailure struct {
	value goja.Value
}

func (f *hostFailure) Error() string { return safeString(f.value) }
