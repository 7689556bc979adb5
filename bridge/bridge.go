// Package bridge carries failures across the boundary between native Go code
// and an embedded JavaScript runtime.
//
// Native errors are classified into a stable taxonomy of exception kinds and
// raised as instances of the classes an errors module registers at startup.
// Exceptions thrown by script callbacks invoked from native code are captured,
// carried through native code as ordinary Go errors and rethrown unchanged at
// the next return into the runtime.
package bridge

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

//go:generate go run ../cmd/errorsgen -o errors.js

//go:embed errors.js
var defaultErrorsModule string

// Bridge owns a runtime with the native module and its errors module
// installed. A goja runtime is not safe for concurrent use, so every entry
// point serializes on the bridge.
type Bridge struct {
	mu       sync.Mutex
	vm       *goja.Runtime
	module   *Module
	registry *Registry
	logger   *zap.Logger
	cfg      *Config
}

// New creates a runtime, exposes the native module as the global
// cfg.ModuleName and evaluates the errors module, which must register its
// classes before New returns.
func New(cfg *Config, logger *zap.Logger) (*Bridge, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.Default()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	vm := goja.New()
	registry := NewRegistry(cfg.RequireAllKinds)
	module := NewModule(vm, registry, logger.Named("native"))
	if err := vm.Set(cfg.ModuleName, module.Object()); err != nil {
		return nil, fmt.Errorf("bridge: error exposing %s: %w", cfg.ModuleName, err)
	}

	name, src, err := cfg.errorsModuleSource()
	if err != nil {
		return nil, err
	}
	factory, err := vm.RunScript(name, src)
	if err != nil {
		return nil, fmt.Errorf("bridge: error evaluating errors module: %w", err)
	}
	install, ok := goja.AssertFunction(factory)
	if !ok {
		return nil, fmt.Errorf("bridge: %s does not evaluate to a function", name)
	}
	if _, err := install(goja.Undefined(), module.Object()); err != nil {
		return nil, fmt.Errorf("bridge: error installing errors module: %w", err)
	}
	if !registry.Installed() {
		return nil, fmt.Errorf("bridge: %s did not call %s: %w", name, registerErrorsFunction, ErrRegistryNotInstalled)
	}

	logger.Debug("errors module installed", zap.String("module", cfg.ModuleName), zap.String("source", name))
	return &Bridge{
		vm:       vm,
		module:   module,
		registry: registry,
		logger:   logger,
		cfg:      cfg,
	}, nil
}

// Module returns the native module.
func (b *Bridge) Module() *Module { return b.module }

// Export makes fn callable from scripts as <ModuleName>.<name>.
func (b *Bridge) Export(name string, fn NativeFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.module.Export(name, fn)
}

// Run evaluates src. Cancelling ctx interrupts the script. An exception
// escaping the script is returned as *goja.Exception.
func (b *Bridge) Run(ctx context.Context, name, src string) (goja.Value, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	interrupted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		b.vm.Interrupt(context.Cause(ctx))
		close(interrupted)
	})
	defer func() {
		// The interrupt must land before it is cleared, or it leaks into the
		// next script.
		if !stop() {
			<-interrupted
		}
		b.vm.ClearInterrupt()
	}()

	v, err := b.vm.RunScript(name, src)
	if err != nil {
		var ie *goja.InterruptedError
		if errors.As(err, &ie) && ctx.Err() != nil {
			return nil, fmt.Errorf("bridge: %s interrupted: %w", name, context.Cause(ctx))
		}
		return nil, err
	}
	return v, nil
}

// Do runs fn with exclusive access to the runtime.
func (b *Bridge) Do(fn func(vm *goja.Runtime) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.vm)
}
