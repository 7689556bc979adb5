package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/otelwasm/jsbridge/native/backup"
	"github.com/otelwasm/jsbridge/native/devicetransfer"
	"github.com/otelwasm/jsbridge/native/net/cdsi"
	"github.com/otelwasm/jsbridge/native/net/svr"
	"github.com/otelwasm/jsbridge/native/protocol"
	"github.com/otelwasm/jsbridge/native/usernames"
)

// describeCaught runs call and reports the caught exception as JSON.
const describeCaught = `(function () {
  try {
    %s;
  } catch (e) {
    const errors = Native.Errors;
    return JSON.stringify({
      name: e.name,
      code: e.code,
      message: e.message,
      operationName: e.operationName,
      isError: e instanceof Error,
      isBase: e instanceof errors.LibSignalErrorBase,
      isKind: typeof e.code === 'string' && typeof errors[e.code] === 'function' && e instanceof errors[e.code],
      addr: e._addr,
      distributionId: e.distribution_id,
      retryAfterSecs: e.retryAfterSecs,
      triesRemaining: e.triesRemaining,
      unknownFields: e.unknownFields,
    });
  }
  return 'null';
})()`

func newTestBridge(t *testing.T, cfg *Config) (*Bridge, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	b, err := New(cfg, zap.New(core))
	require.NoError(t, err)
	return b, logs
}

func caught(t *testing.T, b *Bridge, call string) map[string]any {
	t.Helper()
	v, err := b.Run(context.Background(), "caught.js", fmt.Sprintf(describeCaught, call))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(v.String()), &out))
	require.NotNil(t, out, "%s did not throw", call)
	return out
}

func failing(err error) NativeFunc {
	return func(Call) (any, error) { return nil, err }
}

func TestThrowKinds(t *testing.T) {
	alice := protocol.Address{Name: "alice", DeviceID: 1}
	distributionID := uuid.MustParse("d1d1d1d1-7000-11eb-b32a-33b8a8a487a6")

	tests := []struct {
		name   string
		err    error
		want   string
		fields map[string]any
	}{
		{
			name:   "untrusted identity",
			err:    protocol.NewUntrustedIdentity(alice),
			want:   "UntrustedIdentity",
			fields: map[string]any{"addr": "alice"},
		},
		{
			name:   "invalid registration id",
			err:    protocol.NewInvalidRegistrationID(alice, 7),
			want:   "InvalidRegistrationId",
			fields: map[string]any{"addr": map[string]any{"name": "alice", "deviceId": float64(1)}},
		},
		{
			name:   "invalid sender key session",
			err:    protocol.NewInvalidSenderKeySession(distributionID),
			want:   "InvalidSenderKeySession",
			fields: map[string]any{"distributionId": distributionID.String()},
		},
		{
			name:   "rate limited",
			err:    cdsi.NewRateLimited(120),
			want:   "RateLimitedError",
			fields: map[string]any{"retryAfterSecs": float64(120)},
		},
		{
			name:   "restore failed",
			err:    svr.NewRestoreFailed(2),
			want:   "SvrRestoreFailed",
			fields: map[string]any{"triesRemaining": float64(2)},
		},
		{
			name:   "backup validation",
			err:    &backup.ReadError{Err: errors.New("missing frame"), FoundUnknownFields: []string{"Frame.chat", "Frame.call"}},
			want:   "BackupValidation",
			fields: map[string]any{"unknownFields": []any{"Frame.chat", "Frame.call"}, "message": "missing frame"},
		},
		{
			name: "username",
			err:  usernames.NicknameCannotStartWithDigit,
			want: "CannotStartWithDigit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBridge(t, nil)
			require.NoError(t, b.Export("fail", failing(tt.err)))

			got := caught(t, b, "Native.fail()")
			assert.Equal(t, tt.want, got["name"])
			assert.Equal(t, tt.want, got["code"])
			assert.Equal(t, "fail", got["operationName"])
			assert.Equal(t, true, got["isError"])
			assert.Equal(t, true, got["isBase"])
			assert.Equal(t, true, got["isKind"])
			for key, value := range tt.fields {
				assert.Equal(t, value, got[key], key)
			}
		})
	}
}

func TestThrowBaseClass(t *testing.T) {
	b, _ := newTestBridge(t, nil)
	require.NoError(t, b.Export("generateKey", failing(devicetransfer.ErrInternal)))

	got := caught(t, b, "Native.generateKey()")
	assert.Equal(t, "LibSignalError", got["name"])
	assert.Equal(t, "Generic", got["code"])
	assert.Equal(t, devicetransfer.ErrInternal.Error(), got["message"])
	assert.Equal(t, "generateKey", got["operationName"])
	assert.Equal(t, true, got["isBase"])
	assert.Equal(t, false, got["isKind"])
}

func TestThrowDebugLog(t *testing.T) {
	b, logs := newTestBridge(t, nil)
	require.NoError(t, b.Export("lookup", failing(cdsi.NewRateLimited(120))))

	caught(t, b, "Native.lookup()")

	entries := logs.FilterMessage("raising host exception").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "lookup", fields["operation"])

	errField, ok := fields["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "RateLimitedError", errField["kind"])
	props, ok := errField["props"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, uint32(120), props[PropRetryAfterSecs])
}

func TestConstructFailureStillThrows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.js")
	require.NoError(t, os.WriteFile(path, []byte(`(function (native) {
  class Broken extends Error {
    constructor() { throw new Error('constructor refused'); }
  }
  native.registerErrors({ LibSignalErrorBase: Broken });
  return {};
})`), 0o600))

	b, logs := newTestBridge(t, &Config{ErrorsModulePath: path})
	require.NoError(t, b.Export("fail", failing(protocol.NewUntrustedIdentity(protocol.Address{Name: "bob", DeviceID: 2}))))

	v, err := b.Run(context.Background(), "fail.js", `(function () {
  try {
    Native.fail();
  } catch (e) {
    return [e instanceof Error, e.message].join('|');
  }
  return 'no throw';
})()`)
	require.NoError(t, err)
	assert.Equal(t, "true|untrusted identity for address bob.2", v.String())

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "could not construct UntrustedIdentity", warnings[0].Message)
	fields := warnings[0].ContextMap()
	assert.Equal(t, "fail", fields["operation"])
	assert.Contains(t, fields["failure"], "constructor refused")
}

func TestCallbackRethrowsOriginal(t *testing.T) {
	b, _ := newTestBridge(t, nil)
	require.NoError(t, b.Export("withCallback", func(call Call) (any, error) {
		cb, err := call.Callback(0)
		if err != nil {
			return nil, err
		}
		if _, err := cb.Invoke("arg"); err != nil {
			return nil, fmt.Errorf("withCallback: %w", err)
		}
		return "done", nil
	}))

	tests := []struct {
		name   string
		script string
		want   string
	}{
		{
			name: "error object keeps identity",
			script: `const original = new TypeError('mine');
try { Native.withCallback(() => { throw original; }); } catch (e) { return String(e === original); }`,
			want: "true",
		},
		{
			name: "error subclass keeps identity",
			script: `class MyError extends Error {}
const original = new MyError('custom');
try { Native.withCallback(() => { throw original; }); } catch (e) { return String(e === original && e instanceof MyError); }`,
			want: "true",
		},
		{
			name: "string becomes plain error",
			script: `try { Native.withCallback(() => { throw 'plain text'; }); }
catch (e) { return [e instanceof Error, e instanceof Native.Errors.LibSignalErrorBase, e.message].join('|'); }`,
			want: "true|false|plain text",
		},
		{
			name: "number is stringified",
			script: `try { Native.withCallback(() => { throw 42; }); }
catch (e) { return [e instanceof Error, e.message].join('|'); }`,
			want: "true|42",
		},
		{
			name:   "no throw returns result",
			script: `return Native.withCallback((arg) => arg);`,
			want:   "done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := b.Run(context.Background(), "callback.js", "(function () {\n"+tt.script+"\nreturn 'no throw';\n})()")
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestPendingExceptionRethrown(t *testing.T) {
	b, _ := newTestBridge(t, nil)
	require.NoError(t, b.Export("direct", func(call Call) (any, error) {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			return nil, errors.New("expected a function")
		}
		_, err := fn(goja.Undefined())
		return nil, err
	}))

	v, err := b.Run(context.Background(), "pending.js", `(function () {
  const original = new RangeError('direct');
  try { Native.direct(() => { throw original; }); } catch (e) { return e === original; }
  return false;
})()`)
	require.NoError(t, err)
	assert.True(t, v.ToBoolean())
}

func TestSecondRegistrationThrows(t *testing.T) {
	b, _ := newTestBridge(t, nil)

	got := caught(t, b, "Native.registerErrors(Native.Errors)")
	assert.Equal(t, true, got["isBase"])
	assert.Equal(t, registerErrorsFunction, got["operationName"])
	assert.Contains(t, got["message"], ErrRegistryInstalled.Error())
}

func TestNew(t *testing.T) {
	writeModule := func(t *testing.T, src string) string {
		path := filepath.Join(t.TempDir(), "errors.js")
		require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
		return path
	}

	t.Run("default module exports every kind", func(t *testing.T) {
		_, err := New(&Config{RequireAllKinds: true}, nil)
		require.NoError(t, err)
	})

	t.Run("custom module name", func(t *testing.T) {
		b, err := New(&Config{ModuleName: "SignalClient"}, nil)
		require.NoError(t, err)
		v, err := b.Run(context.Background(), "name.js", "typeof SignalClient.Errors.LibSignalErrorBase")
		require.NoError(t, err)
		assert.Equal(t, "function", v.String())
	})

	t.Run("module never registers", func(t *testing.T) {
		path := writeModule(t, `(function (native) { return {}; })`)
		_, err := New(&Config{ErrorsModulePath: path}, nil)
		assert.ErrorIs(t, err, ErrRegistryNotInstalled)
	})

	t.Run("module is not a function", func(t *testing.T) {
		path := writeModule(t, `({})`)
		_, err := New(&Config{ErrorsModulePath: path}, nil)
		assert.Error(t, err)
	})

	t.Run("missing kinds rejected when required", func(t *testing.T) {
		path := writeModule(t, `(function (native) {
  native.registerErrors({ LibSignalErrorBase: class extends Error {} });
  return {};
})`)
		_, err := New(&Config{ErrorsModulePath: path, RequireAllKinds: true}, nil)
		assert.Error(t, err)

		_, err = New(&Config{ErrorsModulePath: path}, nil)
		assert.NoError(t, err)
	})

	t.Run("missing module file", func(t *testing.T) {
		_, err := New(&Config{ErrorsModulePath: filepath.Join(t.TempDir(), "absent.js")}, nil)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := New(&Config{ModuleName: "not a name"}, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestRunInterrupted(t *testing.T) {
	b, _ := newTestBridge(t, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := b.Run(ctx, "loop.js", "for (;;) {}")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	v, err := b.Run(context.Background(), "after.js", "1 + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.ToInteger())
}

func TestRunUncaught(t *testing.T) {
	b, _ := newTestBridge(t, nil)
	require.NoError(t, b.Export("fail", failing(&svr.Error{Kind: svr.DataMissing})))

	_, err := b.Run(context.Background(), "uncaught.js", "Native.fail()")
	var ex *goja.Exception
	require.ErrorAs(t, err, &ex)
	obj, ok := ex.Value().(*goja.Object)
	require.True(t, ok)
	assert.Equal(t, "SvrDataMissing", obj.Get("name").String())
}

func TestRunCancelledDoesNotInterruptNextRun(t *testing.T) {
	b, _ := newTestBridge(t, nil)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 500; i++ {
		_, _ = b.Run(cancelled, "cancelled.js", "1")

		v, err := b.Run(context.Background(), "next.js", "1 + 1")
		require.NoError(t, err, "iteration %d", i)
		assert.Equal(t, int64(2), v.ToInteger())
	}
}

func TestRunInterruptedWithLiveContext(t *testing.T) {
	b, _ := newTestBridge(t, nil)
	require.NoError(t, b.Export("halt", func(call Call) (any, error) {
		b.vm.Interrupt("halted")
		return nil, nil
	}))

	_, err := b.Run(context.Background(), "halt.js", "Native.halt(); for (;;) {}")
	var interrupted *goja.InterruptedError
	require.ErrorAs(t, err, &interrupted)
	assert.NotContains(t, err.Error(), "%!w")

	v, err := b.Run(context.Background(), "after.js", "'ok'")
	require.NoError(t, err)
	assert.Equal(t, "ok", v.String())
}

func TestExceptionWithoutRegistry(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	vm := goja.New()
	m := NewModule(vm, NewRegistry(false), zap.New(core))

	value := m.Exception(protocol.NewUntrustedIdentity(protocol.Address{Name: "a", DeviceID: 1}), "op")

	obj, ok := value.(*goja.Object)
	require.True(t, ok)
	assert.Equal(t, "Error", obj.Get("name").String())
	assert.Equal(t, "untrusted identity for address a.1", obj.Get("message").String())
	assert.True(t, goja.IsUndefined(obj.Get("code")))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "could not construct UntrustedIdentity", warnings[0].Message)
	assert.Contains(t, warnings[0].ContextMap()["failure"], ErrRegistryNotInstalled.Error())
}

func TestExceptionWithForeignRegistry(t *testing.T) {
	other := goja.New()
	registry := NewRegistry(false)
	module, err := other.RunString(`({ LibSignalErrorBase: class extends Error {} })`)
	require.NoError(t, err)
	require.NoError(t, registry.Install(other, module.(*goja.Object)))

	core, logs := observer.New(zapcore.DebugLevel)
	vm := goja.New()
	m := NewModule(vm, registry, zap.New(core))

	var thrown goja.Value
	func() {
		defer func() { thrown, _ = recover().(goja.Value) }()
		m.Throw(&svr.Error{Kind: svr.DataMissing}, "restore")
	}()

	obj, ok := thrown.(*goja.Object)
	require.True(t, ok)
	assert.Equal(t, "missing data", obj.Get("message").String())
	assert.Equal(t, "Error", obj.Get("name").String())
	assert.Len(t, logs.FilterLevelExact(zapcore.WarnLevel).All(), 1)
}
