package bridge

import (
	"sort"

	"go.uber.org/zap/zapcore"

	"github.com/otelwasm/jsbridge/native/protocol"
)

// MarshalLogObject implements zapcore.ObjectMarshaler. It never touches host
// values, so it is safe to call outside the runtime.
func (c Classification) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("kind", c.Kind.String())
	enc.AddString("message", c.Message)
	if c.Thrown != nil {
		enc.AddBool("rethrow", true)
	}
	if c.Pending != nil {
		enc.AddBool("pending", true)
	}
	if len(c.Props) > 0 {
		return enc.AddObject("props", c.Props)
	}
	return nil
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (p Props) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := p[k].(type) {
		case string:
			enc.AddString(k, v)
		case uint32:
			enc.AddUint32(k, v)
		case []string:
			if err := enc.AddArray(k, stringArray(v)); err != nil {
				return err
			}
		case protocol.Address:
			enc.AddString(k, v.String())
		default:
			if err := enc.AddReflected(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

type stringArray []string

func (a stringArray) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, s := range a {
		enc.AppendString(s)
	}
	return nil
}
