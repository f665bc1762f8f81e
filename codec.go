package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/hydrogen18/stalecucumber"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

type codec struct {
	encode func(v any) ([]byte, error)
	decode func(data []byte, v any) error
}

// codecs is indexed by Format. The set is closed: adding a format means adding
// a name to formatNames and an entry here.
var codecs = [...]codec{
	JSON:   {encode: json.Marshal, decode: json.Unmarshal},
	YAML:   {encode: yaml.Marshal, decode: yaml.Unmarshal},
	TOML:   {encode: encodeTOML, decode: toml.Unmarshal},
	INI:    {encode: encodeINI, decode: decodeINI},
	Pickle: {encode: encodePickle, decode: decodePickle},
}

// Marshal encodes v in format f. Codec failures, including encoder panics on
// unsupported kinds, are reported as ErrFormat.
func Marshal(f Format, v any) (data []byte, retErr error) {
	if !f.valid() {
		return nil, fmt.Errorf("%w: %w: %s", ErrFormat, ErrUnknownFormat, f)
	}
	// Guard against panics from encoders (e.g. yaml on func fields).
	defer func() {
		if r := recover(); r != nil {
			data = nil
			retErr = fmt.Errorf("%w as %s: %v", ErrFormat, f, r)
		}
	}()
	data, err := codecs[f].encode(v)
	if err != nil {
		return nil, fmt.Errorf("%w as %s: %w", ErrFormat, f, err)
	}
	return data, nil
}

// Unmarshal decodes data in format f into v, which must be a non-nil pointer.
func Unmarshal(f Format, data []byte, v any) (retErr error) {
	if !f.valid() {
		return fmt.Errorf("%w: %w: %s", ErrFormat, ErrUnknownFormat, f)
	}
	if rv := reflect.ValueOf(v); rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w as %s: decode target must be a non-nil pointer, got %T", ErrFormat, f, v)
	}
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("%w as %s: %v", ErrFormat, f, r)
		}
	}()
	if err := codecs[f].decode(data, v); err != nil {
		return fmt.Errorf("%w as %s: %w", ErrFormat, f, err)
	}
	return nil
}

func encodeTOML(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// structPointer returns a pointer to the struct held by v, copying v when it is
// passed by value. The ini reflector only accepts pointers to structs.
func structPointer(v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
		return v, nil
	}
	if rv.Kind() == reflect.Struct {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		return p.Interface(), nil
	}
	return nil, fmt.Errorf("value must be a struct or a pointer to a struct, got %T", v)
}

func encodeINI(v any) ([]byte, error) {
	ptr, err := structPointer(v)
	if err != nil {
		return nil, err
	}
	f := ini.Empty()
	if err := ini.ReflectFrom(f, ptr); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeINI(data []byte, v any) error {
	if _, err := structPointer(v); err != nil {
		return err
	}
	f, err := ini.Load(data)
	if err != nil {
		return err
	}
	return f.MapTo(v)
}

func encodePickle(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	var buf bytes.Buffer
	if _, err := stalecucumber.NewPickler(&buf).Pickle(rv.Interface()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodePickle unpickles into generic values first and lets mapstructure
// fill v, so maps at any depth decode into their typed Go counterparts.
func decodePickle(data []byte, v any) error {
	raw, err := stalecucumber.Unpickle(bytes.NewReader(data))
	if err != nil {
		return err
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		TagName:          "pickle",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(plainPickled(raw))
}

// plainPickled rewrites unpickled values into shapes mapstructure understands:
// dict keys become strings, longs become int64 or uint64 and None becomes nil.
func plainPickled(v any) any {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]any, len(x))
		for k, e := range x {
			m[fmt.Sprint(plainPickled(k))] = plainPickled(e)
		}
		return m
	case []interface{}:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = plainPickled(e)
		}
		return out
	case stalecucumber.PickleTuple:
		return plainPickled([]interface{}(x))
	case *big.Int:
		switch {
		case x.IsInt64():
			return x.Int64()
		case x.IsUint64():
			return x.Uint64()
		}
		return x.String()
	case stalecucumber.PickleNone:
		return nil
	}
	return v
}
