package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Field is one flattened form entry. A nil File means a text field.
type Field struct {
	Name  string
	Value string
	File  *File
}

// File is a binary form value. It is always terminal: the encoder never
// recurses into file content.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// NewFile wraps in-memory content as a file part, sniffing the content type.
func NewFile(name string, content []byte) *File {
	return &File{
		Name:        name,
		ContentType: mimetype.Detect(content).String(),
		Reader:      bytes.NewReader(content),
	}
}

// FileFromReader wraps a streaming reader as a file part. The content type
// is left for the transport to default.
func FileFromReader(name string, r io.Reader) *File {
	return &File{Name: name, Reader: r}
}

// Fields flattens v into an ordered, flat field list. The input is expected
// to be a string-keyed map or a struct; anything else yields no fields.
// Flattening is total and never fails.
func Fields(v any) []Field {
	if v == nil {
		return nil
	}
	switch v.(type) {
	case *File, File, []byte, json.Number, time.Time, io.Reader:
		return nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Map && rv.Kind() != reflect.Struct {
		return nil
	}

	var out []Field
	appendValue(&out, "", rv.Interface())
	return out
}

// Values projects the text fields of v for use as query parameters.
// Binary fields are skipped.
func Values(v any) map[string]string {
	fields := Fields(v)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		if f.File != nil {
			continue
		}
		out[f.Name] = f.Value
	}
	return out
}

func appendValue(out *[]Field, key string, v any) {
	if v == nil {
		return
	}

	// Terminal cases first: blobs are emitted verbatim, never recursed.
	switch t := v.(type) {
	case *File:
		if t != nil {
			*out = append(*out, Field{Name: key, File: t})
		}
		return
	case File:
		*out = append(*out, Field{Name: key, File: &t})
		return
	case []byte:
		*out = append(*out, Field{Name: key, File: &File{
			ContentType: mimetype.Detect(t).String(),
			Reader:      bytes.NewReader(t),
		}})
		return
	case json.Number:
		*out = append(*out, Field{Name: key, Value: t.String()})
		return
	case time.Time:
		*out = append(*out, Field{Name: key, Value: t.Format(time.RFC3339)})
		return
	case io.Reader:
		*out = append(*out, Field{Name: key, File: &File{Reader: t}})
		return
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			name := fmt.Sprintf("%s[%d]", key, i)
			elem := rv.Index(i)
			if isNil(elem) {
				// Nil elements still occupy their index slot
				*out = append(*out, Field{Name: name})
				continue
			}
			appendValue(out, name, elem.Interface())
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			// Unrecognized container, treated as a terminal
			*out = append(*out, Field{Name: key, Value: stringify(v)})
			return
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			member := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()))
			appendValue(out, childKey(key, k), member.Interface())
		}
	case reflect.Struct:
		appendStruct(out, key, rv)
	default:
		*out = append(*out, Field{Name: key, Value: stringify(v)})
	}
}

func appendStruct(out *[]Field, key string, rv reflect.Value) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := strings.Split(f.Tag.Get("json"), ",")[0]
		if tag == "-" {
			continue
		}
		if f.Anonymous && tag == "" {
			appendValue(out, key, rv.Field(i).Interface())
			continue
		}
		name := f.Name
		if tag != "" {
			name = tag
		}
		appendValue(out, childKey(key, name), rv.Field(i).Interface())
	}
}

func childKey(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
