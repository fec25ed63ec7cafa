// Package form flattens nested Go values into multipart form fields.
//
// The encoder walks an arbitrary value (maps, structs, slices, scalars,
// binary blobs) depth-first and produces an ordered, flat field list:
//   - Slice elements are keyed by positional index: key[0], key[1], ...
//   - Nested members are keyed by dotted paths: key.subKey
//   - Binary blobs (File, io.Reader, []byte) are terminal and emitted
//     verbatim as single file parts, never recursed into
//
// The encoder is total: it never fails, and values it does not recognize
// as containers are stringified in place.
//
// Example Usage:
//
//	fields := form.Fields(map[string]any{
//		"user": map[string]any{"name": "ada"},
//		"tags": []any{"a", "b"},
//	})
//	body, contentType, err := form.Build(fields)
package form
