package form_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alkaid-labs/fetch/form"
)

func TestFieldsNested(t *testing.T) {
	input := map[string]any{
		"name": "ada",
		"profile": map[string]any{
			"age":  36,
			"city": "london",
		},
		"tags": []any{"a", "b", "c"},
	}

	fields := form.Fields(input)

	expected := []form.Field{
		{Name: "name", Value: "ada"},
		{Name: "profile.age", Value: "36"},
		{Name: "profile.city", Value: "london"},
		{Name: "tags[0]", Value: "a"},
		{Name: "tags[1]", Value: "b"},
		{Name: "tags[2]", Value: "c"},
	}
	assert.Equal(t, expected, fields)
}

func TestFieldsDeepNesting(t *testing.T) {
	input := map[string]any{
		"items": []any{
			map[string]any{"id": 1},
			[]any{"x", "y"},
		},
	}

	fields := form.Fields(input)

	expected := []form.Field{
		{Name: "items[0].id", Value: "1"},
		{Name: "items[1][0]", Value: "x"},
		{Name: "items[1][1]", Value: "y"},
	}
	assert.Equal(t, expected, fields)
}

func TestFieldsArrayArity(t *testing.T) {
	input := map[string]any{
		"list": []any{"a", nil, "c"},
	}

	fields := form.Fields(input)

	require.Len(t, fields, 3)
	for i, f := range fields {
		assert.Equal(t, "list["+strconv.Itoa(i)+"]", f.Name)
	}
	assert.Equal(t, "", fields[1].Value)
}

func TestFieldsBlobTerminal(t *testing.T) {
	file := form.NewFile("report.txt", []byte("hello"))
	input := map[string]any{
		"meta": map[string]any{
			"attachment": file,
		},
		"raw": []byte{0x1, 0x2},
	}

	fields := form.Fields(input)

	require.Len(t, fields, 2)
	assert.Equal(t, "meta.attachment", fields[0].Name)
	assert.Same(t, file, fields[0].File)
	assert.Equal(t, "raw", fields[1].Name)
	require.NotNil(t, fields[1].File)
}

func TestFieldsNilMembersSkipped(t *testing.T) {
	input := map[string]any{
		"present": "yes",
		"absent":  nil,
	}

	fields := form.Fields(input)

	require.Len(t, fields, 1)
	assert.Equal(t, "present", fields[0].Name)
}

func TestFieldsScalars(t *testing.T) {
	input := map[string]any{
		"b": true,
		"f": 1.5,
		"i": int64(-7),
		"u": uint(9),
	}

	fields := form.Fields(input)

	expected := []form.Field{
		{Name: "b", Value: "true"},
		{Name: "f", Value: "1.5"},
		{Name: "i", Value: "-7"},
		{Name: "u", Value: "9"},
	}
	assert.Equal(t, expected, fields)
}

func TestFieldsStructTags(t *testing.T) {
	type payload struct {
		UserName string `json:"user_name"`
		Internal string `json:"-"`
		Plain    int
		hidden   string
	}

	fields := form.Fields(map[string]any{
		"p": payload{UserName: "ada", Internal: "skip", Plain: 2, hidden: "x"},
	})

	expected := []form.Field{
		{Name: "p.user_name", Value: "ada"},
		{Name: "p.Plain", Value: "2"},
	}
	assert.Equal(t, expected, fields)
}

func TestFieldsNonContainerInput(t *testing.T) {
	assert.Nil(t, form.Fields(nil))
	assert.Nil(t, form.Fields("scalar"))
	assert.Nil(t, form.Fields([]byte("blob")))
}

func TestFieldsRoundTrip(t *testing.T) {
	input := map[string]any{
		"a":    map[string]any{"b": "1", "c": "2"},
		"list": []any{"x", map[string]any{"y": "z"}},
		"top":  "v",
	}

	rebuilt := reconstruct(form.Fields(input))

	assert.Equal(t, input, rebuilt)
}

func TestValuesSkipsBinary(t *testing.T) {
	values := form.Values(map[string]any{
		"page": 2,
		"file": form.NewFile("f.bin", []byte{0x0}),
	})

	assert.Equal(t, map[string]string{"page": "2"}, values)
}

func TestBuildPreservesOrder(t *testing.T) {
	fields := []form.Field{
		{Name: "z", Value: "last-name-first"},
		{Name: "a", Value: "second"},
		{Name: "doc", File: form.NewFile("doc.txt", []byte("content"))},
	}

	body, contentType, err := form.Build(fields)
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	reader := multipart.NewReader(bytes.NewReader(body.Bytes()), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "z", part.FormName())

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "a", part.FormName())

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "doc", part.FormName())
	assert.Equal(t, "doc.txt", part.FileName())
	assert.Contains(t, part.Header.Get("Content-Type"), "text/plain")
	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestBuildGeneratesFilenames(t *testing.T) {
	body, contentType, err := form.Build([]form.Field{
		{Name: "blob", File: &form.File{Reader: strings.NewReader("x")}},
	})
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	reader := multipart.NewReader(bytes.NewReader(body.Bytes()), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(part.FileName(), "upload-"))
	assert.Equal(t, "application/octet-stream", part.Header.Get("Content-Type"))
}

var indexRe = regexp.MustCompile(`^(.*?)\[(\d+)\]$`)

// reconstruct reverses the dotted/indexed naming for text-only fields.
func reconstruct(fields []form.Field) map[string]any {
	root := map[string]any{}
	for _, f := range fields {
		insert(root, strings.Split(f.Name, "."), f.Value)
	}
	return root
}

func insert(node map[string]any, segs []string, value string) {
	seg := segs[0]

	if m := indexRe.FindStringSubmatch(seg); m != nil {
		base := m[1]
		idx, _ := strconv.Atoi(m[2])
		list, _ := node[base].([]any)
		for len(list) <= idx {
			list = append(list, nil)
		}
		if len(segs) == 1 {
			list[idx] = value
		} else {
			child, _ := list[idx].(map[string]any)
			if child == nil {
				child = map[string]any{}
			}
			insert(child, segs[1:], value)
			list[idx] = child
		}
		node[base] = list
		return
	}

	if len(segs) == 1 {
		node[seg] = value
		return
	}
	child, _ := node[seg].(map[string]any)
	if child == nil {
		child = map[string]any{}
	}
	insert(child, segs[1:], value)
	node[seg] = child
}
