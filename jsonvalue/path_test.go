package jsonvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		path    Path
		str     string
		pointer string
	}{
		{nil, "$", ""},
		{Path{KeySegment("a")}, "$.a", "/a"},
		{Path{KeySegment("users"), IndexSegment(0), KeySegment("name")}, "$.users[0].name", "/users/0/name"},
		{Path{KeySegment("a.b")}, `$["a.b"]`, "/a.b"},
		{Path{KeySegment("")}, `$[""]`, "/"},
		{Path{KeySegment("x/y~z")}, `$["x/y~z"]`, "/x~1y~0z"},
		{Path{KeySegment("1st")}, `$["1st"]`, "/1st"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.path.String())
			assert.Equal(t, tt.pointer, tt.path.Pointer())
		})
	}
}

func TestPathAppendDoesNotAlias(t *testing.T) {
	base := make(Path, 1, 8)
	base[0] = KeySegment("root")

	a := base.AppendKey("a")
	b := base.AppendIndex(1)

	assert.Equal(t, "$.root.a", a.String())
	assert.Equal(t, "$.root[1]", b.String())
	assert.Len(t, base, 1)
	assert.True(t, a[:1].Equal(base))
	assert.False(t, a.Equal(b))
}

func TestPathMarshal(t *testing.T) {
	p := Path{KeySegment("items"), IndexSegment(2)}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `["items", 2]`, string(data))

	data, err = json.Marshal(Path{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	out, err := yaml.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, "- items\n- 2\n", string(out))
}
