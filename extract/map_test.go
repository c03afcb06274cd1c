package extract

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestMap(t *testing.T) {
	m := NewMap()
	m.Set("paths", 1)
	m.Set("info", 2)
	m.Set("openapi", 3)
	m.Set("info", 4)

	assert.Equal(t, []string{"paths", "info", "openapi"}, m.Keys())
	assert.Equal(t, 3, m.Len())
	v, ok := m.Get("info")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	var nilMap *Map
	assert.Equal(t, 0, nilMap.Len())
	assert.Nil(t, nilMap.Keys())
	_, ok = nilMap.Get("x")
	assert.False(t, ok)
}

func TestMap_MarshalJSON(t *testing.T) {
	inner := NewMap()
	inner.Set("z", "<b>")
	inner.Set("a", []any{1, "two"})

	m := NewMap()
	m.Set("second", map[string]any{"y": 1, "x": 2})
	m.Set("first", inner)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"second":{"x":2,"y":1},"first":{"z":"<b>","a":[1,"two"]}}`, string(data))

	data, err = json.Marshal(NewMap())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestMap_MarshalYAML(t *testing.T) {
	inner := NewMap()
	inner.Set("zeta", true)
	inner.Set("alpha", "x")

	m := NewMap()
	m.Set("openapi", "3.0.3")
	m.Set("components", inner)

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "openapi: 3.0.3\ncomponents:\n"), out)
	assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, map[string]any{"zeta": true, "alpha": "x"}, back["components"])
}
