package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRows(t *testing.T) {
	t.Parallel()
	t.Run("list of objects", func(t *testing.T) {
		t.Parallel()

		rows, heading, err := tableRows([]map[string]interface{}{
			{"href": "/ip_lists/1", "name": "a"},
			{"href": "/ip_lists/2", "name": "b"},
		})
		require.NoError(t, err)
		assert.Empty(t, heading)
		require.Len(t, rows, 2)
		assert.Equal(t, "a", rows[0]["name"])
		assert.Equal(t, "/ip_lists/2", rows[1]["href"])
	})

	t.Run("single-key wrapper becomes the heading", func(t *testing.T) {
		t.Parallel()

		rows, heading, err := tableRows(map[string]interface{}{
			"clouds": []interface{}{
				map[string]interface{}{"name": "aws"},
				map[string]interface{}{"name": "azure"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "clouds", heading)
		require.Len(t, rows, 2)
	})

	t.Run("single object is one row", func(t *testing.T) {
		t.Parallel()

		rows, heading, err := tableRows(map[string]interface{}{"href": "/labels/1", "key": "env"})
		require.NoError(t, err)
		assert.Empty(t, heading)
		require.Len(t, rows, 1)
		assert.Equal(t, "env", rows[0]["key"])
	})

	t.Run("nil payload", func(t *testing.T) {
		t.Parallel()

		rows, _, err := tableRows(nil)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestFlattenMap(t *testing.T) {
	t.Parallel()

	flat := flattenMap(map[string]interface{}{
		"name": "internal",
		"scope": map[string]interface{}{
			"tenant": "t1",
		},
		"ip_ranges": []interface{}{
			map[string]interface{}{"from_ip": "10.0.0.0/8"},
		},
		"tags": []interface{}{"a", "b"},
	}, "")

	assert.Equal(t, "internal", flat["name"])
	assert.Equal(t, "t1", flat["scope_tenant"])
	assert.Equal(t, "1 items", flat["ip_ranges"])
	assert.Equal(t, "a, b", flat["tags"])
}

func TestColumnSet(t *testing.T) {
	t.Parallel()

	columns := columnSet([]map[string]string{
		{"name": "a", "href": "/1"},
		{"name": "b", "state": "enabled"},
	})
	assert.Equal(t, []string{"href", "name", "state"}, columns)
}
