package advisory

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsight_AlwaysAdvisoryOnly(t *testing.T) {
	in := Insight{
		Score:       72.5,
		Rationale:   "late deliveries",
		Confidence:  0.6,
		DataSources: []string{"delivery_history"},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, true, m["advisory_only"])
	assert.Equal(t, 72.5, m["score"])
	assert.Equal(t, []any{"delivery_history"}, m["data_sources"])

	var back Insight
	require.NoError(t, json.Unmarshal([]byte(`{"score":10,"confidence":0.2,"advisory_only":false}`), &back))
	out, err := json.Marshal(back)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"advisory_only":true`)
}

func TestNone(t *testing.T) {
	n := None("insufficient history")
	assert.False(t, n.HasSignal())

	raw, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"data_sources":[]`)
}
