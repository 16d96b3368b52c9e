package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code with testify.
func AssertStatusCode(t *testing.T, scenario *Scenario, got int) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedCode, got,
		"[%s] HTTP status code mismatch", scenario.Name)
}

// AssertJSONBody deep-compares actual response bytes against the expected file
// contents using testify's assert.Equal after normalising both through JSON
// unmarshal (so key order and whitespace never matter).
// Reports field-level diffs on failure.
func AssertJSONBody(t *testing.T, scenario *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var expVal, actVal interface{}

	require.NoError(t,
		json.Unmarshal(expected, &expVal),
		"[%s] expected response file is not valid JSON", scenario.Name,
	)

	if !assert.NoError(t,
		json.Unmarshal(actual, &actVal),
		"[%s] actual response is not valid JSON\nbody: %s", scenario.Name, string(actual),
	) {
		return
	}

	// testify prints the diff.
	assert.Equal(t, expVal, actVal,
		"[%s] response body mismatch", scenario.Name)
}

// AssertLocation checks the redirect target.
func AssertLocation(t *testing.T, scenario *Scenario, got string) {
	t.Helper()
	assert.Equal(t, scenario.ExpectedLocation, got,
		"[%s] redirect location mismatch", scenario.Name)
}

// AssertFields checks expectedFields and absentFields against the decoded
// body. Paths are dotted; numeric segments index arrays ("data.orders.0.status").
// Numbers compare as float64, the way encoding/json decodes them.
func AssertFields(t *testing.T, scenario *Scenario, actual []byte) {
	t.Helper()

	var body interface{}
	if len(bytes.TrimSpace(actual)) > 0 {
		if !assert.NoError(t, json.Unmarshal(actual, &body),
			"[%s] response is not valid JSON\nbody: %s", scenario.Name, string(actual)) {
			return
		}
	}

	for path, want := range scenario.ExpectedFields {
		got, ok := Lookup(body, path)
		if !assert.True(t, ok, "[%s] %s: missing in response\nbody: %s", scenario.Name, path, string(actual)) {
			continue
		}
		assert.Equal(t, normalise(want), got, "[%s] %s mismatch", scenario.Name, path)
	}
	for _, path := range scenario.AbsentFields {
		_, ok := Lookup(body, path)
		assert.False(t, ok, "[%s] %s: should be absent\nbody: %s", scenario.Name, path, string(actual))
	}
}

// Lookup walks a decoded JSON value by dotted path.
func Lookup(v interface{}, path string) (interface{}, bool) {
	if path == "" {
		return v, true
	}
	for _, seg := range strings.Split(path, ".") {
		switch node := v.(type) {
		case map[string]interface{}:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			v = next
		case []interface{}:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			v = node[i]
		default:
			return nil, false
		}
	}
	return v, true
}

// normalise round-trips want through JSON so ints become float64.
func normalise(want interface{}) interface{} {
	raw, err := json.Marshal(want)
	if err != nil {
		return want
	}
	var out interface{}
	if json.Unmarshal(raw, &out) != nil {
		return want
	}
	return out
}

// ─── JSON diff helper (human-readable fallback) ───────────────────────────────

// DiffJSON returns a list of human-readable difference strings between two
// JSON-decoded values.  Used internally; testify's assert.Equal will already
// print a good diff, but this is kept for DumpScenario / manual use.
func DiffJSON(path string, expected, actual interface{}) []string {
	var diffs []string
	switch exp := expected.(type) {
	case map[string]interface{}:
		act, ok := actual.(map[string]interface{})
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected object, got %T", keyPath(path), actual))
		}
		for k, ev := range exp {
			p := keyPath(path) + "." + k
			av, exists := act[k]
			if !exists {
				diffs = append(diffs, fmt.Sprintf("  %s: missing in actual", p))
				continue
			}
			diffs = append(diffs, DiffJSON(p, ev, av)...)
		}
	case []interface{}:
		act, ok := actual.([]interface{})
		if !ok {
			return append(diffs, fmt.Sprintf("  %s: expected array, got %T", keyPath(path), actual))
		}
		if len(exp) != len(act) {
			diffs = append(diffs, fmt.Sprintf("  %s: array length expected=%d actual=%d", keyPath(path), len(exp), len(act)))
		}
		for i := 0; i < len(exp) && i < len(act); i++ {
			diffs = append(diffs, DiffJSON(fmt.Sprintf("%s[%d]", keyPath(path), i), exp[i], act[i])...)
		}
	default:
		if fmt.Sprintf("%v", expected) != fmt.Sprintf("%v", actual) {
			diffs = append(diffs, fmt.Sprintf("  %s:\n    - %v\n    + %v", keyPath(path), expected, actual))
		}
	}
	return diffs
}

func keyPath(path string) string {
	if path == "" {
		return "root"
	}
	return strings.TrimPrefix(path, ".")
}
