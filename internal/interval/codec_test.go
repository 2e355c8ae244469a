package interval

import (
	"encoding/json"
	"testing"

	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestJSONRoundTrip(t *testing.T) {
	original := iv(10, 50)

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start": 10, "end": 50}`, string(data))

	var restored Interval[quantity.Second]
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.True(t, original.Equal(restored))
}

func TestJSONRejectsInvertedInterval(t *testing.T) {
	var restored Interval[quantity.Second]
	err := json.Unmarshal([]byte(`{"start": 50, "end": 10}`), &restored)
	require.ErrorIs(t, err, ErrInvalidInterval)
}

func TestSetJSON(t *testing.T) {
	data, err := json.Marshal(set{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	var restored set
	require.NoError(t, json.Unmarshal([]byte(`[{"start": 20, "end": 30}, {"start": 0, "end": 25}]`), &restored))
	assert.True(t, restored.Equal(Single(iv(0, 30))), "decoded sets are canonicalized, got %s", restored)
}

func TestCtyRoundTrip(t *testing.T) {
	original := iv(1.5, 7)

	v, err := original.CtyValue()
	require.NoError(t, err)
	assert.True(t, v.Type().Equals(CtyType))

	restored, err := FromCtyValue[quantity.Second](v)
	require.NoError(t, err)
	assert.True(t, original.Equal(restored))
}

func TestFromCtyValue(t *testing.T) {
	testCases := []struct {
		name      string
		value     cty.Value
		expected  Interval[quantity.Second]
		expectErr bool
	}{
		{
			name:     "tuple pair",
			value:    cty.TupleVal([]cty.Value{cty.NumberIntVal(0), cty.NumberIntVal(100)}),
			expected: iv(0, 100),
		},
		{
			name:     "list pair",
			value:    cty.ListVal([]cty.Value{cty.NumberFloatVal(2.5), cty.NumberFloatVal(3)}),
			expected: iv(2.5, 3),
		},
		{
			name:      "wrong arity",
			value:     cty.TupleVal([]cty.Value{cty.NumberIntVal(0)}),
			expectErr: true,
		},
		{
			name:      "inverted pair",
			value:     cty.TupleVal([]cty.Value{cty.NumberIntVal(10), cty.NumberIntVal(0)}),
			expectErr: true,
		},
		{
			name:      "null",
			value:     cty.NullVal(CtyType),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromCtyValue[quantity.Second](tc.value)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}
