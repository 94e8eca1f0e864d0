package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity_UnmarshalLenient(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int64
	}{
		{`5`, 5},
		{`-3`, -3},
		{`"7"`, 7},
		{`" 12 "`, 12},
		{`2.6`, 3},  // rounds half away from zero
		{`-2.5`, -3},
		{`"oops"`, 0},
		{`null`, 0},
		{`""`, 0},
		{`{"a":1}`, 0},
	} {
		var q Quantity
		err := json.Unmarshal([]byte(tc.in), &q)
		require.NoError(t, err, "input %s", tc.in)
		assert.Equal(t, tc.want, q.Int64(), "input %s", tc.in)
	}
}

func TestMoney_UnmarshalLenient(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{`10.5`, "10.5"},
		{`"850"`, "850"},
		{`" 3.25 "`, "3.25"},
		{`-7`, "-7"},
		{`"garbage"`, "0"},
		{`null`, "0"},
		{`true`, "0"},
	} {
		var m Money
		err := json.Unmarshal([]byte(tc.in), &m)
		require.NoError(t, err, "input %s", tc.in)
		assert.True(t, m.Decimal.Equal(MustMoney(tc.want).Decimal),
			"input %s got %s", tc.in, m.Decimal)
	}
}

func TestMoney_MarshalAsNumber(t *testing.T) {
	out, err := json.Marshal(MustMoney("12.75"))
	require.NoError(t, err)
	assert.Equal(t, `"12.75"`, string(out))
}

func TestQuantity_MarshalAsNumber(t *testing.T) {
	out, err := json.Marshal(Quantity(-4))
	require.NoError(t, err)
	assert.Equal(t, `-4`, string(out))
}

func TestQuantity_Helpers(t *testing.T) {
	assert.Equal(t, Quantity(3), Quantity(-3).Abs())
	assert.Equal(t, Quantity(3), Quantity(3).Abs())
	assert.Equal(t, Quantity(-3), Quantity(3).Neg())
	assert.True(t, Quantity(0).IsZero())
}

func TestDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2026-08-28")
	require.NoError(t, err)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-08-28"`, string(out))

	var back Date
	require.NoError(t, json.Unmarshal(out, &back))
	assert.True(t, d.Equal(back))
}

func TestDate_UnmarshalAcceptsTimestamps(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-08-28T15:04:05Z"`), &d))
	assert.Equal(t, "2026-08-28", d.String())
}

func TestDate_UnmarshalLenient(t *testing.T) {
	for _, in := range []string{`null`, `"not a date"`, `42`} {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(in), &d), "input %s", in)
		assert.True(t, d.IsZero(), "input %s", in)
	}
}

func TestDate_Comparisons(t *testing.T) {
	a, _ := ParseDate("2026-01-01")
	b, _ := ParseDate("2026-01-02")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(a))
}
