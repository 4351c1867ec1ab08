package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed2Marshal(t *testing.T) {
	cases := map[float64]string{
		29.1:   "29.10",
		0:      "0.00",
		123.45: "123.45",
		1.005:  "1.00", // binary rounding, 1.005 stores below the midpoint
	}
	for in, want := range cases {
		b, err := json.Marshal(Fixed2(in))
		require.NoError(t, err)
		assert.Equal(t, want, string(b), "in=%v", in)
	}
}

func TestFixed2Unmarshal(t *testing.T) {
	var f Fixed2
	require.NoError(t, json.Unmarshal([]byte("31.50"), &f))
	assert.InDelta(t, 31.5, float64(f), 1e-9)

	assert.Error(t, json.Unmarshal([]byte(`"x"`), &f))
}

func TestNewFixed2Nil(t *testing.T) {
	assert.Nil(t, NewFixed2(nil))
	v := 4.2
	require.NotNil(t, NewFixed2(&v))
	assert.Equal(t, Fixed2(4.2), *NewFixed2(&v))
}
