package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money creation", func(t *testing.T) {
		m, err := NewMoney(1250, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(25), m.Numerator())
		assert.Equal(t, int64(2), m.Denominator())
	})

	t.Run("zero denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, 0)
		assert.Error(t, err)
	})

	t.Run("negative denominator returns error", func(t *testing.T) {
		_, err := NewMoney(100, -1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "positive")
	})

	t.Run("negative numerator allowed", func(t *testing.T) {
		m, err := NewMoney(-100, 1)
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("12.5")
	require.NoError(t, err)
	assert.Equal(t, "12.50", m.String())

	_, err = ParseMoney("twelve")
	assert.Error(t, err)
}

func TestMoney_Arithmetic(t *testing.T) {
	a := MustMoney(1250, 100)
	b := MustMoney(750, 100)

	assert.Equal(t, "20.00", a.Add(b).String())
	assert.Equal(t, "5.00", a.Subtract(b).String())
	assert.Equal(t, "37.50", a.MultiplyByInt(3).String())
	assert.Equal(t, 1, a.Cmp(b))
	assert.True(t, a.Equals(MustMoney(25, 2)))
}

func TestMoney_CmpFloat(t *testing.T) {
	m := MustMoney(1250, 100)

	assert.Equal(t, 0, m.CmpFloat(12.5))
	assert.Equal(t, 1, m.CmpFloat(12.49))
	assert.Equal(t, -1, m.CmpFloat(12.51))
	assert.Equal(t, -1, m.CmpFloat(math.Inf(1)))
	assert.Equal(t, 1, m.CmpFloat(math.Inf(-1)))
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Price *Money `json:"price"`
		None  *Money `json:"none"`
	}{Price: MustMoney(45, 1)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price":"45.00","none":null}`, string(data))

	var decoded struct {
		A *Money `json:"a"`
		B *Money `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"9.99","b":12.5}`), &decoded))
	assert.Equal(t, "9.99", decoded.A.String())
	assert.Equal(t, "12.50", decoded.B.String())
}

func TestMoney_CopyIsIndependent(t *testing.T) {
	original := MustMoney(10, 1)
	copied := original.Copy()
	rat := copied.Rat()
	rat.SetInt64(99)

	assert.Equal(t, "10.00", copied.String())
	assert.True(t, original.Equals(copied))
}
