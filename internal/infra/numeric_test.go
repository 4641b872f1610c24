package infra

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 250000, -8000, 999999999999999} {
		n := Int64ToNumeric(v)
		got, err := NumericToInt64(n)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestNumericToInt64PositiveExponent(t *testing.T) {
	// 5 * 10^3 = 5000
	n := pgtype.Numeric{Int: big.NewInt(5), Exp: 3, Valid: true}
	got, err := NumericToInt64(n)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got)
}

func TestNumericToInt64TruncatesFraction(t *testing.T) {
	// 12345 * 10^-2 = 123.45 -> 123
	n := pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}
	got, err := NumericToInt64(n)
	require.NoError(t, err)
	assert.Equal(t, int64(123), got)
}

func TestNumericToInt64Null(t *testing.T) {
	_, err := NumericToInt64(pgtype.Numeric{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NULL")
}

func TestNumericToInt64Overflow(t *testing.T) {
	big9 := new(big.Int).Exp(big.NewInt(10), big.NewInt(25), nil)
	_, err := NumericToInt64(pgtype.Numeric{Int: big9, Exp: 0, Valid: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflows")
}
