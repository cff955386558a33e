package iban

import (
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expandBig is the literal reading of MOD 97-10: each letter becomes its
// two-digit code inside one big decimal numeral.
func expandBig(s string) *big.Int {
	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteString(strconv.Itoa(int(r-'A') + 10))
			continue
		}
		b.WriteRune(r)
	}
	n, ok := new(big.Int).SetString(b.String(), 10)
	if !ok {
		panic("not a numeral: " + b.String())
	}
	return n
}

func TestMod97MatchesBigIntegerArithmetic(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"CH3909000000306638172",
		"NL53ABNA0205986478",
		"GB82WEST12345698765432",
		"FR1420041010050500013M02606",
		"IT60X0542811101000000123456",
		"LI21088100002324013AA",
		"ZZ99ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ",
		"AA00000",
	}

	ninetySeven := big.NewInt(97)
	for _, in := range inputs {
		rearranged := in[4:] + in[:4]
		want := new(big.Int).Mod(expandBig(rearranged), ninetySeven).Int64()
		assert.Equal(t, int(want), mod97(rearranged), in)
	}
}

func TestMod97RotationReproducesRemainderOne(t *testing.T) {
	t.Parallel()

	valid := []string{
		"CH3909000000306638172",
		"NL53ABNA0205986478",
		"DE89370400440532013000",
		"IT60X0542811101000000123456",
	}
	for _, v := range valid {
		rearranged := v[4:] + v[:4]
		require.Equal(t, 1, mod97(rearranged), v)

		// Rotating the prefix back to the front restores the original value,
		// and rearranging it again yields the same remainder.
		restored := rearranged[len(rearranged)-4:] + rearranged[:len(rearranged)-4]
		require.Equal(t, v, restored)
		assert.Equal(t, 1, mod97(restored[4:]+restored[:4]), v)
	}
}

func TestMod97LetterExpansionIsConcatenation(t *testing.T) {
	t.Parallel()

	// "B1" reads as 111, not 11+1 or 1*10+1.
	assert.Equal(t, 111%97, mod97("B1"))
	assert.Equal(t, 3510%97, mod97("Z10"))
	assert.Equal(t, 10, mod97("A"))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	segments, err := parseFormat("1a5n5n12c")
	require.NoError(t, err)
	assert.Equal(t, []segment{{1, 'a'}, {5, 'n'}, {5, 'n'}, {12, 'c'}}, segments)

	for _, bad := range []string{"", "n", "5x", "12", "5n3"} {
		_, err := parseFormat(bad)
		assert.Error(t, err, bad)
	}
}
