package iban_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ibankit/pkg/iban"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := iban.DefaultRegistry()
	require.NotNil(t, reg)
	assert.Same(t, reg, iban.DefaultRegistry())

	ch, ok := reg.Lookup("CH")
	require.True(t, ok)
	assert.Equal(t, 21, ch.Length)
	assert.Equal(t, 0, ch.ClearingOffset)
	assert.Equal(t, 5, ch.ClearingLength)
	assert.True(t, ch.HasClearingNumber())

	nl, ok := reg.Lookup("NL")
	require.True(t, ok)
	assert.Equal(t, 18, nl.Length)

	no, ok := reg.Lookup("NO")
	require.True(t, ok, "NO must decode as a string, not a boolean")
	assert.Equal(t, "Norway", no.Name)

	_, ok = reg.Lookup("XK")
	assert.False(t, ok)

	countries := reg.Countries()
	require.Len(t, countries, reg.Len())
	for n := 1; n < len(countries); n++ {
		assert.Less(t, countries[n-1].Code, countries[n].Code)
	}
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("rejects inconsistent rules", func(t *testing.T) {
		t.Parallel()
		bad := []iban.CountryRule{
			{Code: "ch", Length: 21, Format: "5n12c"},
			{Code: "CHE", Length: 21, Format: "5n12c"},
			{Code: "ZZ", Length: 21, Format: "5n12c"},
			{Code: "CH", Length: 4, Format: "5n12c"},
			{Code: "CH", Length: 35, Format: "5n12c"},
			{Code: "CH", Length: 21, Format: "5n11c"},
			{Code: "CH", Length: 21, Format: "5x12c"},
			{Code: "CH", Length: 21, Format: ""},
			{Code: "CH", Length: 21, Format: "5n12c", ClearingOffset: 15, ClearingLength: 5},
			{Code: "CH", Length: 21, Format: "5n12c", ClearingOffset: -1, ClearingLength: 5},
		}
		for _, rule := range bad {
			_, err := iban.NewRegistry(rule)
			assert.ErrorIs(t, err, iban.ErrInvalidRule, "%+v", rule)
		}
	})

	t.Run("custom rules drive validation and extraction", func(t *testing.T) {
		t.Parallel()
		reg, err := iban.NewRegistry(iban.CountryRule{
			Code: "XK", Name: "Kosovo", Length: 20, Format: "4n10n2n",
			ClearingOffset: 0, ClearingLength: 4,
		})
		require.NoError(t, err)

		valid := iban.New("XK05 1212 0123 4567 8906")
		require.NoError(t, reg.Validate(valid))

		cn, err := reg.ClearingNumber(valid)
		require.NoError(t, err)
		assert.Equal(t, "1212", cn)

		// CH is unknown here, so generic rules apply and extraction is unavailable.
		ch := iban.New("CH3909000000306638172")
		require.NoError(t, reg.Validate(ch))
		_, err = reg.ClearingNumber(ch)
		assert.ErrorIs(t, err, iban.ErrClearingNumberUnavailable)
	})

	t.Run("rule without clearing field", func(t *testing.T) {
		t.Parallel()
		reg, err := iban.NewRegistry(iban.CountryRule{Code: "XK", Length: 20, Format: "16n"})
		require.NoError(t, err)

		_, err = reg.ClearingNumber(iban.New("XK051212012345678906"))
		assert.ErrorIs(t, err, iban.ErrClearingNumberUnavailable)
	})
}

func TestRegistry_With(t *testing.T) {
	t.Parallel()

	base := iban.DefaultRegistry()
	ext, err := base.With(iban.CountryRule{
		Code: "XK", Name: "Kosovo", Length: 20, Format: "4n10n2n", ClearingLength: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, base.Len()+1, ext.Len())
	_, ok := base.Lookup("XK")
	assert.False(t, ok, "base registry must not change")

	cn, err := ext.ClearingNumber(iban.New("XK051212012345678906"))
	require.NoError(t, err)
	assert.Equal(t, "1212", cn)

	// A stricter Swiss rule in the extension overrides the embedded one.
	strict, err := base.With(iban.CountryRule{Code: "CH", Length: 21, Format: "17n", ClearingLength: 5})
	require.NoError(t, err)
	assert.NoError(t, strict.Validate(iban.New("CH3909000000306638172")))
	assert.ErrorIs(t, strict.Validate(iban.New("CH450900000030663817A")), iban.ErrInvalidBBAN)
	assert.NoError(t, base.Validate(iban.New("CH450900000030663817A")))
	assert.NoError(t, strict.Validate(iban.New("LI21088100002324013AA")), "LI keeps its own rule")

	_, err = base.With(iban.CountryRule{Code: "XK", Length: 20, Format: "1n"})
	assert.ErrorIs(t, err, iban.ErrInvalidRule)
}

func TestLoadRegistry(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()
		doc := `
countries:
  - code: CH
    name: Switzerland
    length: 21
    format: 5n12c
    clearing_offset: 0
    clearing_length: 5
  - {code: "NO", name: Norway, length: 15, format: 4n6n1n, clearing_length: 4}
`
		reg, err := iban.LoadRegistry(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, 2, reg.Len())

		cn, err := reg.ClearingNumber(iban.New("NO93 8601 1117 947"))
		require.NoError(t, err)
		assert.Equal(t, "8601", cn)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := iban.LoadRegistry(strings.NewReader("countries: [\n"))
		assert.ErrorIs(t, err, iban.ErrParsingRegistry)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		_, err := iban.LoadRegistry(strings.NewReader("countries:\n  - {code: CH, lenght: 21}\n"))
		assert.ErrorIs(t, err, iban.ErrParsingRegistry)
	})

	t.Run("inconsistent rule", func(t *testing.T) {
		t.Parallel()
		_, err := iban.LoadRegistry(strings.NewReader("countries:\n  - {code: CH, length: 21, format: 5n}\n"))
		assert.ErrorIs(t, err, iban.ErrInvalidRule)
	})
}
