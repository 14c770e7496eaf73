package territory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptsNameVariants(t *testing.T) {
	cases := map[string]string{
		"Batna":          "Batna",
		"batna":          "Batna",
		"  BATNA ":       "Batna",
		"Sétif":          "Setif",
		"setif":          "Setif",
		"Tizi-Ouzou":     "Tizi Ouzou",
		"tizi ouzou":     "Tizi Ouzou",
		"M'Sila":         "M'Sila",
		"Msila":          "M'Sila",
		"Béjaïa":         "Bejaia",
		"Algiers":        "Alger",
		"Aïn Témouchent": "Ain Temouchent",
		"05":             "Batna",
		"5":              "Batna",
		"58":             "El Meniaa",
	}

	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			w, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, want, w.String())
			assert.True(t, w.Valid())
		})
	}
}

func TestParseRejectsPlaceholders(t *testing.T) {
	for _, raw := range []string{"", "   ", "Unknown", "unknown", "Bat", "N/A", "0", "59", "99", "005"} {
		t.Run(raw, func(t *testing.T) {
			w, err := Parse(raw)
			require.ErrorIs(t, err, ErrUnknownWilaya)
			assert.Equal(t, Invalid, w)
			assert.False(t, w.Valid())
		})
	}
}

func TestAllIsClosedAndRoundTrips(t *testing.T) {
	all := All()
	require.Len(t, all, 58)

	for _, w := range all {
		parsed, err := Parse(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, parsed)

		byCode, err := Parse(w.Code())
		require.NoError(t, err)
		assert.Equal(t, w, byCode)
	}
}

func TestTextMarshalling(t *testing.T) {
	var w Wilaya
	require.NoError(t, w.UnmarshalText([]byte("sétif")))
	assert.Equal(t, MustParse("Setif"), w)

	out, err := w.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Setif", string(out))

	assert.Error(t, w.UnmarshalText([]byte("Unknown")))

	out, err = Invalid.MarshalText()
	require.NoError(t, err)
	assert.Empty(t, out)
}
