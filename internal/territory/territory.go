// Package territory holds the closed set of Algerian wilayas used to scope
// representatives and clients.
package territory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownWilaya = errors.New("unknown wilaya")

// Wilaya is an administrative region, numbered by its official code (1..58).
// The zero value is Invalid.
type Wilaya uint8

const Invalid Wilaya = 0

// names is indexed by official code. Index 0 is unused.
var names = [...]string{
	"",
	"Adrar", "Chlef", "Laghouat", "Oum El Bouaghi", "Batna",
	"Bejaia", "Biskra", "Bechar", "Blida", "Bouira",
	"Tamanrasset", "Tebessa", "Tlemcen", "Tiaret", "Tizi Ouzou",
	"Alger", "Djelfa", "Jijel", "Setif", "Saida",
	"Skikda", "Sidi Bel Abbes", "Annaba", "Guelma", "Constantine",
	"Medea", "Mostaganem", "M'Sila", "Mascara", "Ouargla",
	"Oran", "El Bayadh", "Illizi", "Bordj Bou Arreridj", "Boumerdes",
	"El Tarf", "Tindouf", "Tissemsilt", "El Oued", "Khenchela",
	"Souk Ahras", "Tipaza", "Mila", "Ain Defla", "Naama",
	"Ain Temouchent", "Ghardaia", "Relizane", "Timimoun", "Bordj Badji Mokhtar",
	"Ouled Djellal", "Beni Abbes", "In Salah", "In Guezzam", "Touggourt",
	"Djanet", "El M'Ghair", "El Meniaa",
}

// Count is the number of valid wilayas.
const Count = len(names) - 1

var aliases = map[string]Wilaya{
	"algiers": 16,
	"tipasa":  42,
}

var byKey = func() map[string]Wilaya {
	m := make(map[string]Wilaya, Count+len(aliases))
	for code := 1; code <= Count; code++ {
		m[key(names[code])] = Wilaya(code)
	}
	for k, w := range aliases {
		m[k] = w
	}
	return m
}()

// Parse maps a stored or user supplied value onto a wilaya. It accepts the
// canonical name in any case, with or without accents and separators, and the
// numeric code ("05" or "5"). Placeholders such as "Unknown" and truncated
// names are rejected.
func Parse(raw string) (Wilaya, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Invalid, fmt.Errorf("%w: empty value", ErrUnknownWilaya)
	}

	if len(s) <= 2 && isDigits(s) {
		code, _ := strconv.Atoi(s)
		if code >= 1 && code <= Count {
			return Wilaya(code), nil
		}
		return Invalid, fmt.Errorf("%w: code %q", ErrUnknownWilaya, raw)
	}

	if w, ok := byKey[key(s)]; ok {
		return w, nil
	}
	return Invalid, fmt.Errorf("%w: %q", ErrUnknownWilaya, raw)
}

// MustParse is Parse for package level fixtures. It panics on bad input.
func MustParse(raw string) Wilaya {
	w, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return w
}

// All returns every valid wilaya ordered by code.
func All() []Wilaya {
	out := make([]Wilaya, 0, Count)
	for code := 1; code <= Count; code++ {
		out = append(out, Wilaya(code))
	}
	return out
}

func (w Wilaya) Valid() bool {
	return w >= 1 && int(w) <= Count
}

// String returns the canonical ASCII name, which is also the persisted form.
func (w Wilaya) String() string {
	if !w.Valid() {
		return "invalid"
	}
	return names[w]
}

// Code returns the two digit official code, e.g. "05" for Batna.
func (w Wilaya) Code() string {
	if !w.Valid() {
		return ""
	}
	return fmt.Sprintf("%02d", uint8(w))
}

func (w Wilaya) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return []byte(""), nil
	}
	return []byte(names[w]), nil
}

func (w *Wilaya) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// key folds accents and case and drops separators, so "Sétif", "SETIF" and
// "setif" share one lookup key.
func key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
