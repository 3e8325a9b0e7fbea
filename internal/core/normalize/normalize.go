// Package normalize folds numeric text to the ASCII form strconv accepts
// Pipeline order
// 1 UTF-8 repair: invalid bytes become U+FFFD so a corrupted line still fails to parse
// 2 Unicode NFKC normalization (fullwidth and other compatibility digits)
// 3 Width fold remaining fullwidth forms to ASCII
// 4 Map unicode minus signs to '-'
// 5 Trim format chars (BOM, zero-width space) at either end; inside the text they stay
// Whitespace is left alone: " 12" stays a parse failure with or without normalization
package normalize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer is concurrency safe when used with the pool below
type Normalizer struct{}

var chainPool = sync.Pool{
	New: func() any {
		// order mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			width.Fold,
			runes.Map(foldMinus),
		)
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" || isPlainASCII(s) {
		return s
	}

	s = strings.ToValidUTF8(s, string(utf8.RuneError))

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return s
	}
	return strings.TrimFunc(ns, isFormat)
}

func isFormat(r rune) bool { return unicode.Is(unicode.Cf, r) }

// foldMinus maps the minus-like code points NFKC keeps to ASCII hyphen-minus
func foldMinus(r rune) rune {
	switch r {
	case '\u2212', '\u2012', '\u2013', '\ufe63':
		return '-'
	default:
		return r
	}
}

// isPlainASCII is the fast path: printable ASCII never changes
func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
