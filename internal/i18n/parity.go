package i18n

import (
	"fmt"
	"sort"
	"strings"
)

// ParityError lists, per language, the dotted keys present in some other
// dictionary but missing from that language.
type ParityError struct {
	Missing map[string][]string
}

func (e *ParityError) Error() string {
	langs := make([]string, 0, len(e.Missing))
	for l := range e.Missing {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		parts = append(parts, fmt.Sprintf("%s missing %d key(s): %s", l, len(e.Missing[l]), strings.Join(e.Missing[l], ", ")))
	}
	return "i18n: dictionaries diverge: " + strings.Join(parts, "; ")
}

// CheckParity compares the flattened key sets of all dictionaries in b and
// returns a *ParityError when any language lacks a key another one has.
func CheckParity(b *Bundle) error {
	union := map[string]struct{}{}
	flat := make(map[string]map[string]string, len(b.dict))
	for lang, d := range b.dict {
		f := Flatten(d)
		flat[lang] = f
		for k := range f {
			union[k] = struct{}{}
		}
	}
	missing := map[string][]string{}
	for lang, f := range flat {
		for k := range union {
			if _, ok := f[k]; !ok {
				missing[lang] = append(missing[lang], k)
			}
		}
		sort.Strings(missing[lang])
	}
	for lang, keys := range missing {
		if len(keys) == 0 {
			delete(missing, lang)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ParityError{Missing: missing}
}
