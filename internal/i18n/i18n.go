package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language codes shipped with the site.
const (
	English = "en"
	Spanish = "es"
)

//go:embed locales/*.yaml
var embedded embed.FS

// Bundle holds one Dictionary per supported language. It is immutable after Load.
type Bundle struct {
	dict      map[string]Dictionary
	fallback  string
	supported map[string]struct{}
}

// Locales returns the dictionaries compiled into the binary, one <code>.yaml per language.
func Locales() fs.FS {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadEmbedded loads the dictionaries compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return Load(Locales(), English, []string{English, Spanish})
}

// Load reads <code>.yaml for every supported code from fsys.
func Load(fsys fs.FS, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{English, Spanish}
	}
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = English
	}
	b := &Bundle{
		dict:      map[string]Dictionary{},
		fallback:  fallback,
		supported: map[string]struct{}{},
	}
	for _, l := range supported {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" {
			continue
		}
		b.supported[l] = struct{}{}
		raw, err := fs.ReadFile(fsys, path.Join(l+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("load locale %s: %w", l, err)
		}
		var d Dictionary
		if err := yaml.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", l, err)
		}
		if d == nil {
			d = Dictionary{}
		}
		b.dict[l] = d
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %s not loaded", fallback)
	}
	return b, nil
}

// Supported returns the supported language codes, sorted.
func (b *Bundle) Supported() []string {
	out := make([]string, 0, len(b.supported))
	for k := range b.supported {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fallback returns the configured fallback language.
func (b *Bundle) Fallback() string { return b.fallback }

// IsSupported reports whether lang has a dictionary.
func (b *Bundle) IsSupported(lang string) bool {
	_, ok := b.supported[lang]
	return ok
}

// Dictionary returns the dictionary for lang.
func (b *Bundle) Dictionary(lang string) (Dictionary, bool) {
	d, ok := b.dict[lang]
	return d, ok
}

// T resolves key against lang's dictionary. A language without a dictionary
// resolves every key to itself.
func (b *Bundle) T(lang, key string) string {
	return Resolve(b.dict[lang], key)
}
