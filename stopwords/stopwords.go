// Package stopwords bundles per-language stoplists for the classifier.
// Lists are shipped compressed inside the binary and parsed once, on first
// use, into membership sets. The registry is read-only after initialization
// and safe for concurrent lookups.
package stopwords

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/maruel/natural"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"jtx/justext"
)

//go:embed data/*.txt.gz
var stoplistFiles embed.FS

// ErrUnknownLanguage is returned when no bundled stoplist matches the
// requested language.
var ErrUnknownLanguage = errors.New("unknown language")

type entry struct {
	file string

	once sync.Once
	set  justext.Stoplist
	err  error
}

var (
	// lowercased language name -> lazily parsed stoplist
	registry = make(map[string]*entry)
	// bundled language names in natural order
	names []string
)

func init() {
	files, err := stoplistFiles.ReadDir("data")
	if err != nil {
		// embedded directory is part of the build
		panic(err)
	}
	for _, f := range files {
		name := strings.TrimSuffix(f.Name(), ".txt.gz")
		registry[strings.ToLower(name)] = &entry{file: "data/" + f.Name()}
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
}

// Languages returns names of all bundled stoplists.
func Languages() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// ByLanguage returns the bundled stoplist for the given language name. The
// lookup is case-insensitive. Unknown names yield an error wrapping
// ErrUnknownLanguage.
func ByLanguage(name string) (justext.Stoplist, error) {
	e, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("no bundled stoplist for %q: %w", name, ErrUnknownLanguage)
	}
	e.once.Do(func() {
		e.set, e.err = loadEmbedded(e.file)
	})
	return e.set, e.err
}

// ByTag resolves a stoplist through a BCP 47 language tag, trying the tag's
// English display name first and its base language next.
func ByTag(tag language.Tag) (justext.Stoplist, error) {
	if s, err := ByLanguage(display.English.Languages().Name(tag)); err == nil {
		return s, nil
	}
	if base, confidence := tag.Base(); confidence != language.No {
		if s, err := ByLanguage(display.English.Languages().Name(base)); err == nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no bundled stoplist for tag %s: %w", tag, ErrUnknownLanguage)
}

// Load parses a stoplist from plain text, one word per line, blank lines
// ignored. Words are expected to be lowercase already, the same format the
// bundled lists use.
func Load(r io.Reader) (justext.Stoplist, error) {
	set := make(justext.Stoplist)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		word := strings.TrimSpace(sc.Text())
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to read stoplist: %w", err)
	}
	return set, nil
}

func loadEmbedded(name string) (justext.Stoplist, error) {
	data, err := stoplistFiles.ReadFile(name)
	if err != nil {
		return nil, err
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decompress stoplist %s: %w", name, err)
	}
	defer r.Close()
	return Load(r)
}
