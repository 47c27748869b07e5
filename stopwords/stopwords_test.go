package stopwords

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/maruel/natural"
	"golang.org/x/text/language"
)

func TestByLanguage(t *testing.T) {
	set, err := ByLanguage("English")
	if err != nil {
		t.Fatalf("ByLanguage(English) error = %v", err)
	}
	if len(set) == 0 {
		t.Fatal("English stoplist is empty")
	}
	for _, w := range []string{"the", "and", "of"} {
		if _, ok := set[w]; !ok {
			t.Errorf("English stoplist is missing %q", w)
		}
	}
	for w := range set {
		if w != strings.ToLower(w) {
			t.Errorf("stoplist word %q is not lowercase", w)
		}
	}
}

func TestByLanguage_CaseInsensitive(t *testing.T) {
	for _, name := range []string{"english", "ENGLISH", "eNgLiSh"} {
		if _, err := ByLanguage(name); err != nil {
			t.Errorf("ByLanguage(%q) error = %v", name, err)
		}
	}
}

func TestByLanguage_Unknown(t *testing.T) {
	_, err := ByLanguage("Klingon")
	if err == nil {
		t.Fatal("ByLanguage(Klingon) expected error")
	}
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("error = %v, want ErrUnknownLanguage", err)
	}
}

func TestByLanguage_SameSetOnRepeatedLookup(t *testing.T) {
	first, err := ByLanguage("German")
	if err != nil {
		t.Fatalf("ByLanguage(German) error = %v", err)
	}
	second, err := ByLanguage("german")
	if err != nil {
		t.Fatalf("ByLanguage(german) error = %v", err)
	}
	if len(first) != len(second) {
		t.Errorf("repeated lookups differ: %d vs %d words", len(first), len(second))
	}
}

func TestByTag(t *testing.T) {
	if _, err := ByTag(language.English); err != nil {
		t.Errorf("ByTag(en) error = %v", err)
	}
	if _, err := ByTag(language.MustParse("de-AT")); err != nil {
		t.Errorf("ByTag(de-AT) error = %v", err)
	}
	if _, err := ByTag(language.MustParse("zu")); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("ByTag(zu) error = %v, want ErrUnknownLanguage", err)
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) == 0 {
		t.Fatal("no bundled languages")
	}
	if !sort.IsSorted(natural.StringSlice(langs)) {
		t.Error("Languages() is not naturally sorted")
	}
	found := false
	for _, l := range langs {
		if l == "English" {
			found = true
		}
		if _, err := ByLanguage(l); err != nil {
			t.Errorf("bundled language %q does not load: %v", l, err)
		}
	}
	if !found {
		t.Error("catalog does not list English")
	}
}

func TestLoad(t *testing.T) {
	set, err := Load(strings.NewReader("one\n\n two \nthree\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("got %d words, want 3", len(set))
	}
	for _, w := range []string{"one", "two", "three"} {
		if _, ok := set[w]; !ok {
			t.Errorf("missing %q", w)
		}
	}
}
