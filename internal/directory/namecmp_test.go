package directory

import "testing"

func TestNameCmpShorterNameSortsFirst(t *testing.T) {
	// "b" is shorter than "aa" in UTF-16+NUL byte length (4 vs 6), so it
	// must sort first even though "aa" < "b" alphabetically. This is the
	// format's actual, mandated ordering.
	if diff := NameCmp("b", "aa"); diff >= 0 {
		t.Fatalf("NameCmp(%q, %q) = %d, want < 0 (shorter name sorts first)", "b", "aa", diff)
	}
	if diff := NameCmp("aa", "b"); diff <= 0 {
		t.Fatalf("NameCmp(%q, %q) = %d, want > 0", "aa", "b", diff)
	}
}

func TestNameCmpEqualLengthCaseFolded(t *testing.T) {
	if diff := NameCmp("abc", "ABC"); diff != 0 {
		t.Fatalf("NameCmp(%q, %q) = %d, want 0 (case-insensitive)", "abc", "ABC", diff)
	}
	if diff := NameCmp("abc", "abd"); diff >= 0 {
		t.Fatalf("NameCmp(%q, %q) = %d, want < 0", "abc", "abd", diff)
	}
}
