package cmd

import "testing"

func TestSplitElementPath(t *testing.T) {
	cases := []struct {
		path string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"docs", []string{"docs"}},
		{"docs/a.txt", []string{"docs", "a.txt"}},
		{"/docs/a.txt/", []string{"docs", "a.txt"}},
		{"a//b", []string{"a", "b"}},
	}
	for _, c := range cases {
		got := splitElementPath(c.path)
		if len(got) != len(c.want) {
			t.Fatalf("splitElementPath(%q) = %v, want %v", c.path, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("splitElementPath(%q) = %v, want %v", c.path, got, c.want)
			}
		}
	}
}

func TestElementParentPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"a.txt", ""},
		{"docs/a.txt", "docs"},
		{"docs/sub/a.txt", "docs/sub"},
		{"/docs/a.txt", "docs"},
	}
	for _, c := range cases {
		if got := elementParentPath(c.path); got != c.want {
			t.Errorf("elementParentPath(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}
