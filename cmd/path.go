package cmd

import (
	"errors"
	"strings"

	"github.com/deploymenttheory/go-cfb/pkg/cfb"
)

// splitElementPath splits a slash-separated in-container path ("docs/a.txt")
// into its components, ignoring leading/trailing/empty segments so "/",
// "" and "docs/" all behave the same as "docs".
func splitElementPath(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// navigateToParent walks every path segment but the last, opening each as
// a nested storage, and returns the storage that should hold the final
// segment (the element name) alongside that name. An empty path resolves
// to (root, "").
func navigateToParent(root *cfb.Storage, path string, mode cfb.Mode) (*cfb.Storage, string, error) {
	parts := splitElementPath(path)
	if len(parts) == 0 {
		return root, "", nil
	}
	cur := root
	for _, name := range parts[:len(parts)-1] {
		next, err := cur.OpenStorage(name, mode)
		if err != nil {
			return nil, "", err
		}
		cur = next
	}
	return cur, parts[len(parts)-1], nil
}

// mkdirAll is navigateToParent's create-missing-intermediates counterpart,
// used by `mkdir -p`.
func mkdirAll(root *cfb.Storage, path string, mode cfb.Mode) (*cfb.Storage, string, error) {
	parts := splitElementPath(path)
	if len(parts) == 0 {
		return root, "", nil
	}
	cur := root
	for _, name := range parts[:len(parts)-1] {
		next, err := cur.OpenStorage(name, mode)
		if errors.Is(err, cfb.ErrFileNotFound) {
			next, err = cur.CreateStorage(name, mode)
		}
		if err != nil {
			return nil, "", err
		}
		cur = next
	}
	return cur, parts[len(parts)-1], nil
}
