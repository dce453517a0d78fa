package tree_test

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"codemap/internal/ignore"
	"codemap/internal/tree"
)

var sep = string(filepath.Separator)

// newFixture creates a directory tree under a temp dir. Entries ending in
// the path separator become directories, others become files.
func newFixture(t *testing.T, entries ...string) string {
	t.Helper()
	rootDir := t.TempDir()
	for _, entry := range entries {
		path := filepath.Join(rootDir, filepath.FromSlash(strings.TrimSuffix(entry, "/")))
		if strings.HasSuffix(entry, "/") {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("creating fixture dir %q: %v", entry, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating fixture dir for %q: %v", entry, err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("creating fixture file %q: %v", entry, err)
		}
	}
	return rootDir
}

func newBuilder(t *testing.T, rootDir string, patterns []string, opts ...tree.Option) *tree.Builder {
	t.Helper()
	rules, err := ignore.New(rootDir, ignore.WithPatterns(patterns))
	if err != nil {
		t.Fatalf("ignore.New: %v", err)
	}
	builder, err := tree.New(rootDir, rules, opts...)
	if err != nil {
		t.Fatalf("tree.New: %v", err)
	}
	return builder
}

func renderLines(t *testing.T, builder *tree.Builder, format string) []string {
	t.Helper()
	rendering, err := builder.Render(format)
	if err != nil {
		t.Fatalf("Render(%q): %v", format, err)
	}
	return strings.Split(rendering, "\n")
}

func TestRenderTreeRootLine(t *testing.T) {
	rootDir := newFixture(t, "main.go")
	lines := renderLines(t, newBuilder(t, rootDir, nil), tree.FormatTree)

	want := filepath.Base(rootDir) + sep
	if lines[0] != want {
		t.Errorf("first line = %q, want %q", lines[0], want)
	}
}

func TestRenderTreeByteWiseOrder(t *testing.T) {
	rootDir := newFixture(t, "a", "A", "b/")
	lines := renderLines(t, newBuilder(t, rootDir, nil), tree.FormatTree)

	want := []string{
		filepath.Base(rootDir) + sep,
		"├── A",
		"├── a",
		"└── b" + sep,
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeConnectorsAndPrefixes(t *testing.T) {
	rootDir := newFixture(t, "first/inner.go", "second/last.go", "zfile")
	lines := renderLines(t, newBuilder(t, rootDir, nil), tree.FormatTree)

	want := []string{
		filepath.Base(rootDir) + sep,
		"├── first" + sep,
		"│   └── inner.go",
		"├── second" + sep,
		"│   └── last.go",
		"└── zfile",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeLastSiblingIndentation(t *testing.T) {
	rootDir := newFixture(t, "sub/deep/leaf.go")
	lines := renderLines(t, newBuilder(t, rootDir, nil), tree.FormatTree)

	// sub is the last sibling at the top level, so its descendants get four
	// spaces of indentation instead of a vertical bar.
	want := []string{
		filepath.Base(rootDir) + sep,
		"└── sub" + sep,
		"    └── deep" + sep,
		"        └── leaf.go",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderTreeMaxDepth(t *testing.T) {
	rootDir := newFixture(t, "top.go", "sub/mid.go", "sub/deeper/bottom.go")

	testCases := []struct {
		name     string
		maxDepth int
		want     []string
	}{
		{
			name:     "depth zero lists only immediate children",
			maxDepth: 0,
			want: []string{
				filepath.Base(rootDir) + sep,
				"├── sub" + sep,
				"└── top.go",
			},
		},
		{
			name:     "depth one lists one level below",
			maxDepth: 1,
			want: []string{
				filepath.Base(rootDir) + sep,
				"├── sub" + sep,
				"│   ├── deeper" + sep,
				"│   └── mid.go",
				"└── top.go",
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			builder := newBuilder(t, rootDir, nil, tree.WithMaxDepth(testCase.maxDepth))
			lines := renderLines(t, builder, tree.FormatTree)
			if len(lines) != len(testCase.want) {
				t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(testCase.want))
			}
			for i := range testCase.want {
				if lines[i] != testCase.want[i] {
					t.Errorf("line %d = %q, want %q", i, lines[i], testCase.want[i])
				}
			}
		})
	}
}

func TestIgnorePatternAppliesAtAnyLevel(t *testing.T) {
	rootDir := newFixture(t, "keep.go", "x.log", "sub/nested.log", "sub/ok.go")
	builder := newBuilder(t, rootDir, []string{"*.log"})

	for _, format := range []string{tree.FormatTree, tree.FormatList} {
		rendering, err := builder.Render(format)
		if err != nil {
			t.Fatalf("Render(%q): %v", format, err)
		}
		if strings.Contains(rendering, ".log") {
			t.Errorf("Render(%q) contains ignored entry:\n%s", format, rendering)
		}
		if !strings.Contains(rendering, "keep.go") || !strings.Contains(rendering, "ok.go") {
			t.Errorf("Render(%q) is missing non-ignored entries:\n%s", format, rendering)
		}
	}
}

func TestIgnoredDirectoryPrunesDescendants(t *testing.T) {
	rootDir := newFixture(t, "node_modules/pkg/index.js", "src/main.go")
	builder := newBuilder(t, rootDir, []string{"node_modules"})

	for _, format := range []string{tree.FormatTree, tree.FormatList} {
		rendering, err := builder.Render(format)
		if err != nil {
			t.Fatalf("Render(%q): %v", format, err)
		}
		if strings.Contains(rendering, "index.js") || strings.Contains(rendering, "node_modules") {
			t.Errorf("Render(%q) contains pruned entries:\n%s", format, rendering)
		}
	}
}

func TestRenderListMatchesSortedRelativePaths(t *testing.T) {
	rootDir := newFixture(t, "b/two.go", "a/one.go", "top.txt", "a/inner/")
	lines := renderLines(t, newBuilder(t, rootDir, nil), tree.FormatList)

	want := []string{
		"a" + sep,
		filepath.Join("a", "inner") + sep,
		filepath.Join("a", "one.go"),
		"b" + sep,
		filepath.Join("b", "two.go"),
		"top.txt",
	}
	sort.Strings(want)
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderListDoesNotHonorMaxDepth(t *testing.T) {
	rootDir := newFixture(t, "sub/deeper/bottom.go")
	builder := newBuilder(t, rootDir, nil, tree.WithMaxDepth(0))

	rendering, err := builder.Render(tree.FormatList)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(rendering, "bottom.go") {
		t.Errorf("list rendering honored max depth, want full tree:\n%s", rendering)
	}
}

func TestRenderInvalidFormatFailsBeforeIO(t *testing.T) {
	// A nonexistent root proves the format check happens before any read.
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	builder := newBuilder(t, missing, nil)

	_, err := builder.Render("yaml")
	if !errors.Is(err, tree.ErrInvalidFormat) {
		t.Fatalf("Render(\"yaml\") error = %v, want ErrInvalidFormat", err)
	}
}

func TestRenderTreeMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	builder := newBuilder(t, missing, nil)

	if _, err := builder.Render(tree.FormatTree); err == nil {
		t.Fatal("Render on missing root succeeded, want error")
	}
	if _, err := builder.Render(tree.FormatList); err == nil {
		t.Fatal("Render on missing root succeeded, want error")
	}
}

func TestRenderTreePermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	rootDir := newFixture(t, "locked/secret.txt", "open/visible.txt")
	lockedDir := filepath.Join(rootDir, "locked")
	if err := os.Chmod(lockedDir, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(lockedDir, 0o755) })

	lines := renderLines(t, newBuilder(t, rootDir, nil), tree.FormatTree)

	want := []string{
		filepath.Base(rootDir) + sep,
		"├── locked" + sep,
		"│   └── [Permission Denied]",
		"└── open" + sep,
		"    └── visible.txt",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(lines), lines, len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRenderListPrunesUnreadableBranch(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}

	rootDir := newFixture(t, "locked/secret.txt", "open/visible.txt")
	lockedDir := filepath.Join(rootDir, "locked")
	if err := os.Chmod(lockedDir, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(lockedDir, 0o755) })

	rendering, err := newBuilder(t, rootDir, nil).Render(tree.FormatList)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(rendering, "secret.txt") {
		t.Errorf("list rendering contains entries of unreadable branch:\n%s", rendering)
	}
	if !strings.Contains(rendering, "visible.txt") {
		t.Errorf("list rendering is missing sibling entries:\n%s", rendering)
	}
}
