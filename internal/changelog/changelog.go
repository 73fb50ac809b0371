// SPDX-License-Identifier: AGPL-3.0-or-later

// Package changelog turns GitHub mentions and pull request numbers in a
// markdown changelog into links.
package changelog

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bids-standard/bidstools/internal/fsutil"
)

// DefaultRepository is the repository pull request links point at.
const DefaultRepository = "bids-standard/bids-matlab"

var (
	mentionRe = regexp.MustCompile(` @([a-zA-Z0-9_\-]+)`)
	prRe      = regexp.MustCompile(`#([0-9]+)`)
)

// Rewriter rewrites changelog lines.
type Rewriter struct {
	// Repository is the owner/name used in pull request links.
	Repository string
}

// Rewrite returns content with links added. Lines inside fenced or indented
// code blocks are returned unchanged. Line endings are preserved.
func (r *Rewriter) Rewrite(content []byte) []byte {
	code := codeLines(content)

	lines := strings.SplitAfter(string(content), "\n")
	var b strings.Builder
	b.Grow(len(content))
	for i, line := range lines {
		if code[i] {
			b.WriteString(line)
			continue
		}
		b.WriteString(r.RewriteLine(line))
	}
	return []byte(b.String())
}

// RewriteLine links the first @mention and the first #number in line.
// Every occurrence of the matched text is replaced.
func (r *Rewriter) RewriteLine(line string) string {
	if m := mentionRe.FindStringSubmatch(line); m != nil {
		user := m[1]
		line = strings.ReplaceAll(line, m[0], fmt.Sprintf(" by [%s](https://github.com/%s) ", user, user))
	}
	if m := prRe.FindStringSubmatch(line); m != nil {
		pr := m[1]
		line = strings.ReplaceAll(line, m[0], fmt.Sprintf("[%s](https://github.com/%s/pull/%s)", pr, r.repository(), pr))
	}
	return line
}

// RewriteFile rewrites the changelog at path in place.
func (r *Rewriter) RewriteFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading changelog: %w", err)
	}
	return fsutil.WriteFile(path, r.Rewrite(content))
}

func (r *Rewriter) repository() string {
	if r.Repository == "" {
		return DefaultRepository
	}
	return r.Repository
}

// codeLines returns the zero-based indices of lines that belong to code blocks,
// fence lines included.
func codeLines(content []byte) map[int]bool {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	starts := lineStarts(content)
	lineOf := func(offset int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	}

	out := map[int]bool{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
		default:
			return ast.WalkContinue, nil
		}

		lines := n.Lines()
		if lines.Len() == 0 {
			if fenced, ok := n.(*ast.FencedCodeBlock); ok && fenced.Info != nil {
				out[lineOf(fenced.Info.Segment.Start)] = true
			}
			return ast.WalkSkipChildren, nil
		}
		first := lineOf(lines.At(0).Start)
		last := lineOf(lines.At(lines.Len() - 1).Start)
		if _, ok := n.(*ast.FencedCodeBlock); ok {
			// opening and closing fences
			first--
			last++
		}
		for i := first; i <= last; i++ {
			if i >= 0 {
				out[i] = true
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return out
}

func lineStarts(content []byte) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}
