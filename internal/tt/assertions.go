package tt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rickchristie/genui"
	"github.com/stretchr/testify/assert"
)

// AssertTree asserts that n dumps to the expected tree. Expected may be written as
// an indented raw string; surrounding blank lines and common indentation are
// stripped before comparing. Mismatches are reported as a line diff.
func AssertTree(t *testing.T, expected string, n genui.Node, msgAndArgs ...any) bool {
	t.Helper()

	want, got := Dedent(expected), genui.Sprint(n)
	if want == got {
		return true
	}
	msg := "tree mismatch"
	if len(msgAndArgs) > 0 {
		msg = fmt.Sprintf(msgAndArgs[0].(string), msgAndArgs[1:]...) + ": " + msg
	}
	t.Errorf("%s\n%s", msg, TreeDiff(want, got))
	return false
}

// AssertTrees asserts a sequence of trees against their expected dumps.
func AssertTrees(t *testing.T, expected []string, nodes []genui.Node) bool {
	t.Helper()

	if !assert.Equal(t, len(expected), len(nodes), "tree count mismatch") {
		return false
	}
	ok := true
	for i := range expected {
		ok = AssertTree(t, expected[i], nodes[i], "tree %d", i) && ok
	}
	return ok
}

// TreeDiff returns a unified diff between two tree dumps.
func TreeDiff(expected, actual string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// Dedent removes leading and trailing blank lines and the indentation shared by all
// non-blank lines, and ends the result with a newline.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	prefix := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if prefix < 0 || indent < prefix {
			prefix = indent
		}
	}

	var sb strings.Builder
	for _, line := range lines {
		if len(line) >= prefix {
			line = line[prefix:]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
