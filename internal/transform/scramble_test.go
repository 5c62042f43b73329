package transform

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrambleRenamesFunction(t *testing.T) {
	src := "function greet(name) { return name; }\ngreet('world');\n"

	out, err := Scramble{}.Transform(src, nil)
	require.NoError(t, err)

	assert.NotEqual(t, src, out)
	assert.NotContains(t, out, "greet")
	// Still a syntactically shaped function declaration.
	assert.Regexp(t, regexp.MustCompile(`function\s+[A-Za-z_$][0-9A-Za-z_$]*\(`), out)
}

func TestScrambleRenamesVariables(t *testing.T) {
	src := "const answer = 42;\nlet total = answer + 1;\nvar copy = total;\n"

	out, err := Scramble{}.Transform(src, nil)
	require.NoError(t, err)

	for _, name := range []string{"answer", "total", "copy"} {
		assert.NotContains(t, out, name)
	}
	// Declaration keywords survive.
	assert.Contains(t, out, "const ")
	assert.Contains(t, out, "let ")
	assert.Contains(t, out, "var ")
}

func TestScrambleEmptyInput(t *testing.T) {
	out, err := Scramble{}.Transform("", nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestScrambleDeterministic(t *testing.T) {
	src := "function compute() { return 1; }\ncompute();\n"

	first, err := Scramble{}.Transform(src, nil)
	require.NoError(t, err)
	second, err := Scramble{}.Transform(src, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScrambleCustomPrefix(t *testing.T) {
	src := "function handler() {}\n"

	out, err := Scramble{}.Transform(src, Options{"prefix": "_v"})
	require.NoError(t, err)

	assert.Contains(t, out, "function _v")
	assert.NotContains(t, out, "_0x")
}

func TestScrambleStringArray(t *testing.T) {
	src := "var msg = 'hello';\nconsole.log('hello', \"bye\");\n"

	out, err := Scramble{}.Transform(src, Options{"stringArray": true})
	require.NoError(t, err)

	assert.NotContains(t, strings.SplitN(out, "\n", 2)[1], "'hello'")
	// The hoisted table carries both literals.
	header := strings.SplitN(out, "\n", 2)[0]
	assert.Contains(t, header, "'hello'")
	assert.Contains(t, header, `"bye"`)
	assert.Regexp(t, regexp.MustCompile(`_0xs\[\d+\]`), out)
}

func TestScrambleLeavesUndeclaredNamesAlone(t *testing.T) {
	src := "console.log(window.location);\n"

	out, err := Scramble{}.Transform(src, nil)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestScrambleDistinctNamesGetDistinctAliases(t *testing.T) {
	src := "function alpha() {}\nfunction beta() { alpha(); }\n"

	out, err := Scramble{}.Transform(src, nil)
	require.NoError(t, err)

	assert.NotContains(t, out, "alpha")
	assert.NotContains(t, out, "beta")

	decls := regexp.MustCompile(`function\s+(\S+)\(`).FindAllStringSubmatch(out, -1)
	require.Len(t, decls, 2)
	assert.NotEqual(t, decls[0][1], decls[1][1])
}
