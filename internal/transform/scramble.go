package transform

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Scramble is the built-in reference obfuscator. It renames declared
// function and variable identifiers to hash-derived aliases and can hoist
// string literals into a lookup array.
//
// Recognized options:
//
//	prefix      string — alias prefix (default "_0x")
//	stringArray bool   — hoist string literals into an array
type Scramble struct{}

var (
	funcDeclRe   = regexp.MustCompile(`\bfunction\s+([A-Za-z_][0-9A-Za-z_]*)`)
	varDeclRe    = regexp.MustCompile(`\b(?:var|let|const)\s+([A-Za-z_][0-9A-Za-z_]*)`)
	stringLitRe  = regexp.MustCompile(`"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'`)
	reservedName = map[string]bool{
		"function": true, "var": true, "let": true, "const": true,
		"return": true, "if": true, "else": true, "for": true,
		"while": true, "new": true, "typeof": true, "this": true,
	}
)

// Transform rewrites src so that no declared identifier keeps its original
// name. Empty input passes through unchanged. Identifiers containing '$'
// are left alone: \b does not delimit them reliably.
func (Scramble) Transform(src string, opts Options) (string, error) {
	if src == "" {
		return "", nil
	}

	prefix := opts.String("prefix", "_0x")

	out := src
	taken := make(map[string]bool)
	for _, name := range declaredNames(src) {
		alias := hashAlias(prefix, name, taken)
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
		if err != nil {
			return "", fmt.Errorf("compiling rename pattern for '%s': %w", name, err)
		}
		out = re.ReplaceAllString(out, alias)
	}

	if opts.Bool("stringArray", false) {
		out = hoistStrings(out, prefix)
	}

	return out, nil
}

// declaredNames extracts declaration names, function names first and then
// variable names, each in order of first appearance, deduplicated.
func declaredNames(src string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, re := range []*regexp.Regexp{funcDeclRe, varDeclRe} {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			name := m[1]
			if seen[name] || reservedName[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

// hashAlias derives a stable alias for name. The alias depends only on the
// name itself, so repeated runs over the same input produce the same output;
// the hex suffix grows on collision within one file.
func hashAlias(prefix, name string, taken map[string]bool) string {
	sum := sha256.Sum256([]byte(name))
	full := hex.EncodeToString(sum[:])
	for n := 6; n <= len(full); n++ {
		alias := prefix + full[:n]
		if !taken[alias] {
			taken[alias] = true
			return alias
		}
	}
	// 64 hex chars collided; fall back to the full digest with a counter.
	alias := prefix + full + fmt.Sprintf("_%d", len(taken))
	taken[alias] = true
	return alias
}

// hoistStrings moves every string literal into a lookup array declared at
// the top of the file and replaces each occurrence with an indexed access.
func hoistStrings(src, prefix string) string {
	var literals []string
	index := make(map[string]int)
	table := prefix + "s"

	replaced := stringLitRe.ReplaceAllStringFunc(src, func(lit string) string {
		i, ok := index[lit]
		if !ok {
			i = len(literals)
			index[lit] = i
			literals = append(literals, lit)
		}
		return fmt.Sprintf("%s[%d]", table, i)
	})

	if len(literals) == 0 {
		return src
	}

	return fmt.Sprintf("var %s = [%s];\n%s", table, strings.Join(literals, ", "), replaced)
}
