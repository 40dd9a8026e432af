package codegen

import (
	"strings"
)

// goType maps a canonical type-hint string to the Go type the generated client uses
// for it. The mapping is purely syntactic: wrapper hints recurse, primitives map to
// their Go counterparts and anything else is taken to be a named model.
func goType(hint string) string {
	switch hint {
	case "string":
		return "string"
	case "number":
		return "float64"
	case "integer":
		return "int64"
	case "boolean":
		return "bool"
	case "any", "":
		return "any"
	case "map<string, any>":
		return "map[string]any"
	}

	if inner, ok := unwrap(hint, "array-of<"); ok {
		return "[]" + goType(inner)
	}

	if inner, ok := unwrap(hint, "optional<"); ok {
		elem := goType(inner)
		// Interface, map and slice types already admit absence.
		if elem == "any" || strings.HasPrefix(elem, "map[") || strings.HasPrefix(elem, "[]") {
			return elem
		}
		return "*" + elem
	}

	if _, ok := unwrap(hint, "union<"); ok {
		return "any"
	}

	return identifier(hint)
}

// unwrap strips one wrapper layer, e.g. unwrap("array-of<string>", "array-of<")
// yields "string".
func unwrap(hint, prefix string) (string, bool) {
	if !strings.HasPrefix(hint, prefix) || !strings.HasSuffix(hint, ">") {
		return "", false
	}
	return hint[len(prefix) : len(hint)-1], true
}

// identifier sanitizes a model name into a legal Go identifier, upper-casing the
// first rune so the generated type is exported.
func identifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	if out == "" {
		return "Model"
	}
	if out[0] >= 'a' && out[0] <= 'z' {
		out = strings.ToUpper(out[:1]) + out[1:]
	}
	return out
}

// exportedName converts a snake_case derived name to an exported Go identifier,
// e.g. "get_user_by_id" becomes "GetUserById".
func exportedName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Operation"
	}
	return b.String()
}

// argName converts a snake_case parameter name to an unexported Go identifier,
// e.g. "user_id" becomes "userId".
func argName(name string) string {
	exported := exportedName(name)
	out := strings.ToLower(exported[:1]) + exported[1:]
	if reservedWords[out] {
		return out + "_"
	}
	return out
}

// reservedWords are Go keywords plus the identifiers the generated method bodies
// use themselves.
var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	"c": true, "ctx": true, "req": true, "resp": true, "body": true, "path": true,
	"query": true, "out": true, "err": true,
}
