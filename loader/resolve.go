package loader

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/clientgen/jsonpointer"
	"github.com/speakeasy-api/clientgen/sequencedmap"
)

// ResolveReferences walks the tree depth-first and returns a copy with every local
// $ref node replaced by the subtree it points at. Targets are looked up against the
// provided root, and spliced subtrees are themselves resolved before splicing.
//
// A (path, target) pair already being resolved indicates a reference cycle; the
// node is returned unresolved so it surfaces as a named-type reference during
// typed-graph construction instead of recursing forever. References outside the
// local document (anything not starting with "#/") fail with ErrUnresolvedReference.
func ResolveReferences(root any) (any, error) {
	r := &resolver{
		root: root,
		seen: map[resolutionKey]bool{},
	}

	return r.resolve(root, "")
}

// resolutionKey identifies one reference occurrence: the traversal path the node was
// found at and the target it points to.
type resolutionKey struct {
	path   string
	target string
}

type resolver struct {
	root any
	seen map[resolutionKey]bool
}

func (r *resolver) resolve(node any, path string) (any, error) {
	switch n := node.(type) {
	case *sequencedmap.Map[string, any]:
		if target, ok := refTarget(n); ok {
			return r.resolveRef(path, target)
		}

		resolved := sequencedmap.New[string, any]()
		for key, value := range n.All() {
			rv, err := r.resolve(value, path+"/"+jsonpointer.EscapeToken(key))
			if err != nil {
				return nil, err
			}
			resolved.Set(key, rv)
		}
		return resolved, nil
	case []any:
		resolved := make([]any, 0, len(n))
		for i, item := range n {
			rv, err := r.resolve(item, fmt.Sprintf("%s/%d", path, i))
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, rv)
		}
		return resolved, nil
	default:
		return node, nil
	}
}

func (r *resolver) resolveRef(path, target string) (any, error) {
	if !strings.HasPrefix(target, "#/") {
		return nil, ErrUnresolvedReference.Wrap(fmt.Errorf("reference %q at %s targets an external document which is not supported", target, path))
	}

	key := resolutionKey{path: path, target: target}
	if r.seen[key] {
		// Reference cycle: leave a reference node in place for the typed graph to
		// treat as a named-type reference.
		return sequencedmap.New(sequencedmap.NewElem[string, any](RefKey, target)), nil
	}
	r.seen[key] = true

	targetPath := strings.TrimPrefix(target, "#")

	resolved, err := jsonpointer.GetTarget(r.root, jsonpointer.JSONPointer(targetPath))
	if err != nil {
		return nil, ErrUnresolvedReference.Wrap(fmt.Errorf("cannot resolve reference %q at %s: %w", target, path, err))
	}

	// Resolve references inside the target subtree before splicing it in. The
	// subtree is resolved at its own document path so a chain that loops back to
	// this reference trips the cycle guard above.
	return r.resolve(resolved, targetPath)
}

// refTarget reports whether the mapping is a reference node: exactly one key equal
// to RefKey with a string value.
func refTarget(m *sequencedmap.Map[string, any]) (string, bool) {
	if m.Len() != 1 {
		return "", false
	}

	v, ok := m.Get(RefKey)
	if !ok {
		return "", false
	}

	s, ok := v.(string)
	return s, ok
}
