package lsp

import (
	"sort"

	"github.com/datawire/adaptive/internal/ast"
	"github.com/datawire/adaptive/internal/transform"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func completions(m *ast.Module) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	add := func(label string, kind protocol.CompletionItemKind, detail string) {
		items = append(items, protocol.CompletionItem{
			Label:  label,
			Kind:   &kind,
			Detail: ptrString(detail),
		})
	}

	for _, name := range sortedKeys(keywords) {
		add(name, protocol.CompletionItemKindKeyword, "keyword")
	}
	for _, name := range sortedKeys(builtinTypes) {
		add(name, protocol.CompletionItemKindTypeParameter, "builtin type")
	}
	for _, name := range transform.DefaultRegistry().Names() {
		add("@"+name, protocol.CompletionItemKindProperty, "annotation")
	}
	if m != nil {
		for _, s := range m.Structs() {
			add(s.Name, protocol.CompletionItemKindStruct, "struct in "+m.Name)
		}
	}
	return items
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
