package schema

import "strings"

// Relativize rewrites occurrences of an absolute directory inside the
// serialized values of a tree, replacing them with an alias. Generated
// files stay stable across machines this way.
func Relativize(node *SettingsInfo, dir, alias string) {
	if dir == "" || dir == "/" {
		return
	}
	for _, f := range node.Fields {
		f.Default = strings.ReplaceAll(f.Default, dir, alias)
		f.Value = strings.ReplaceAll(f.Value, dir, alias)
		for i := range f.Examples {
			f.Examples[i] = strings.ReplaceAll(f.Examples[i], dir, alias)
		}
	}
	for _, child := range node.ChildSettings {
		Relativize(child, dir, alias)
	}
}
