package manifest

import (
	"fmt"
	"os"
	"strings"

	"github.com/azmeuk/settings-export/internal/schema"
)

// RefError reports a reference that does not name an existing manifest in
// either accepted form.
type RefError struct {
	Ref string
}

func (e *RefError) Error() string {
	return fmt.Sprintf("invalid settings reference %q: expected \"manifest.yml\" or \"manifest.yml:Name\"", e.Ref)
}

// NotFoundError reports a reference whose manifest loaded but does not
// declare the requested settings name.
type NotFoundError struct {
	Path      string
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("settings %q not found in %s (available: %s)",
		e.Name, e.Path, strings.Join(e.Available, ", "))
}

// Resolve loads the settings named by a reference. "manifest.yml" selects
// every settings tree in the file; "manifest.yml:Name" selects one by name.
// A reference without a name part whose path does not exist is malformed,
// an unreadable or invalid file is a load error, and an unknown name is a
// NotFoundError.
func Resolve(ref string) ([]*schema.SettingsInfo, error) {
	path, name := splitRef(ref)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && name == "" {
			return nil, &RefError{Ref: ref}
		}
		return nil, fmt.Errorf("cannot read settings manifest %s: %w", path, err)
	}

	nodes, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nodes, nil
	}

	available := make([]string, 0, len(nodes))
	for _, node := range nodes {
		if node.Name == name {
			return []*schema.SettingsInfo{node}, nil
		}
		available = append(available, node.Name)
	}
	return nil, &NotFoundError{Path: path, Name: name, Available: available}
}

// ResolveAll resolves every reference and concatenates the results in
// order.
func ResolveAll(refs []string) ([]*schema.SettingsInfo, error) {
	var nodes []*schema.SettingsInfo
	for _, ref := range refs {
		resolved, err := Resolve(ref)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, resolved...)
	}
	return nodes, nil
}

func splitRef(ref string) (path, name string) {
	if i := strings.LastIndex(ref, ":"); i > 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}
