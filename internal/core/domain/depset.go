package domain

import (
	"maps"
	"regexp"
	"slices"
	"strings"
)

// DependencySet holds the package names a document declares, with version and build
// constraints stripped. Native names belong to the package manager itself; Sub names belong
// to language sub-managers such as pip.
type DependencySet struct {
	Native map[string]struct{}
	Sub    map[string]struct{}
}

// NewDependencySet builds the name sets for deps.
func NewDependencySet(deps []Dependency) DependencySet {
	set := DependencySet{
		Native: make(map[string]struct{}),
		Sub:    make(map[string]struct{}),
	}
	for _, dep := range deps {
		if !dep.IsGroup() {
			if name := PackageName(dep.Package); name != "" {
				set.Native[name] = struct{}{}
			}
			continue
		}
		for _, ref := range dep.Group {
			if name := SubPackageName(ref); name != "" {
				set.Sub[name] = struct{}{}
			}
		}
	}
	return set
}

// ExtractDependencies parses the first document of doc and returns its dependency names.
// Unlike ParseSpec it does not require a name field.
func ExtractDependencies(doc []byte) (DependencySet, error) {
	root, err := loadFirstDocument(doc)
	if err != nil {
		return DependencySet{}, err
	}
	deps, err := collectDependencies(root)
	if err != nil {
		return DependencySet{}, err
	}
	return NewDependencySet(deps), nil
}

// NativeNames returns the native names in sorted order.
func (s DependencySet) NativeNames() []string {
	return slices.Sorted(maps.Keys(s.Native))
}

// SubNames returns the sub-manager names in sorted order.
func (s DependencySet) SubNames() []string {
	return slices.Sorted(maps.Keys(s.Sub))
}

// PackageName returns the name portion of a package reference: the text before the first
// version or marker separator, without a channel prefix, lower-cased.
func PackageName(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "::"); i >= 0 {
		ref = ref[i+2:]
	}
	if i := strings.IndexAny(ref, "=<>!~;[ \t"); i >= 0 {
		ref = ref[:i]
	}
	return strings.ToLower(ref)
}

var separatorRun = regexp.MustCompile(`[-_.]+`)

// SubPackageName returns PackageName(ref) with every run of '-', '_' and '.' folded into a
// single '-', so pip spellings such as typing_extensions and Typing.Extensions compare equal.
func SubPackageName(ref string) string {
	return separatorRun.ReplaceAllString(PackageName(ref), "-")
}

// missingFrom returns the members of want absent from have, sorted.
func missingFrom(want, have map[string]struct{}) []string {
	var missing []string
	for name := range want {
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)
	return missing
}
