package nav

// DefaultMaxSuggestions caps the quick-action chips shown by the host UI.
const DefaultMaxSuggestions = 6

// popularPaths are always appended after category-related options; related
// destinations outrank popular ones by construction.
var popularPaths = map[string]bool{
	"/":          true,
	"/dashboard": true,
	"/portfolio": true,
	"/insights":  true,
	"/settings":  true,
}

// Suggest ranks destinations related to the current path. When the path
// is not in the catalog the catalog's own order is the fallback ranking.
func Suggest(currentPath string, catalog Catalog, max int) []Option {
	if max <= 0 {
		max = DefaultMaxSuggestions
	}

	current, ok := catalog.FindByPath(currentPath)
	if !ok {
		if len(catalog) > max {
			return append([]Option(nil), catalog[:max]...)
		}
		return append([]Option(nil), catalog...)
	}

	var combined []Option
	for _, opt := range catalog {
		if opt.Category == current.Category && opt.Path != currentPath {
			combined = append(combined, opt)
		}
	}
	for _, opt := range catalog {
		if popularPaths[opt.Path] {
			combined = append(combined, opt)
		}
	}

	seen := make(map[string]bool, len(combined))
	var out []Option
	for _, opt := range combined {
		if seen[opt.Path] {
			continue
		}
		seen[opt.Path] = true
		out = append(out, opt)
		if len(out) == max {
			break
		}
	}

	return out
}
