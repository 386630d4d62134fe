// Package driver manages mutually-exclusive Mesa driver variants:
// listing the catalog, deriving which variant is active, and switching
// variants by removing conflicts before installing the replacement.
package driver

// Driver is one catalog entry. Packages are what the variant installs;
// Conflicts are package names that must be absent before Packages can be
// installed cleanly. The catalog is fixed at process start.
type Driver struct {
	ID          string
	Name        string
	Packages    []string
	Conflicts   []string
	Description string
}

// catalog is the built-in Mesa variant table. Conflict sets are mutually
// exclusive by construction: no package appears both in a variant's
// Packages and outside every other variant's Conflicts.
var catalog = []Driver{
	{
		ID:          "amber",
		Name:        "Amber",
		Packages:    []string{"mesa-amber"},
		Conflicts:   []string{"mesa", "mesa-git", "mesa-tkg-git"},
		Description: "Stable and well-tested version of Mesa",
	},
	{
		ID:          "stable",
		Name:        "Stable",
		Packages:    []string{"mesa"},
		Conflicts:   []string{"mesa-amber", "mesa-git", "mesa-tkg-git"},
		Description: "Regular Mesa release",
	},
	{
		ID:          "tkg-stable",
		Name:        "Tkg-Stable",
		Packages:    []string{"mesa-tkg"},
		Conflicts:   []string{"mesa", "mesa-amber", "mesa-git", "mesa-tkg-git"},
		Description: "Enhanced performance build of stable Mesa",
	},
	{
		ID:          "tkg-git",
		Name:        "Tkg-git",
		Packages:    []string{"mesa-tkg-git"},
		Conflicts:   []string{"mesa", "mesa-amber", "mesa-tkg"},
		Description: "Latest development version with cutting-edge features",
	},
}

// Catalog returns a copy of the built-in driver table.
func Catalog() []Driver {
	out := make([]Driver, len(catalog))
	copy(out, catalog)
	return out
}
