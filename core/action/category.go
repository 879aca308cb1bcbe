package action

import "sync"

// Category tags a family of actions and the handlers able to process them.
// A Router and every handler registered into it share one Category.
type Category string

var (
	// Registry of defined categories. Only defined categories are accepted
	// as routing markers.
	categoryRegistry   = make(map[Category]struct{})
	categoryRegistryMu sync.RWMutex
)

// DefineCategory registers name as a category marker and returns it.
// Defining the same name twice returns the same Category.
//
// Example:
//
//	var HTTP = action.DefineCategory("http")
func DefineCategory(name string) Category {
	c := Category(name)
	if name == "" {
		return c
	}

	categoryRegistryMu.Lock()
	defer categoryRegistryMu.Unlock()
	categoryRegistry[c] = struct{}{}

	return c
}

// IsCategory reports whether c was registered with DefineCategory.
func IsCategory(c Category) bool {
	if c == "" {
		return false
	}

	categoryRegistryMu.RLock()
	defer categoryRegistryMu.RUnlock()
	_, ok := categoryRegistry[c]

	return ok
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// Categorized is implemented by actions that declare which category of
// handler processes them. The Dispatcher uses it to select a top-level handler.
type Categorized interface {
	Category() Category
}
