package binding

import (
	"sort"
	"strings"

	"github.com/lu-dev/lu/internal/errors"
)

// Catalog maps widget kinds to factories.
type Catalog map[string]Factory

// Factory returns the factory registered for kind.
func (c Catalog) Factory(kind string) (Factory, error) {
	f, ok := c[kind]
	if !ok || f == nil {
		return nil, errors.New("L051").WithWidget(kind).
			WithSuggestion("Known kinds: " + strings.Join(c.Kinds(), ", "))
	}
	return f, nil
}

// Kinds returns the registered kinds, sorted.
func (c Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c))
	for k := range c {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
