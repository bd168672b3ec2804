package dom

import (
	"fmt"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/lu-dev/lu/internal/errors"
)

// ErrBadSelector is wrapped by every selector compilation failure.
var ErrBadSelector = errors.New("L031")

// selectorCache holds compiled selectors for one document.
type selectorCache struct {
	mu    sync.Mutex
	cache map[string]cascadia.Selector
}

func (c *selectorCache) compile(sel string) (cascadia.Selector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.cache[sel]; ok {
		return s, nil
	}
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadSelector, sel, err)
	}
	if c.cache == nil {
		c.cache = make(map[string]cascadia.Selector)
	}
	c.cache[sel] = s
	return s, nil
}

// ValidSelector reports whether sel compiles as a CSS selector group.
func ValidSelector(sel string) error {
	if _, err := cascadia.Compile(sel); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrBadSelector, sel, err)
	}
	return nil
}

// IDSelector returns the selector matching the element with the given id.
func IDSelector(id string) string {
	return "[id=" + quoteSelectorString(id) + "]"
}

// quoteSelectorString quotes s as a CSS string so ids with characters that
// are not valid in a bare #ident still resolve.
func quoteSelectorString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			out = append(out, '\\', s[i])
		default:
			out = append(out, s[i])
		}
	}
	return string(append(out, '"'))
}

func isElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}
