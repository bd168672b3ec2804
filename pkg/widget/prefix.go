package widget

import (
	"strings"

	"github.com/lu-dev/lu/pkg/dom"
)

const (
	// EventPrefix namespaces every event routed through a widget.
	EventPrefix = "lu:"

	// StatePrefix namespaces the classes of class representations.
	StatePrefix = "lu-state-"
)

// Prefix namespaces every whitespace-separated event name in events.
func Prefix(events string) string {
	names := strings.Fields(events)
	for i, name := range names {
		names[i] = EventPrefix + name
	}
	return strings.Join(names, " ")
}

// PrefixMap namespaces the keys of an event-to-handler map.
func PrefixMap(handlers map[string]dom.Handler) map[string]dom.Handler {
	out := make(map[string]dom.Handler, len(handlers))
	for name, h := range handlers {
		out[EventPrefix+name] = h
	}
	return out
}

// Unprefix strips EventPrefix from a namespaced event name.
func Unprefix(event string) string {
	return strings.TrimPrefix(event, EventPrefix)
}
