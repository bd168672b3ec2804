// Package dom provides the in-memory document that lu widgets operate on.
//
// A Document wraps a golang.org/x/net/html tree. Every element node is
// exposed through exactly one *Element, so element pointers can be used as
// identity keys (observer sets, registries). Elements carry three kinds of
// state that widgets read and write:
//
//   - attributes (including the class list), stored on the html.Node
//   - properties, stored beside the node; boolean properties reflect to the
//     matching boolean attribute so rendered markup shows them
//   - event listeners, with bubbling, one-shot listeners and propagation
//     control modeled after the browser event model
//
// # Selectors
//
// Query, Matches and friends compile CSS selectors with cascadia and cache
// the compiled form per document.
//
// # Mutations
//
// Observe registers a callback that receives a MutationRecord for every
// attribute, class or property change actually applied to the tree. No-op
// writes produce no record.
package dom
