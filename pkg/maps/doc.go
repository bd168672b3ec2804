// Package maps declares the stock bindings of lu: the Button map, bound
// lazily on its first activation event, and the Tabs table, bound eagerly.
package maps
