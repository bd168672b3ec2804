// Package binding attaches widgets to the elements of a document.
//
// Two mechanisms are provided. A Table maps selectors to factories and is
// resolved once, eagerly, at a point the caller chooses:
//
//	table := binding.NewTable()
//	table.Register(`[data-lu~="Tabs"]`, widgets.KindTabs, tabsFactory)
//	bound, err := table.Resolve(ctx, doc, env)
//
// A Map binds lazily: it listens on the document for its raw events and
// instantiates its widget the first time such an event reaches an element
// matching one of its directives:
//
//	m := binding.NewMap("Button", "click focus", buttonFactory)
//	m.Direct(`[data-lu~="Button:Select"]`, func(c *binding.Context) {
//	    c.Settings["action"] = "select"
//	})
//	cancel, err := m.Install(ctx, doc, env)
//
// Both record spans with the global OpenTelemetry tracer provider.
package binding
