// Package lu binds DOM widgets to HTML pages.
//
// A page is parsed into an in-memory document, the stock bindings (Tabs,
// Tab, Tabpanel eagerly and Button lazily) are attached, raw events can be
// replayed against it and the resulting markup is rendered back:
//
//	page, err := lu.LoadFile(ctx, "index.html", lu.Config{})
//	if err != nil {
//	    return err
//	}
//	defer page.Close()
//
//	if _, err := page.Replay("#tab2:click"); err != nil {
//	    return err
//	}
//	page.Render(os.Stdout)
//
// State lives in the markup itself: classes prefixed with lu-state-, aria-*
// attributes and boolean properties. Widgets announce state changes with
// events prefixed with lu: to the elements observing them.
package lu

// Version is the lu release.
const Version = "0.1.0"
