package dom

// MutationKind classifies a MutationRecord.
type MutationKind uint8

const (
	AttributeMutation MutationKind = iota + 1
	ClassMutation
	PropertyMutation
)

// String returns the string representation of the MutationKind.
func (k MutationKind) String() string {
	switch k {
	case AttributeMutation:
		return "attribute"
	case ClassMutation:
		return "class"
	case PropertyMutation:
		return "property"
	default:
		return "unknown"
	}
}

// MutationRecord describes one applied change.
type MutationRecord struct {
	Kind   MutationKind
	Target *Element

	// Name is the attribute, class or property name.
	Name     string
	OldValue string
	Value    string

	// Existed reports whether the attribute/class/property was present
	// before the change.
	Existed bool

	// Removed is true when the change deleted the marker.
	Removed bool
}

// Observe registers fn to receive every mutation applied to the document.
// The returned function unregisters it.
func (d *Document) Observe(fn func(MutationRecord)) (cancel func()) {
	d.observersMu.Lock()
	d.nextObsID++
	id := d.nextObsID
	d.observers[id] = fn
	d.observersMu.Unlock()

	return func() {
		d.observersMu.Lock()
		delete(d.observers, id)
		d.observersMu.Unlock()
	}
}

func (d *Document) emit(rec MutationRecord) {
	d.observersMu.RLock()
	fns := make([]func(MutationRecord), 0, len(d.observers))
	for _, fn := range d.observers {
		fns = append(fns, fn)
	}
	d.observersMu.RUnlock()

	for _, fn := range fns {
		fn(rec)
	}
}
