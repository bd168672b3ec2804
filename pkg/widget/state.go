package widget

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/lu-dev/lu/internal/errors"
	"github.com/lu-dev/lu/pkg/dom"
)

var (
	// ErrUnknownState is returned for operations on an undeclared state.
	ErrUnknownState = errors.New("L010")

	// ErrUnknownValue is the diagnostic for values outside a state's
	// enumeration.
	ErrUnknownValue = errors.New("L011")
)

// StateDef declares one logical state and its DOM representations.
type StateDef struct {
	// Values enumerates the logical values.
	Values []string

	// Class maps values to classes (StatePrefix + entry).
	Class Values

	// Aria maps values to the aria-<state> attribute.
	Aria *Filtered

	// Property maps values to the DOM property named after the state.
	Property *Filtered
}

// States maps state names to their declarations.
type States map[string]StateDef

// Validate checks every declaration. Representation lists must not be
// longer than the value list, values must be unique and filters must
// compile.
func (s States) Validate() error {
	for _, name := range s.names() {
		def := s[name]
		if len(def.Values) == 0 {
			return errors.New("L001").WithState(name)
		}
		seen := make(map[string]bool, len(def.Values))
		for _, v := range def.Values {
			if seen[v] {
				return errors.New("L003").WithState(name).WithDetailf("value %q appears more than once", v)
			}
			seen[v] = true
		}
		for _, rep := range def.representations() {
			if len(rep.values) > len(def.Values) {
				return errors.New("L002").WithState(name).
					WithDetailf("%s representation declares %d values, state has %d", rep.kind, len(rep.values), len(def.Values))
			}
			if rep.filter != "" {
				if err := dom.ValidSelector(rep.filter); err != nil {
					return errors.New("L004").WithState(name).Wrap(err)
				}
			}
		}
	}
	return nil
}

func (s States) names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// indexOf returns the position of value in the enumeration, or -1.
func (d StateDef) indexOf(value string) int {
	for i, v := range d.Values {
		if v == value {
			return i
		}
	}
	return -1
}

// Machine reads and writes the states of one element.
type Machine struct {
	el       *dom.Element
	defs     States
	recorded map[string]string

	// changed is called after the DOM reflects a new value.
	changed func(state, value string)

	logger  *slog.Logger
	metrics *Metrics
	kind    string
}

// NewMachine validates defs and returns a machine bound to el. changed may
// be nil.
func NewMachine(el *dom.Element, defs States, changed func(state, value string)) (*Machine, error) {
	if el == nil {
		return nil, errors.New("L005")
	}
	if err := defs.Validate(); err != nil {
		return nil, err
	}
	return &Machine{
		el:       el,
		defs:     defs,
		recorded: make(map[string]string),
		changed:  changed,
		logger:   slog.Default(),
	}, nil
}

// Names returns the declared state names, sorted.
func (m *Machine) Names() []string {
	return m.defs.names()
}

// Has reports whether name is declared.
func (m *Machine) Has(name string) bool {
	_, ok := m.defs[name]
	return ok
}

// State derives the current value of name from the DOM. ok is false when no
// representation matches or the state is not declared.
func (m *Machine) State(name string) (value string, ok bool) {
	def, declared := m.defs[name]
	if !declared {
		return "", false
	}
	for _, rep := range def.representations() {
		if idx, found := rep.read(m.el, name); found {
			return def.Values[idx], true
		}
	}
	return "", false
}

// SetState moves name to value. Writing the current value does nothing;
// when no marker reveals the current value the recorded one decides.
// A value outside the enumeration changes no marker but is still recorded
// and announced.
func (m *Machine) SetState(name, value string) error {
	def, declared := m.defs[name]
	if !declared {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}

	current, ok := m.State(name)
	if !ok {
		// no representation carries a marker for value; fall back to
		// the last value written
		if recorded, seen := m.recorded[name]; seen && recorded == value {
			return nil
		}
	}
	if value == current {
		return nil
	}

	index := def.indexOf(value)
	currentIndex := def.indexOf(current)
	if index < 0 {
		m.logger.Warn("state value not in enumeration",
			"widget", m.kind, "state", name, "value", value, "values", def.Values)
		m.metrics.unknownValue(m.kind, name)
	}

	for _, rep := range def.representations() {
		rep.write(m.el, name, currentIndex, index)
	}
	m.recorded[name] = value
	m.metrics.transition(m.kind, name)
	m.logger.Debug("state changed", "widget", m.kind, "state", name, "from", current, "to", value)

	if m.changed != nil {
		m.changed(name, value)
	}
	return nil
}

// Sync rewrites every representation of name for its current value without
// announcing a change, so markup declaring a state through only one
// representation gains the others.
func (m *Machine) Sync(name string) error {
	def, declared := m.defs[name]
	if !declared {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	current, ok := m.State(name)
	if !ok {
		return nil
	}
	idx := def.indexOf(current)
	for _, rep := range def.representations() {
		rep.write(m.el, name, idx, idx)
	}
	m.recorded[name] = current
	return nil
}

// Check reports whether value belongs to the enumeration of name.
func (m *Machine) Check(name, value string) error {
	def, declared := m.defs[name]
	if !declared {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	if def.indexOf(value) < 0 {
		return fmt.Errorf("%w: state %q has no value %q", ErrUnknownValue, name, value)
	}
	return nil
}

// Recorded returns the last value written through SetState or Sync.
func (m *Machine) Recorded(name string) (string, bool) {
	v, ok := m.recorded[name]
	return v, ok
}
