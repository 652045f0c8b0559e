package input

import (
	"sort"

	"github.com/Mr-Kurtis72/VEX-2025-High-Stakes/pkg/hardware"
	"github.com/pkg/errors"
)

var (
	ErrUnbound      = errors.New("action has no bound input")
	ErrAliased      = errors.New("input bound to more than one action")
	ErrUnknownInput = errors.New("input not present on this hardware")
)

// Bindings maps logical action names ("Stake Lock") onto physical inputs.
// It is immutable once built.
type Bindings struct {
	actions map[string]hardware.Input
}

type inputChecker interface {
	HasInput(in hardware.Input) bool
}

// NewBindings validates the table against the hardware: every input must
// exist and no two actions may share an input.
func NewBindings(table map[string]hardware.Input, hw inputChecker) (*Bindings, error) {
	b := &Bindings{actions: map[string]hardware.Input{}}
	owner := map[hardware.Input]string{}
	for _, action := range sortedKeys(table) {
		in := table[action]
		if in == "" {
			return nil, errors.Wrapf(ErrUnbound, "%q", action)
		}
		if !hw.HasInput(in) {
			return nil, errors.Wrapf(ErrUnknownInput, "%q -> %s", action, in)
		}
		if other, ok := owner[in]; ok {
			return nil, errors.Wrapf(ErrAliased, "%s used by %q and %q", in, other, action)
		}
		owner[in] = action
		b.actions[action] = in
	}
	return b, nil
}

// Lookup returns the input bound to action.  Components call it at
// construction time so a missing binding fails before the match starts.
func (b *Bindings) Lookup(action string) (hardware.Input, error) {
	in, ok := b.actions[action]
	if !ok {
		return "", errors.Wrapf(ErrUnbound, "%q", action)
	}
	return in, nil
}

func (b *Bindings) Has(action string) bool {
	_, ok := b.actions[action]
	return ok
}

func (b *Bindings) Actions() []string {
	return sortedKeys(b.actions)
}

func sortedKeys(m map[string]hardware.Input) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
