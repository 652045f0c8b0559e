package robot

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrActuatorConflict = errors.New("actuator claimed by two owners")

// partition records which component owns each actuator: motor ports, output
// pins and screen lines.  Every actuator has one writer, so concurrent tasks
// never need to coordinate.
type partition struct {
	owners map[string]string
}

func newPartition() *partition {
	return &partition{owners: map[string]string{}}
}

func (p *partition) claim(owner string, resources ...string) error {
	for _, r := range resources {
		if other, ok := p.owners[r]; ok && other != owner {
			return errors.Wrapf(ErrActuatorConflict, "%s wanted by %s, owned by %s", r, owner, other)
		}
		p.owners[r] = owner
	}
	return nil
}

func (p *partition) Owner(resource string) string {
	return p.owners[resource]
}

func motorResources(ports []int) []string {
	var out []string
	for _, port := range ports {
		if port < 0 {
			port = -port
		}
		out = append(out, fmt.Sprintf("motor %d", port))
	}
	return out
}

func pinResource(pin string) string {
	return "pin " + pin
}

func lineResources(lines ...int) []string {
	var out []string
	for _, l := range lines {
		out = append(out, fmt.Sprintf("line %d", l))
	}
	return out
}
