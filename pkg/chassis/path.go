package chassis

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Waypoint struct {
	X, Y  float64
	Speed float64
}

// Path is a pre-recorded path asset.  The text format is one "x, y, speed"
// line per waypoint, terminated by "endData"; anything after that is editor
// metadata and is ignored.
type Path struct {
	Name   string
	Points []Waypoint
}

func ParsePath(name string, data []byte) (*Path, error) {
	p := &Path{Name: name}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "endData" {
			break
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			return nil, errors.Errorf("%s:%d: expected x, y[, speed]", name, lineNo)
		}
		var vals [3]float64
		for i := 0; i < len(fields) && i < 3; i++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s:%d", name, lineNo)
			}
			vals[i] = v
		}
		p.Points = append(p.Points, Waypoint{X: vals[0], Y: vals[1], Speed: vals[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.Points) == 0 {
		return nil, errors.Errorf("%s: path has no waypoints", name)
	}
	return p, nil
}
