package sensor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/banshee-data/sensorzone/internal/geom"
)

// ErrMalformedRecord is returned for lines that are not sensor records.
var ErrMalformedRecord = errors.New("malformed sensor record")

const recordPattern = `^Sensor at x=(-?\d+), y=(-?\d+): closest beacon is at x=(-?\d+), y=(-?\d+)$`

// Parser turns "Sensor at x=.., y=..: closest beacon is at x=.., y=.." lines
// into Sensors. Build one with NewParser and pass it to whatever reads input.
type Parser struct {
	re *regexp.Regexp
}

// NewParser compiles the record pattern.
func NewParser() *Parser {
	return &Parser{re: regexp.MustCompile(recordPattern)}
}

// ParseLine parses a single record. Surrounding whitespace is ignored.
func (p *Parser) ParseLine(line string) (Sensor, error) {
	m := p.re.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Sensor{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}

	var v [4]int64
	for i := range v {
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return Sensor{}, fmt.Errorf("%w: field %d: %v", ErrMalformedRecord, i+1, err)
		}
		v[i] = n
	}
	return New(geom.Pt(v[0], v[1]), geom.Pt(v[2], v[3])), nil
}

// ParseReader parses one record per line, skipping blank lines. Errors name
// the 1-based line number.
func (p *Parser) ParseReader(r io.Reader) ([]Sensor, error) {
	var sensors []Sensor
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := p.ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		sensors = append(sensors, s)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sensor records: %w", err)
	}
	return sensors, nil
}
