package special

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/datefield/internal/logging"
)

var (
	commentPattern = regexp.MustCompile(`[ \t]*#.*`)
	linePattern    = regexp.MustCompile(`^([^|])\|([oic]-?[0-9]+)?\|([oic]-?[0-9]+)?\|([oic]-?[0-9]+)?$`)
)

// ParseLine parses a single macro line. Comments and surrounding whitespace
// are removed first. ok is false for blank and malformed lines.
func ParseLine(line string) (Rule, bool) {
	line = commentPattern.ReplaceAllString(strings.TrimSpace(line), "")
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return Rule{}, false
	}

	rule := Rule{Trigger: []rune(m[1])[0]}
	for i, dst := range []*FieldRule{&rule.Year, &rule.Month, &rule.Day} {
		fr, err := parseFieldRule(m[i+2])
		if err != nil {
			return Rule{}, false
		}
		*dst = fr
	}
	return rule, true
}

func parseFieldRule(s string) (FieldRule, error) {
	if s == "" {
		return FieldRule{Type: Increment}, nil
	}
	t, ok := typeOf(s[0])
	if !ok {
		return FieldRule{}, fmt.Errorf("unknown rule type %q", s[0])
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return FieldRule{}, err
	}
	return FieldRule{Type: t, Value: v}, nil
}

// Parse reads macro lines from r. On a read error it returns the rules read
// so far together with the error.
func Parse(r io.Reader) (Map, error) {
	m := make(Map)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if rule, ok := ParseLine(sc.Text()); ok {
			m[rule.Trigger] = rule
		}
	}
	return m, sc.Err()
}

// LoadFrom builds a macro table from r. A read failure is logged and the rules
// read before it are kept. Only a nil r is an error.
func LoadFrom(r io.Reader, logger *logging.Logger) (Map, error) {
	if r == nil {
		return nil, ErrNilSource
	}
	m, err := Parse(r)
	if err != nil {
		logging.OrDefault(logger).WithComponent("special").
			Error("reading macro source: %v (kept %d rules)", err, len(m))
	}
	return m, nil
}

// LoadFile opens path and loads it with LoadFrom. Failing to open the file is
// returned to the caller.
func LoadFile(path string, logger *logging.Logger) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open macro file: %w", err)
	}
	defer f.Close()

	m, _ := LoadFrom(f, logging.OrDefault(logger).WithField("file", path))
	return m, nil
}
