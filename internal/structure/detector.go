package structure

import (
	"regexp"
	"strings"
)

// Context is the currently active heading state of a document stream.
// Fields hold their last detected value; empty means not seen yet.
type Context struct {
	Unit         string
	Section      string
	SectionTitle string
}

// Update is a partial change to a Context. Nil pointer fields leave
// the corresponding Context field untouched.
type Update struct {
	Unit         *string
	Section      *string
	SectionTitle *string
}

// Detector classifies a single line and reports the structural fields
// it establishes, or nil if the line carries no structure.
type Detector interface {
	Detect(line string) *Update
}

// Defaults returns the built-in detector list in evaluation order.
// Later detectors overwrite earlier ones on key collision.
func Defaults() []Detector {
	return []Detector{UnitDetector{}, NumberedSectionDetector{}}
}

// UnitDetector matches lines like "UNIT I" or "Chapter IV": the
// keyword, whitespace, then a token made only of Roman numeral
// characters I V X L C. The numeral is reported uppercased.
type UnitDetector struct{}

var romanToken = regexp.MustCompile(`^[IVXLCivxlc]+$`)

func (UnitDetector) Detect(line string) *Update {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}
	keyword := strings.ToUpper(fields[0])
	if keyword != "UNIT" && keyword != "CHAPTER" {
		return nil
	}
	if !romanToken.MatchString(fields[1]) {
		return nil
	}
	unit := strings.ToUpper(fields[1])
	return &Update{Unit: &unit}
}

// NumberedSectionDetector matches lines beginning with a dot-separated
// digit sequence ("2", "2.3", "2.3.4") followed by whitespace and a
// title fragment. The fragment may be empty after trimming.
type NumberedSectionDetector struct{}

var sectionLine = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+(.*)$`)

func (NumberedSectionDetector) Detect(line string) *Update {
	m := sectionLine.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	section := m[1]
	title := strings.TrimSpace(m[2])
	return &Update{Section: &section, SectionTitle: &title}
}
