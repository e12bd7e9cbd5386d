package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// RawFile describes a synthetic sensor export for tests. Header and
// Rows are CSV lines placed after MetadataLines filler lines, matching
// the layout of the logger exports the parser consumes.
type RawFile struct {
	MetadataLines int
	Header        string
	Rows          []string
}

// DefaultHeader is a header row the column discovery resolves to all
// five roles.
const DefaultHeader = "Date Time,Value Heat Surface,Internal Temp,Out Air Temp,Wall Type"

// Render produces the raw file content.
func (f RawFile) Render() string {
	var b strings.Builder
	for i := 0; i < f.MetadataLines; i++ {
		fmt.Fprintf(&b, "Logger metadata line %d\n", i+1)
	}
	b.WriteString(f.Header)
	b.WriteString("\n")
	for _, row := range f.Rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteRawFile renders the fixture into dir under name and returns the
// full path.
func WriteRawFile(t *testing.T, dir, name string, f RawFile) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(f.Render()), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}

// DataRow formats one measurement row in the raw export layout used by
// DefaultHeader.
func DataRow(ts time.Time, surface, internal, room, wallType string) string {
	return fmt.Sprintf("%s,%s,%s,%s,%s", ts.Format("1/2/2006 15:04"), surface, internal, room, wallType)
}
