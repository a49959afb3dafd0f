package hairstyle

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Record is one saved hairstyle: the mask file name, relative to the collection
// directory, and the parameters that were active when it was saved.
type Record struct {
	Filename string
	Style    Hairstyle
}

// String formats the record as one index line: "<filename> <r> <g> <b> <width> <length>".
func (r Record) String() string {
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
	c := r.Style.Color
	return strings.Join([]string{
		r.Filename, f(c[0]), f(c[1]), f(c[2]), f(r.Style.Width), f(r.Style.Length),
	}, " ")
}

// ParseRecord parses one index line.
//
// Parameters:
//   - line: the text line
//
// Returns:
//   - Record: the parsed record
//   - error: error if the line is short, a number is malformed or the filename is not a bare name
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return Record{}, fmt.Errorf("record %q: want 6 fields, got %d", line, len(fields))
	}
	name := fields[0]
	if name != filepath.Base(name) || name == "." || name == ".." {
		return Record{}, fmt.Errorf("record %q: filename must not contain a path", line)
	}
	var v [5]float32
	for i := range v {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return Record{}, fmt.Errorf("record %q field %d: %w", line, i+1, err)
		}
		v[i] = float32(f)
	}
	return Record{
		Filename: name,
		Style: Hairstyle{
			Color:  mgl32.Vec3{v[0], v[1], v[2]},
			Width:  v[3],
			Length: v[4],
		},
	}, nil
}
