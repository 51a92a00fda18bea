package rdb

import (
	"os"

	"github.com/yndnr/rekv-go/internal/rerr"
)

// Load opens and decodes a complete RDB snapshot from path.
func Load(path string) (*RDB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rerr.Wrap(rerr.RdbMalformed, "opening RDB file", err)
	}
	rdb, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return rdb, nil
}

// FirstSection returns the snapshot's first database section, if any.
// Only the first section is ever surfaced to a cache; subsequent
// sections are parsed (to validate the file) but their contents are
// discarded, matching the source's own behavior.
func (r *RDB) FirstSection() (Section, bool) {
	if len(r.Sections) == 0 {
		return Section{}, false
	}
	return r.Sections[0], true
}
