package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/geovcs/spatialfilter/internal/filter"
)

// The driver speaks a line protocol with the host traversal: one object per
// input line, one reply per line.
//
//	commit <oid>
//	tag <oid>
//	begin-tree <oid> <path>
//	end-tree <oid> <path>
//	blob <oid> <path>
//
// Replies are "show", "omit", or "-" for the neutral end-tree result.

var situations = map[string]filter.Situation{
	"commit":     filter.SituationCommit,
	"tag":        filter.SituationTag,
	"begin-tree": filter.SituationBeginTree,
	"end-tree":   filter.SituationEndTree,
	"blob":       filter.SituationBlob,
}

func parseLine(line string) (filter.Situation, []byte, string, error) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 3)
	sit, ok := situations[fields[0]]
	if !ok {
		return 0, nil, "", fmt.Errorf("unknown situation %q", fields[0])
	}
	if len(fields) < 2 {
		return 0, nil, "", fmt.Errorf("%s: missing object id", fields[0])
	}
	oid, err := hex.DecodeString(fields[1])
	if err != nil {
		return 0, nil, "", fmt.Errorf("%s: bad object id %q: %w", fields[0], fields[1], err)
	}
	var path string
	if len(fields) == 3 {
		path = fields[2]
	}
	return sit, oid, path, nil
}

func reply(res filter.Result) string {
	switch {
	case res == 0:
		return "-"
	case res.Omitted():
		return "omit"
	default:
		return "show"
	}
}
