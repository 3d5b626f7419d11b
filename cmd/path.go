package cmd

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// parsePath turns a find expression into yaml.Get steps. Segments are
// separated by dots; an all-digit segment or a bracketed [n] is a sequence
// index, anything else a mapping key. "" and "." select the root.
func parsePath(expr string) ([]any, error) {
	expr = strings.TrimPrefix(strings.TrimSpace(expr), ".")
	if expr == "" {
		return nil, nil
	}
	var steps []any
	for _, seg := range strings.Split(expr, ".") {
		name, indexes, err := splitIndexes(seg)
		if err != nil {
			return nil, errors.Wrapf(err, "path %q", expr)
		}
		switch {
		case name != "":
			steps = append(steps, segmentStep(name))
		case len(indexes) == 0:
			return nil, errors.Errorf("path %q: empty segment", expr)
		}
		for _, i := range indexes {
			steps = append(steps, i)
		}
	}
	return steps, nil
}

// splitIndexes separates "name[1][2]" into its name and indexes.
func splitIndexes(seg string) (string, []int, error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil, nil
	}
	name, rest := seg[:open], seg[open:]
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end < 0 {
			return "", nil, errors.Errorf("malformed index in %q", seg)
		}
		i, err := strconv.Atoi(rest[1:end])
		if err != nil || i < 0 {
			return "", nil, errors.Errorf("invalid index %q in %q", rest[1:end], seg)
		}
		indexes = append(indexes, i)
		rest = rest[end+1:]
	}
	return name, indexes, nil
}

func segmentStep(seg string) any {
	if strings.Trim(seg, "0123456789") == "" {
		if i, err := strconv.Atoi(seg); err == nil {
			return i
		}
	}
	return seg
}
