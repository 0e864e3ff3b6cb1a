// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package route

import (
	"fmt"
	"net/url"
	"strings"
)

// Segment represents a segment in a route pattern.
type Segment struct {
	Static     bool            // true if literal text, false if parameter
	Value      string          // decoded literal text or parameter name
	Constraint ParamConstraint // parameter constraint, zero for literals
}

// Pattern is a parsed route path template.
// Example: "/users/:id(int)/posts" -> [{static:"users"}, {param:"id", int}, {static:"posts"}]
type Pattern struct {
	segments []Segment
}

// ParsePattern parses a route path into segments.
// The path must start with a slash. Duplicate and trailing slashes are
// ignored, so "/profit//detail/" and "/profit/detail" are the same pattern.
func ParsePattern(path string) (Pattern, error) {
	if !strings.HasPrefix(path, "/") {
		return Pattern{}, &InvalidPatternError{Pattern: path, Reason: "must start with a slash"}
	}

	var segments []Segment
	seen := make(map[string]struct{})

	for part := range strings.SplitSeq(path, "/") {
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, ":") {
			lit, err := url.PathUnescape(part)
			if err != nil {
				return Pattern{}, &InvalidPatternError{Pattern: path, Reason: fmt.Sprintf("invalid escape in %q", part), Err: err}
			}
			segments = append(segments, Segment{Static: true, Value: lit})
			continue
		}

		seg, err := parseParam(part[1:])
		if err != nil {
			return Pattern{}, &InvalidPatternError{Pattern: path, Reason: err.Error(), Err: err}
		}
		if _, dup := seen[seg.Value]; dup {
			return Pattern{}, &InvalidPatternError{Pattern: path, Reason: fmt.Sprintf("parameter %q declared twice", seg.Value)}
		}
		seen[seg.Value] = struct{}{}
		segments = append(segments, seg)
	}

	return Pattern{segments: segments}, nil
}

// MustParsePattern is like [ParsePattern] but panics on error.
func MustParsePattern(path string) Pattern {
	p, err := ParsePattern(path)
	if err != nil {
		panic(err)
	}
	return p
}

// parseParam parses "name" or "name(constraint)".
func parseParam(decl string) (Segment, error) {
	name, rest, hasConstraint := strings.Cut(decl, "(")
	if name == "" {
		return Segment{}, fmt.Errorf("empty parameter name")
	}
	seg := Segment{Value: name}
	if !hasConstraint {
		return seg, nil
	}
	if !strings.HasSuffix(rest, ")") {
		return Segment{}, fmt.Errorf("unterminated constraint on %q", name)
	}
	pc, err := ParseConstraint(strings.TrimSuffix(rest, ")"))
	if err != nil {
		return Segment{}, err
	}
	seg.Constraint = pc
	return seg, nil
}

// Segments returns a copy of the pattern segments.
func (p Pattern) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// IsStatic reports whether the pattern has no parameter segments.
func (p Pattern) IsStatic() bool {
	for _, seg := range p.segments {
		if !seg.Static {
			return false
		}
	}
	return true
}

// ParamNames returns parameter names in declaration order.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, seg := range p.segments {
		if !seg.Static {
			names = append(names, seg.Value)
		}
	}
	return names
}

// String returns the canonical form of the pattern. Two patterns are
// identical when their canonical forms are equal.
func (p Pattern) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var buf strings.Builder
	for _, seg := range p.segments {
		buf.WriteByte('/')
		if seg.Static {
			buf.WriteString(escapeLiteral(seg.Value))
			continue
		}
		buf.WriteByte(':')
		buf.WriteString(seg.Value)
		if c := seg.Constraint.String(); c != "" {
			buf.WriteString("(" + c + ")")
		}
	}
	return buf.String()
}

// Build builds a concrete path from the pattern and parameters.
// Parameter values are path-escaped and must satisfy their constraints.
func (p Pattern) Build(params Params) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	var buf strings.Builder
	for _, seg := range p.segments {
		buf.WriteByte('/')
		if seg.Static {
			buf.WriteString(escapeLiteral(seg.Value))
			continue
		}
		val, ok := params[seg.Value]
		if !ok || val == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParameter, seg.Value)
		}
		if !seg.Constraint.Accepts(val) {
			return "", fmt.Errorf("%w: %s=%q does not satisfy %s", ErrInvalidParameter, seg.Value, val, seg.Constraint)
		}
		buf.WriteString(url.PathEscape(val))
	}
	return buf.String(), nil
}

// escapeLiteral path-escapes a literal segment. A leading colon is escaped
// too so the literal never reads back as a parameter.
func escapeLiteral(lit string) string {
	esc := url.PathEscape(lit)
	if strings.HasPrefix(esc, ":") {
		esc = "%3A" + esc[1:]
	}
	return esc
}

// align matches concrete path segments against the pattern.
// Literals compare exactly; parameters bind the decoded segment.
func (p Pattern) align(parts []string) (Params, bool) {
	if len(parts) != len(p.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range p.segments {
		part := parts[i]
		if seg.Static {
			if part != seg.Value {
				return nil, false
			}
			continue
		}
		if !seg.Constraint.Accepts(part) {
			return nil, false
		}
		if params == nil {
			params = make(Params, len(p.segments)-i)
		}
		params[seg.Value] = part
	}
	return params, true
}

// NormalizePath collapses duplicate slashes, removes the trailing slash and
// guarantees a leading slash. The root path normalizes to "/".
func NormalizePath(path string) string {
	parts := splitPath(path)
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// splitPath splits a path into its non-empty segments.
func splitPath(path string) []string {
	var parts []string
	for part := range strings.SplitSeq(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// decodeSegments percent-decodes each segment, keeping the raw text of
// segments that are not valid escapes.
func decodeSegments(parts []string) []string {
	out := make([]string, len(parts))
	for i, part := range parts {
		if dec, err := url.PathUnescape(part); err == nil {
			out[i] = dec
		} else {
			out[i] = part
		}
	}
	return out
}
