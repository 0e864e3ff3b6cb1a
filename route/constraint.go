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
	"regexp"
	"strings"
	"time"
)

// ConstraintKind represents the type of constraint applied to a route parameter.
type ConstraintKind uint8

const (
	ConstraintNone ConstraintKind = iota
	ConstraintInt
	ConstraintFloat
	ConstraintUUID
	ConstraintRegex
	ConstraintEnum
	ConstraintDate     // RFC3339 full-date
	ConstraintDateTime // RFC3339 date-time
)

var constraintNames = map[ConstraintKind]string{
	ConstraintInt:      "int",
	ConstraintFloat:    "float",
	ConstraintUUID:     "uuid",
	ConstraintRegex:    "regex",
	ConstraintEnum:     "enum",
	ConstraintDate:     "date",
	ConstraintDateTime: "datetime",
}

// String returns the declaration keyword of the kind ("int", "uuid", ...).
func (k ConstraintKind) String() string {
	if name, ok := constraintNames[k]; ok {
		return name
	}
	return "none"
}

var (
	intPattern   = regexp.MustCompile(`^\d+$`)
	floatPattern = regexp.MustCompile(`^-?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)
	uuidPattern  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-8][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)
)

// ParamConstraint represents a typed constraint for a route parameter.
// The zero value accepts any non-empty segment.
type ParamConstraint struct {
	Kind    ConstraintKind
	Pattern string   // for ConstraintRegex
	Enum    []string // for ConstraintEnum

	re *regexp.Regexp // compiled ConstraintRegex pattern
}

// ParseConstraint parses a constraint declaration.
//
// Accepted forms:
//
//	int | float | uuid | date | datetime
//	regex:<pattern>
//	enum:<value>|<value>|...
func ParseConstraint(decl string) (ParamConstraint, error) {
	kind, arg, _ := strings.Cut(strings.TrimSpace(decl), ":")

	switch kind {
	case "int":
		return ParamConstraint{Kind: ConstraintInt}, nil
	case "float":
		return ParamConstraint{Kind: ConstraintFloat}, nil
	case "uuid":
		return ParamConstraint{Kind: ConstraintUUID}, nil
	case "date":
		return ParamConstraint{Kind: ConstraintDate}, nil
	case "datetime":
		return ParamConstraint{Kind: ConstraintDateTime}, nil
	case "regex":
		pc := ParamConstraint{Kind: ConstraintRegex, Pattern: arg}
		if err := pc.compile(); err != nil {
			return ParamConstraint{}, err
		}
		return pc, nil
	case "enum":
		if arg == "" {
			return ParamConstraint{}, fmt.Errorf("%w: enum needs at least one value", ErrInvalidConstraint)
		}
		return ParamConstraint{Kind: ConstraintEnum, Enum: strings.Split(arg, "|")}, nil
	}

	return ParamConstraint{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidConstraint, kind)
}

// compile compiles the regex of a ConstraintRegex constraint.
func (pc *ParamConstraint) compile() error {
	if pc.Kind != ConstraintRegex || pc.re != nil {
		return nil
	}
	if pc.Pattern == "" {
		return fmt.Errorf("%w: empty regex", ErrInvalidConstraint)
	}
	rx, err := regexp.Compile("^(?:" + pc.Pattern + ")$")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConstraint, err)
	}
	pc.re = rx
	return nil
}

// Accepts reports whether value satisfies the constraint.
func (pc ParamConstraint) Accepts(value string) bool {
	switch pc.Kind {
	case ConstraintNone:
		return true
	case ConstraintInt:
		return intPattern.MatchString(value)
	case ConstraintFloat:
		return floatPattern.MatchString(value)
	case ConstraintUUID:
		return uuidPattern.MatchString(value)
	case ConstraintRegex:
		return pc.re != nil && pc.re.MatchString(value)
	case ConstraintEnum:
		for _, v := range pc.Enum {
			if v == value {
				return true
			}
		}
		return false
	case ConstraintDate:
		_, err := time.Parse(time.DateOnly, value)
		return err == nil
	case ConstraintDateTime:
		_, err := time.Parse(time.RFC3339, value)
		return err == nil
	}
	return false
}

// String returns the declaration form accepted by [ParseConstraint].
func (pc ParamConstraint) String() string {
	switch pc.Kind {
	case ConstraintNone:
		return ""
	case ConstraintRegex:
		return "regex:" + pc.Pattern
	case ConstraintEnum:
		return "enum:" + strings.Join(pc.Enum, "|")
	}
	return pc.Kind.String()
}
