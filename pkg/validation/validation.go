// Package validation evaluates declarative per-field rules against request
// input. Rule sets are plain data, so they can be inspected or reused outside
// of any HTTP framework.
package validation

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mcnijman/go-emailaddress"
)

// Source names where a field is read from.
type Source string

const (
	Body  Source = "body"
	Param Source = "params"
	Query Source = "query"
)

// Check reports whether a raw field value is acceptable.
type Check func(value string) bool

// Rule constrains one field. An Optional rule is skipped when the field is
// absent; a required field that is absent is checked as "".
type Rule struct {
	Field    string
	Source   Source
	Optional bool
	Check    Check
	Message  string
}

// Rules is an ordered rule set.
type Rules []Rule

// Input holds raw request values by source. Absent keys are absent fields.
type Input struct {
	Body   map[string]string
	Params map[string]string
	Query  map[string]string
}

// Get returns the value of field in src and whether it was supplied.
func (in Input) Get(src Source, field string) (string, bool) {
	var m map[string]string
	switch src {
	case Body:
		m = in.Body
	case Param:
		m = in.Params
	case Query:
		m = in.Query
	}
	v, ok := m[field]
	return v, ok
}

// FieldError describes one violated rule.
type FieldError struct {
	Field    string `json:"field"`
	Location Source `json:"location"`
	Message  string `json:"message"`
	Value    string `json:"value,omitempty"`
}

// Validate evaluates rules in order and returns every violation.
func Validate(rules Rules, in Input) []FieldError {
	var errs []FieldError
	for _, r := range rules {
		v, ok := in.Get(r.Source, r.Field)
		if !ok && r.Optional {
			continue
		}
		if !r.Check(v) {
			errs = append(errs, FieldError{
				Field:    r.Field,
				Location: r.Source,
				Message:  r.Message,
				Value:    v,
			})
		}
	}
	return errs
}

// Has reports whether any rule reads from src.
func (rs Rules) Has(src Source) bool {
	for _, r := range rs {
		if r.Source == src {
			return true
		}
	}
	return false
}

// Join concatenates rule sets in order.
func Join(sets ...Rules) Rules {
	var out Rules
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

var validate = validator.New()

// MinLength accepts values of at least n characters.
func MinLength(n int) Check {
	tag := "min=" + strconv.Itoa(n)
	return func(v string) bool {
		return validate.Var(v, tag) == nil
	}
}

// Numeric accepts an optionally signed decimal number such as "12", "-3" or "2.5".
func Numeric(v string) bool {
	return validate.Var(v, "numeric") == nil
}

// Integer accepts a Numeric value whose whole part fits in 32 bits. The
// fraction, if any, is dropped by the caller.
func Integer(v string) bool {
	if !Numeric(v) {
		return false
	}
	whole, _, _ := strings.Cut(v, ".")
	_, err := strconv.ParseInt(whole, 10, 32)
	return err == nil
}

// Email accepts a well-formed e-mail address with a dotted domain.
func Email(v string) bool {
	addr, err := emailaddress.Parse(v)
	if err != nil {
		return false
	}
	return addr.LocalPart != "" && strings.Contains(addr.Domain, ".")
}
