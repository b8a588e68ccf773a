// Package command validates Tello SDK commands against a schema and renders them into the
// text sent over the control socket.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/einherij/tellosdk/pkg/schema"
)

var (
	ErrUnknownCommand      = errors.New("unknown command")
	ErrMissingOptions      = errors.New("missing options")
	ErrMissingParameter    = errors.New("missing parameter")
	ErrUnexpectedParameter = errors.New("unexpected parameter")
	ErrOutOfRange          = errors.New("out of range")
	ErrNotAllowed          = errors.New("not an allowed value")
)

// ValidationError reports why a command was rejected. Err is one of the package sentinels.
type ValidationError struct {
	Command string
	Param   string
	Value   any
	Err     error
	Detail  string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(e.Command))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Param != "" {
		b.WriteString(" ")
		b.WriteString(e.Param)
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " (%v)", e.Value)
	}
	if e.Detail != "" {
		b.WriteString(", ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Param is one named command argument. Value is a Go number or a string.
type Param struct {
	Name  string
	Value any
}

// Params keeps the caller's insertion order, which is the order values go on the wire.
type Params []Param

func P(name string, value any) Param {
	return Param{Name: name, Value: value}
}

func (ps Params) Get(name string) (any, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// Verify checks a command and its parameters against the schema. It returns nil when the
// command may be sent and a *ValidationError otherwise.
//
// Parameters passed to a command that takes none are ignored. Verify panics when the schema
// holds a constraint that is neither a range nor an enumeration.
func Verify(s *schema.Schema, name string, params Params) error {
	if !s.IsCommand(name) {
		return &ValidationError{Command: name, Err: ErrUnknownCommand}
	}
	spec, limited := s.Limits(name)
	if !limited {
		return nil
	}
	if len(params) == 0 {
		return &ValidationError{Command: name, Err: ErrMissingOptions, Detail: "expected " + strings.Join(spec.Names(), ", ")}
	}

	for _, required := range spec.Names() {
		if _, ok := params.Get(required); !ok {
			return &ValidationError{Command: name, Param: required, Err: ErrMissingParameter}
		}
	}
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, ok := spec.Lookup(p.Name); !ok {
			return &ValidationError{Command: name, Param: p.Name, Err: ErrUnexpectedParameter}
		}
		if _, dup := seen[p.Name]; dup {
			return &ValidationError{Command: name, Param: p.Name, Err: ErrUnexpectedParameter, Detail: "given twice"}
		}
		seen[p.Name] = struct{}{}
	}

	for _, p := range params {
		c, _ := spec.Lookup(p.Name)
		if err := check(c, p.Value); err != nil {
			return &ValidationError{Command: name, Param: p.Name, Value: p.Value, Err: err, Detail: "expected " + c.String()}
		}
	}
	return nil
}

func check(c schema.Constraint, value any) error {
	switch {
	case c.IsRange():
		f, ok := toFloat(value)
		if !ok || !c.Range.Contains(f) {
			return ErrOutOfRange
		}
	case c.IsEnum():
		for _, allowed := range c.Enum {
			if equal(allowed, value) {
				return nil
			}
		}
		return ErrNotAllowed
	default:
		panic(fmt.Sprintf("command: malformed schema constraint %#v", c))
	}
	return nil
}

// equal matches numbers numerically and strings textually, never across the two.
func equal(a, b any) bool {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		return ok && af == bf
	}
	as, ok := a.(string)
	if !ok {
		return false
	}
	bs, ok := b.(string)
	return ok && as == bs
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Format renders the wire text: the command name followed by each parameter value in the
// order the caller supplied them. The firmware reads arguments positionally, so the caller is
// responsible for that order; Format never reorders.
func Format(name string, params Params) string {
	if len(params) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	for _, p := range params {
		b.WriteByte(' ')
		b.WriteString(formatValue(p.Value))
	}
	return b.String()
}

func formatValue(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}

// IsRead reports whether the command is a read command, which the drone answers with a
// value instead of an acknowledgement.
func IsRead(name string) bool {
	return strings.Contains(name, "?")
}
