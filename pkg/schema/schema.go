// Package schema holds the static table of Tello SDK commands: the valid command names, the
// parameter constraints of the commands that take parameters and the per-command delays.
//
// A Schema is read-only once loaded and may be shared between goroutines.
package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed tello-data.json
var defaultData []byte

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
)

// Range is an inclusive numeric bound.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether min <= v <= max.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Constraint limits the values a single parameter accepts. Exactly one of Range and Enum is
// set on a well-formed constraint. Enum values are float64 or string.
type Constraint struct {
	Range *Range
	Enum  []any
}

func RangeOf(min, max float64) Constraint {
	return Constraint{Range: &Range{Min: min, Max: max}}
}

func EnumOf(values ...any) Constraint {
	return Constraint{Enum: values}
}

func (c Constraint) IsRange() bool { return c.Range != nil && c.Enum == nil }

func (c Constraint) IsEnum() bool { return c.Range == nil && c.Enum != nil }

func (c Constraint) String() string {
	switch {
	case c.IsRange():
		return fmt.Sprintf("[%v, %v]", c.Range.Min, c.Range.Max)
	case c.IsEnum():
		return fmt.Sprintf("%v", c.Enum)
	default:
		return "<invalid>"
	}
}

// Parameter pairs a parameter name with its constraint.
type Parameter struct {
	Name       string
	Constraint Constraint
}

// ParamSpec is the ordered set of parameters a command requires.
type ParamSpec struct {
	names       []string
	constraints map[string]Constraint
}

func NewParamSpec(params ...Parameter) ParamSpec {
	spec := ParamSpec{constraints: make(map[string]Constraint, len(params))}
	for _, p := range params {
		if _, ok := spec.constraints[p.Name]; !ok {
			spec.names = append(spec.names, p.Name)
		}
		spec.constraints[p.Name] = p.Constraint
	}
	return spec
}

// Names returns the parameter names in declaration order.
func (ps ParamSpec) Names() []string {
	return append([]string(nil), ps.names...)
}

func (ps ParamSpec) Lookup(name string) (Constraint, bool) {
	c, ok := ps.constraints[name]
	return c, ok
}

func (ps ParamSpec) Len() int {
	return len(ps.names)
}

// Schema is the command table.
type Schema struct {
	groups   map[string][]string
	commands map[string]struct{}
	limits   map[string]ParamSpec
	delays   map[string]time.Duration
}

// New builds a schema from a command list and the limits of the commands taking parameters.
func New(commands []string, limits map[string]ParamSpec, delays map[string]time.Duration) (*Schema, error) {
	s := &Schema{
		groups:   map[string][]string{"all": append([]string(nil), commands...)},
		commands: make(map[string]struct{}, len(commands)),
		limits:   make(map[string]ParamSpec, len(limits)),
		delays:   make(map[string]time.Duration, len(delays)),
	}
	for _, c := range commands {
		s.commands[c] = struct{}{}
	}
	for c, spec := range limits {
		s.limits[c] = spec
	}
	for c, d := range delays {
		s.delays[c] = d
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

// Default returns the schema embedded in the package.
func Default() *Schema {
	defaultOnce.Do(func() {
		defaultSchema = MustParse(defaultData)
	})
	return defaultSchema
}

// Load reads a schema resource from a file.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading schema file: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing schema file %s: %w", path, err)
	}
	return s, nil
}

func MustParse(data []byte) *Schema {
	s, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return s
}

type resource struct {
	ValidCommands yaml.Node      `yaml:"validCommands"`
	CommandLimits yaml.Node      `yaml:"commandLimits"`
	Delays        map[string]int `yaml:"delays"`
}

// Parse decodes a schema resource. The resource is JSON or YAML with the top-level entries
// validCommands (command groups), commandLimits and delays (milliseconds).
func Parse(data []byte) (*Schema, error) {
	var res resource
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("error decoding schema: %w", err)
	}
	s := &Schema{
		groups:   make(map[string][]string),
		commands: make(map[string]struct{}),
		limits:   make(map[string]ParamSpec),
		delays:   make(map[string]time.Duration, len(res.Delays)),
	}
	if err := s.parseCommands(&res.ValidCommands); err != nil {
		return nil, err
	}
	if err := s.parseLimits(&res.CommandLimits); err != nil {
		return nil, err
	}
	for c, ms := range res.Delays {
		s.delays[c] = time.Duration(ms) * time.Millisecond
	}
	if err := s.check(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Schema) parseCommands(node *yaml.Node) error {
	switch node.Kind {
	case 0:
		return fmt.Errorf("validCommands is missing")
	case yaml.SequenceNode:
		var all []string
		if err := node.Decode(&all); err != nil {
			return fmt.Errorf("error decoding validCommands: %w", err)
		}
		s.addGroup("all", all)
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			var cmds []string
			if err := node.Content[i+1].Decode(&cmds); err != nil {
				return fmt.Errorf("error decoding command group %q: %w", node.Content[i].Value, err)
			}
			s.addGroup(node.Content[i].Value, cmds)
		}
	default:
		return fmt.Errorf("validCommands: expected a list or a mapping of lists (line %d)", node.Line)
	}
	return nil
}

func (s *Schema) addGroup(group string, cmds []string) {
	s.groups[group] = append(s.groups[group], cmds...)
	for _, c := range cmds {
		s.commands[c] = struct{}{}
	}
}

func (s *Schema) parseLimits(node *yaml.Node) error {
	if node.Kind == 0 {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("commandLimits: expected a mapping (line %d)", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		cmd, paramsNode := node.Content[i].Value, node.Content[i+1]
		if paramsNode.Kind != yaml.MappingNode {
			return fmt.Errorf("commandLimits.%s: expected a mapping of parameters (line %d)", cmd, paramsNode.Line)
		}
		var params []Parameter
		for j := 0; j+1 < len(paramsNode.Content); j += 2 {
			name := paramsNode.Content[j].Value
			c, err := parseConstraint(paramsNode.Content[j+1])
			if err != nil {
				return fmt.Errorf("commandLimits.%s.%s: %w", cmd, name, err)
			}
			params = append(params, Parameter{Name: name, Constraint: c})
		}
		s.limits[cmd] = NewParamSpec(params...)
	}
	return nil
}

func parseConstraint(node *yaml.Node) (Constraint, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		values := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := parseScalar(item)
			if err != nil {
				return Constraint{}, err
			}
			values = append(values, v)
		}
		return EnumOf(values...), nil
	case yaml.MappingNode:
		var bounds struct {
			Min *float64 `yaml:"min"`
			Max *float64 `yaml:"max"`
		}
		if err := node.Decode(&bounds); err != nil {
			return Constraint{}, fmt.Errorf("error decoding range: %w", err)
		}
		if bounds.Min == nil || bounds.Max == nil {
			return Constraint{}, fmt.Errorf("range needs both min and max (line %d)", node.Line)
		}
		return RangeOf(*bounds.Min, *bounds.Max), nil
	default:
		return Constraint{}, fmt.Errorf("constraint is neither a range nor an enumeration (line %d)", node.Line)
	}
}

func parseScalar(node *yaml.Node) (any, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("enumeration values must be scalars (line %d)", node.Line)
	}
	switch node.ShortTag() {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("error parsing enumeration value %q: %w", node.Value, err)
		}
		return f, nil
	case "!!str":
		return node.Value, nil
	default:
		return nil, fmt.Errorf("unsupported enumeration value %q (%s)", node.Value, node.Tag)
	}
}

// check enforces that every limited command is a valid command. Constraint shapes are checked
// by Parse; a hand-built schema with a malformed constraint is caught at validation time.
func (s *Schema) check() error {
	for c := range s.limits {
		if _, ok := s.commands[c]; !ok {
			return fmt.Errorf("command %q has limits but is not a valid command", c)
		}
	}
	return nil
}

// IsCommand reports whether name is a member of the command set.
func (s *Schema) IsCommand(name string) bool {
	_, ok := s.commands[name]
	return ok
}

// Limits returns the parameter spec of a command. ok is false for commands taking no
// parameters.
func (s *Schema) Limits(name string) (spec ParamSpec, ok bool) {
	spec, ok = s.limits[name]
	return spec, ok
}

func (s *Schema) Delay(name string) (time.Duration, bool) {
	d, ok := s.delays[name]
	return d, ok
}

// Delays returns a copy of the delay table.
func (s *Schema) Delays() map[string]time.Duration {
	delays := make(map[string]time.Duration, len(s.delays))
	for c, d := range s.delays {
		delays[c] = d
	}
	return delays
}

// Commands returns all command names, sorted.
func (s *Schema) Commands() []string {
	cmds := make([]string, 0, len(s.commands))
	for c := range s.commands {
		cmds = append(cmds, c)
	}
	sort.Strings(cmds)
	return cmds
}

// Group returns the commands of a named group (control, set, read) in resource order.
func (s *Schema) Group(name string) []string {
	return append([]string(nil), s.groups[name]...)
}
