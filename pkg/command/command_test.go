package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/einherij/tellosdk/pkg/schema"
)

type CommandSuite struct {
	suite.Suite
	schema *schema.Schema
}

func TestCommandSuite(t *testing.T) {
	suite.Run(t, new(CommandSuite))
}

func (s *CommandSuite) SetupTest() {
	s.schema = schema.Default()
}

func (s *CommandSuite) requireReason(err error, reason error) {
	s.Require().Error(err)
	var verr *ValidationError
	s.Require().True(errors.As(err, &verr), "%T is not a *ValidationError", err)
	s.ErrorIs(err, reason)
}

func (s *CommandSuite) TestCommandsWithoutLimits() {
	for _, name := range s.schema.Commands() {
		if _, limited := s.schema.Limits(name); limited {
			continue
		}
		s.NoError(Verify(s.schema, name, nil), name)
	}
}

func (s *CommandSuite) TestCommandsWithLimitsNeedOptions() {
	for _, name := range s.schema.Commands() {
		if _, limited := s.schema.Limits(name); !limited {
			continue
		}
		s.requireReason(Verify(s.schema, name, nil), ErrMissingOptions)
		s.requireReason(Verify(s.schema, name, Params{}), ErrMissingOptions)
	}
}

func (s *CommandSuite) TestUnknownCommand() {
	for _, name := range []string{"im", "not", "a", "validCommand", "", "CW"} {
		s.requireReason(Verify(s.schema, name, nil), ErrUnknownCommand)
	}
}

func (s *CommandSuite) TestValidOptions() {
	tests := []struct {
		name   string
		params Params
	}{
		{"up", Params{P("value", 200)}},
		{"down", Params{P("value", 50)}},
		{"ccw", Params{P("value", 180)}},
		{"flip", Params{P("value", "r")}},
		{"curve", Params{P("x1", 250), P("y1", 100), P("x2", 100), P("y2", 50), P("speed", 30)}},
		{"go", Params{P("speed", 50), P("z", 20), P("y", 20), P("x", 20)}},
		{"rc", Params{P("a", -100), P("b", 0), P("c", 0.5), P("d", 100)}},
	}
	for _, tt := range tests {
		s.NoError(Verify(s.schema, tt.name, tt.params), tt.name)
	}
}

func (s *CommandSuite) TestInvalidOptions() {
	tests := []struct {
		name   string
		params Params
		reason error
	}{
		{"up", Params{P("value", 2000)}, ErrOutOfRange},
		{"down", Params{P("value", 5000)}, ErrOutOfRange},
		{"ccw", Params{P("value", 18000)}, ErrOutOfRange},
		{"flip", Params{P("value", "j")}, ErrNotAllowed},
		{"curve", Params{P("x1", 25000), P("y1", 10000), P("x2", 10000), P("y2", 5000), P("speed", 3000)}, ErrOutOfRange},
		{"up", Params{P("value", "200")}, ErrOutOfRange},
		{"go", Params{P("x", 20), P("y", 20), P("speed", 50)}, ErrMissingParameter},
		{"cw", Params{P("value", 90), P("speed", 10)}, ErrUnexpectedParameter},
		{"cw", Params{P("value", 90), P("value", 91)}, ErrUnexpectedParameter},
	}
	for _, tt := range tests {
		s.requireReason(Verify(s.schema, tt.name, tt.params), tt.reason)
	}
}

func (s *CommandSuite) TestMissingBeforeUnexpected() {
	err := Verify(s.schema, "cw", Params{P("angle", 90)})
	s.requireReason(err, ErrMissingParameter)
	var verr *ValidationError
	s.Require().True(errors.As(err, &verr))
	s.Equal("value", verr.Param)
	s.Contains(err.Error(), "missing parameter value")
}

func (s *CommandSuite) TestRangeBounds() {
	for _, name := range s.schema.Commands() {
		spec, limited := s.schema.Limits(name)
		if !limited {
			continue
		}
		for _, param := range spec.Names() {
			c, _ := spec.Lookup(param)
			if !c.IsRange() {
				continue
			}
			const eps = 1e-6
			for value, valid := range map[float64]bool{
				c.Range.Min:       true,
				c.Range.Max:       true,
				c.Range.Min - eps: false,
				c.Range.Max + eps: false,
			} {
				params := validParams(spec)
				for i := range params {
					if params[i].Name == param {
						params[i].Value = value
					}
				}
				err := Verify(s.schema, name, params)
				if valid {
					s.NoError(err, "%s %s=%v", name, param, value)
				} else {
					s.requireReason(err, ErrOutOfRange)
				}
			}
		}
	}
}

func validParams(spec schema.ParamSpec) Params {
	var params Params
	for _, name := range spec.Names() {
		c, _ := spec.Lookup(name)
		if c.IsRange() {
			params = append(params, P(name, c.Range.Min))
		} else {
			params = append(params, P(name, c.Enum[0]))
		}
	}
	return params
}

func (s *CommandSuite) TestEnumExactMatch() {
	sc, err := schema.Parse([]byte(`{"validCommands":{"set":["mode"]},"commandLimits":{"mode":{"value":[1,2,"auto"]}}}`))
	s.Require().NoError(err)

	s.NoError(Verify(sc, "mode", Params{P("value", 1)}))
	s.NoError(Verify(sc, "mode", Params{P("value", 2.0)}))
	s.NoError(Verify(sc, "mode", Params{P("value", "auto")}))
	s.requireReason(Verify(sc, "mode", Params{P("value", "1")}), ErrNotAllowed)
	s.requireReason(Verify(sc, "mode", Params{P("value", 3)}), ErrNotAllowed)
	s.requireReason(Verify(sc, "mode", Params{P("value", "AUTO")}), ErrNotAllowed)
	s.requireReason(Verify(sc, "mode", Params{P("value", true)}), ErrNotAllowed)

	for _, v := range []string{"l", "r", "f", "b"} {
		s.NoError(Verify(s.schema, "flip", Params{P("value", v)}))
	}
}

// Commands without limits accept and ignore extra parameters.
func (s *CommandSuite) TestUnlimitedCommandIgnoresParams() {
	s.NoError(Verify(s.schema, "takeoff", Params{P("value", 1000)}))
	s.NoError(Verify(s.schema, "wifi", Params{P("arg1", "ssid"), P("arg2", "pass")}))
}

func (s *CommandSuite) TestMalformedConstraintPanics() {
	sc, err := schema.New([]string{"cw"}, map[string]schema.ParamSpec{
		"cw": schema.NewParamSpec(schema.Parameter{Name: "value"}),
	}, nil)
	s.Require().NoError(err)
	s.Panics(func() { _ = Verify(sc, "cw", Params{P("value", 90)}) })
}

func (s *CommandSuite) TestCwScenario() {
	sc, err := schema.Parse([]byte(`{"validCommands":{"control":["cw"]},"commandLimits":{"cw":{"value":{"min":1,"max":360}}}}`))
	s.Require().NoError(err)

	s.NoError(Verify(sc, "cw", Params{P("value", 90)}))
	s.requireReason(Verify(sc, "cw", Params{P("value", 0)}), ErrOutOfRange)
	s.Equal("cw 90", Format("cw", Params{P("value", 90)}))
}

func (s *CommandSuite) TestFormatKeepsCallerOrder() {
	params := Params{P("x1", 250), P("y1", 100), P("x2", 100), P("y2", 50), P("speed", 30)}
	result := Format("ccw", params)

	tokens := strings.Split(result, " ")
	s.Len(tokens, 1+len(params))
	s.Equal([]string{"ccw", "250", "100", "100", "50", "30"}, tokens)

	s.Equal("go 50 20 -20 20", Format("go", Params{P("speed", 50), P("z", 20), P("y", -20), P("x", 20)}))
	s.Equal("takeoff", Format("takeoff", nil))
	s.Equal("rc 0.5 -16.92 0 100", Format("rc", Params{P("a", 0.5), P("b", -16.92), P("c", float32(0)), P("d", int64(100))}))
	s.Equal("flip l", Format("flip", Params{P("value", "l")}))
}

func (s *CommandSuite) TestIsRead() {
	s.True(IsRead("battery?"))
	s.False(IsRead("battery"))
}
