package command

import (
	"github.com/einherij/tellosdk/pkg/schema"
)

func (s *CommandSuite) TestParseLine() {
	name, params, err := ParseLine(s.schema, "go 20 -20 30 50")
	s.Require().NoError(err)
	s.Equal("go", name)
	s.Equal(Params{P("x", 20.), P("y", -20.), P("z", 30.), P("speed", 50.)}, params)
	s.NoError(Verify(s.schema, name, params))
	s.Equal("go 20 -20 30 50", Format(name, params))

	name, params, err = ParseLine(s.schema, "  flip   b\r\n")
	s.Require().NoError(err)
	s.Equal("flip", name)
	s.Equal(Params{P("value", "b")}, params)

	name, params, err = ParseLine(s.schema, "battery?")
	s.Require().NoError(err)
	s.Equal("battery?", name)
	s.Empty(params)

	name, params, err = ParseLine(s.schema, "wifi tello secret")
	s.Require().NoError(err)
	s.Equal("wifi", name)
	s.Equal(Params{P("arg1", "tello"), P("arg2", "secret")}, params)
	s.Equal("wifi tello secret", Format(name, params))
}

func (s *CommandSuite) TestSplitLine() {
	name, params, err := SplitLine(" cw 90 10 ")
	s.Require().NoError(err)
	s.Equal("cw", name)
	s.Equal(Params{P("arg1", "90"), P("arg2", "10")}, params)
	s.Equal("cw 90 10", Format(name, params))

	_, _, err = ParseLine(s.schema, "cw 90 10")
	s.requireReason(err, ErrUnexpectedParameter)

	name, params, err = SplitLine("hover")
	s.Require().NoError(err)
	s.Equal("hover", name)
	s.Empty(params)

	_, _, err = SplitLine("\t")
	s.ErrorIs(err, ErrEmptyLine)
}

func (s *CommandSuite) TestParseLineErrors() {
	_, _, err := ParseLine(s.schema, "   ")
	s.ErrorIs(err, ErrEmptyLine)

	_, _, err = ParseLine(s.schema, "hover 5")
	s.requireReason(err, ErrUnknownCommand)

	_, _, err = ParseLine(s.schema, "go 20 20")
	s.requireReason(err, ErrMissingParameter)

	_, _, err = ParseLine(s.schema, "cw 90 90")
	s.requireReason(err, ErrUnexpectedParameter)

	_, _, err = ParseLine(s.schema, "cw")
	s.requireReason(err, ErrMissingParameter)
}

func (s *CommandSuite) TestParseLineCustomSchema() {
	sc := schema.MustParse([]byte("validCommands: [move]\ncommandLimits:\n  move:\n    dist: {min: 0, max: 10}\n    dir: [up, down]\n"))
	name, params, err := ParseLine(sc, "move 5 up")
	s.Require().NoError(err)
	s.Equal(Params{P("dist", 5.), P("dir", "up")}, params)
	s.NoError(Verify(sc, name, params))
}
