package command

import (
	"errors"
	"strconv"
	"strings"

	"github.com/einherij/tellosdk/pkg/schema"
)

var ErrEmptyLine = errors.New("empty command line")

// ParseLine splits an SDK text line such as "go 20 20 20 50" into the command name and its
// parameters. Arguments are named after the schema's declared parameter order; arguments of
// commands without limits are named arg1, arg2, ... Numeric arguments become float64.
//
// The result still has to pass Verify: ParseLine only checks the argument count.
func ParseLine(s *schema.Schema, line string) (string, Params, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, ErrEmptyLine
	}
	name, args := fields[0], fields[1:]
	if !s.IsCommand(name) {
		return name, nil, &ValidationError{Command: name, Err: ErrUnknownCommand}
	}

	spec, limited := s.Limits(name)
	if !limited {
		var params Params
		for i, a := range args {
			params = append(params, P(positional(i), parseArg(a)))
		}
		return name, params, nil
	}

	names := spec.Names()
	switch {
	case len(args) < len(names):
		return name, nil, &ValidationError{Command: name, Param: names[len(args)], Err: ErrMissingParameter}
	case len(args) > len(names):
		return name, nil, &ValidationError{Command: name, Value: args[len(names)], Err: ErrUnexpectedParameter}
	}
	params := make(Params, 0, len(args))
	for i, a := range args {
		params = append(params, P(names[i], parseArg(a)))
	}
	return name, params, nil
}

// SplitLine splits a line into its command name and raw text arguments named arg1, arg2, ...
// without consulting a schema. Format writes the arguments back exactly as they were typed.
func SplitLine(line string) (string, Params, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, ErrEmptyLine
	}
	var params Params
	for i, a := range fields[1:] {
		params = append(params, P(positional(i), a))
	}
	return fields[0], params, nil
}

func positional(i int) string {
	return "arg" + strconv.Itoa(i+1)
}

func parseArg(a string) any {
	if f, err := strconv.ParseFloat(a, 64); err == nil {
		return f
	}
	return a
}
