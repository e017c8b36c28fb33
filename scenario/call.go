package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/viant/parsly"
)

// Arg kinds
const (
	ArgNumber = "number"
	ArgString = "string"
)

// Arg is a literal call argument
type Arg struct {
	Kind string
	Text string
}

// Call is a parsed step such as create(10MiB, 5)
type Call struct {
	Name string
	Args []Arg
}

func (c *Call) String() string {
	args := make([]string, 0, len(c.Args))
	for _, arg := range c.Args {
		if arg.Kind == ArgString {
			args = append(args, strconv.Quote(arg.Text))
			continue
		}
		args = append(args, arg.Text)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Uint returns argument i as a byte size; units such as KiB or MB are accepted
func (c *Call) Uint(i int) (uint64, error) {
	arg, err := c.arg(i, ArgNumber)
	if err != nil {
		return 0, err
	}
	if v, err := strconv.ParseUint(arg.Text, 10, 64); err == nil {
		return v, nil
	}
	v, err := humanize.ParseBytes(arg.Text)
	if err != nil {
		return 0, fmt.Errorf("%v: invalid size argument %d %q: %w", c.Name, i, arg.Text, err)
	}
	return v, nil
}

// Int returns argument i as an integer
func (c *Call) Int(i int) (int, error) {
	arg, err := c.arg(i, ArgNumber)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(arg.Text)
	if err != nil {
		return 0, fmt.Errorf("%v: invalid integer argument %d %q: %w", c.Name, i, arg.Text, err)
	}
	return v, nil
}

// Str returns argument i as a string
func (c *Call) Str(i int) (string, error) {
	arg, err := c.arg(i, ArgString)
	if err != nil {
		return "", err
	}
	return arg.Text, nil
}

func (c *Call) arg(i int, kind string) (Arg, error) {
	if i >= len(c.Args) {
		return Arg{}, fmt.Errorf("%v: missing argument %d", c.Name, i)
	}
	arg := c.Args[i]
	if arg.Kind != kind {
		return Arg{}, fmt.Errorf("%v: argument %d: expected %v, got %v", c.Name, i, kind, arg.Kind)
	}
	return arg, nil
}

// ParseCall parses name(arg, ...) where arguments are numbers or quoted strings
func ParseCall(input []byte) (*Call, error) {
	cursor := parsly.NewCursor("", input, 0)
	call := &Call{}

	matched := cursor.MatchAfterOptional(whitespaceToken, identifierToken)
	if matched.Code != identifierToken.Code {
		return nil, cursor.NewError(identifierToken)
	}
	call.Name = matched.Text(cursor)

	matched = cursor.MatchAfterOptional(whitespaceToken, openParenToken)
	if matched.Code != openParenToken.Code {
		return nil, cursor.NewError(openParenToken)
	}

	expectArg := true
	for {
		if expectArg {
			matched = cursor.MatchAfterOptional(whitespaceToken, numberToken, stringToken, closeParenToken)
		} else {
			matched = cursor.MatchAfterOptional(whitespaceToken, commaToken, closeParenToken)
		}
		switch matched.Code {
		case numberCode:
			call.Args = append(call.Args, Arg{Kind: ArgNumber, Text: matched.Text(cursor)})
			expectArg = false
			continue
		case stringCode:
			text, err := strconv.Unquote(matched.Text(cursor))
			if err != nil {
				return nil, fmt.Errorf("invalid string literal at %d: %w", cursor.Pos, err)
			}
			call.Args = append(call.Args, Arg{Kind: ArgString, Text: text})
			expectArg = false
			continue
		case commaCode:
			expectArg = true
			continue
		case closeParenCode:
			if expectArg && len(call.Args) > 0 {
				return nil, cursor.NewError(numberToken)
			}
		default:
			if expectArg {
				return nil, cursor.NewError(closeParenToken)
			}
			return nil, cursor.NewError(commaToken)
		}
		break
	}

	cursor.MatchOne(whitespaceToken)
	if cursor.HasMore() {
		return nil, fmt.Errorf("unexpected trailing input %q at %d", string(input[cursor.Pos:]), cursor.Pos)
	}
	return call, nil
}
