package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCall(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    *Call
		expectErr   bool
	}{
		{
			description: "no arguments",
			input:       "fork()",
			expected:    &Call{Name: "fork"},
		},
		{
			description: "numbers with whitespace",
			input:       "  create( 100 ,  5 ) ",
			expected:    &Call{Name: "create", Args: []Arg{{Kind: ArgNumber, Text: "100"}, {Kind: ArgNumber, Text: "5"}}},
		},
		{
			description: "size with unit",
			input:       "create(10MiB, 1)",
			expected:    &Call{Name: "create", Args: []Arg{{Kind: ArgNumber, Text: "10MiB"}, {Kind: ArgNumber, Text: "1"}}},
		},
		{
			description: "quoted string with escape",
			input:       `read(2, "dir/\"x\".txt")`,
			expected:    &Call{Name: "read", Args: []Arg{{Kind: ArgNumber, Text: "2"}, {Kind: ArgString, Text: `dir/"x".txt`}}},
		},
		{
			description: "missing open paren",
			input:       "fork",
			expectErr:   true,
		},
		{
			description: "missing close paren",
			input:       "create(1, 2",
			expectErr:   true,
		},
		{
			description: "trailing comma",
			input:       "create(1,)",
			expectErr:   true,
		},
		{
			description: "trailing input",
			input:       "exit() now",
			expectErr:   true,
		},
		{
			description: "leading digit",
			input:       "1exit()",
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := ParseCall([]byte(testCase.input))
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.EqualValues(t, testCase.expected, actual)
		})
	}
}

func TestCall_Arguments(t *testing.T) {
	call, err := ParseCall([]byte(`create(2KiB, 7, "f")`))
	if !assert.NoError(t, err) {
		return
	}
	size, err := call.Uint(0)
	assert.NoError(t, err)
	assert.EqualValues(t, 2048, size)

	priority, err := call.Int(1)
	assert.NoError(t, err)
	assert.Equal(t, 7, priority)

	name, err := call.Str(2)
	assert.NoError(t, err)
	assert.Equal(t, "f", name)

	_, err = call.Int(0)
	assert.Error(t, err)
	_, err = call.Str(0)
	assert.Error(t, err)
	_, err = call.Uint(3)
	assert.Error(t, err)

	assert.Equal(t, `create(2KiB, 7, "f")`, call.String())
}
