package scenario

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes start at 1, parsly reserves the lower values
const (
	whitespaceCode = iota + 1
	identifierCode
	openParenCode
	closeParenCode
	commaCode
	numberCode
	stringCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(whitespaceCode, "Whitespace", matcher.NewWhiteSpace())
	identifierToken = parsly.NewToken(identifierCode, "Identifier", &identifierMatcher{})
	openParenToken  = parsly.NewToken(openParenCode, "(", matcher.NewByte('('))
	closeParenToken = parsly.NewToken(closeParenCode, ")", matcher.NewByte(')'))
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	numberToken     = parsly.NewToken(numberCode, "Number", &numberMatcher{})
	stringToken     = parsly.NewToken(stringCode, "String", &stringMatcher{})
)

// identifierMatcher matches a letter followed by letters or digits
type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos >= cursor.InputSize || !isLetter(input[pos]) {
		return 0
	}
	matched := 1
	for i := pos + 1; i < cursor.InputSize; i++ {
		if !isLetter(input[i]) && !isDigit(input[i]) {
			break
		}
		matched++
	}
	return matched
}

// numberMatcher matches digits with an optional unit suffix, e.g. 10MiB
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	matched := 0
	for i := pos; i < cursor.InputSize && isDigit(input[i]); i++ {
		matched++
	}
	if matched == 0 {
		return 0
	}
	for i := pos + matched; i < cursor.InputSize && isLetter(input[i]); i++ {
		matched++
	}
	return matched
}

// stringMatcher matches a double quoted string with backslash escapes
type stringMatcher struct{}

func (m *stringMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	if pos >= cursor.InputSize || input[pos] != '"' {
		return 0
	}
	for i := pos + 1; i < cursor.InputSize; i++ {
		switch input[i] {
		case '\\':
			i++
		case '"':
			return i - pos + 1
		}
	}
	return 0
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
