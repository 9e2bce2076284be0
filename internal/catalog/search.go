// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Cinedex Contributors

package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Filter narrows a film listing. Zero values mean "any".
type Filter struct {
	Title string // case-insensitive substring match
	Genre string // case-insensitive genre membership
	Year  int    // exact release year
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Title == "" && f.Genre == "" && f.Year == 0
}

// searchLexer tokenizes filter queries. Quoted strings keep their
// internal whitespace; bare words stop at whitespace, colons, and quotes.
var searchLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Word", Pattern: `[^\s:"]+`},
	{Name: "whitespace", Pattern: `\s+`},
})

// searchQuery is a sequence of terms combined with AND.
//
// Grammar: term*  where  term = [field ":"] value
type searchQuery struct {
	Terms []*searchTerm `parser:"@@*"`
}

// searchTerm is either a "field:value" pair or a bare value. Bare values
// match against the title.
type searchTerm struct {
	Field string       `parser:"( @Word Colon"`
	Value *searchValue `parser:"  @@ )"`
	Bare  *searchValue `parser:"| @@"`
}

// searchValue is a quoted string or a bare word.
type searchValue struct {
	String *string `parser:"  @String"`
	Word   *string `parser:"| @Word"`
}

func (v *searchValue) text() string {
	if v == nil {
		return ""
	}
	if v.String != nil {
		return *v.String
	}
	if v.Word != nil {
		return *v.Word
	}
	return ""
}

// searchParser is the singleton participle parser instance.
var searchParser *participle.Parser[searchQuery]

func init() {
	var err error
	searchParser, err = participle.Build[searchQuery](
		participle.Lexer(searchLexer),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build search parser: %v", err))
	}
}

// ParseFilter parses a filter query like
//
//	title:"blade runner" genre:drama year:1982
//
// into a Filter. Bare words match the title; repeated title terms and
// bare words accumulate into one title phrase. Unknown fields and
// non-numeric years are validation errors.
func ParseFilter(query string) (Filter, error) {
	var filter Filter
	if strings.TrimSpace(query) == "" {
		return filter, nil
	}

	parsed, err := searchParser.ParseString("", query)
	if err != nil {
		return Filter{}, &ValidationError{Field: "q", Message: "malformed filter: " + err.Error()}
	}

	var titleWords []string
	for _, term := range parsed.Terms {
		if term.Bare != nil {
			titleWords = append(titleWords, term.Bare.text())
			continue
		}
		value := term.Value.text()
		switch strings.ToLower(term.Field) {
		case "title":
			titleWords = append(titleWords, value)
		case "genre":
			filter.Genre = value
		case "year":
			year, convErr := strconv.Atoi(value)
			if convErr != nil {
				return Filter{}, &ValidationError{Field: "q", Message: fmt.Sprintf("year %q is not a number", value)}
			}
			filter.Year = year
		default:
			return Filter{}, &ValidationError{Field: "q", Message: fmt.Sprintf("unknown filter field %q", term.Field)}
		}
	}
	filter.Title = strings.Join(titleWords, " ")

	return filter, nil
}
