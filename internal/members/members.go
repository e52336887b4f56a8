// Package members implements the member-selection mini-language used by
// render directives: visibility flags (public$, private$, dunder$) and
// include/exclude instructions (+name, -name) folded left-to-right into an
// ordered list of member names.
package members

import (
	"fmt"
	"strings"
)

// Kind discriminates member tokens.
type Kind int

const (
	Public Kind = iota
	Private
	Dunder
	Include
	Exclude
)

const (
	flagPublic  = "public$"
	flagPrivate = "private$"
	flagDunder  = "dunder$"
)

// Token is one unit of the member-selection language. Name is set for
// Include and Exclude only.
type Token struct {
	Kind Kind
	Name string
}

func (t Token) String() string {
	switch t.Kind {
	case Public:
		return flagPublic
	case Private:
		return flagPrivate
	case Dunder:
		return flagDunder
	case Exclude:
		return "-" + t.Name
	default:
		return "+" + t.Name
	}
}

// ParseToken parses one raw member token. A bare name is an inclusion, "+"
// makes the inclusion explicit and "-" excludes.
func ParseToken(raw string) (Token, error) {
	s := strings.TrimSpace(raw)
	switch s {
	case flagPublic:
		return Token{Kind: Public}, nil
	case flagPrivate:
		return Token{Kind: Private}, nil
	case flagDunder:
		return Token{Kind: Dunder}, nil
	case "", "+", "-":
		return Token{}, fmt.Errorf("empty member name in token %q", raw)
	}
	if name, ok := strings.CutPrefix(s, "-"); ok {
		return Token{Kind: Exclude, Name: name}, nil
	}
	name := strings.TrimPrefix(s, "+")
	return Token{Kind: Include, Name: name}, nil
}

// ParseTokens parses a raw member-specification list, preserving order.
func ParseTokens(raw []string) ([]Token, error) {
	tokens := make([]Token, 0, len(raw))
	for _, r := range raw {
		t, err := ParseToken(r)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// UnknownMemberError reports an Include or Exclude naming a member the object
// does not have.
type UnknownMemberError struct {
	Object string
	Name   string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("object %q has no member %q", e.Object, e.Name)
}

// Select folds tokens over the object's member names (in resolver order) and
// returns the ordered list of members to render. Visibility flags append all
// names of their class that are not yet present; Include appends a missing
// name at the end and leaves an already-present one in place; Exclude removes
// a name, and a later Include re-adds it at the end. An Include or Exclude
// naming a nonexistent member is an error; object names the owner in the
// error message.
func Select(object string, all []string, tokens []Token) ([]string, error) {
	result, errs := fold(object, all, tokens, true)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return result, nil
}

// SelectLenient is Select with unknown-member failures collected instead of
// aborting: offending tokens are skipped and all errors are returned
// alongside the result.
func SelectLenient(object string, all []string, tokens []Token) ([]string, []error) {
	return fold(object, all, tokens, false)
}

func fold(object string, all []string, tokens []Token, strict bool) ([]string, []error) {
	exists := make(map[string]bool, len(all))
	for _, name := range all {
		exists[name] = true
	}

	var result []string
	present := make(map[string]bool)
	var errs []error

	appendName := func(name string) {
		if !present[name] {
			present[name] = true
			result = append(result, name)
		}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case Public, Private, Dunder:
			for _, name := range all {
				if classOf(name) == tok.Kind {
					appendName(name)
				}
			}
		case Include:
			if !exists[tok.Name] {
				errs = append(errs, &UnknownMemberError{Object: object, Name: tok.Name})
				if strict {
					return nil, errs
				}
				continue
			}
			appendName(tok.Name)
		case Exclude:
			if !exists[tok.Name] {
				errs = append(errs, &UnknownMemberError{Object: object, Name: tok.Name})
				if strict {
					return nil, errs
				}
				continue
			}
			if present[tok.Name] {
				delete(present, tok.Name)
				for i, name := range result {
					if name == tok.Name {
						result = append(result[:i], result[i+1:]...)
						break
					}
				}
			}
		}
	}
	return result, errs
}

// classOf partitions a member name by visibility: dunder names have two or
// more leading underscores, private names exactly one, everything else is
// public.
func classOf(name string) Kind {
	switch {
	case strings.HasPrefix(name, "__"):
		return Dunder
	case strings.HasPrefix(name, "_"):
		return Private
	default:
		return Public
	}
}
