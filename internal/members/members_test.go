package members

import (
	"errors"
	"reflect"
	"testing"
)

func mustTokens(t *testing.T, raw ...string) []Token {
	t.Helper()
	tokens, err := ParseTokens(raw)
	if err != nil {
		t.Fatalf("ParseTokens(%v): %v", raw, err)
	}
	return tokens
}

func TestParseToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want Token
	}{
		{"public$", Token{Kind: Public}},
		{"private$", Token{Kind: Private}},
		{"dunder$", Token{Kind: Dunder}},
		{"+foo", Token{Kind: Include, Name: "foo"}},
		{"foo", Token{Kind: Include, Name: "foo"}},
		{"-foo", Token{Kind: Exclude, Name: "foo"}},
		{"  bar  ", Token{Kind: Include, Name: "bar"}},
	}
	for _, c := range cases {
		got, err := ParseToken(c.raw)
		if err != nil {
			t.Errorf("ParseToken(%q): %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseToken(%q) = %+v, want %+v", c.raw, got, c.want)
		}
	}
}

func TestParseToken_Empty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "+", "-"} {
		if _, err := ParseToken(raw); err == nil {
			t.Errorf("ParseToken(%q): expected error", raw)
		}
	}
}

func TestSelect_ExcludeThenIncludeMovesToEnd(t *testing.T) {
	t.Parallel()

	got, err := Select("Foo", []string{"foo", "bar"}, mustTokens(t, "public$", "-foo", "+foo"))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	want := []string{"bar", "foo"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSelect_VisibilityClasses(t *testing.T) {
	t.Parallel()

	all := []string{"pub_a", "_priv", "__dunder__", "pub_b", "__other__"}

	got, err := Select("Foo", all, mustTokens(t, "public$"))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"pub_a", "pub_b"}) {
		t.Errorf("public: %v", got)
	}

	got, err = Select("Foo", all, mustTokens(t, "private$"))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"_priv"}) {
		t.Errorf("private: %v", got)
	}

	got, err = Select("Foo", all, mustTokens(t, "dunder$"))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"__dunder__", "__other__"}) {
		t.Errorf("dunder: %v", got)
	}
}

func TestSelect_IncludeAlreadyPresentKeepsPosition(t *testing.T) {
	t.Parallel()

	got, err := Select("Foo", []string{"a", "b", "c"}, mustTokens(t, "public$", "+a"))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("got %v", got)
	}
}

func TestSelect_FlagSkipsAlreadyIncluded(t *testing.T) {
	t.Parallel()

	got, err := Select("Foo", []string{"a", "b"}, mustTokens(t, "+b", "public$"))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("got %v", got)
	}
}

func TestSelect_ExcludeNotSelectedIsNoop(t *testing.T) {
	t.Parallel()

	got, err := Select("Foo", []string{"a", "b"}, mustTokens(t, "+a", "-b"))
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("got %v", got)
	}
}

func TestSelect_UnknownMember(t *testing.T) {
	t.Parallel()

	_, err := Select("Foo", []string{"a"}, mustTokens(t, "+ghost"))
	var unknown *UnknownMemberError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownMemberError", err)
	}
	if unknown.Name != "ghost" || unknown.Object != "Foo" {
		t.Errorf("got %+v", unknown)
	}

	if _, err := Select("Foo", []string{"a"}, mustTokens(t, "-ghost")); err == nil {
		t.Error("excluding a nonexistent member should be an error")
	}
}

func TestSelectLenient_SkipsUnknown(t *testing.T) {
	t.Parallel()

	got, errs := SelectLenient("Foo", []string{"a", "b"}, mustTokens(t, "+ghost", "public$"))
	if len(errs) != 1 {
		t.Fatalf("got %d errors: %v", len(errs), errs)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}

func TestSelect_EmptyTokens(t *testing.T) {
	t.Parallel()

	got, err := Select("Foo", []string{"a"}, nil)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
