package docstring

import "strings"

// Entry is one item of a Parameters-like section: a name line, an optional
// type after " : ", and an indented description.
type Entry struct {
	Name string
	Type string
	Desc []string
}

// SeeAlsoEntry is one item of a See Also section. A single item may list
// several comma-separated object names.
type SeeAlsoEntry struct {
	Names []string
	Desc  []string
}

// ParseEntries splits a Parameters-like section body into entries. A line at
// the body's base indentation starts a new entry; indented lines below it are
// its description, dedented to their own margin.
func ParseEntries(body string) []Entry {
	var entries []Entry
	var desc []string

	flush := func() {
		if len(entries) == 0 {
			return
		}
		entries[len(entries)-1].Desc = dedentToMargin(trimBlankEdges(desc))
		desc = nil
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			desc = append(desc, line)
			continue
		}
		if strings.HasPrefix(line, " ") {
			desc = append(desc, line)
			continue
		}
		flush()
		name, typ := splitNameType(line)
		entries = append(entries, Entry{Name: name, Type: typ})
	}
	flush()
	return entries
}

// ParseSeeAlso splits a See Also body into entries. Top-level lines hold
// comma-separated names, optionally followed by " : inline description";
// indented lines continue the description of the previous entry.
func ParseSeeAlso(body string) []SeeAlsoEntry {
	var entries []SeeAlsoEntry

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, " ") && len(entries) > 0 {
			entries[len(entries)-1].Desc = append(entries[len(entries)-1].Desc, strings.TrimSpace(line))
			continue
		}
		names, inline := splitNameType(line)
		entry := SeeAlsoEntry{}
		for _, n := range strings.Split(names, ",") {
			if n = strings.TrimSpace(n); n != "" {
				entry.Names = append(entry.Names, n)
			}
		}
		if inline != "" {
			entry.Desc = append(entry.Desc, inline)
		}
		if len(entry.Names) > 0 {
			entries = append(entries, entry)
		}
	}
	return entries
}

// splitNameType splits "name : type" on the first colon. Either side may be
// empty ("name" alone, or ": type" for an unnamed return value).
func splitNameType(line string) (string, string) {
	if name, typ, found := strings.Cut(line, " : "); found {
		return strings.TrimSpace(name), strings.TrimSpace(typ)
	}
	if typ, found := strings.CutPrefix(strings.TrimSpace(line), ": "); found {
		return "", strings.TrimSpace(typ)
	}
	return strings.TrimSpace(line), ""
}

func dedentToMargin(lines []string) []string {
	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return lines
	}
	return dedentBy(lines, margin)
}
