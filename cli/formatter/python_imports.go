package formatter

import (
	"slices"
	"strings"
	"unicode"
)

type importSection int

const (
	futureSection importSection = iota
	stdlibSection
	thirdPartySection
	firstPartySection
	localSection
	sectionsCount
)

type importName struct {
	name, alias string
}

func (n importName) String() string {
	if n.alias == "" {
		return n.name
	}
	return n.name + " as " + n.alias
}

// importBlock accumulates parsed import statements.
type importBlock struct {
	plain map[importName]struct{}
	from  map[string]map[importName]struct{}
}

func isTopLevelImport(line pyLine) bool {
	if len(line) == 0 || line[0].kind != pyCode {
		return false
	}
	text := line[0].text
	return strings.HasPrefix(text, "import ") || strings.HasPrefix(text, "from ")
}

// parseImport adds the import statement to the block. It returns false for
// statements it does not understand.
func (b *importBlock) parseImport(code string) bool {
	code = strings.NewReplacer("\\\n", " ", "\n", " ", "(", " ", ")", " ").Replace(code)
	fields := strings.Fields(code)
	if len(fields) < 2 {
		return false
	}

	var module string
	var names []string
	switch {
	case fields[0] == "import":
		names = strings.Split(strings.Join(fields[1:], " "), ",")
	case fields[0] == "from" && len(fields) >= 4 && fields[2] == "import":
		module = fields[1]
		names = strings.Split(strings.Join(fields[3:], " "), ",")
	default:
		return false
	}

	var parsed []importName
	for i, name := range names {
		parts := strings.Fields(name)
		switch {
		case len(parts) == 0 && i == len(names)-1 && module != "":
			// Trailing comma.
		case len(parts) == 1:
			parsed = append(parsed, importName{name: parts[0]})
		case len(parts) == 3 && parts[1] == "as":
			parsed = append(parsed, importName{name: parts[0], alias: parts[2]})
		default:
			return false
		}
	}
	if len(parsed) == 0 {
		return false
	}

	if module == "" {
		for _, name := range parsed {
			b.plain[name] = struct{}{}
		}
		return true
	}
	if b.from[module] == nil {
		b.from[module] = map[importName]struct{}{}
	}
	for _, name := range parsed {
		b.from[module][name] = struct{}{}
	}
	return true
}

func moduleSection(module string, opts PythonOpts) importSection {
	if module == "__future__" {
		return futureSection
	}
	if strings.HasPrefix(module, ".") {
		return localSection
	}
	for _, known := range opts.KnownFirstParty {
		if module == known || strings.HasPrefix(module, known+".") {
			return firstPartySection
		}
	}
	top, _, _ := strings.Cut(module, ".")
	if _, found := pythonStdlib[top]; found {
		return stdlibSection
	}
	return thirdPartySection
}

// importNameKey orders constants first, then classes, then everything else.
func importNameKey(name string) string {
	prefix := "C"
	if len(name) > 1 && strings.ToUpper(name) == name && strings.ToLower(name) != name {
		prefix = "A"
	} else if r := []rune(name); len(r) > 0 && unicode.IsUpper(r[0]) {
		prefix = "B"
	}
	return prefix + strings.ToLower(name)
}

func sortedNames(set map[importName]struct{}, key func(string) string) []importName {
	names := make([]importName, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b importName) int {
		if c := strings.Compare(key(a.name), key(b.name)); c != 0 {
			return c
		}
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
		return strings.Compare(a.alias, b.alias)
	})
	return names
}

// fromImportLines renders the from-import, wrapping it into parentheses if it is
// longer than lineLength.
func fromImportLines(module string, names []importName, lineLength int) []string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name.String()
	}
	line := "from " + module + " import " + strings.Join(parts, ", ")
	if len(line) <= lineLength || len(parts) == 1 && parts[0] == "*" {
		return []string{line}
	}
	lines := []string{"from " + module + " import ("}
	for _, part := range parts {
		lines = append(lines, "    "+part+",")
	}
	return append(lines, ")")
}

func (b *importBlock) render(opts PythonOpts) []string {
	var sections [sectionsCount][]string
	for _, name := range sortedNames(b.plain, strings.ToLower) {
		section := moduleSection(name.name, opts)
		sections[section] = append(sections[section], "import "+name.String())
	}

	modules := make([]string, 0, len(b.from))
	for module := range b.from {
		modules = append(modules, module)
	}
	slices.SortFunc(modules, func(x, y string) int {
		if c := strings.Compare(strings.ToLower(x), strings.ToLower(y)); c != 0 {
			return c
		}
		return strings.Compare(x, y)
	})
	for _, module := range modules {
		var direct, aliased []importName
		for _, name := range sortedNames(b.from[module], importNameKey) {
			if name.alias == "" {
				direct = append(direct, name)
			} else {
				aliased = append(aliased, name)
			}
		}
		section := moduleSection(module, opts)
		if len(direct) > 0 {
			sections[section] = append(sections[section],
				fromImportLines(module, direct, opts.LineLength)...)
		}
		for _, name := range aliased {
			sections[section] = append(sections[section],
				fromImportLines(module, []importName{name}, opts.LineLength)...)
		}
	}

	var out []string
	for _, lines := range sections {
		if len(lines) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, lines...)
	}
	return out
}

// startsDefinition returns true for function, class and decorator lines.
func startsDefinition(line pyLine) bool {
	code := strings.TrimSpace(line.code())
	for _, prefix := range []string{"def ", "class ", "async def ", "@"} {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}
	return false
}

// sortImports sorts the first top level block of import statements. Statements are
// deduplicated, from-imports of the same module are merged and grouped by section.
// The source is returned unchanged if the block contains comments, strings or
// statements it can not parse.
func sortImports(src string, opts PythonOpts) string {
	lines := tokenizePython(src)
	start := slices.IndexFunc(lines, isTopLevelImport)
	if start < 0 {
		return src
	}

	block := importBlock{plain: map[importName]struct{}{}, from: map[string]map[importName]struct{}{}}
	end := start
	for k := start; k < len(lines); k++ {
		line := lines[k]
		if line.isBlank() {
			continue
		}
		if !isTopLevelImport(line) {
			break
		}
		if line.hasKind(pyComment) || line.hasKind(pyString) || strings.Contains(line.code(), ";") {
			return src
		}
		if !block.parseImport(line.code()) {
			return src
		}
		end = k + 1
	}

	next := end
	for next < len(lines) && lines[next].isBlank() {
		next++
	}

	var out []string
	for _, line := range lines[:start] {
		out = append(out, line.raw())
	}
	out = append(out, block.render(opts)...)
	if next < len(lines) {
		out = append(out, "")
		if startsDefinition(lines[next]) {
			out = append(out, "")
		}
		for _, line := range lines[next:] {
			out = append(out, line.raw())
		}
	}
	return strings.Join(out, "\n") + "\n"
}
