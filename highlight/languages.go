package highlight

type Language uint8

const (
	Plain Language = iota
	C
	CPP
	Python
	Shell
	JavaScript
	JSON
	SQL
	Assembly
	HTML
	CSS
	PHP
	CSharp
)

var languageNames = [...]string{"Plain", "C", "C++", "Python", "Shell", "JS", "JSON", "SQL", "ASM", "HTML", "CSS", "PHP", "C#"}

// String is the short name shown in the status bar.
func (l Language) String() string {
	if int(l) < len(languageNames) {
		return languageNames[l]
	}
	return "Plain"
}

// ParseLanguage maps a short name back to a Language.
func ParseLanguage(name string) (Language, bool) {
	for i, n := range languageNames {
		if n == name {
			return Language(i), true
		}
	}
	return Plain, false
}

const cOperators = "+-*/%=<>!&|^~?:;,.{}[]()@"

var cStrings = []StringRule{
	{Open: `"`, Close: `"`, Token: String, Escape: true, State: StateString},
	{Open: `'`, Close: `'`, Token: Char, Escape: true, State: StateChar},
}

var rulesC = (&Rules{
	LineComments: []string{"//"},
	BlockOpen:    "/*",
	BlockClose:   "*/",
	Strings:      cStrings,
	Preproc:      '#',
	Keywords: []string{
		"auto", "break", "case", "continue", "default", "do", "else", "enum",
		"extern", "for", "goto", "if", "inline", "register", "return", "sizeof",
		"static", "struct", "switch", "typedef", "union", "while", "volatile",
		"_Bool", "_Complex", "_Imaginary", "NULL", "true", "false",
	},
	Types: []string{
		"int", "char", "float", "double", "long", "short", "unsigned", "signed",
		"void", "size_t", "uint8_t", "uint16_t", "uint32_t", "uint64_t",
		"int8_t", "int16_t", "int32_t", "int64_t", "bool", "FILE", "ptrdiff_t",
		"ssize_t", "off_t", "pid_t", "pthread_t", "const",
	},
	Operators: cOperators,
}).compile()

var rulesCPP = (&Rules{
	LineComments: []string{"//"},
	BlockOpen:    "/*",
	BlockClose:   "*/",
	Strings: []StringRule{
		{Open: `R"(`, Close: `)"`, Token: String, State: StateRawString},
		cStrings[0],
		cStrings[1],
	},
	Preproc: '#',
	Keywords: []string{
		"auto", "break", "case", "catch", "class", "const", "constexpr",
		"continue", "default", "delete", "do", "else", "enum", "explicit",
		"extern", "for", "friend", "goto", "if", "inline", "namespace", "new",
		"noexcept", "nullptr", "operator", "override", "private", "protected",
		"public", "return", "sizeof", "static", "struct", "switch", "template",
		"this", "throw", "try", "typedef", "union", "using", "virtual", "while",
		"volatile", "true", "false",
	},
	Types: []string{
		"int", "char", "float", "double", "long", "short", "unsigned", "signed",
		"void", "bool", "string", "vector", "map", "set", "list", "deque",
		"pair", "tuple", "shared_ptr", "unique_ptr", "weak_ptr", "size_t",
	},
	Operators: cOperators,
}).compile()

var rulesPython = (&Rules{
	LineComments: []string{"#"},
	Strings: []StringRule{
		{Open: `"""`, Close: `"""`, Token: String, State: StateTripleDouble},
		{Open: `'''`, Close: `'''`, Token: String, State: StateTripleSingle},
		{Open: `"`, Close: `"`, Token: String, Escape: true},
		{Open: `'`, Close: `'`, Token: String, Escape: true},
	},
	Sigils: "@",
	Keywords: []string{
		"False", "None", "True", "and", "as", "assert", "async", "await", "break",
		"class", "continue", "def", "del", "elif", "else", "except", "finally",
		"for", "from", "global", "if", "import", "in", "is", "lambda", "nonlocal",
		"not", "or", "pass", "raise", "return", "try", "while", "with", "yield",
	},
	Types: []string{
		"int", "str", "float", "bool", "list", "dict", "tuple", "set", "bytes",
		"object", "type", "super", "self", "cls",
	},
	Operators: "+-*/%=<>!&|^~?:;,.{}[]()",
}).compile()

var rulesShell = (&Rules{
	LineComments: []string{"#"},
	Strings: []StringRule{
		{Open: `"`, Close: `"`, Token: String, Escape: true, State: StateString},
		{Open: `'`, Close: `'`, Token: String, State: StateChar},
	},
	Sigils:     "$",
	IdentExtra: "-",
	Keywords: []string{
		"if", "then", "else", "elif", "fi", "for", "while", "do", "done", "case",
		"esac", "function", "in", "return", "exit", "echo", "local", "export",
		"readonly", "shift", "source", "alias", "unset", "set", "test",
	},
	Numbers: NumberDigits,
}).compile()

var rulesJavaScript = (&Rules{
	LineComments: []string{"//"},
	BlockOpen:    "/*",
	BlockClose:   "*/",
	Strings: []StringRule{
		{Open: "`", Close: "`", Token: String, Escape: true, State: StateRawString},
		{Open: `"`, Close: `"`, Token: String, Escape: true},
		{Open: `'`, Close: `'`, Token: String, Escape: true},
	},
	IdentStart: "$",
	IdentExtra: "$",
	Keywords: []string{
		"break", "case", "catch", "class", "const", "continue", "debugger",
		"default", "delete", "do", "else", "export", "extends", "finally", "for",
		"function", "if", "import", "in", "instanceof", "let", "new", "return",
		"static", "super", "switch", "this", "throw", "try", "typeof", "var",
		"void", "while", "with", "yield", "async", "await", "of", "true", "false",
		"null", "undefined",
	},
	Types: []string{
		"Array", "Object", "String", "Number", "Boolean", "Map", "Set", "Promise",
		"Date", "RegExp", "Error", "Symbol", "BigInt", "JSON", "Math",
	},
	Operators: cOperators,
}).compile()

var rulesJSON = (&Rules{
	Strings: []StringRule{
		{Open: `"`, Close: `"`, Token: String, Escape: true},
	},
	Keywords:  []string{"true", "false", "null"},
	Operators: "{}[]:,-",
}).compile()

var rulesSQL = (&Rules{
	LineComments: []string{"--"},
	BlockOpen:    "/*",
	BlockClose:   "*/",
	Strings: []StringRule{
		{Open: `'`, Close: `'`, Token: String},
	},
	Keywords: []string{
		"SELECT", "FROM", "WHERE", "JOIN", "INNER", "LEFT", "RIGHT", "OUTER", "ON",
		"GROUP", "BY", "ORDER", "HAVING", "INSERT", "INTO", "VALUES", "UPDATE",
		"SET", "DELETE", "CREATE", "TABLE", "DROP", "ALTER", "INDEX", "PRIMARY",
		"KEY", "FOREIGN", "REFERENCES", "NOT", "NULL", "UNIQUE", "DEFAULT", "AS",
		"AND", "OR", "IN", "LIKE", "BETWEEN", "EXISTS", "DISTINCT", "LIMIT",
		"OFFSET", "UNION", "ALL", "CASE", "WHEN", "THEN", "ELSE", "END", "WITH",
	},
	Types: []string{
		"INT", "INTEGER", "BIGINT", "SMALLINT", "TEXT", "VARCHAR", "CHAR",
		"BOOLEAN", "DATE", "TIMESTAMP", "REAL", "FLOAT", "DECIMAL", "BLOB",
	},
	Fold:    FoldUpper,
	Numbers: NumberDecimal,
}).compile()

var rulesAssembly = (&Rules{
	LineComments: []string{";"},
	Strings: []StringRule{
		{Open: `'`, Close: `'`, Token: String},
		{Open: `"`, Close: `"`, Token: String},
	},
	Sigils:     "%$",
	IdentStart: ".",
	IdentExtra: ".",
	Keywords: []string{
		"mov", "push", "pop", "call", "ret", "jmp", "je", "jne", "jz", "jnz",
		"jl", "jle", "jg", "jge", "cmp", "test", "add", "sub", "mul", "div",
		"imul", "idiv", "and", "or", "xor", "not", "neg", "inc", "dec", "lea",
		"nop", "int", "syscall", "sysenter", "leave", "enter", "hlt", "sti",
		"cli", "rep", "repe", "repne", "movs", "lods", "stos", "cmps", "scas",
		"db", "dw", "dd", "dq", "resb", "resw", "resd", "resq", "equ", "section",
		"global", "extern", "bits", "org",
	},
	Types: []string{
		"rax", "rbx", "rcx", "rdx", "rsi", "rdi", "rbp", "rsp",
		"eax", "ebx", "ecx", "edx", "esi", "edi", "ebp", "esp",
		"ax", "bx", "cx", "dx", "al", "bl", "cl", "dl", "ah", "bh", "ch", "dh",
		"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
		"byte", "word", "dword", "qword",
	},
	Fold:    FoldLower,
	Numbers: NumberHex,
}).compile()

var rulesHTML = (&Rules{
	BlockOpen:  "<!--",
	BlockClose: "-->",
	Strings: []StringRule{
		{Open: `"`, Close: `"`, Token: String, State: StateString},
		{Open: `'`, Close: `'`, Token: String, State: StateChar},
	},
	Sigils:     "&",
	IdentExtra: "-",
	Keywords: []string{
		"html", "head", "body", "title", "meta", "link", "script", "style",
		"div", "span", "p", "a", "img", "ul", "ol", "li", "table", "tr", "td",
		"th", "thead", "tbody", "form", "input", "button", "select", "option",
		"textarea", "label", "h1", "h2", "h3", "h4", "h5", "h6", "header",
		"footer", "nav", "main", "section", "article", "aside", "br", "hr",
		"pre", "code", "em", "strong", "iframe", "canvas", "svg", "template",
	},
	Types: []string{
		"class", "id", "href", "src", "type", "name", "value", "rel", "alt",
		"width", "height", "charset", "content", "lang", "placeholder",
	},
	Fold:      FoldLower,
	Operators: "<>/=!",
	Numbers:   NumberDecimal,
}).compile()

var rulesCSS = (&Rules{
	BlockOpen:  "/*",
	BlockClose: "*/",
	Strings: []StringRule{
		{Open: `"`, Close: `"`, Token: String, Escape: true},
		{Open: `'`, Close: `'`, Token: String, Escape: true},
	},
	Sigils:     "@#",
	IdentStart: "-",
	IdentExtra: "-",
	Keywords: []string{
		"color", "background", "background-color", "margin", "padding", "border",
		"display", "position", "top", "left", "right", "bottom", "width", "height",
		"font", "font-size", "font-family", "font-weight", "line-height",
		"text-align", "flex", "grid", "gap", "overflow", "z-index", "opacity",
		"transition", "transform", "cursor", "content", "box-sizing",
		"media", "import", "keyframes", "font-face",
	},
	Types: []string{
		"none", "block", "inline", "inline-block", "absolute", "relative",
		"fixed", "sticky", "auto", "inherit", "initial", "hidden", "solid",
		"bold", "normal", "center", "important", "px", "em", "rem", "vh", "vw",
	},
	Fold:      FoldLower,
	Operators: "{}:;,.>+~()[]=*",
}).compile()

var rulesPHP = (&Rules{
	LineComments: []string{"//", "#"},
	BlockOpen:    "/*",
	BlockClose:   "*/",
	Strings: []StringRule{
		{Open: `"`, Close: `"`, Token: String, Escape: true, State: StateString},
		{Open: `'`, Close: `'`, Token: String, Escape: true, State: StateChar},
	},
	Sigils: "$",
	Keywords: []string{
		"abstract", "and", "array", "as", "break", "case", "catch", "class",
		"clone", "const", "continue", "declare", "default", "do", "echo", "else",
		"elseif", "empty", "enum", "extends", "final", "finally", "fn", "for",
		"foreach", "function", "global", "if", "implements", "include",
		"include_once", "instanceof", "interface", "isset", "list", "match",
		"namespace", "new", "or", "print", "private", "protected", "public",
		"readonly", "require", "require_once", "return", "static", "switch",
		"throw", "trait", "try", "unset", "use", "while", "yield",
		"true", "false", "null", "php",
	},
	Types: []string{
		"int", "float", "string", "bool", "void", "mixed", "object", "iterable",
		"callable", "self", "parent",
	},
	Fold:      FoldLower,
	Operators: cOperators,
}).compile()

var rulesCSharp = (&Rules{
	LineComments: []string{"//"},
	BlockOpen:    "/*",
	BlockClose:   "*/",
	Strings: []StringRule{
		{Open: `@"`, Close: `"`, Token: String, State: StateRawString},
		{Open: `"`, Close: `"`, Token: String, Escape: true},
		{Open: `'`, Close: `'`, Token: Char, Escape: true},
	},
	Preproc: '#',
	Keywords: []string{
		"abstract", "as", "base", "break", "case", "catch",
		"checked", "class", "const", "continue", "default", "delegate",
		"do", "else", "enum", "event", "explicit", "extern", "false",
		"finally", "fixed", "for", "foreach", "goto", "if", "implicit",
		"in", "interface", "internal", "is", "lock", "namespace",
		"new", "null", "operator", "out", "override", "params",
		"private", "protected", "public", "readonly", "ref", "return",
		"sealed", "sizeof", "stackalloc", "static", "struct",
		"switch", "this", "throw", "true", "try", "typeof",
		"unchecked", "unsafe", "using", "var", "virtual",
		"volatile", "while", "async", "await",
	},
	Types: []string{
		"bool", "byte", "char", "decimal", "double", "float", "int", "long",
		"object", "sbyte", "short", "string", "uint", "ulong", "ushort", "void",
	},
	Operators: cOperators,
}).compile()

var rulesByLanguage = map[Language]*Rules{
	C:          rulesC,
	CPP:        rulesCPP,
	Python:     rulesPython,
	Shell:      rulesShell,
	JavaScript: rulesJavaScript,
	JSON:       rulesJSON,
	SQL:        rulesSQL,
	Assembly:   rulesAssembly,
	HTML:       rulesHTML,
	CSS:        rulesCSS,
	PHP:        rulesPHP,
	CSharp:     rulesCSharp,
}

// RulesFor returns the scanning table for lang, or nil for Plain.
func RulesFor(lang Language) *Rules {
	return rulesByLanguage[lang]
}
