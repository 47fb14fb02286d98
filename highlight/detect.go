package highlight

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

var extensions = map[string]Language{
	".c":    C,
	".h":    C,
	".cpp":  CPP,
	".cc":   CPP,
	".hpp":  CPP,
	".py":   Python,
	".sh":   Shell,
	".js":   JavaScript,
	".json": JSON,
	".sql":  SQL,
	".asm":  Assembly,
	".s":    Assembly,
	".html": HTML,
	".htm":  HTML,
	".css":  CSS,
	".php":  PHP,
	".cs":   CSharp,
}

// chroma lexer names and aliases we have rule tables for.
var chromaNames = map[string]Language{
	"c":          C,
	"c++":        CPP,
	"cpp":        CPP,
	"python":     Python,
	"python 2":   Python,
	"py":         Python,
	"bash":       Shell,
	"sh":         Shell,
	"zsh":        Shell,
	"shell":      Shell,
	"javascript": JavaScript,
	"js":         JavaScript,
	"json":       JSON,
	"sql":        SQL,
	"mysql":      SQL,
	"postgresql": SQL,
	"gas":        Assembly,
	"nasm":       Assembly,
	"html":       HTML,
	"css":        CSS,
	"php":        PHP,
	"c#":         CSharp,
	"csharp":     CSharp,
}

// Detect picks a language from the file name, falling back to chroma's
// filename globs and then to content analysis of head (shebang lines and
// similar). Unknown files are Plain.
func Detect(filename string, head []byte) Language {
	if lang, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	if lang, ok := fromLexer(lexers.Match(filepath.Base(filename))); ok {
		return lang
	}
	if len(head) > 0 {
		if lang, ok := fromLexer(lexers.Analyse(string(head))); ok {
			return lang
		}
	}
	return Plain
}

// DetectByExtension only consults the extension table.
func DetectByExtension(filename string) Language {
	return extensions[strings.ToLower(filepath.Ext(filename))]
}

func fromLexer(lexer chroma.Lexer) (Language, bool) {
	if lexer == nil {
		return Plain, false
	}
	config := lexer.Config()
	if config == nil {
		return Plain, false
	}
	if lang, ok := chromaNames[strings.ToLower(config.Name)]; ok {
		return lang, true
	}
	for _, alias := range config.Aliases {
		if lang, ok := chromaNames[strings.ToLower(alias)]; ok {
			return lang, true
		}
	}
	return Plain, false
}
