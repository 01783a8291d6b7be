package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// handSeeds cover the corners of the tokenizer and the parser.
var handSeeds = []string{
	"",
	"grammar T;",
	"lexer grammar L; A : 'a' ;",
	"r : r 'x' | 'y' ;",
	"fragment : 'f' ;",
	"fragment F : 'f' ;",
	"a /* c */ : b ;",
	"a : { { } ;",
	"a : '\\'' ;",
	"\\",
	"'unterminated\n",
	"/* open",
	"// $<Group\nx : y ;\n// $>\n",
	"a\r\nb\rc\n",
	"\xff\xfe\x00",
	"options { k = 1; } tokens { A; } header { }",
	"a : (b | c) | {x | y} d ;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range handSeeds {
		f.Add([]byte(s))
	}
	root := filepath.Join("..", "..", "testdata", "grammars")
	// #nosec G304 -- paths come from the repository testdata walk
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".g" {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) string {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return string(input)
}
