package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Грамматические
	GrmInfo               Code = 1000
	GrmMissingGrammar     Code = 1001
	GrmDuplicateRule      Code = 1002
	GrmLeftRecursion      Code = 1003
	GrmUnmatchedGroup     Code = 1004
	GrmEmptyAlternative   Code = 1005
	GrmUnterminatedRule   Code = 1006
	GrmUnknownGrammarKind Code = 1007

	// Ввод-вывод
	IOLoadFileError Code = 4000

	// Проект
	ProjInfo        Code = 5000
	ProjConfigError Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		GrmInfo:               "Grammar information",
		GrmMissingGrammar:     "Missing grammar declaration",
		GrmDuplicateRule:      "Duplicate rule",
		GrmLeftRecursion:      "Direct left recursion",
		GrmUnmatchedGroup:     "Unmatched group marker",
		GrmEmptyAlternative:   "Empty alternative",
		GrmUnterminatedRule:   "Rule is not terminated",
		GrmUnknownGrammarKind: "Unknown grammar kind",
		IOLoadFileError:       "I/O load file error",
		ProjInfo:              "Project information",
		ProjConfigError:       "Invalid configuration",
		ObsInfo:               "Observability information",
		ObsTimings:            "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("GRM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
