package translit

import "sync"

var russianPairs = []Pair{
	{'а', "a"}, {'б', "b"}, {'в', "v"}, {'г', "g"}, {'д', "d"},
	{'е', "e"}, {'ё', "yo"}, {'ж', "zh"}, {'з', "z"}, {'и', "i"},
	{'й', "y"}, {'к', "k"}, {'л', "l"}, {'м', "m"}, {'н', "n"},
	{'о', "o"}, {'п', "p"}, {'р', "r"}, {'с', "s"}, {'т', "t"},
	{'у', "u"}, {'ф', "f"}, {'х', "h"}, {'ц', "ts"}, {'ч', "ch"},
	{'ш', "sh"}, {'щ', "shch"}, {'ъ', ""}, {'ы', "y"}, {'ь', ""},
	{'э', "e"}, {'ю', "yu"}, {'я', "ya"},
	// Ukrainian additions.
	{'є', "ye"}, {'і', "i"}, {'ї', "yi"}, {'ґ', "g"},
}

// Latin spellings that are ambiguous or have no forward entry.
var russianReverse = map[string]rune{
	"e":  'е',
	"i":  'и',
	"g":  'г',
	"y":  'ы',
	"ye": 'е',
	"kh": 'х',
	"c":  'ц',
	"j":  'й',
	"q":  'к',
	"w":  'в',
	"x":  'х',
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the shared Russian/Ukrainian table. Tables are read-only
// after construction, so the instance is safe for concurrent use.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable(russianPairs, russianReverse)
	})
	return defaultTable
}
