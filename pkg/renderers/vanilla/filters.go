package vanilla

import (
	"strconv"

	"github.com/flosch/pongo2/v6"
)

func templateFilters() map[string]pongo2.FilterFunction {
	return map[string]pongo2.FilterFunction{
		"indent": filterIndent,
	}
}

// filterIndent turns a tree depth into a CSS padding value. The optional
// parameter is the step in rem.
func filterIndent(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	step := 1.25
	if param != nil && !param.IsNil() && param.IsNumber() {
		step = param.Float()
	}
	depth := in.Integer()
	if depth < 0 {
		depth = 0
	}
	return pongo2.AsValue(strconv.FormatFloat(float64(depth)*step, 'f', -1, 64) + "rem"), nil
}
