package script

import (
	"fmt"

	"github.com/Knetic/govaluate"

	"github.com/pmkol/dlist/pkg/list"
)

// assert evaluates expr and fails unless it is true.
//
// Every list is a parameter under its own name and can be passed to the
// functions len, front, back and str. "index" is the cursor index (-1 on
// the ghost or without a cursor) and "current" the current value ("" when
// there is none). List values are strings.
func (r *Runner) assert(expr string) error {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, r.exprFunctions())
	if err != nil {
		return fmt.Errorf("invalid expression, %w", err)
	}

	params := make(map[string]any, len(r.lists)+2)
	for name, l := range r.lists {
		params[name] = l
	}
	params["index"] = -1.0
	params["current"] = ""
	if r.cursor != nil {
		if i, ok := r.cursor.Index(); ok {
			params["index"] = float64(i)
		}
		if p := r.cursor.Current(); p != nil {
			params["current"] = *p
		}
	}

	res, err := e.Evaluate(params)
	if err != nil {
		return fmt.Errorf("failed to evaluate expression, %w", err)
	}
	ok, isBool := res.(bool)
	if !isBool {
		return fmt.Errorf("expression %q is not a boolean, got %v", expr, res)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrAssertion, expr)
	}
	return nil
}

func (r *Runner) exprFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"len": listFunc(func(l *list.List[string]) any {
			return float64(l.Len())
		}),
		"front": listFunc(func(l *list.List[string]) any {
			v, _ := r.front(l)
			return v
		}),
		"back": listFunc(func(l *list.List[string]) any {
			v, _ := r.back(l)
			return v
		}),
		"str": listFunc(func(l *list.List[string]) any {
			return fmt.Sprint(r.slice(l))
		}),
	}
}

func listFunc(f func(l *list.List[string]) any) govaluate.ExpressionFunction {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("want 1 list argument, got %d", len(args))
		}
		l, ok := args[0].(*list.List[string])
		if !ok {
			return nil, fmt.Errorf("%v is not a list", args[0])
		}
		return f(l), nil
	}
}
