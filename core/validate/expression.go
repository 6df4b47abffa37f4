package validate

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

const expressionCostLimit = 1000000

var expressionEnv, expressionEnvErr = cel.NewEnv(
	cel.Variable("value", cel.DynType),
	cel.Variable("row", cel.DynType),
)

// Expression is a CEL boolean over the column's value and the whole row.
// Records for which it yields false fail.
type Expression struct {
	Source  string
	program cel.Program
}

func (Expression) Kind() Kind { return KindExpression }
func (Expression) sealed()    {}

// NewExpression compiles source once for reuse across records.
func NewExpression(source string) (Expression, error) {
	if expressionEnvErr != nil {
		return Expression{}, fmt.Errorf("failed to create CEL environment: %w", expressionEnvErr)
	}
	if source == "" {
		return Expression{}, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	ast, iss := expressionEnv.Compile(source)
	if iss != nil && iss.Err() != nil {
		return Expression{}, fmt.Errorf("%w: %v", ErrInvalidExpression, iss.Err())
	}
	prg, err := expressionEnv.Program(ast, cel.CostLimit(expressionCostLimit))
	if err != nil {
		return Expression{}, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}
	return Expression{Source: source, program: prg}, nil
}

// Holds evaluates the expression. A non-boolean result is an error.
func (e Expression) Holds(value any, row map[string]any) (bool, error) {
	out, _, err := e.program.Eval(map[string]any{
		"value": value,
		"row":   row,
	})
	if err != nil {
		return false, err
	}
	ok, isBool := out.Value().(bool)
	if !isBool {
		return false, fmt.Errorf("expression returned %T, not bool", out.Value())
	}
	return ok, nil
}
