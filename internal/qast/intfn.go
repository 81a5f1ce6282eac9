package qast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-qit/internal/qerrors"
)

// Add builds `a + b` as a FunctionCall, mirroring
// original_source/src/qit/base/expression.py's Expression.__add__ /
// Variable.__add__: Go has no operator overloading, so host code calls
// qast.Add explicitly where the Python DSL used `+`. b may be another
// Expr of the same type, or a plain host value of a's type (spec.md §8
// scenario 6: `run(x+3, args={x:4})` → 7).
func Add(a Expr, b any) (*FunctionCall, error) {
	bExpr, ok := b.(Expr)
	if !ok {
		v, err := NewValue(a.OutputType(), b)
		if err != nil {
			return nil, err
		}
		bExpr = v
	}
	if !a.OutputType().Equal(bExpr.OutputType()) {
		return nil, qerrors.New(qerrors.TypeMismatch, "cannot add values of different types")
	}
	t := a.OutputType()
	f := NewFunction().Takes(t, "a").Takes(t, "b").Returns(t)
	f.Code("return a + b;", nil)
	return f.Call(a, bExpr)
}

// MultiplicationN builds an n-ary Int multiplication function, grounded
// on original_source/src/qit/functions/int.py's multiplication_n.
func MultiplicationN(n int) *Function {
	f := NewFunction().Returns(Int())
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("p%d", i)
		f.Takes(Int(), names[i])
	}
	f.Code(fmt.Sprintf("return %s;", strings.Join(names, "*")), nil)
	return f
}

// Power builds `base ^ power` (non-negative integer exponent) via the
// naive iterative loop from
// original_source/src/qit/functions/int.py's power function.
func Power(base, power Expr) (*FunctionCall, error) {
	f := NewFunction().Takes(Int(), "base").Takes(Int(), "power").Returns(Int())
	f.Code(`
int result = 1;
int p = power;
while (p > 0) {
    result *= base;
    p--;
}
return result;
`, nil)
	return f.Call(base, power)
}
