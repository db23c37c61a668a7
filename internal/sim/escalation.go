package sim

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// EscalationEnv is the data an escalation rule can read.
type EscalationEnv struct {
	Kills   int
	Health  int
	Seconds float64
}

// EscalationRule is a compiled boolean expression such as "Kills > 0".
type EscalationRule struct {
	source  string
	program *vm.Program
}

// CompileEscalationRule type-checks the expression against EscalationEnv.
func CompileEscalationRule(src string) (*EscalationRule, error) {
	program, err := expr.Compile(src, expr.Env(EscalationEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile escalation rule %q: %w", src, err)
	}
	return &EscalationRule{source: src, program: program}, nil
}

// Triggered evaluates the rule.
func (r *EscalationRule) Triggered(env EscalationEnv) (bool, error) {
	out, err := expr.Run(r.program, env)
	if err != nil {
		return false, fmt.Errorf("escalation rule %q: %w", r.source, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

func (r *EscalationRule) String() string { return r.source }
