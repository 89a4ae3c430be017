package simulation

import (
	"backtester/internal/model"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

// Разрешённые в правилах функции, все остальные встроенные функции отключены
var ruleFunctions = []string{"abs", "min", "max", "round", "floor", "ceil"}

// Rules ставит на Selection, когда булево выражение над признаками истинно
type Rules struct {
	expression string
	selection  model.Selection
	program    *vm.Program
	features   []string
}

// NewRules компилирует выражение. Неизвестные переменные, запрещённые
// функции и небулев результат - ошибка валидации
func NewRules(expression string, sel model.Selection) (*Rules, error) {
	if !sel.Valid() {
		return nil, invalidf("selection must be one of H, D, A")
	}

	opts := []expr.Option{
		expr.Env(compileEnv()),
		expr.AsBool(),
		expr.DisableAllBuiltins(),
	}
	idents := &identCollector{seen: make(map[string]struct{})}
	opts = append(opts, expr.Patch(idents))
	for _, fn := range ruleFunctions {
		opts = append(opts, expr.EnableBuiltin(fn))
	}

	program, err := expr.Compile(expression, opts...)
	if err != nil {
		return nil, invalidf("rule_expression: %v", err)
	}

	return &Rules{
		expression: expression,
		selection:  sel,
		program:    program,
		features:   idents.features(),
	}, nil
}

func (s *Rules) Expression() string {
	return s.expression
}

// Evaluate неизвестный признак из выражения (у команды нет истории)
// или ошибка выполнения значит "не ставить"
func (s *Rules) Evaluate(m model.Match, rc *RollingContext) Decision {
	features := rc.Features(m)
	for _, name := range s.features {
		if features[name] == nil {
			return Decision{}
		}
	}

	env := make(map[string]any, len(featureNames))
	for name, v := range features {
		if v != nil {
			env[name] = *v
		}
	}

	out, err := expr.Run(s.program, env)
	if err != nil {
		return Decision{}
	}

	ok, _ := out.(bool)
	if !ok {
		return Decision{}
	}
	return Decision{PlaceBet: true, Selection: s.selection}
}

func compileEnv() map[string]any {
	env := make(map[string]any, len(featureNames))
	for _, name := range featureNames {
		env[name] = 0.0
	}
	return env
}

// identCollector собирает признаки, на которые ссылается выражение
type identCollector struct {
	seen map[string]struct{}
}

func (c *identCollector) Visit(node *ast.Node) {
	if id, ok := (*node).(*ast.IdentifierNode); ok {
		c.seen[id.Value] = struct{}{}
	}
}

func (c *identCollector) features() []string {
	out := make([]string, 0, len(c.seen))
	for _, name := range featureNames {
		if _, ok := c.seen[name]; ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
