package system

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spiritfox/prefabs"
)

var errNoResult = errors.New("gate: condition script does not define result")

// conditionScript is a compiled tengo condition. Scripts read the globals
// held, spirit and planted and must assign a bool to result.
type conditionScript struct {
	path     string
	compiled *tengo.Compiled
}

func compileCondition(path string, src []byte) (*conditionScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("held", "")
	_ = script.Add("spirit", false)
	_ = script.Add("planted", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("gate: compile %s: %w", path, err)
	}
	return &conditionScript{path: path, compiled: compiled}, nil
}

func (c *conditionScript) eval(held string, spirit, planted bool) (bool, error) {
	if c == nil || c.compiled == nil {
		return false, fmt.Errorf("gate: nil condition script")
	}
	if err := c.compiled.Set("held", held); err != nil {
		return false, err
	}
	if err := c.compiled.Set("spirit", spirit); err != nil {
		return false, err
	}
	if err := c.compiled.Set("planted", planted); err != nil {
		return false, err
	}
	if err := c.compiled.Run(); err != nil {
		return false, fmt.Errorf("gate: run %s: %w", c.path, err)
	}
	if !c.compiled.IsDefined("result") {
		return false, errNoResult
	}
	return c.compiled.Get("result").Bool(), nil
}

// conditionCache compiles each script once and recompiles on demand after a
// hot reload.
type conditionCache struct {
	scripts map[string]*conditionScript
	load    func(name string) ([]byte, error)
}

func newConditionCache() *conditionCache {
	return &conditionCache{
		scripts: map[string]*conditionScript{},
		load:    prefabs.LoadScript,
	}
}

func (c *conditionCache) get(path string) (*conditionScript, error) {
	if s, ok := c.scripts[path]; ok {
		return s, nil
	}
	src, err := c.load(path)
	if err != nil {
		return nil, fmt.Errorf("gate: load %s: %w", path, err)
	}
	s, err := compileCondition(path, src)
	if err != nil {
		return nil, err
	}
	c.scripts[path] = s
	return s, nil
}

func (c *conditionCache) invalidate() {
	c.scripts = map[string]*conditionScript{}
}
