// Package config holds the declarative rule taxonomy: which rules the
// delegated engines should evaluate, at which severity, and with which
// sub-options. The merged configuration is built once per run and
// immutable thereafter.
package config

import (
	"fmt"
	"sort"

	"github.com/kolah/oaslint/internal/result"
)

// Config is the merged lint configuration. Rules are grouped by spec
// scope: shared rules apply to every document, swagger2/oas3 rules to
// the matching declared version, and rule-engine entries are severity
// overrides forwarded to the delegated rule engine by rule id.
type Config struct {
	Shared     Scope
	Swagger2   Scope
	OAS3       Scope
	RuleEngine Category
	// Ignore lists glob patterns excluded from auto-discovery.
	Ignore []string
}

// Scope maps category name to the rules in that category.
type Scope map[string]Category

// Category maps rule name to its configured setting.
type Category map[string]Rule

// Rule is one rule's setting: a severity, optionally paired with a
// sub-option such as a naming-case convention.
type Rule struct {
	Severity result.Severity
	// Option is the rule's sub-option value, empty when the rule has none.
	Option string
}

// Setting resolves the effective setting for a rule name given the
// document's declared version. The version-specific scope wins over
// shared; rule-engine overrides match engine-native rule ids. Unknown
// rule names resolve to nothing and are left to the engines' defaults.
func (c *Config) Setting(version, rule string) (Rule, bool) {
	scope := c.OAS3
	if version == "2.0" {
		scope = c.Swagger2
	}
	if r, ok := scope.find(rule); ok {
		return r, true
	}
	if r, ok := c.Shared.find(rule); ok {
		return r, true
	}
	if r, ok := c.RuleEngine[rule]; ok {
		return r, true
	}
	return Rule{}, false
}

func (s Scope) find(rule string) (Rule, bool) {
	for _, cat := range s {
		if r, ok := cat[rule]; ok {
			return r, true
		}
	}
	return Rule{}, false
}

// fromMap converts the merged koanf tree into a typed Config,
// validating every severity value at the boundary. Unknown rule names
// pass through untouched (they are ignored by the engines); invalid
// severity values fail the whole run.
func fromMap(raw map[string]any) (*Config, error) {
	cfg := &Config{}

	var err error
	if cfg.Shared, err = scopeFromMap("shared", raw["shared"]); err != nil {
		return nil, err
	}
	if cfg.Swagger2, err = scopeFromMap("swagger2", raw["swagger2"]); err != nil {
		return nil, err
	}
	if cfg.OAS3, err = scopeFromMap("oas3", raw["oas3"]); err != nil {
		return nil, err
	}
	if cfg.RuleEngine, err = categoryFromMap("rule-engine", raw["rule-engine"]); err != nil {
		return nil, err
	}

	if v, ok := raw["ignore"]; ok {
		items, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("ignore: expected a list of glob patterns")
		}
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("ignore: expected a list of glob patterns")
			}
			cfg.Ignore = append(cfg.Ignore, s)
		}
	}

	return cfg, nil
}

func scopeFromMap(name string, v any) (Scope, error) {
	if v == nil {
		return Scope{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a mapping of categories", name)
	}

	scope := make(Scope, len(m))
	for category, rules := range m {
		cat, err := categoryFromMap(name+"."+category, rules)
		if err != nil {
			return nil, err
		}
		scope[category] = cat
	}
	return scope, nil
}

func categoryFromMap(name string, v any) (Category, error) {
	if v == nil {
		return Category{}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a mapping of rules", name)
	}

	cat := make(Category, len(m))
	for rule, setting := range m {
		r, err := ruleFromValue(setting)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, rule, err)
		}
		cat[rule] = r
	}
	return cat, nil
}

// ruleFromValue parses the YAML union for one rule: either a scalar
// severity or a mapping carrying a severity plus one sub-option.
func ruleFromValue(v any) (Rule, error) {
	switch val := v.(type) {
	case string:
		sev, err := result.ParseSeverity(val)
		if err != nil {
			return Rule{}, err
		}
		return Rule{Severity: sev}, nil

	case map[string]any:
		raw, ok := val["severity"].(string)
		if !ok {
			return Rule{}, fmt.Errorf("rule mapping requires a severity")
		}
		sev, err := result.ParseSeverity(raw)
		if err != nil {
			return Rule{}, err
		}
		r := Rule{Severity: sev}

		// The sub-option key varies per rule; take the first
		// non-severity entry in key order for determinism.
		keys := make([]string, 0, len(val))
		for k := range val {
			if k != "severity" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		if len(keys) > 0 {
			opt, ok := val[keys[0]].(string)
			if !ok {
				return Rule{}, fmt.Errorf("option %q must be a string", keys[0])
			}
			r.Option = opt
		}
		return r, nil
	}

	return Rule{}, fmt.Errorf("rule setting must be a severity string or a mapping")
}
