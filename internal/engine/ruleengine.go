package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
	validatorErrors "github.com/pb33f/libopenapi-validator/errors"

	"github.com/kolah/oaslint/internal/config"
	"github.com/kolah/oaslint/internal/result"
)

// RuleEngine invokes the delegated declarative rule engine and maps its
// violations through the merged configuration: configured severities
// replace engine defaults, rules configured off are dropped, and
// duplicate issues surfaced by overlapping rule sets are collapsed
// using the injected fingerprint function.
type RuleEngine struct {
	Config *config.Config
	// Fingerprint computes the dedup key per violation. Defaults to
	// the package Fingerprint function.
	Fingerprint func(result.Message) uint64
}

// Run evaluates the rule engine against a document already built by the
// spec builder and returns the surviving violations in engine order.
func (e *RuleEngine) Run(ctx context.Context, doc libopenapi.Document, version string) ([]result.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The delegated rule engine only evaluates OpenAPI 3.x documents;
	// for Swagger 2.0 the spec builder's output stands alone.
	if version == "2.0" {
		return nil, nil
	}

	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		return nil, fmt.Errorf("creating validator: %w", errors.Join(errs...))
	}

	valid, violations := v.ValidateDocument()
	if valid {
		return nil, nil
	}

	fingerprint := e.Fingerprint
	if fingerprint == nil {
		fingerprint = Fingerprint
	}

	seen := make(map[uint64]struct{}, len(violations))
	var out []result.Message
	for _, violation := range violations {
		rule := ruleID(violation)

		severity := result.SeverityError
		if e.Config != nil {
			if setting, ok := e.Config.Setting(version, rule); ok {
				if setting.Severity == result.SeverityOff {
					continue
				}
				severity = setting.Severity
			}
		}

		m := result.Message{
			Path:     violationPath(violation),
			Message:  violation.Message,
			Rule:     rule,
			Line:     violation.SpecLine,
			Severity: severity,
		}
		m.Fingerprint = fingerprint(m)
		if _, dup := seen[m.Fingerprint]; dup {
			continue
		}
		seen[m.Fingerprint] = struct{}{}
		out = append(out, m)
	}

	return out, nil
}

// ruleID derives the engine-native rule identifier used for severity
// lookups and reporting.
func ruleID(v *validatorErrors.ValidationError) string {
	if v.ValidationSubType != "" {
		return v.ValidationType + "-" + v.ValidationSubType
	}
	return v.ValidationType
}

// violationPath extracts the document location from the violation's
// first schema validation failure, when present.
func violationPath(v *validatorErrors.ValidationError) []string {
	for _, failure := range v.SchemaValidationErrors {
		if failure != nil && failure.Location != "" {
			return splitPointer(failure.Location)
		}
	}
	return nil
}
