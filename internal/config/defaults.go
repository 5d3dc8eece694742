package config

// defaults is the built-in rule taxonomy. User overrides are
// deep-merged on top of this tree leaf-by-leaf; any rule not mentioned
// in an override keeps its default below. Rule semantics live in the
// delegated engines; this tree only fixes names, severities and
// sub-options.
var defaults = map[string]any{
	"shared": map[string]any{
		"operations": map[string]any{
			"no-operation-id": "warning",
			"operation-id-case-convention": map[string]any{
				"severity": "warning",
				"case":     "lower_snake_case",
			},
			"no-summary":                     "warning",
			"no-array-responses":             "error",
			"parameter-order":                "warning",
			"undefined-tag":                  "warning",
			"unused-tag":                     "warning",
			"operation-id-naming-convention": "warning",
			"no-description":                 "warning",
		},
		"parameters": map[string]any{
			"no-parameter-description": "error",
			"param-name-case-convention": map[string]any{
				"severity": "error",
				"case":     "lower_snake_case",
			},
			"invalid-type-format-pair":   "error",
			"content-no-in-parameters":   "error",
			"required-param-has-default": "warning",
			"duplicate-parameter":        "warning",
		},
		"paths": map[string]any{
			"missing-path-parameter":   "error",
			"duplicate-path-parameter": "warning",
			"paths-case-convention": map[string]any{
				"severity": "warning",
				"case":     "lower_dash_case",
			},
			"no-path-segment-versioning": "warning",
			"trailing-slash":             "warning",
		},
		"responses": map[string]any{
			"inline-response-schema":              "warning",
			"no-response-codes":                   "error",
			"no-success-response-codes":           "warning",
			"no-response-body":                    "warning",
			"status-code-conventions":             "warning",
			"protocol-switching-and-success-code": "error",
		},
		"schemas": map[string]any{
			"invalid-type-format-pair":      "error",
			"no-schema-description":         "warning",
			"no-property-description":       "warning",
			"description-mentions-json":     "warning",
			"array-of-arrays":               "warning",
			"inconsistent-property-type":    "warning",
			"json-or-param-binary-string":   "warning",
			"undefined-required-properties": "warning",
			"property-case-convention": map[string]any{
				"severity": "error",
				"case":     "lower_snake_case",
			},
			"property-case-collision": "error",
			"enum-case-convention": map[string]any{
				"severity": "error",
				"case":     "lower_snake_case",
			},
		},
		"security": map[string]any{
			"invalid-non-empty-security-array": "error",
			"scheme-not-used":                  "warning",
			"no-empty-scopes":                  "warning",
			"insecure-basic-auth":              "warning",
		},
		"walker": map[string]any{
			"no-empty-descriptions":         "error",
			"has-circular-references":       "warning",
			"ref-siblings":                  "off",
			"duplicate-sibling-description": "info",
			"incorrect-ref-pattern":         "warning",
		},
		"pagination": map[string]any{
			"pagination-style": "warning",
		},
	},

	"swagger2": map[string]any{
		"operations": map[string]any{
			"no-consumes-for-put-or-post": "error",
			"get-op-has-consumes":         "warning",
			"no-produces":                 "warning",
		},
		"parameters": map[string]any{
			"invalid-collection-format": "error",
			"body-parameter-no-schema":  "error",
		},
		"definitions": map[string]any{
			"inline-schema": "warning",
		},
	},

	"oas3": map[string]any{
		"operations": map[string]any{
			"no-request-body-content": "error",
			"no-request-body-name":    "warning",
		},
		"parameters": map[string]any{
			"no-in-property":            "error",
			"invalid-in-property":       "error",
			"missing-schema-or-content": "error",
			"has-schema-and-content":    "error",
		},
		"responses": map[string]any{
			"no-response-body": "warning",
		},
		"schemas": map[string]any{
			"json-or-param-binary-string": "warning",
		},
		"servers": map[string]any{
			"no-server-variable-description": "warning",
		},
		"callbacks": map[string]any{
			"no-callback-description": "info",
		},
	},

	// Severity overrides forwarded to the delegated rule engine by its
	// native rule ids.
	"rule-engine": map[string]any{
		"oas2-schema":                           "error",
		"oas3-schema":                           "error",
		"openapi-tags":                          "warning",
		"openapi-tags-alphabetical":             "hint",
		"operation-tags":                        "warning",
		"operation-tag-defined":                 "warning",
		"operation-description":                 "warning",
		"operation-operationId":                 "warning",
		"operation-operationId-unique":          "error",
		"operation-parameters":                  "warning",
		"operation-singular-tag":                "hint",
		"info-description":                      "warning",
		"info-contact":                          "info",
		"info-license":                          "info",
		"license-url":                           "info",
		"contact-properties":                    "info",
		"no-eval-in-markdown":                   "error",
		"no-script-tags-in-markdown":            "error",
		"path-declarations-must-exist":          "error",
		"path-keys-no-trailing-slash":           "warning",
		"path-not-include-query":                "error",
		"path-params":                           "error",
		"typed-enum":                            "warning",
		"duplicated-entry-in-enum":              "error",
		"no-ref-siblings":                       "error",
		"oas3-api-servers":                      "warning",
		"oas3-examples-value-or-external-value": "warning",
		"oas3-operation-security-defined":       "warning",
		"oas3-parameter-description":            "info",
		"oas3-server-trailing-slash":            "warning",
		"oas3-unused-component":                 "warning",
		"oas3-valid-media-example":              "warning",
		"oas3-valid-schema-example":             "warning",
		"oas2-operation-security-defined":       "warning",
		"oas2-parameter-description":            "info",
		"oas2-unused-definition":                "warning",
		"oas2-valid-media-example":              "warning",
		"oas2-valid-schema-example":             "warning",
		"oas2-host-trailing-slash":              "warning",
		"oas2-api-host":                         "hint",
		"oas2-api-schemes":                      "hint",
	},

	// Glob patterns excluded from auto-discovery.
	"ignore": []any{
		"node_modules/**",
		"vendor/**",
	},
}

// Default returns the built-in configuration. The defaults tree is
// maintained as valid data; failure to convert it is a programming
// error, not a runtime condition.
func Default() *Config {
	cfg, err := fromMap(defaults)
	if err != nil {
		panic("config: invalid built-in defaults: " + err.Error())
	}
	return cfg
}
