package result

// Merge combines the spec builder's validation output and the rule
// engine's violations for one file into a unified Result. Messages are
// partitioned into the four severity buckets; within a bucket the
// engine-provided order is preserved across the concatenation (builder
// messages first, then rule engine messages). Messages for rules
// configured off are filtered by the engine adapters and must not
// arrive here; this is not re-checked.
func Merge(version string, builder, rules []Message) *Result {
	res := &Result{Version: version}

	for _, msgs := range [][]Message{builder, rules} {
		for _, m := range msgs {
			switch m.Severity {
			case SeverityError:
				res.Errors = append(res.Errors, m)
			case SeverityWarning:
				res.Warnings = append(res.Warnings, m)
			case SeverityInfo:
				res.Infos = append(res.Infos, m)
			case SeverityHint:
				res.Hints = append(res.Hints, m)
			}
		}
	}

	return res
}
