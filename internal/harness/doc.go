// Package harness runs conformance scenarios against the literal package.
//
// A scenario binds names to literals, applies operations to them and checks
// the outcomes. Every run produces a trace that can be compared against a
// golden file.
//
// # Scenario Format
//
// Scenarios are YAML files validated against an embedded CUE schema
// (schema.cue) and then decoded strictly:
//
//	name: concat_append
//	description: "Concatenation widens, append truncates"
//	literals:
//	  - name: a
//	    char: byte
//	    text: "Hello"
//	  - name: v
//	    type: float32
//	    value: 5.5
//	  - name: u
//	    undefined: true
//	steps:
//	  - op: concat
//	    target: a
//	    other: a
//	    into: aa
//	    expect: "HelloHello"
//	    expect_capacity: 16
//	  - op: at
//	    target: a
//	    index: 9
//	    expect_error: OUT_OF_RANGE
//	assertions:
//	  - type: equivalent
//	    literals: [u, v]
//
// # Assertion Types
//
//   - equivalent: every pair of the listed literals is equal
//   - distinct: no pair of the listed literals is equal
//   - final_state: a literal has the given text, capacity and size
//   - registry_count: the run's registry holds the given number of entries
//
// Positions equal to literal.NPos appear as "npos" in expectations and
// traces.
package harness
