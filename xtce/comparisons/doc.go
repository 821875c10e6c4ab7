// Package comparisons implements XTCE match criteria: Comparison, Condition,
// and BooleanExpression trees of Anded/Ored conditions, evaluated against a
// packet's in-progress parameter mapping to drive container-inheritor
// selection and context calibrator gating (spec §3, §4.5, §4.6).
package comparisons
