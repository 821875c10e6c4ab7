package definitions

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/xtce/comparisons"
)

// parseMatchCriteria dispatches on el's local tag to build a
// comparisons.MatchCriteria, covering every form spec §6 names:
// Comparison, ComparisonList, BooleanExpression (with nested
// ANDedConditions/ORedConditions of Condition elements).
func parseMatchCriteria(el *etree.Element) (comparisons.MatchCriteria, error) {
	switch el.Tag {
	case "Comparison":
		return parseComparison(el)

	case "ComparisonList":
		var children []comparisons.MatchCriteria
		for _, c := range el.SelectElements("Comparison") {
			mc, err := parseComparison(c)
			if err != nil {
				return nil, err
			}
			children = append(children, mc)
		}
		return comparisons.BooleanExpression{Kind: comparisons.Anded, Children: children}, nil

	case "BooleanExpression", "RestrictionCriteria":
		return parseBooleanExpression(el)

	case "ANDedConditions":
		return parseConditionGroup(el, comparisons.Anded)

	case "ORedConditions":
		return parseConditionGroup(el, comparisons.Ored)

	case "Condition":
		return parseCondition(el)

	default:
		return nil, fmt.Errorf("%w: unrecognized match criteria element %q", errs.ErrInvalidXtce, el.Tag)
	}
}

func parseComparison(el *etree.Element) (comparisons.Comparison, error) {
	paramRef := el.SelectAttrValue("parameterRef", "")
	if paramRef == "" {
		return comparisons.Comparison{}, fmt.Errorf("%w: Comparison missing parameterRef", errs.ErrInvalidXtce)
	}

	value := el.SelectAttrValue("value", "")
	op := parseOperator(el.SelectAttrValue("comparisonOperator", "=="))
	useCalibrated := el.SelectAttrValue("useCalibratedValue", "true") == "true"

	return comparisons.NewComparison(paramRef, useCalibrated, op, value), nil
}

func parseBooleanExpression(el *etree.Element) (comparisons.MatchCriteria, error) {
	if anded := el.SelectElement("ANDedConditions"); anded != nil {
		return parseConditionGroup(anded, comparisons.Anded)
	}
	if ored := el.SelectElement("ORedConditions"); ored != nil {
		return parseConditionGroup(ored, comparisons.Ored)
	}

	// A RestrictionCriteria with Comparison/ComparisonList children directly,
	// no nested BooleanExpression.
	var children []comparisons.MatchCriteria
	for _, c := range el.ChildElements() {
		switch c.Tag {
		case "Comparison", "ComparisonList", "BooleanExpression", "Condition":
			mc, err := parseMatchCriteria(c)
			if err != nil {
				return nil, err
			}
			children = append(children, mc)
		}
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: empty RestrictionCriteria/BooleanExpression", errs.ErrInvalidXtce)
	}

	return comparisons.BooleanExpression{Kind: comparisons.Anded, Children: children}, nil
}

func parseConditionGroup(el *etree.Element, kind comparisons.BooleanKind) (comparisons.MatchCriteria, error) {
	var children []comparisons.MatchCriteria
	for _, c := range el.ChildElements() {
		mc, err := parseMatchCriteria(c)
		if err != nil {
			return nil, err
		}
		children = append(children, mc)
	}
	return comparisons.BooleanExpression{Kind: kind, Children: children}, nil
}

func parseCondition(el *etree.Element) (comparisons.Condition, error) {
	op := parseOperator(el.SelectAttrValue("comparisonOperator", "=="))

	refs := el.SelectElements("ParameterInstanceRef")
	values := el.SelectElements("Value")

	var left, right comparisons.Operand
	switch {
	case len(refs) == 2:
		left = operandFromRef(refs[0])
		right = operandFromRef(refs[1])

	case len(refs) == 1 && len(values) == 1:
		left = operandFromRef(refs[0])
		right = comparisons.Lit(values[0].Text())

	case len(refs) == 1:
		left = operandFromRef(refs[0])
		right = comparisons.Lit(el.SelectAttrValue("value", ""))

	default:
		return comparisons.Condition{}, fmt.Errorf("%w: Condition has no resolvable operands", errs.ErrInvalidXtce)
	}

	return comparisons.Condition{Left: left, Operator: op, Right: right}, nil
}

func operandFromRef(ref *etree.Element) comparisons.Operand {
	name := ref.SelectAttrValue("parameterRef", "")
	useCalibrated := ref.SelectAttrValue("useCalibratedValue", "true") == "true"
	return comparisons.ParamRef(name, useCalibrated)
}

func parseOperator(s string) comparisons.Operator {
	switch s {
	case "==", "equality":
		return comparisons.Eq
	case "!=", "inequality":
		return comparisons.Ne
	case "<":
		return comparisons.Lt
	case ">":
		return comparisons.Gt
	case "<=":
		return comparisons.Le
	case ">=":
		return comparisons.Ge
	default:
		return comparisons.Eq
	}
}
