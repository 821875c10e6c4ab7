package comparisons

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/internal/hash"
	"github.com/satparse/spacepacket/packet"
)

// MatchCriteria is the common interface over Comparison, Condition, and
// BooleanExpression (spec §3).
type MatchCriteria interface {
	// Evaluate resolves the criteria against pkt. current, when non-nil, is
	// the raw value of the parameter currently being calibrated, used as a
	// fallback when a referenced parameter has not yet been inserted into
	// pkt (the self-referential case, spec §9).
	Evaluate(pkt *packet.Packet, current *packet.ParsedValue) (bool, error)
}

// Operand is either a reference to a previously (or currently) parsed
// parameter, or a literal XTCE string value. Exactly one of Name or
// IsLiteral's companion Literal is meaningful.
type Operand struct {
	// Name, when IsLiteral is false, is the referenced parameter's name.
	Name string
	// UseCalibrated selects the derived (true) or raw (false) value of the
	// referenced parameter.
	UseCalibrated bool
	// IsLiteral marks this operand as a literal XTCE value rather than a
	// parameter reference.
	IsLiteral bool
	// Literal holds the XTCE string-form literal when IsLiteral is true.
	Literal string
}

// ParamRef builds a parameter-reference Operand.
func ParamRef(name string, useCalibrated bool) Operand {
	return Operand{Name: name, UseCalibrated: useCalibrated}
}

// Lit builds a literal-value Operand.
func Lit(value string) Operand {
	return Operand{IsLiteral: true, Literal: value}
}

func (o Operand) resolve(pkt *packet.Packet, current *packet.ParsedValue) (packet.ParsedValue, bool, error) {
	if o.IsLiteral {
		return packet.ParsedValue{}, false, nil
	}

	v, ok := pkt.Get(o.Name)
	if ok {
		if o.UseCalibrated {
			return v, true, nil
		}
		if v.Raw != nil {
			return *v.Raw, true, nil
		}
		return v, true, nil
	}

	if current != nil {
		return *current, true, nil
	}

	return packet.ParsedValue{}, false, nil
}

// Comparison is the simplest match criteria: a parameter reference compared
// against a literal required value (spec §3, §4.5).
type Comparison struct {
	Left     Operand
	Operator Operator
	required string
}

// NewComparison builds a Comparison referencing paramName, comparing its
// calibrated (useCalibrated=true) or raw value against requiredValue.
func NewComparison(paramName string, useCalibrated bool, op Operator, requiredValue string) Comparison {
	return Comparison{
		Left:     ParamRef(paramName, useCalibrated),
		Operator: op,
	}.withRequired(requiredValue)
}

func (c Comparison) withRequired(requiredValue string) Comparison {
	c.required = requiredValue
	return c
}

// Required returns the literal value this Comparison checks against.
func (c Comparison) Required() string {
	return c.required
}

func (c Comparison) Evaluate(pkt *packet.Packet, current *packet.ParsedValue) (bool, error) {
	ok, err := c.evaluate(pkt, current)
	if err != nil {
		return false, fmt.Errorf("%w: %w", errs.ErrComparison, err)
	}
	return ok, nil
}

func (c Comparison) evaluate(pkt *packet.Packet, current *packet.ParsedValue) (bool, error) {
	left, ok, err := c.Left.resolve(pkt, current)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: parameter %q", errs.ErrParameterMissing, c.Left.Name)
	}

	return compareAgainstLiteral(c.Operator, left, c.required)
}

// Condition is a Comparison generalized to two independently-resolved
// operands (ParameterInstanceRef or literal Value), each with its own
// calibrated/raw selection (spec §4.5).
type Condition struct {
	Left     Operand
	Operator Operator
	Right    Operand
}

func (c Condition) Evaluate(pkt *packet.Packet, current *packet.ParsedValue) (bool, error) {
	ok, err := c.evaluate(pkt, current)
	if err != nil {
		return false, fmt.Errorf("%w: %w", errs.ErrComparison, err)
	}
	return ok, nil
}

func (c Condition) evaluate(pkt *packet.Packet, current *packet.ParsedValue) (bool, error) {
	if c.Right.IsLiteral {
		left, ok, err := c.Left.resolve(pkt, current)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, fmt.Errorf("%w: parameter %q", errs.ErrParameterMissing, c.Left.Name)
		}
		return compareAgainstLiteral(c.Operator, left, c.Right.Literal)
	}

	if c.Left.IsLiteral {
		right, ok, err := c.Right.resolve(pkt, current)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, fmt.Errorf("%w: parameter %q", errs.ErrParameterMissing, c.Right.Name)
		}
		// Flip the operator so the literal acts as the left operand of the
		// original expression: lit OP right  ==  right OP' lit.
		return compareAgainstLiteral(flip(c.Operator), right, c.Left.Literal)
	}

	left, ok, err := c.Left.resolve(pkt, current)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: parameter %q", errs.ErrParameterMissing, c.Left.Name)
	}
	right, ok, err := c.Right.resolve(pkt, current)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, fmt.Errorf("%w: parameter %q", errs.ErrParameterMissing, c.Right.Name)
	}

	return compareValues(c.Operator, left, right)
}

func flip(op Operator) Operator {
	switch op {
	case Lt:
		return Gt
	case Gt:
		return Lt
	case Le:
		return Ge
	case Ge:
		return Le
	default:
		return op
	}
}

// BooleanKind distinguishes an Anded expression from an Ored one.
type BooleanKind uint8

const (
	Anded BooleanKind = iota
	Ored
)

// BooleanExpression is a tree of Anded/Ored MatchCriteria whose leaves are
// typically Conditions (spec §3, §4.5). Evaluation short-circuits.
type BooleanExpression struct {
	Kind     BooleanKind
	Children []MatchCriteria
}

func (b BooleanExpression) Evaluate(pkt *packet.Packet, current *packet.ParsedValue) (bool, error) {
	if len(b.Children) == 0 {
		return true, nil
	}

	for _, child := range b.Children {
		ok, err := child.Evaluate(pkt, current)
		if err != nil {
			return false, err
		}

		switch b.Kind {
		case Anded:
			if !ok {
				return false, nil
			}
		case Ored:
			if ok {
				return true, nil
			}
		}
	}

	switch b.Kind {
	case Anded:
		return true, nil
	default:
		return false, nil
	}
}

// literalCoercion is the cached result of parsing a match-criteria literal
// string into the numeric form required to compare it against a given
// packet.Kind. A Definition's literals are static XML attribute text
// re-evaluated on every packet that reaches the same container, so caching
// the strconv result per (kind, literal) pair turns repeated ParseInt/
// ParseFloat/ParseBool calls into a map lookup after the first packet.
type literalCoercion struct {
	value float64
	err   error
}

var literalCoercionCache sync.Map // map[uint64]literalCoercion

func coerceLiteral(kind packet.Kind, literal string) literalCoercion {
	key := hash.String(literal) ^ uint64(kind)*0x9e3779b97f4a7c15

	if cached, ok := literalCoercionCache.Load(key); ok {
		return cached.(literalCoercion)
	}

	var c literalCoercion
	switch kind {
	case packet.KindInt:
		rv, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			c.err = fmt.Errorf("%w: %q as int: %v", errs.ErrLiteralCoercion, literal, err)
		} else {
			c.value = float64(rv)
		}
	case packet.KindFloat:
		rv, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			c.err = fmt.Errorf("%w: %q as float: %v", errs.ErrLiteralCoercion, literal, err)
		} else {
			c.value = rv
		}
	case packet.KindBool:
		rv, err := strconv.ParseBool(literal)
		if err != nil {
			c.err = fmt.Errorf("%w: %q as bool: %v", errs.ErrLiteralCoercion, literal, err)
		} else if rv {
			c.value = 1.0
		}
	default:
		c.err = fmt.Errorf("%w: unhandled kind %v", errs.ErrLiteralCoercion, kind)
	}

	literalCoercionCache.Store(key, c)
	return c
}

func compareAgainstLiteral(op Operator, left packet.ParsedValue, literal string) (bool, error) {
	switch left.Kind {
	case packet.KindInt, packet.KindFloat, packet.KindBool:
		c := coerceLiteral(left.Kind, literal)
		if c.err != nil {
			return false, c.err
		}
		return apply(op, numeric(left), c.value), nil

	case packet.KindStr:
		return applyStr(op, left.StrVal, literal), nil

	case packet.KindBytes:
		return applyStr(op, string(left.BytesVal), literal), nil

	default:
		return false, fmt.Errorf("%w: unhandled kind %v", errs.ErrLiteralCoercion, left.Kind)
	}
}

func compareValues(op Operator, left, right packet.ParsedValue) (bool, error) {
	switch {
	case left.Kind == packet.KindStr || right.Kind == packet.KindStr:
		return applyStr(op, left.String(), right.String()), nil
	case left.Kind == packet.KindBytes || right.Kind == packet.KindBytes:
		return applyStr(op, left.String(), right.String()), nil
	default:
		return apply(op, numeric(left), numeric(right)), nil
	}
}

func numeric(v packet.ParsedValue) float64 {
	switch v.Kind {
	case packet.KindInt:
		return float64(v.IntVal)
	case packet.KindFloat:
		return v.FloatVal
	case packet.KindBool:
		if v.BoolVal {
			return 1
		}
		return 0
	default:
		return 0
	}
}
