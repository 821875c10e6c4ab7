package definitions

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/xtce/calibrators"
	"github.com/satparse/spacepacket/xtce/comparisons"
	"github.com/satparse/spacepacket/xtce/encodings"
)

func parseFloat(s string, dflt float64) float64 {
	if s == "" {
		return dflt
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return dflt
	}
	return v
}

func parseInt(s string, dflt int) int {
	if s == "" {
		return dflt
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return dflt
	}
	return v
}

func parseBool(s string, dflt bool) bool {
	switch s {
	case "true":
		return true
	case "false":
		return false
	default:
		return dflt
	}
}

func parseByteOrder(s string) encodings.ByteOrder {
	if s == "leastSignificantByteFirst" {
		return encodings.LeastSignificantByteFirst
	}
	return encodings.MostSignificantByteFirst
}

// findEncodingElement looks for one of the four DataEncoding element tags
// as a direct child of parent, or one level down inside an <Encoding>
// wrapper (used by the time parameter types, spec §6).
func findEncodingElement(parent *etree.Element) *etree.Element {
	tags := []string{"IntegerDataEncoding", "FloatDataEncoding", "StringDataEncoding", "BinaryDataEncoding"}

	for _, tag := range tags {
		if el := parent.SelectElement(tag); el != nil {
			return el
		}
	}

	if wrapper := parent.SelectElement("Encoding"); wrapper != nil {
		return findEncodingElement(wrapper)
	}

	return nil
}

func parseDataEncoding(el *etree.Element, warn func(kind, detail string)) (encodings.DataEncoding, error) {
	switch el.Tag {
	case "IntegerDataEncoding":
		return parseIntegerEncoding(el)
	case "FloatDataEncoding":
		return parseFloatEncoding(el, warn)
	case "StringDataEncoding":
		return parseStringEncoding(el)
	case "BinaryDataEncoding":
		return parseBinaryEncoding(el)
	default:
		return nil, fmt.Errorf("%w: unrecognized data encoding element %q", errs.ErrInvalidXtce, el.Tag)
	}
}

func parseIntegerEncoding(el *etree.Element) (encodings.IntegerDataEncoding, error) {
	size := parseInt(el.SelectAttrValue("sizeInBits", ""), 0)
	if size <= 0 || size > 64 {
		return encodings.IntegerDataEncoding{}, fmt.Errorf("%w: IntegerDataEncoding sizeInBits=%d", errs.ErrInvalidXtce, size)
	}

	var kind encodings.IntegerKind
	switch el.SelectAttrValue("encoding", "unsigned") {
	case "unsigned":
		kind = encodings.Unsigned
	case "signed":
		kind = encodings.Signed
	case "twosComplement":
		kind = encodings.TwosComplement
	default:
		return encodings.IntegerDataEncoding{}, fmt.Errorf("%w: unknown integer encoding kind", errs.ErrInvalidXtce)
	}

	calSet, err := parseCalibratorSet(el)
	if err != nil {
		return encodings.IntegerDataEncoding{}, err
	}

	return encodings.IntegerDataEncoding{
		SizeInBits:  size,
		Kind:        kind,
		ByteOrder:   parseByteOrder(el.SelectAttrValue("byteOrder", "")),
		Calibrators: calSet,
	}, nil
}

func parseFloatEncoding(el *etree.Element, warn func(kind, detail string)) (encodings.FloatDataEncoding, error) {
	size := parseInt(el.SelectAttrValue("sizeInBits", ""), 32)

	raw := el.SelectAttrValue("encoding", "IEEE754")
	canonical, deprecated := encodings.NormalizeFloatKindAlias(raw)
	if deprecated {
		warn("deprecated-float-encoding-alias", fmt.Sprintf("%q is a legacy alias for %q", raw, canonical))
	}

	var kind encodings.FloatKind
	switch canonical {
	case "IEEE754":
		kind = encodings.IEEE754
	case "MILSTD_1750A":
		kind = encodings.MILSTD1750A
		size = 32
	default:
		return encodings.FloatDataEncoding{}, fmt.Errorf("%w: unknown float encoding kind %q", errs.ErrInvalidXtce, raw)
	}

	calSet, err := parseCalibratorSet(el)
	if err != nil {
		return encodings.FloatDataEncoding{}, err
	}

	return encodings.FloatDataEncoding{
		SizeInBits:  size,
		Kind:        kind,
		ByteOrder:   parseByteOrder(el.SelectAttrValue("byteOrder", "")),
		Calibrators: calSet,
	}, nil
}

var stringCharsets = map[string]encodings.StringCharset{
	"US-ASCII":    encodings.USASCII,
	"ISO-8859-1":  encodings.ISO88591,
	"Windows-1252": encodings.Windows1252,
	"UTF-8":       encodings.UTF8,
	"UTF-16":      encodings.UTF16,
	"UTF-16LE":    encodings.UTF16LE,
	"UTF-16BE":    encodings.UTF16BE,
	"UTF-32":      encodings.UTF32,
	"UTF-32LE":    encodings.UTF32LE,
	"UTF-32BE":    encodings.UTF32BE,
}

func parseStringEncoding(el *etree.Element) (encodings.StringDataEncoding, error) {
	charsetName := el.SelectAttrValue("encoding", "US-ASCII")
	charset, ok := stringCharsets[charsetName]
	if !ok {
		return encodings.StringDataEncoding{}, fmt.Errorf("%w: unknown string charset %q", errs.ErrInvalidXtce, charsetName)
	}

	rawLen, err := parseRawLengthSpec(el.SelectElement("SizeInBits"))
	if err != nil {
		return encodings.StringDataEncoding{}, err
	}

	derived := parseDerivedLengthSpec(el)

	return encodings.StringDataEncoding{
		Charset:   charset,
		ByteOrder: parseByteOrder(el.SelectAttrValue("byteOrder", "")),
		RawLength: rawLen,
		Derived:   derived,
	}, nil
}

func parseBinaryEncoding(el *etree.Element) (encodings.BinaryDataEncoding, error) {
	rawLen, err := parseRawLengthSpec(el.SelectElement("SizeInBits"))
	if err != nil {
		return encodings.BinaryDataEncoding{}, err
	}

	return encodings.BinaryDataEncoding{
		RawLength:         rawLen,
		UseCalibratedSize: parseBool(el.SelectAttrValue("useCalibratedValue", "false"), false),
	}, nil
}

func parseRawLengthSpec(sizeEl *etree.Element) (encodings.RawLengthSpec, error) {
	if sizeEl == nil {
		return encodings.RawLengthSpec{}, fmt.Errorf("%w: missing SizeInBits element", errs.ErrInvalidXtce)
	}

	if fixed := sizeEl.SelectElement("Fixed"); fixed != nil {
		fv := fixed.SelectElement("FixedValue")
		if fv == nil {
			return encodings.RawLengthSpec{}, fmt.Errorf("%w: Fixed missing FixedValue", errs.ErrInvalidXtce)
		}
		return encodings.RawLengthSpec{FixedBits: parseInt(fv.Text(), 0)}, nil
	}

	if dyn := sizeEl.SelectElement("DynamicValue"); dyn != nil {
		ref := dyn.SelectElement("ParameterInstanceRef")
		if ref == nil {
			return encodings.RawLengthSpec{}, fmt.Errorf("%w: DynamicValue missing ParameterInstanceRef", errs.ErrInvalidXtce)
		}

		d := &encodings.DynamicLengthRef{
			ParamName:     ref.SelectAttrValue("parameterRef", ""),
			UseCalibrated: parseBool(ref.SelectAttrValue("useCalibratedValue", "true"), true),
		}

		if adj := dyn.SelectElement("LinearAdjustment"); adj != nil {
			d.HasAdjuster = true
			d.Slope = parseInt(adj.SelectAttrValue("slope", "1"), 1)
			d.Intercept = parseInt(adj.SelectAttrValue("intercept", "0"), 0)
		}

		return encodings.RawLengthSpec{Dynamic: d}, nil
	}

	if list := sizeEl.SelectElement("DiscreteLookupList"); list != nil {
		lookups, err := parseDiscreteLookups(list)
		if err != nil {
			return encodings.RawLengthSpec{}, err
		}
		return encodings.RawLengthSpec{DiscreteLookup: lookups}, nil
	}

	return encodings.RawLengthSpec{}, fmt.Errorf("%w: SizeInBits has no Fixed/DynamicValue/DiscreteLookupList child", errs.ErrInvalidXtce)
}

func parseDiscreteLookups(list *etree.Element) ([]encodings.DiscreteLookup, error) {
	var out []encodings.DiscreteLookup
	for _, entry := range list.SelectElements("DiscreteLookup") {
		value := parseInt(entry.SelectAttrValue("value", ""), 0)

		var matched bool
		var built encodings.DiscreteLookup
		for _, child := range entry.ChildElements() {
			m, err := parseMatchCriteria(child)
			if err != nil {
				return nil, err
			}
			built = encodings.DiscreteLookup{Criteria: m, Value: value}
			matched = true
			break
		}
		if !matched {
			return nil, fmt.Errorf("%w: DiscreteLookup has no match criteria child", errs.ErrInvalidXtce)
		}
		out = append(out, built)
	}
	return out, nil
}

func parseDerivedLengthSpec(encodingEl *etree.Element) encodings.DerivedLengthSpec {
	if ls := encodingEl.SelectElement("LeadingSize"); ls != nil {
		bits := parseInt(ls.SelectAttrValue("sizeInBitsOfSizeTag", "8"), 8)
		return encodings.DerivedLengthSpec{LeadingLengthBits: bits}
	}

	if tc := encodingEl.SelectElement("TerminationChar"); tc != nil {
		b, err := hexToBytes(tc.Text())
		if err == nil {
			return encodings.DerivedLengthSpec{TerminationChar: b}
		}
	}

	return encodings.DerivedLengthSpec{}
}

func hexToBytes(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd-length hex string %q", errs.ErrInvalidXtce, s)
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		var v int
		if _, err := fmt.Sscanf(s[2*i:2*i+2], "%02x", &v); err != nil {
			return nil, fmt.Errorf("%w: invalid hex byte in %q", errs.ErrInvalidXtce, s)
		}
		out[i] = byte(v)
	}
	return out, nil
}

func parseCalibratorSet(encodingEl *etree.Element) (calibrators.CalibratorSet, error) {
	var set calibrators.CalibratorSet

	if def := encodingEl.SelectElement("DefaultCalibrator"); def != nil {
		cal, err := parseCalibratorChild(def)
		if err != nil {
			return set, err
		}
		set.Default = cal
	}

	if list := encodingEl.SelectElement("ContextCalibratorList"); list != nil {
		for _, ctxEl := range list.SelectElements("ContextCalibrator") {
			matchEl := ctxEl.SelectElement("ContextMatch")
			calEl := ctxEl.SelectElement("Calibrator")
			if matchEl == nil || calEl == nil {
				return set, fmt.Errorf("%w: ContextCalibrator missing ContextMatch/Calibrator", errs.ErrInvalidXtce)
			}

			var crit comparisons.MatchCriteria
			for _, c := range matchEl.ChildElements() {
				m, err := parseMatchCriteria(c)
				if err != nil {
					return set, err
				}
				crit = m
				break
			}
			if crit == nil {
				return set, fmt.Errorf("%w: empty ContextMatch", errs.ErrInvalidXtce)
			}

			inner, err := parseCalibratorChild(calEl)
			if err != nil {
				return set, err
			}

			set.Contexts = append(set.Contexts, calibrators.ContextCalibrator{Criteria: crit, Inner: inner})
		}
	}

	return set, nil
}

func parseCalibratorChild(parent *etree.Element) (calibrators.Calibrator, error) {
	if poly := parent.SelectElement("PolynomialCalibrator"); poly != nil {
		var terms []calibrators.Term
		for _, term := range poly.SelectElements("Term") {
			terms = append(terms, calibrators.Term{
				Coefficient: parseFloat(term.SelectAttrValue("coefficient", "0"), 0),
				Exponent:    parseFloat(term.SelectAttrValue("exponent", "0"), 0),
			})
		}
		return calibrators.NewPolynomial(terms...), nil
	}

	if spline := parent.SelectElement("SplineCalibrator"); spline != nil {
		order := parseInt(spline.SelectAttrValue("order", "0"), 0)
		extrapolate := parseBool(spline.SelectAttrValue("extrapolate", "false"), false)

		var points []calibrators.SplinePoint
		for _, p := range spline.SelectElements("SplinePoint") {
			points = append(points, calibrators.SplinePoint{
				Raw:        parseFloat(p.SelectAttrValue("raw", "0"), 0),
				Calibrated: parseFloat(p.SelectAttrValue("calibrated", "0"), 0),
			})
		}
		return calibrators.NewSpline(order, extrapolate, points...), nil
	}

	return nil, fmt.Errorf("%w: calibrator element has no recognized child", errs.ErrInvalidXtce)
}
