package definitions

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/xtce/calibrators"
	"github.com/satparse/spacepacket/xtce/comparisons"
	"github.com/satparse/spacepacket/xtce/containers"
	"github.com/satparse/spacepacket/xtce/encodings"
	"github.com/satparse/spacepacket/xtce/parameters"
)

// Serialize renders a Definition back to an XTCE document, satisfying the
// parse-serialize-parse round trip (spec §8): the result, fed back through
// Load, reproduces an equal Definition.
func Serialize(def *Definition) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("SpaceSystem")
	root.CreateAttr("xmlns", def.Metadata.NamespaceURI)
	root.CreateAttr("name", def.Metadata.SpaceSystemName)

	if def.Metadata.Date != "" || def.Metadata.Author != "" || def.Metadata.SchemaVersion != "" {
		header := root.CreateElement("Header")
		if def.Metadata.Date != "" {
			header.CreateAttr("date", def.Metadata.Date)
		}
		if def.Metadata.Author != "" {
			header.CreateAttr("author", def.Metadata.Author)
		}
		if def.Metadata.SchemaVersion != "" {
			header.CreateAttr("version", def.Metadata.SchemaVersion)
		}
	}

	meta := root.CreateElement("TelemetryMetaData")

	if def.ParameterTypes.Len() > 0 {
		set := meta.CreateElement("ParameterTypeSet")
		for _, name := range def.ParameterTypes.Keys() {
			pt, _ := def.ParameterTypes.Get(name)
			if err := serializeParameterType(set, name, pt); err != nil {
				return nil, err
			}
		}
	}

	if def.Parameters.Len() > 0 {
		set := meta.CreateElement("ParameterSet")
		for _, name := range def.Parameters.Keys() {
			p, _ := def.Parameters.Get(name)
			pEl := set.CreateElement("Parameter")
			pEl.CreateAttr("name", name)
			pEl.CreateAttr("parameterTypeRef", parameterTypeRefName(def, p.Type))
			if p.ShortDescription != "" {
				pEl.CreateAttr("shortDescription", p.ShortDescription)
			}
			if p.LongDescription != "" {
				pEl.CreateElement("LongDescription").SetText(p.LongDescription)
			}
		}
	}

	if def.SequenceContainers.Len() > 0 {
		set := meta.CreateElement("ContainerSet")
		for _, name := range def.SequenceContainers.Keys() {
			sc, _ := def.SequenceContainers.Get(name)
			if err := serializeSequenceContainer(set, sc); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}

// parameterTypeRefName finds the name a ParameterType was registered under,
// since Parameter only holds the resolved ParameterType value.
func parameterTypeRefName(def *Definition, pt parameters.ParameterType) string {
	for _, name := range def.ParameterTypes.Keys() {
		candidate, _ := def.ParameterTypes.Get(name)
		if candidate == pt {
			return name
		}
	}
	return ""
}

func serializeSequenceContainer(set *etree.Element, sc *containers.SequenceContainer) error {
	el := set.CreateElement("SequenceContainer")
	el.CreateAttr("name", sc.Name)
	if sc.Abstract {
		el.CreateAttr("abstract", "true")
	}
	if sc.ShortDescription != "" {
		el.CreateAttr("shortDescription", sc.ShortDescription)
	}
	if sc.LongDescription != "" {
		el.CreateElement("LongDescription").SetText(sc.LongDescription)
	}

	if sc.HasBase() {
		base := el.CreateElement("BaseContainer")
		base.CreateAttr("containerRef", sc.BaseContainerName)
		if sc.RestrictionCriteria != nil {
			rc := base.CreateElement("RestrictionCriteria")
			if err := serializeMatchCriteria(rc, sc.RestrictionCriteria); err != nil {
				return err
			}
		}
	}

	if len(sc.Entries) > 0 {
		entryList := el.CreateElement("EntryList")
		for _, entry := range sc.Entries {
			switch entry.Kind {
			case containers.ParameterEntry:
				entryList.CreateElement("ParameterRefEntry").CreateAttr("parameterRef", entry.Name)
			case containers.ContainerEntry:
				entryList.CreateElement("ContainerRefEntry").CreateAttr("containerRef", entry.Name)
			}
		}
	}

	return nil
}

func serializeMatchCriteria(parent *etree.Element, mc comparisons.MatchCriteria) error {
	switch v := mc.(type) {
	case comparisons.Comparison:
		serializeComparison(parent, v)
	case comparisons.Condition:
		serializeCondition(parent, v)
	case comparisons.BooleanExpression:
		tag := "ANDedConditions"
		if v.Kind == comparisons.Ored {
			tag = "ORedConditions"
		}
		group := parent.CreateElement(tag)
		for _, child := range v.Children {
			if err := serializeMatchCriteria(group, child); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unrecognized match criteria implementation %T", errs.ErrInvalidXtce, mc)
	}
	return nil
}

func serializeComparison(parent *etree.Element, c comparisons.Comparison) {
	el := parent.CreateElement("Comparison")
	el.CreateAttr("parameterRef", c.Left.Name)
	el.CreateAttr("value", c.Required())
	el.CreateAttr("comparisonOperator", operatorText(c.Operator))
	el.CreateAttr("useCalibratedValue", strconv.FormatBool(c.Left.UseCalibrated))
}

func serializeCondition(parent *etree.Element, c comparisons.Condition) {
	el := parent.CreateElement("Condition")
	el.CreateAttr("comparisonOperator", operatorText(c.Operator))
	serializeOperand(el, c.Left)
	serializeOperand(el, c.Right)
}

func serializeOperand(parent *etree.Element, op comparisons.Operand) {
	if op.IsLiteral {
		parent.CreateElement("Value").SetText(op.Literal)
		return
	}
	ref := parent.CreateElement("ParameterInstanceRef")
	ref.CreateAttr("parameterRef", op.Name)
	ref.CreateAttr("useCalibratedValue", strconv.FormatBool(op.UseCalibrated))
}

func operatorText(op comparisons.Operator) string {
	switch op {
	case comparisons.Eq:
		return "=="
	case comparisons.Ne:
		return "!="
	case comparisons.Lt:
		return "<"
	case comparisons.Gt:
		return ">"
	case comparisons.Le:
		return "<="
	case comparisons.Ge:
		return ">="
	default:
		return "=="
	}
}

func serializeParameterType(set *etree.Element, name string, pt parameters.ParameterType) error {
	switch v := pt.(type) {
	case parameters.StringParameterType:
		el := set.CreateElement("StringParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		return serializeEncoding(el, v.Encoding)

	case parameters.IntegerParameterType:
		el := set.CreateElement("IntegerParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		return serializeEncoding(el, v.Encoding)

	case parameters.FloatParameterType:
		el := set.CreateElement("FloatParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		return serializeEncoding(el, v.Encoding)

	case parameters.BinaryParameterType:
		el := set.CreateElement("BinaryParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		return serializeEncoding(el, v.Encoding)

	case parameters.BooleanParameterType:
		el := set.CreateElement("BooleanParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		return serializeEncoding(el, v.Encoding)

	case parameters.EnumeratedParameterType:
		el := set.CreateElement("EnumeratedParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		if err := serializeEncoding(el, v.Encoding); err != nil {
			return err
		}
		list := el.CreateElement("EnumerationList")
		for key, label := range v.Mapping {
			e := list.CreateElement("Enumeration")
			e.CreateAttr("value", rawKeyValue(key))
			e.CreateAttr("label", label)
		}
		return nil

	case parameters.AbsoluteTimeParameterType:
		el := set.CreateElement("AbsoluteTimeParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		if err := serializeEncoding(el, v.Encoding); err != nil {
			return err
		}
		if v.Epoch != nil || v.OffsetFrom != "" {
			refTime := el.CreateElement("ReferenceTime")
			if v.Epoch != nil {
				text := string(v.Epoch.Named)
				if text == "" {
					text = v.Epoch.Literal
				}
				refTime.CreateElement("Epoch").SetText(text)
			}
			if v.OffsetFrom != "" {
				refTime.CreateElement("OffsetFrom").CreateAttr("parameterRef", v.OffsetFrom)
			}
		}
		return nil

	case parameters.RelativeTimeParameterType:
		el := set.CreateElement("RelativeTimeParameterType")
		el.CreateAttr("name", name)
		serializeUnit(el, v.UnitLabel)
		if err := serializeEncoding(el, v.Encoding); err != nil {
			return err
		}
		if v.OffsetFrom != "" {
			refTime := el.CreateElement("ReferenceTime")
			refTime.CreateElement("OffsetFrom").CreateAttr("parameterRef", v.OffsetFrom)
		}
		return nil

	default:
		return fmt.Errorf("%w: unrecognized parameter type implementation %T", errs.ErrInvalidXtce, pt)
	}
}

// rawKeyValue strips the "i:" tag types.EnumeratedParameterType.rawKey adds
// to plain integer keys, since enumerations are always raw-integer keyed in
// this document model.
func rawKeyValue(key string) string {
	if len(key) > 2 && key[:2] == "i:" {
		return key[2:]
	}
	return key
}

func serializeUnit(el *etree.Element, unit string) {
	if unit == "" {
		return
	}
	el.CreateElement("UnitSet").CreateElement("Unit").CreateAttr("Units", unit)
}

func serializeEncoding(parent *etree.Element, enc encodings.DataEncoding) error {
	switch v := enc.(type) {
	case encodings.IntegerDataEncoding:
		el := parent.CreateElement("IntegerDataEncoding")
		el.CreateAttr("sizeInBits", strconv.Itoa(v.SizeInBits))
		el.CreateAttr("encoding", integerKindText(v.Kind))
		el.CreateAttr("byteOrder", byteOrderText(v.ByteOrder))
		return serializeCalibratorSet(el, v.Calibrators)

	case encodings.FloatDataEncoding:
		el := parent.CreateElement("FloatDataEncoding")
		el.CreateAttr("sizeInBits", strconv.Itoa(v.SizeInBits))
		el.CreateAttr("encoding", floatKindText(v.Kind))
		el.CreateAttr("byteOrder", byteOrderText(v.ByteOrder))
		return serializeCalibratorSet(el, v.Calibrators)

	case encodings.StringDataEncoding:
		el := parent.CreateElement("StringDataEncoding")
		el.CreateAttr("encoding", charsetText(v.Charset))
		el.CreateAttr("byteOrder", byteOrderText(v.ByteOrder))
		serializeRawLengthSpec(el, v.RawLength)
		serializeDerivedLengthSpec(el, v.Derived)
		return nil

	case encodings.BinaryDataEncoding:
		el := parent.CreateElement("BinaryDataEncoding")
		el.CreateAttr("useCalibratedValue", strconv.FormatBool(v.UseCalibratedSize))
		serializeRawLengthSpec(el, v.RawLength)
		return nil

	default:
		return fmt.Errorf("%w: unrecognized data encoding implementation %T", errs.ErrInvalidXtce, enc)
	}
}

func integerKindText(k encodings.IntegerKind) string {
	switch k {
	case encodings.Signed:
		return "signed"
	case encodings.TwosComplement:
		return "twosComplement"
	default:
		return "unsigned"
	}
}

func floatKindText(k encodings.FloatKind) string {
	if k == encodings.MILSTD1750A {
		return "MILSTD_1750A"
	}
	return "IEEE754"
}

func byteOrderText(b encodings.ByteOrder) string {
	if b == encodings.LeastSignificantByteFirst {
		return "leastSignificantByteFirst"
	}
	return "mostSignificantByteFirst"
}

var charsetNames = map[encodings.StringCharset]string{
	encodings.USASCII:     "US-ASCII",
	encodings.ISO88591:    "ISO-8859-1",
	encodings.Windows1252: "Windows-1252",
	encodings.UTF8:        "UTF-8",
	encodings.UTF16:       "UTF-16",
	encodings.UTF16LE:     "UTF-16LE",
	encodings.UTF16BE:     "UTF-16BE",
	encodings.UTF32:       "UTF-32",
	encodings.UTF32LE:     "UTF-32LE",
	encodings.UTF32BE:     "UTF-32BE",
}

func charsetText(c encodings.StringCharset) string {
	if name, ok := charsetNames[c]; ok {
		return name
	}
	return "US-ASCII"
}

func serializeRawLengthSpec(parent *etree.Element, spec encodings.RawLengthSpec) {
	sizeEl := parent.CreateElement("SizeInBits")

	switch {
	case spec.Dynamic != nil:
		dyn := sizeEl.CreateElement("DynamicValue")
		ref := dyn.CreateElement("ParameterInstanceRef")
		ref.CreateAttr("parameterRef", spec.Dynamic.ParamName)
		ref.CreateAttr("useCalibratedValue", strconv.FormatBool(spec.Dynamic.UseCalibrated))
		if spec.Dynamic.HasAdjuster {
			adj := dyn.CreateElement("LinearAdjustment")
			adj.CreateAttr("slope", strconv.Itoa(spec.Dynamic.Slope))
			adj.CreateAttr("intercept", strconv.Itoa(spec.Dynamic.Intercept))
		}

	case len(spec.DiscreteLookup) > 0:
		list := sizeEl.CreateElement("DiscreteLookupList")
		for _, lookup := range spec.DiscreteLookup {
			entry := list.CreateElement("DiscreteLookup")
			entry.CreateAttr("value", strconv.Itoa(lookup.Value))
			_ = serializeMatchCriteria(entry, lookup.Criteria)
		}

	default:
		fixed := sizeEl.CreateElement("Fixed")
		fixed.CreateElement("FixedValue").SetText(strconv.Itoa(spec.FixedBits))
	}
}

func serializeDerivedLengthSpec(parent *etree.Element, spec encodings.DerivedLengthSpec) {
	if spec.LeadingLengthBits > 0 {
		ls := parent.CreateElement("LeadingSize")
		ls.CreateAttr("sizeInBitsOfSizeTag", strconv.Itoa(spec.LeadingLengthBits))
		return
	}
	if len(spec.TerminationChar) > 0 {
		tc := parent.CreateElement("TerminationChar")
		tc.SetText(bytesToHex(spec.TerminationChar))
	}
}

func bytesToHex(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0x0f]
	}
	return string(out)
}

func serializeCalibratorSet(parent *etree.Element, set calibrators.CalibratorSet) error {
	if set.Default != nil {
		def := parent.CreateElement("DefaultCalibrator")
		if err := serializeCalibratorChild(def, set.Default); err != nil {
			return err
		}
	}

	if len(set.Contexts) > 0 {
		list := parent.CreateElement("ContextCalibratorList")
		for _, ctx := range set.Contexts {
			ctxEl := list.CreateElement("ContextCalibrator")
			match := ctxEl.CreateElement("ContextMatch")
			if err := serializeMatchCriteria(match, ctx.Criteria); err != nil {
				return err
			}
			cal := ctxEl.CreateElement("Calibrator")
			if err := serializeCalibratorChild(cal, ctx.Inner); err != nil {
				return err
			}
		}
	}

	return nil
}

func serializeCalibratorChild(parent *etree.Element, cal calibrators.Calibrator) error {
	switch v := cal.(type) {
	case calibrators.PolynomialCalibrator:
		el := parent.CreateElement("PolynomialCalibrator")
		for _, term := range v.Terms {
			t := el.CreateElement("Term")
			t.CreateAttr("coefficient", strconv.FormatFloat(term.Coefficient, 'g', -1, 64))
			t.CreateAttr("exponent", strconv.FormatFloat(term.Exponent, 'g', -1, 64))
		}
		return nil

	case calibrators.SplineCalibrator:
		el := parent.CreateElement("SplineCalibrator")
		el.CreateAttr("order", strconv.Itoa(v.Order))
		el.CreateAttr("extrapolate", strconv.FormatBool(v.Extrapolate))
		for _, p := range v.Points {
			sp := el.CreateElement("SplinePoint")
			sp.CreateAttr("raw", strconv.FormatFloat(p.Raw, 'g', -1, 64))
			sp.CreateAttr("calibrated", strconv.FormatFloat(p.Calibrated, 'g', -1, 64))
		}
		return nil

	default:
		return fmt.Errorf("%w: unrecognized calibrator implementation %T", errs.ErrInvalidXtce, cal)
	}
}
