package definitions

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/xtce/encodings"
	"github.com/satparse/spacepacket/xtce/parameters"
)

func parseUnit(el *etree.Element) string {
	unitSet := el.SelectElement("UnitSet")
	if unitSet == nil {
		return ""
	}
	unit := unitSet.SelectElement("Unit")
	if unit == nil {
		return ""
	}
	return unit.SelectAttrValue("Units", "")
}

// parseParameterType dispatches on el's local tag name (one of the eight
// XTCE ParameterType elements, spec §4.7 pass 1). warn receives non-fatal
// loader diagnostics (legacy encoding alias deprecation notices).
func parseParameterType(el *etree.Element, warn func(kind, detail string)) (parameters.ParameterType, error) {
	unit := parseUnit(el)

	switch el.Tag {
	case "ArrayParameterType", "AggregateParameterType":
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedXtce, el.Tag)

	case "StringParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		return parameters.StringParameterType{UnitLabel: unit, Encoding: enc}, nil

	case "IntegerParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		return parameters.IntegerParameterType{UnitLabel: unit, Encoding: enc}, nil

	case "FloatParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		return parameters.FloatParameterType{UnitLabel: unit, Encoding: enc}, nil

	case "BinaryParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		return parameters.BinaryParameterType{UnitLabel: unit, Encoding: enc}, nil

	case "BooleanParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		return parameters.BooleanParameterType{UnitLabel: unit, Encoding: enc, Warn: warn}, nil

	case "EnumeratedParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		mapping := make(map[string]string)
		if list := el.SelectElement("EnumerationList"); list != nil {
			for _, e := range list.SelectElements("Enumeration") {
				value := e.SelectAttrValue("value", "")
				label := e.SelectAttrValue("label", "")
				mapping["i:"+value] = label
			}
		}
		return parameters.EnumeratedParameterType{UnitLabel: unit, Encoding: enc, Mapping: mapping}, nil

	case "AbsoluteTimeParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		pt := parameters.AbsoluteTimeParameterType{UnitLabel: unit, Encoding: enc}
		if refTime := el.SelectElement("ReferenceTime"); refTime != nil {
			if epochEl := refTime.SelectElement("Epoch"); epochEl != nil {
				e := parseEpoch(epochEl)
				pt.Epoch = &e
			}
			if offFrom := refTime.SelectElement("OffsetFrom"); offFrom != nil {
				pt.OffsetFrom = offFrom.SelectAttrValue("parameterRef", "")
			}
		}
		return pt, nil

	case "RelativeTimeParameterType":
		enc, err := parseEncodingOf(el, warn)
		if err != nil {
			return nil, err
		}
		pt := parameters.RelativeTimeParameterType{UnitLabel: unit, Encoding: enc}
		if refTime := el.SelectElement("ReferenceTime"); refTime != nil {
			if offFrom := refTime.SelectElement("OffsetFrom"); offFrom != nil {
				pt.OffsetFrom = offFrom.SelectAttrValue("parameterRef", "")
			}
		}
		return pt, nil

	default:
		return nil, fmt.Errorf("%w: unrecognized parameter type element %q", errs.ErrUnknownParamType, el.Tag)
	}
}

func parseEncodingOf(el *etree.Element, warn func(kind, detail string)) (encodings.DataEncoding, error) {
	encEl := findEncodingElement(el)
	if encEl == nil {
		return nil, fmt.Errorf("%w: %s has no data encoding element", errs.ErrMissingElement, el.Tag)
	}
	return parseDataEncoding(encEl, warn)
}

func parseEpoch(el *etree.Element) parameters.Epoch {
	text := el.Text()
	switch text {
	case string(parameters.EpochTAI), string(parameters.EpochJ2000), string(parameters.EpochUnix),
		string(parameters.EpochPosix), string(parameters.EpochGPS):
		return parameters.Epoch{Named: parameters.NamedEpoch(text)}
	default:
		return parameters.Epoch{Literal: text}
	}
}
