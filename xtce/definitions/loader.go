package definitions

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/satparse/spacepacket/errs"
	"github.com/satparse/spacepacket/internal/options"
	"github.com/satparse/spacepacket/xtce/containers"
	"github.com/satparse/spacepacket/xtce/parameters"
)

// loadConfig carries the loader's optional diagnostics sink. onWarning
// defaults to a no-op so callers that pass no Option see no behavior change.
type loadConfig struct {
	onWarning func(kind, detail string)
}

// Option configures a Load call.
type Option = options.Option[*loadConfig]

// WithWarningHandler routes non-fatal loader diagnostics (legacy encoding
// alias deprecation notices) to fn, the same func(kind, detail string) shape
// used by framer.WithWarningHandler.
func WithWarningHandler(fn func(kind, detail string)) Option {
	return options.NoError(func(c *loadConfig) {
		c.onWarning = fn
	})
}

// Load parses an XTCE document from r into a Definition, running the three
// passes spec §4.7 describes: parameter types, parameters, then sequence
// containers with back-populated inheritors.
func Load(r io.Reader, opts ...Option) (*Definition, error) {
	cfg := &loadConfig{onWarning: func(string, string) {}}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidXtce, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", errs.ErrInvalidXtce)
	}

	def := New()
	def.Metadata.SpaceSystemName = root.SelectAttrValue("name", "")
	def.Metadata.NamespaceURI = rootNamespace(root)

	if header := root.SelectElement("Header"); header != nil {
		def.Metadata.Date = header.SelectAttrValue("date", "")
		def.Metadata.Author = header.SelectAttrValue("author", "")
		def.Metadata.SchemaVersion = header.SelectAttrValue("version", "")
	}

	meta := root.SelectElement("TelemetryMetaData")
	if meta == nil {
		return nil, fmt.Errorf("%w: missing TelemetryMetaData", errs.ErrMissingElement)
	}

	if err := loadParameterTypes(meta, def, cfg.onWarning); err != nil {
		return nil, err
	}
	if err := loadParameters(meta, def); err != nil {
		return nil, err
	}
	if err := loadContainers(meta, def); err != nil {
		return nil, err
	}
	backPopulateInheritors(def)

	return def, nil
}

func rootNamespace(root *etree.Element) string {
	for _, attr := range root.Attr {
		if attr.Key == "xmlns" || (attr.Space == "xmlns" && attr.Key == "") {
			return attr.Value
		}
	}
	return DefaultNamespaceURI
}

func loadParameterTypes(meta *etree.Element, def *Definition, warn func(kind, detail string)) error {
	set := meta.SelectElement("ParameterTypeSet")
	if set == nil {
		return nil
	}

	for _, el := range set.ChildElements() {
		name := el.SelectAttrValue("name", "")
		if name == "" {
			return fmt.Errorf("%w: parameter type missing name attribute", errs.ErrInvalidXtce)
		}
		if def.ParameterTypes.Has(name) {
			return fmt.Errorf("%w: parameter type %q", errs.ErrDuplicateName, name)
		}

		pt, err := parseParameterType(el, warn)
		if err != nil {
			return fmt.Errorf("parameter type %q: %w", name, err)
		}

		def.ParameterTypes.Set(name, pt)
	}

	return nil
}

func loadParameters(meta *etree.Element, def *Definition) error {
	set := meta.SelectElement("ParameterSet")
	if set == nil {
		return nil
	}

	for _, el := range set.SelectElements("Parameter") {
		name := el.SelectAttrValue("name", "")
		if name == "" {
			return fmt.Errorf("%w: Parameter missing name attribute", errs.ErrInvalidXtce)
		}
		if def.Parameters.Has(name) {
			return fmt.Errorf("%w: parameter %q", errs.ErrDuplicateName, name)
		}

		typeRef := el.SelectAttrValue("parameterTypeRef", "")
		pt, ok := def.ParameterTypes.Get(typeRef)
		if !ok {
			return fmt.Errorf("%w: parameter %q references unknown type %q", errs.ErrUnresolvedRef, name, typeRef)
		}

		param := parameters.Parameter{
			Name:             name,
			Type:             pt,
			ShortDescription: el.SelectAttrValue("shortDescription", ""),
		}
		if ld := el.SelectElement("LongDescription"); ld != nil {
			param.LongDescription = ld.Text()
		}

		def.Parameters.Set(name, param)
	}

	return nil
}

func loadContainers(meta *etree.Element, def *Definition) error {
	set := meta.SelectElement("ContainerSet")
	if set == nil {
		return nil
	}

	for _, el := range set.SelectElements("SequenceContainer") {
		name := el.SelectAttrValue("name", "")
		if name == "" {
			return fmt.Errorf("%w: SequenceContainer missing name attribute", errs.ErrInvalidXtce)
		}
		if def.SequenceContainers.Has(name) {
			return fmt.Errorf("%w: sequence container %q", errs.ErrDuplicateName, name)
		}

		sc, err := parseSequenceContainer(el, def)
		if err != nil {
			return fmt.Errorf("container %q: %w", name, err)
		}

		def.SequenceContainers.Set(name, sc)
	}

	return nil
}

func parseSequenceContainer(el *etree.Element, def *Definition) (*containers.SequenceContainer, error) {
	sc := &containers.SequenceContainer{
		Name:     el.SelectAttrValue("name", ""),
		Abstract: parseBool(el.SelectAttrValue("abstract", "false"), false),
	}

	if base := el.SelectElement("BaseContainer"); base != nil {
		sc.BaseContainerName = base.SelectAttrValue("containerRef", "")

		if rc := base.SelectElement("RestrictionCriteria"); rc != nil {
			crit, err := parseBooleanExpression(rc)
			if err != nil {
				return nil, err
			}
			sc.RestrictionCriteria = crit
		}
	}

	if entryList := el.SelectElement("EntryList"); entryList != nil {
		for _, e := range entryList.ChildElements() {
			switch e.Tag {
			case "ParameterRefEntry":
				sc.Entries = append(sc.Entries, containers.Entry{
					Kind: containers.ParameterEntry,
					Name: e.SelectAttrValue("parameterRef", ""),
				})
			case "ContainerRefEntry":
				sc.Entries = append(sc.Entries, containers.Entry{
					Kind: containers.ContainerEntry,
					Name: e.SelectAttrValue("containerRef", ""),
				})
			default:
				return nil, fmt.Errorf("%w: unrecognized entry list element %q", errs.ErrInvalidXtce, e.Tag)
			}
		}
	}

	if ld := el.SelectElement("LongDescription"); ld != nil {
		sc.LongDescription = ld.Text()
	}
	sc.ShortDescription = el.SelectAttrValue("shortDescription", "")

	return sc, nil
}

// backPopulateInheritors is the loader's second sub-pass over containers
// (spec §4.7, §9): every container whose BaseContainerName names another
// container is appended to that container's Inheritors list.
func backPopulateInheritors(def *Definition) {
	for _, name := range def.SequenceContainers.Keys() {
		sc, _ := def.SequenceContainers.Get(name)
		if !sc.HasBase() {
			continue
		}
		if base, ok := def.SequenceContainers.Get(sc.BaseContainerName); ok {
			base.Inheritors = append(base.Inheritors, sc.Name)
		}
	}
}
