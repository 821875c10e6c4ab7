// Package containers holds XTCE's SequenceContainer model: an ordered
// entry list of parameter and nested-container references, plus the
// inheritance metadata (base container, restriction criteria, computed
// inheritors) the container parser walks to resolve packet polymorphism
// (spec §3, §4.6).
package containers
