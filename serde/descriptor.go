package serde

// AnonymousFieldName is the serial name of the anonymous descriptor. It is
// never emitted literally by a backend.
const AnonymousFieldName = "ANONYMOUS_FIELD"

// AnonymousObjectName is the fallback serial name of an object descriptor
// built without one. Backends must treat it as the absence of a containing
// element name, never as a name to emit.
const AnonymousObjectName = "ANONYMOUS_OBJECT"

// AnonymousDescriptor is the descriptor used for nameless entities, for
// instance the root value of a JSON document.
var AnonymousDescriptor = NewFieldDescriptor(AnonymousFieldName, KindStruct)

// SdkFieldDescriptor describes one member of a structured type: its wire
// name, its kind, the index assigned by the owning object descriptor and the
// format-specific traits. A descriptor is immutable once built and is meant
// to be declared as a process-wide constant by generated code, shared by
// every (de)serialization of the type.
type SdkFieldDescriptor struct {
	serialName string
	kind       SerialKind
	index      int
	traits     []FieldTrait
}

// NewFieldDescriptor creates a descriptor with an index of zero. The index
// is only meaningful once the descriptor is registered in an object builder,
// which rewrites it to the registration position.
func NewFieldDescriptor(name string, kind SerialKind, traits ...FieldTrait) SdkFieldDescriptor {
	return SdkFieldDescriptor{
		serialName: name,
		kind:       kind,
		traits:     traits,
	}
}

// SerialName returns the wire-level name of the field.
func (d SdkFieldDescriptor) SerialName() string {
	return d.serialName
}

// Kind returns the shape of the field.
func (d SdkFieldDescriptor) Kind() SerialKind {
	return d.kind
}

// Index returns the position of the field in the owning object descriptor.
func (d SdkFieldDescriptor) Index() int {
	return d.index
}

// FindTrait returns the trait with the given tag, or false when the
// descriptor does not carry one.
func (d SdkFieldDescriptor) FindTrait(kind TraitKind) (FieldTrait, bool) {
	for _, t := range d.traits {
		if t.TraitKind() == kind {
			return t, true
		}
	}

	return nil, false
}

// Traits returns all the attached traits in declaration order. The returned
// slice is shared and must not be modified.
func (d SdkFieldDescriptor) Traits() []FieldTrait {
	return d.traits
}

// ExpectTrait returns the trait with the given tag, or a configuration error
// naming the field when the trait is absent. It is meant for generated code
// that relies on the trait being declared.
func (d SdkFieldDescriptor) ExpectTrait(kind TraitKind) (FieldTrait, error) {
	t, found := d.FindTrait(kind)
	if !found {
		return nil, NewConfigError("expected trait %d on field '%s' but none is attached",
			kind, d.serialName)
	}

	return t, nil
}

// HasTrait returns true when a trait with the given tag is attached.
func (d SdkFieldDescriptor) HasTrait(kind TraitKind) bool {
	_, found := d.FindTrait(kind)
	return found
}

// SdkObjectDescriptor is the descriptor of a structured type. It is a struct
// field descriptor that additionally owns the ordered list of its members.
// The member order fixes the index contract consumed by
// FieldIterator.FindNextFieldIndex.
type SdkObjectDescriptor struct {
	SdkFieldDescriptor

	fields []SdkFieldDescriptor
}

// Fields returns the members in registration order. The returned slice is
// shared and must not be modified.
func (d SdkObjectDescriptor) Fields() []SdkFieldDescriptor {
	return d.fields
}

// NumFields returns the number of members.
func (d SdkObjectDescriptor) NumFields() int {
	return len(d.fields)
}

// IsAnonymous returns true when the descriptor was built without a serial
// name, in which case a backend must not emit a containing element.
func (d SdkObjectDescriptor) IsAnonymous() bool {
	return d.serialName == AnonymousObjectName
}

// ObjectBuilder builds an object descriptor. It accumulates the member
// descriptors and produces fully-immutable copies at build time, with the
// index of each member rewritten to its zero-based registration position.
type ObjectBuilder struct {
	serialName string
	traits     []FieldTrait
	fields     []SdkFieldDescriptor
}

// NewObjectBuilder returns an empty builder.
func NewObjectBuilder() *ObjectBuilder {
	return &ObjectBuilder{}
}

// SetSerialName sets the wire-level name of the structured type itself, used
// by formats that wrap the members in a named element.
func (b *ObjectBuilder) SetSerialName(name string) *ObjectBuilder {
	b.serialName = name
	return b
}

// AddTrait attaches a trait to the structured type itself.
func (b *ObjectBuilder) AddTrait(t FieldTrait) *ObjectBuilder {
	b.traits = append(b.traits, t)
	return b
}

// Field registers a member. The index recorded on the given descriptor is
// ignored; the build assigns the registration position.
func (b *ObjectBuilder) Field(d SdkFieldDescriptor) *ObjectBuilder {
	b.fields = append(b.fields, d)
	return b
}

// Build returns the immutable object descriptor. It copies the registered
// members so that the builder can be reused and the result is safe to cache
// as a process-wide constant.
func (b *ObjectBuilder) Build() SdkObjectDescriptor {
	name := b.serialName
	if name == "" {
		name = AnonymousObjectName
	}

	fields := make([]SdkFieldDescriptor, len(b.fields))
	for i, f := range b.fields {
		f.index = i
		fields[i] = f
	}

	return SdkObjectDescriptor{
		SdkFieldDescriptor: SdkFieldDescriptor{
			serialName: name,
			kind:       KindStruct,
			traits:     append([]FieldTrait{}, b.traits...),
		},
		fields: fields,
	}
}
