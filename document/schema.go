package document

import "fmt"

// Model names as they appear in scoped ids.
const (
	ModelScene       = "Scene"
	ModelKeyPointSet = "KeyPointSet"
	ModelVector2     = "Vector2"
	ModelMagicPoint  = "MagicPointThingy"
	ModelShapePoint  = "ShapePoint"
	ModelShape       = "Shape"
	ModelShapeStyle  = "ShapeStyle"
)

// Kind is the value shape of a record field.
type Kind int

const (
	Number Kind = iota
	Bool
	String
	StringList
	RefOne
	RefList
	RefMap
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Bool:
		return "bool"
	case String:
		return "string"
	case StringList:
		return "string list"
	case RefOne:
		return "ref"
	case RefList:
		return "ref list"
	case RefMap:
		return "ref map"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field describes one record field. Target names the referenced model for
// reference kinds.
type Field struct {
	Name     string
	Kind     Kind
	Target   string
	Optional bool
}

// Model describes the record layout of one entity type.
type Model struct {
	Name   string
	Fields []Field
}

// models is the registration table. Every entity type written to a graph
// has exactly one entry.
var models = []Model{
	{
		Name: ModelScene,
		Fields: []Field{
			{Name: "width", Kind: Number},
			{Name: "height", Kind: Number},
			{Name: "keyPointSet", Kind: RefOne, Target: ModelKeyPointSet},
			{Name: "shapes", Kind: RefList, Target: ModelShape},
		},
	},
	{
		Name: ModelKeyPointSet,
		Fields: []Field{
			{Name: "keyPointsById", Kind: RefMap, Target: ModelVector2},
			{Name: "keyPointOrder", Kind: StringList, Optional: true},
		},
	},
	{
		Name: ModelVector2,
		Fields: []Field{
			{Name: "x", Kind: Number},
			{Name: "y", Kind: Number},
		},
	},
	{
		Name: ModelMagicPoint,
		Fields: []Field{
			{Name: "keyPointSet", Kind: RefOne, Target: ModelKeyPointSet},
			{Name: "pointsByKeyPointId", Kind: RefMap, Target: ModelVector2},
		},
	},
	{
		Name: ModelShapePoint,
		Fields: []Field{
			{Name: "areControlPointsMirrored", Kind: Bool},
			{Name: "originPoint", Kind: RefOne, Target: ModelMagicPoint},
			{Name: "_leadingControlPointRelative", Kind: RefOne, Target: ModelMagicPoint, Optional: true},
			{Name: "_followingControlPointRelative", Kind: RefOne, Target: ModelMagicPoint, Optional: true},
		},
	},
	{
		Name: ModelShape,
		Fields: []Field{
			{Name: "isClosed", Kind: Bool},
			{Name: "style", Kind: RefOne, Target: ModelShapeStyle, Optional: true},
			{Name: "points", Kind: RefList, Target: ModelShapePoint},
		},
	},
	{
		Name: ModelShapeStyle,
		Fields: []Field{
			{Name: "hasFill", Kind: Bool},
			{Name: "hasStroke", Kind: Bool},
			{Name: "strokeWidth", Kind: Number},
			{Name: "strokeColor", Kind: String},
			{Name: "fillColor", Kind: String},
		},
	},
}

var modelsByName = func() map[string]*Model {
	m := make(map[string]*Model, len(models))
	for i := range models {
		m[models[i].Name] = &models[i]
	}
	return m
}()

// Models returns the registered models.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// LookupModel returns the model registered under name.
func LookupModel(name string) (Model, bool) {
	m, ok := modelsByName[name]
	if !ok {
		return Model{}, false
	}
	return *m, true
}

// Validate checks that rec has every field of the model with the right
// value shape, and that every reference names an object of the target model.
// Fields not described by the model are ignored.
func (m *Model) Validate(rec Record) error {
	if rec == nil {
		return fmt.Errorf("%w: %s record is null", ErrBadRecord, m.Name)
	}
	for _, f := range m.Fields {
		if f.Optional {
			if v, ok := rec[f.Name]; !ok || v == nil {
				continue
			}
		}
		if err := f.check(rec); err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
	}
	return nil
}

func (f Field) check(rec Record) error {
	var refs []string
	switch f.Kind {
	case Number:
		_, err := rec.number(f.Name)
		return err
	case Bool:
		_, err := rec.boolean(f.Name)
		return err
	case String:
		_, err := rec.str(f.Name)
		return err
	case StringList:
		_, err := rec.strings(f.Name)
		return err
	case RefOne:
		id, ok, err := rec.ref(f.Name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: field %q is null", ErrBadRecord, f.Name)
		}
		refs = []string{id}
	case RefList:
		ids, err := rec.strings(f.Name)
		if err != nil {
			return err
		}
		refs = ids
	case RefMap:
		byKey, err := rec.refMap(f.Name)
		if err != nil {
			return err
		}
		for _, id := range byKey {
			refs = append(refs, id)
		}
	}
	for _, id := range refs {
		model, _, err := ParseScopedID(id)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
		if model != f.Target {
			return fmt.Errorf("%w: field %q references %s, want %s", ErrUnknownModel, f.Name, model, f.Target)
		}
	}
	return nil
}
