package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func field(typ *TypeRef, name string, def Literal) *Field {
	return &Field{Declaration{Name: name, Type: typ, Default: def}}
}

func param(typ *TypeRef, name string) *Parameter {
	return &Parameter{Declaration{Name: name, Type: typ}}
}

func TestEmptyModuleString(t *testing.T) {
	m := &Module{Name: "Empty"}
	assert.Equal(t, "module Empty {};", m.String())
}

func TestModuleString(t *testing.T) {
	m := &Module{
		Name: "PetStore",
		Definitions: []Definition{
			&Struct{Name: "Pet", Fields: []*Field{
				field(Type("int64"), "id", nil),
				field(Type("string"), "tag", &NullLiteral{}),
			}},
			&Operation{
				Name:        "findPetById",
				Type:        Type("Pet"),
				Parameters:  []*Parameter{param(Type("int64"), "id")},
				Description: &Description{Content: Quote("Returns a pet")},
			},
			&Operation{Name: "findPets", Type: Type("List", Type("Pet"))},
		},
	}

	expected := `module PetStore {
    struct Pet {
        int64 id;
        string tag = null;
    };
    Pet findPetById(int64 id) {
        desc "Returns a pet";
    };
    List<Pet> findPets();
};`
	assert.Equal(t, expected, m.String())
}

func TestAnnotationString(t *testing.T) {
	a := &Annotation{Name: "cache", Args: []Literal{Quote("30"), &NullLiteral{}}}
	assert.Equal(t, `@cache("30", null)`, a.String())
	assert.Equal(t, "@service", (&Annotation{Name: "service"}).String())

	m := &Module{Name: "M", Annotations: []*Annotation{{Name: "service"}}}
	assert.Equal(t, "@service\nmodule M {};", m.String())
}

func TestTypeRefString(t *testing.T) {
	typ := Type("Map", Type("string"), Type("List", Type("Pet")))
	assert.Equal(t, "Map<string, List<Pet>>", typ.String())
}

func TestStringLiteralValue(t *testing.T) {
	lit := Quote("hello")
	assert.Equal(t, `"hello"`, lit.String())
	assert.Equal(t, "hello", lit.Value())
}

func TestCodeString(t *testing.T) {
	fn := &Function{
		Name:    "Pet_toMap",
		Params:  []*Parameter{param(Type("Pet"), "pet")},
		Returns: MapType(),
		Body: []Stmt{
			&If{Cond: &IsNull{X: Name("pet")}, Then: []Stmt{&Return{Value: &NullLiteral{}}}},
			&Declare{Name: "map", Type: MapType(), Value: &NewMap{}},
			&Put{Map: Name("map"), Key: "id", Value: &FieldOf{X: Name("pet"), Name: "id"}},
			&Return{Value: Name("map")},
		},
	}

	expected := `fn $map Pet_toMap(Pet pet) {
    if (pet == null) {
        return null;
    }
    $map map = {};
    map["id"] = pet.id;
    return map;
}`
	assert.Equal(t, expected, fn.String())
}
