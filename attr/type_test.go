package attr

import "testing"

func TestSubtype(t *testing.T) {
	animal, dog := declareAnimalTypes()
	theme := NewEnum("Theme", EnumValue{Label: "On", Value: true})

	tests := []struct {
		name      string
		t         Type
		candidate Type
		want      bool
	}{
		{"same primitive", String, String, true},
		{"different primitives", String, Bool, false},
		{"anything matches any", ObjectOf(dog), Any, true},
		{"any does not match primitives", Any, String, false},
		{"list matches wildcard list", ListOf(String), AnyList, true},
		{"wildcard list is not a string list", AnyList, ListOf(String), false},
		{"list element covariance", ListOf(ObjectOf(dog)), ListOf(ObjectOf(animal)), true},
		{"derived object matches base", ObjectOf(dog), ObjectOf(animal), true},
		{"base object does not match derived", ObjectOf(animal), ObjectOf(dog), false},
		{"object matches wildcard object", ObjectOf(animal), AnyObject, true},
		{"enum matches wildcard enum", EnumOf(theme), AnyEnum, true},
		{"map matches wildcard map", MapOf(String, Bool), AnyMap, true},
		{"map value mismatch", MapOf(String, Bool), MapOf(String, Int), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtype(tt.t, tt.candidate); got != tt.want {
				t.Errorf("Subtype(%s, %s) = %v, want %v", tt.t, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestSpecificityOrdering(t *testing.T) {
	animal, dog := declareAnimalTypes()

	// Deeper object types are more specific, wildcards least.
	if !(Specificity(ObjectOf(dog)) > Specificity(ObjectOf(animal))) {
		t.Error("derived object must rank above its base")
	}
	if !(Specificity(ObjectOf(animal)) > Specificity(AnyObject)) {
		t.Error("concrete object must rank above the wildcard")
	}
	if !(Specificity(ListOf(String)) > Specificity(AnyList)) {
		t.Error("typed list must rank above the wildcard list")
	}
	if !(Specificity(String) > Specificity(Any)) {
		t.Error("a primitive must rank above any")
	}
}

func TestTypeString(t *testing.T) {
	animal, _ := declareAnimalTypes()
	tests := []struct {
		t    Type
		want string
	}{
		{String, "string"},
		{ListOf(String), "list(string)"},
		{MapOf(String, Bool), "map(string,bool)"},
		{ObjectOf(animal), "object(Animal)"},
		{AnyList, "list"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
