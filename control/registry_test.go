package control

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propform/propform/attr"
)

type fakeControl struct {
	Emitter
	tag      string
	value    any
	setCalls int
}

func (f *fakeControl) Value() any { return f.value }

func (f *fakeControl) SetValue(v any) {
	f.value = v
	f.setCalls++
}

// edit simulates a user edit: value changes and the notification fires.
func (f *fakeControl) edit(v any) {
	f.value = v
	f.Emit(v)
}

func constructor(tag string) Constructor {
	return func() Control { return &fakeControl{tag: tag} }
}

func resolveTag(t *testing.T, r *Registry, typ attr.Type) string {
	t.Helper()
	neu, err := r.Resolve(typ)
	require.NoError(t, err)
	return neu().(*fakeControl).tag
}

func TestResolvePicksMostSpecific(t *testing.T) {
	shape := attr.NewType("Shape")
	circle := attr.NewType("Circle", attr.WithBase(shape))
	dot := attr.NewType("Dot", attr.WithBase(circle))

	r := NewRegistry()
	r.Register(attr.String, constructor("text"))
	r.Register(attr.ObjectOf(shape), constructor("shape"))
	r.Register(attr.ObjectOf(circle), constructor("circle"))

	assert.Equal(t, "text", resolveTag(t, r, attr.String))
	assert.Equal(t, "circle", resolveTag(t, r, attr.ObjectOf(circle)))
	assert.Equal(t, "shape", resolveTag(t, r, attr.ObjectOf(shape)))

	// An unregistered subtype falls back to its nearest registered ancestor.
	assert.Equal(t, "circle", resolveTag(t, r, attr.ObjectOf(dot)))
}

func TestResolveNoMatch(t *testing.T) {
	r := NewRegistry()
	r.Register(attr.String, constructor("text"))

	_, err := r.Resolve(attr.Bool)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoControlFound))
}

func TestResolveGenericLosesToAnyRegistration(t *testing.T) {
	shape := attr.NewType("Shape")

	r := NewRegistry()
	r.RegisterGeneric(attr.AnyObject, constructor("generic"))

	// With nothing else registered the generic matches.
	assert.Equal(t, "generic", resolveTag(t, r, attr.ObjectOf(shape)))

	// A dedicated registration displaces it even for a base object type.
	r.Register(attr.ObjectOf(shape), constructor("shape"))
	assert.Equal(t, "shape", resolveTag(t, r, attr.ObjectOf(shape)))
}

func TestResolveListControls(t *testing.T) {
	r := NewRegistry()
	r.Register(attr.AnyList, constructor("list"))
	r.Register(attr.ListOf(attr.String), constructor("string-list"))

	assert.Equal(t, "string-list", resolveTag(t, r, attr.ListOf(attr.String)))
	assert.Equal(t, "list", resolveTag(t, r, attr.ListOf(attr.Bool)))
}

func TestResolveEarliestWinsTies(t *testing.T) {
	r := NewRegistry()
	r.Register(attr.String, constructor("first"))
	r.Register(attr.String, constructor("second"))

	assert.Equal(t, "first", resolveTag(t, r, attr.String))
}
