package control

import (
	"reflect"
	"sync"

	"github.com/propform/propform/attr"
)

// The binding engine wraps an attribute's setter exactly once per attribute
// and keeps, per owning instance, the list of controls bound to it. A write
// that arrives through the wrapped setter is suppressed when the value is
// already current, otherwise it runs the original setter, fires the
// instance's change signal, and pushes the value into every other bound
// control whose displayed value differs.
//
// The registry and the bound lists are lock-guarded. Propagation itself is
// not: callers that write to one instance from several goroutines must
// serialize those writes (the remote layer holds a per-model lock).

type binding struct {
	attr      *attr.Attribute
	instances map[any][]*boundControl
}

type boundControl struct {
	ctrl   Control
	cancel func()
}

var bindings = struct {
	mu sync.Mutex
	m  map[*attr.Attribute]*binding
}{m: map[*attr.Attribute]*binding{}}

func bindingFor(a *attr.Attribute) *binding {
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	b, ok := bindings.m[a]
	if !ok {
		b = &binding{attr: a, instances: map[any][]*boundControl{}}
		bindings.m[a] = b
		a.InstallHook(b.set)
	}
	return b
}

// Bind attaches ctrl to the attribute on inst. The first Bind for an
// attribute installs the wrapped setter; every Bind appends the control to
// the instance's bound list and, when the attribute is writable, wires the
// control's change notification back into the wrapped setter.
func Bind(a *attr.Attribute, inst any, ctrl Control) {
	b := bindingFor(a)
	bc := &boundControl{ctrl: ctrl}
	if !a.ReadOnly() {
		bc.cancel = ctrl.OnChanged(func(v any) {
			b.set(inst, v, ctrl)
		})
	}
	bindings.mu.Lock()
	b.instances[inst] = append(b.instances[inst], bc)
	bindings.mu.Unlock()
}

// Release detaches ctrl from the attribute on inst so a torn-down control
// is never addressed again.
func Release(a *attr.Attribute, inst any, ctrl Control) {
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	b, ok := bindings.m[a]
	if !ok {
		return
	}
	list := b.instances[inst]
	for i, bc := range list {
		if bc.ctrl == ctrl {
			if bc.cancel != nil {
				bc.cancel()
			}
			b.instances[inst] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.instances[inst]) == 0 {
		delete(b.instances, inst)
	}
}

// set is the wrapped setter. origin is the control the change came from,
// or nil for programmatic writes.
func (b *binding) set(inst, value any, origin any) {
	current := b.attr.Value(inst)
	if EqualValues(current, value) {
		return
	}
	if b.attr.Set != nil {
		b.attr.Set(inst, value)
	}
	attr.EmitChanged(inst)
	for _, bc := range b.bound(inst) {
		if bc.ctrl == origin {
			continue
		}
		if EqualValues(bc.ctrl.Value(), value) {
			continue
		}
		bc.ctrl.SetValue(value)
	}
}

// bound snapshots the instance's control list so propagation never runs
// control callbacks while holding the registry lock.
func (b *binding) bound(inst any) []*boundControl {
	bindings.mu.Lock()
	defer bindings.mu.Unlock()
	return append([]*boundControl(nil), b.instances[inst]...)
}

// EqualValues is the deep equality used for redundant-write suppression:
// sequences compare element-wise regardless of their concrete slice types,
// everything else uses reflect.DeepEqual.
func EqualValues(a, b any) bool {
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Kind() == reflect.Slice && bv.Kind() == reflect.Slice {
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			if !EqualValues(av.Index(i).Interface(), bv.Index(i).Interface()) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}
