package attr

// ArgSpec declares one formal parameter of an action. A nil Default leaves
// the argument unset until edited.
type ArgSpec struct {
	Name    string
	Type    Type
	Default any
}

// Action is a callable operation declared on a TypeDef. The UI layer only
// triggers actions; return values are deliberately not part of the contract,
// so Func reports its outcome through side effects on the instance.
type Action struct {
	Name string
	Func func(inst any, args map[string]any)
	Args []ArgSpec

	def *TypeDef // synthesized argument descriptor, built lazily
}

// Title returns the human-cased action name: "export_report" becomes
// "Export Report".
func (a *Action) Title() string {
	return humanize(a.Name, true)
}

// Def returns the synthesized descriptor exposing each argument slot as an
// attribute on the action's proxy objects. The descriptor is shared by every
// proxy of the action.
func (a *Action) Def() *TypeDef {
	if a.def != nil {
		return a.def
	}
	td := NewType(a.Name)
	for _, spec := range a.Args {
		name := spec.Name
		td.Attr(name, spec.Type,
			func(inst any) any {
				return inst.(*ActionObject).args[name]
			},
			func(inst, v any) {
				inst.(*ActionObject).args[name] = v
			})
	}
	a.def = td
	return td
}

// ActionObject is the argument-holding proxy for one action on one
// instance. Argument slots start at the declared defaults (nil when the
// parameter has none) and are exposed as attributes through the action's
// synthesized descriptor, so they bind and serialize like ordinary state.
type ActionObject struct {
	Base
	action *Action
	owner  any
	args   map[string]any
}

// NewActionObject synthesizes a proxy for the action bound to owner.
func NewActionObject(a *Action, owner any) *ActionObject {
	args := make(map[string]any, len(a.Args))
	for _, spec := range a.Args {
		args[spec.Name] = spec.Default
	}
	return &ActionObject{action: a, owner: owner, args: args}
}

// Action returns the declared operation this proxy fronts.
func (o *ActionObject) Action() *Action { return o.action }

// TypeDef returns the synthesized argument descriptor, satisfying Typed.
func (o *ActionObject) TypeDef() *TypeDef { return o.action.Def() }

// Owner returns the instance the action will be invoked on.
func (o *ActionObject) Owner() any { return o.owner }

// Arg reads one argument slot.
func (o *ActionObject) Arg(name string) any { return o.args[name] }

// SetArg writes one argument slot through the attribute path so bound
// controls stay in sync.
func (o *ActionObject) SetArg(name string, v any) {
	if a, ok := o.action.Def().Lookup(name); ok {
		a.SetValue(o, v)
		return
	}
	o.args[name] = v
}

// Invoke calls the operation with the owning instance and the current
// argument values. The call is synchronous; any result is discarded.
func (o *ActionObject) Invoke() {
	args := make(map[string]any, len(o.args))
	for k, v := range o.args {
		args[k] = v
	}
	o.action.Func(o.owner, args)
}

// ActionObjects returns the action proxies for inst in declaration order.
// When inst embeds Base the proxies are created once at first request and
// cached for the instance's lifetime, and each proxy's change signal chains
// into the owner's; otherwise fresh proxies are synthesized per call.
func ActionObjects(inst any, td *TypeDef) []*ActionObject {
	actions := td.Actions()
	b := baseOf(inst)
	out := make([]*ActionObject, 0, len(actions))
	for _, ac := range actions {
		if b == nil {
			out = append(out, NewActionObject(ac, inst))
			continue
		}
		if b.actions == nil {
			b.actions = map[string]*ActionObject{}
		}
		o, ok := b.actions[ac.Name]
		if !ok {
			o = NewActionObject(ac, inst)
			o.ChangedSignal().Subscribe(b.changed.Emit)
			b.actions[ac.Name] = o
		}
		out = append(out, o)
	}
	return out
}
