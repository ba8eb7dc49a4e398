package remote

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/control"
)

// Model is one named, served instance with its descriptor table. Every
// session on the model and every Sync call take the model's lock, so
// writes from concurrent clients never interleave on the instance.
type Model struct {
	Name     string
	Def      *attr.TypeDef
	Instance any

	mu sync.Mutex
}

// Sync runs fn while holding the model's write lock. Mutations of a served
// instance that do not come through a session, such as a document reload or
// a programmatic edit, must go through Sync.
func (m *Model) Sync(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

// ModelSet is the registry of models a handler serves.
type ModelSet struct {
	mu    sync.RWMutex
	order []string
	m     map[string]*Model
}

func NewModelSet() *ModelSet {
	return &ModelSet{m: make(map[string]*Model)}
}

// Add registers a model under name. Re-adding a name replaces it.
func (s *ModelSet) Add(name string, def *attr.TypeDef, inst any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[name]; !ok {
		s.order = append(s.order, name)
	}
	s.m[name] = &Model{Name: name, Def: def, Instance: inst}
}

func (s *ModelSet) Get(name string) (*Model, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.m[name]
	return m, ok
}

// Names returns model names in registration order.
func (s *ModelSet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// boundAttr records one binding so Close can release it.
type boundAttr struct {
	a    *attr.Attribute
	inst any
	ctrl *wireControl
}

// Session is one connected client's view of a model. Every visible
// attribute and every action argument gets a wire control bound through
// the binding engine, so a session sees edits from other sessions and
// from local code, and its own edits reach everyone else.
type Session struct {
	ID    string
	model *Model

	order    []string
	controls map[string]*wireControl
	proxies  map[string]*attr.ActionObject
	bound    []boundAttr
}

// NewSession binds a fresh session to m. Model changes are delivered
// through push; a nil push suppresses outbound traffic.
func NewSession(m *Model, push pushFunc) *Session {
	s := &Session{
		ID:       uuid.New().String(),
		model:    m,
		controls: make(map[string]*wireControl),
		proxies:  make(map[string]*attr.ActionObject),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.Def.Reflect() {
		if a.Params.NoControl {
			continue
		}
		s.bind(a.Name, a, m.Instance, push)
	}

	for _, proxy := range attr.ActionObjects(m.Instance, m.Def) {
		s.proxies[proxy.Action().Name] = proxy
		for _, a := range proxy.TypeDef().Reflect() {
			s.bind(proxy.Action().Name+"."+a.Name, a, proxy, push)
		}
	}

	return s
}

func (s *Session) bind(path string, a *attr.Attribute, inst any, push pushFunc) {
	c := newWireControl(path, a.Type, push)
	c.seed(a.Value(inst))
	control.Bind(a, inst, c)
	s.order = append(s.order, path)
	s.controls[path] = c
	s.bound = append(s.bound, boundAttr{a: a, inst: inst, ctrl: c})
}

// Model returns the model this session serves.
func (s *Session) Model() *Model { return s.model }

// Set applies a decoded client value to the attribute or action
// argument at path.
func (s *Session) Set(path string, raw any) error {
	c, ok := s.controls[path]
	if !ok {
		return fmt.Errorf("no editable attribute %q", path)
	}
	s.model.mu.Lock()
	defer s.model.mu.Unlock()
	return c.receive(raw)
}

// Invoke runs the named action with the argument values accumulated by
// previous Set calls on its "action.arg" paths.
func (s *Session) Invoke(name string) error {
	p, ok := s.proxies[name]
	if !ok {
		return fmt.Errorf("no action %q", name)
	}
	s.model.mu.Lock()
	defer s.model.mu.Unlock()
	p.Invoke()
	return nil
}

// Values returns the full encoded snapshot, keyed by path, for the
// initial sync. Action argument paths use their "action.arg" form.
func (s *Session) Values() map[string]any {
	s.model.mu.Lock()
	defer s.model.mu.Unlock()
	out := make(map[string]any, len(s.order))
	for _, path := range s.order {
		v, err := s.controls[path].encoded()
		if err != nil {
			continue
		}
		out[path] = v
	}
	return out
}

// Close releases every binding the session installed.
func (s *Session) Close() {
	s.model.mu.Lock()
	defer s.model.mu.Unlock()
	for _, b := range s.bound {
		control.Release(b.a, b.inst, b.ctrl)
	}
	s.bound = nil
}
