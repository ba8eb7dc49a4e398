package attr

// Signal is a minimal subscriber list. All emission happens synchronously on
// the caller's goroutine; the engine is single-threaded by contract.
type Signal struct {
	nextID int
	subs   []signalSub
}

type signalSub struct {
	id int
	fn func()
}

// Subscribe registers fn and returns a cancel function that removes it.
func (s *Signal) Subscribe(fn func()) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, signalSub{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit invokes every subscriber in subscription order.
func (s *Signal) Emit() {
	for _, sub := range append([]signalSub(nil), s.subs...) {
		sub.fn()
	}
}

// Base is the embeddable instance mixin: a change signal emitted by the
// binding engine after every accepted write, plus the per-instance action
// proxy cache. Embedding Base is optional; instances without it still bind
// and serialize, but get fresh action proxies at each call site.
type Base struct {
	changed Signal
	actions map[string]*ActionObject
}

// ChangedSignal returns the instance-level change signal.
func (b *Base) ChangedSignal() *Signal { return &b.changed }

func (b *Base) attrBase() *Base { return b }

type hasBase interface {
	attrBase() *Base
}

func baseOf(inst any) *Base {
	if hb, ok := inst.(hasBase); ok {
		return hb.attrBase()
	}
	return nil
}

// EmitChanged fires the instance's change signal when the instance embeds
// Base; otherwise it is a no-op.
func EmitChanged(inst any) {
	if b := baseOf(inst); b != nil {
		b.changed.Emit()
	}
}

// ChangedSignal returns the instance's change signal, or nil when the
// instance does not embed Base.
func ChangedSignal(inst any) *Signal {
	if b := baseOf(inst); b != nil {
		return &b.changed
	}
	return nil
}
