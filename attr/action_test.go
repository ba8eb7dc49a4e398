package attr

import "testing"

type exporter struct {
	Base
	exports []map[string]any
}

var exporterDef = func() *TypeDef {
	td := NewType("Exporter", WithNew(func() any { return &exporter{} }))
	td.Action("export_report", func(inst any, args map[string]any) {
		e := inst.(*exporter)
		e.exports = append(e.exports, args)
	},
		ArgSpec{Name: "destination", Type: String},
		ArgSpec{Name: "include_images", Type: Bool, Default: true},
	)
	return td
}()

func (e *exporter) TypeDef() *TypeDef { return exporterDef }

func TestActionObjectDefaults(t *testing.T) {
	e := &exporter{}
	proxies := ActionObjects(e, exporterDef)
	if len(proxies) != 1 {
		t.Fatalf("got %d proxies, want 1", len(proxies))
	}
	p := proxies[0]
	if p.Arg("destination") != nil {
		t.Error("argument without default must start unset")
	}
	if p.Arg("include_images") != true {
		t.Error("declared default not applied")
	}
}

func TestActionInvokeSeesEditedArgs(t *testing.T) {
	e := &exporter{}
	p := ActionObjects(e, exporterDef)[0]
	p.SetArg("destination", "/tmp/report.pdf")
	p.SetArg("include_images", false)
	p.Invoke()

	if len(e.exports) != 1 {
		t.Fatalf("action ran %d times, want 1", len(e.exports))
	}
	got := e.exports[0]
	if got["destination"] != "/tmp/report.pdf" || got["include_images"] != false {
		t.Errorf("args = %v", got)
	}
}

func TestActionObjectsCachedPerInstance(t *testing.T) {
	e := &exporter{}
	first := ActionObjects(e, exporterDef)[0]
	second := ActionObjects(e, exporterDef)[0]
	if first != second {
		t.Error("instances embedding Base must get cached proxies")
	}

	other := &exporter{}
	if ActionObjects(other, exporterDef)[0] == first {
		t.Error("proxies must be per instance")
	}
}

func TestActionProxyChangeChainsToOwner(t *testing.T) {
	e := &exporter{}
	p := ActionObjects(e, exporterDef)[0]

	ownerFired := 0
	ChangedSignal(e).Subscribe(func() { ownerFired++ })

	EmitChanged(p)
	if ownerFired != 1 {
		t.Errorf("owner signal fired %d times, want 1", ownerFired)
	}
}

func TestActionDefExposesArgsAsAttributes(t *testing.T) {
	e := &exporter{}
	p := ActionObjects(e, exporterDef)[0]
	def := p.TypeDef()

	attrs := def.Reflect()
	if len(attrs) != 2 || attrs[0].Name != "destination" || attrs[1].Name != "include_images" {
		t.Fatalf("unexpected argument attributes: %v", attrs)
	}
	attrs[0].SetValue(p, "out.pdf")
	if p.Arg("destination") != "out.pdf" {
		t.Error("attribute write did not reach the argument slot")
	}
	if attrs[0].Value(p) != "out.pdf" {
		t.Error("attribute read did not see the argument slot")
	}
}

func TestActionObjectsWithoutBaseAreFresh(t *testing.T) {
	inst := struct{ name string }{"bare"}
	first := ActionObjects(inst, exporterDef)[0]
	second := ActionObjects(inst, exporterDef)[0]
	if first == second {
		t.Error("instances without Base get fresh proxies per call")
	}
}
