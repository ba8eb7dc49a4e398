package attr

import "testing"

type job struct {
	Base
	name    string
	retries int
	runs    int
}

var jobDef = func() *TypeDef {
	td := NewType("Job", WithNew(func() any { return &job{} }))
	td.Attr("name", String,
		func(i any) any { return i.(*job).name },
		func(i, v any) { i.(*job).name = v.(string) })
	td.Attr("retries", Int,
		func(i any) any { return i.(*job).retries },
		func(i, v any) { i.(*job).retries = v.(int) })
	td.Attr("runs", Int,
		func(i any) any { return i.(*job).runs },
		nil)
	td.Action("run", func(inst any, args map[string]any) {
		inst.(*job).runs++
	}, ArgSpec{Name: "priority", Type: String, Default: "normal"})
	return td
}()

func (j *job) TypeDef() *TypeDef { return jobDef }

func TestCopyStateCopiesAttributes(t *testing.T) {
	src := &job{name: "rebuild", retries: 4, runs: 9}
	dst := &job{name: "old", runs: 2}

	CopyState(jobDef, dst, src)

	if dst.name != "rebuild" || dst.retries != 4 {
		t.Errorf("dst = %+v", dst)
	}
	if dst.runs != 2 {
		t.Error("read-only attribute must keep the destination value")
	}
}

func TestCopyStateCopiesActionArgs(t *testing.T) {
	src := &job{}
	ActionObjects(src, jobDef)[0].SetArg("priority", "urgent")
	dst := &job{}

	CopyState(jobDef, dst, src)

	p := ActionObjects(dst, jobDef)[0]
	if p.Arg("priority") != "urgent" {
		t.Errorf("priority = %v", p.Arg("priority"))
	}
}
