package attr

// CopyState copies every writable attribute value and every action argument
// slot from src onto dst through the attribute paths, so installed hooks and
// bound controls observe each change. Read-only attributes keep dst's value.
func CopyState(td *TypeDef, dst, src any) {
	for _, a := range td.Reflect() {
		if a.ReadOnly() {
			continue
		}
		a.SetValue(dst, a.Value(src))
	}
	from := ActionObjects(src, td)
	for i, proxy := range ActionObjects(dst, td) {
		for _, a := range proxy.TypeDef().Reflect() {
			proxy.SetArg(a.Name, a.Value(from[i]))
		}
	}
}
