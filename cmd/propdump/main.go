// Command propdump loads a profile document and prints its attribute
// table: name, type, and current value for every declared attribute,
// plus each action and its arguments. With -save it re-serializes the
// document, normalizing formatting.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/propform/propform/attr"
	"github.com/propform/propform/document"
	"github.com/propform/propform/internal/demo"
	"github.com/propform/propform/serialize"
	"github.com/propform/propform/tree"
)

func main() {
	savePath := flag.String("save", "", "re-serialize the document to this path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: propdump [-save out.yaml] profile.yaml")
		os.Exit(2)
	}

	store := document.NewStore(flag.Arg(0), demo.ProfileType)
	inst, err := store.Load()
	if err != nil {
		log.Fatalf("propdump: %v", err)
	}

	def := demo.ProfileType
	if rt, ok := attr.DefOf(inst); ok {
		def = rt
	}

	fmt.Printf("%s (%s)\n", flag.Arg(0), def.Name())
	for _, a := range def.Reflect() {
		fmt.Printf("  %-12s %-18s %s\n", a.Name, a.Type.String(), render(a.Type, a.Value(inst)))
	}

	for _, proxy := range attr.ActionObjects(inst, def) {
		fmt.Printf("  action %s\n", proxy.Action().Name)
		for _, a := range proxy.TypeDef().Reflect() {
			fmt.Printf("    %-10s %-18s %s\n", a.Name, a.Type.String(), render(a.Type, a.Value(proxy)))
		}
	}

	if *savePath != "" {
		out := document.NewStore(*savePath, demo.ProfileType)
		if err := out.Save(inst); err != nil {
			log.Fatalf("propdump: %v", err)
		}
		fmt.Printf("saved %s\n", *savePath)
	}
}

// render gives the document encoding of a value, which reads better than
// Go's default formatting for colors, fonts, and nested objects.
func render(t attr.Type, v any) string {
	enc, err := serialize.EncodeValue(t, v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return renderValue(enc)
}

func renderValue(v any) string {
	switch x := v.(type) {
	case *tree.Node:
		parts := make([]string, 0, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			parts = append(parts, fmt.Sprintf("%s: %s", k, renderValue(val)))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case tree.List:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = renderValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", x)
	}
}
