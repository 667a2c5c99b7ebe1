// Package genui hydrates streaming markup into renderer-agnostic UI trees.
//
// A model streams a markup document (text with embedded component tags such as
// <Badge color="red">New</Badge>). Every prefix of that document is a frame. Frames
// that parse are turned into a tree of [Node] values, with component tags resolved
// against a [Registry] built from usage examples. Frames that do not parse yet are
// skipped, and the final document is always hydrated.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/rickchristie/genui"
//	    "github.com/rickchristie/genui/render"
//	)
//
//	func main() {
//	    // 1. Register components from usage examples
//	    reg := genui.NewRegistry(
//	        genui.Example{Component: "Badge", Handle: badgeRenderer},
//	    )
//
//	    // 2. Feed model output into a stream buffer
//	    stream := genui.NewStreamBuffer()
//	    go func() {
//	        for _, chunk := range []string{"Status: <Bad", "ge color=\"green\">", "OK</Badge>"} {
//	            stream.SendContent(chunk)
//	        }
//	        stream.CompleteWithAccumulated(nil)
//	    }()
//
//	    // 3. Render every frame that hydrates
//	    ctx := context.Background()
//	    for tree, err := range render.Stream(ctx, stream, reg, render.DefaultConfig()) {
//	        if err != nil {
//	            panic(err)
//	        }
//	        fmt.Print(genui.Sprint(tree))
//	    }
//	}
//
// # Packages
//
//   - markup: the parsability gate, turning a document into a parse tree or a
//     *markup.SyntaxError
//   - hydrate: the walker, turning a parse tree into a UI tree
//   - render: the streaming coordinator
//   - events: event registry and logging sinks for sessions
//   - catalog: YAML component catalogs with JSON Schema validated props
//   - models: langchaingo models as frame sources
//
// # Sessions
//
// A [Session] carries the registry, the event dispatcher and the stats of one
// completion. Unknown component tags are replaced by [Dropped] placeholders and
// reported once per session with an [UnresolvedComponentEvent].
package genui
