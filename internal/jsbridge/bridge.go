// Package jsbridge exposes table of contents generation to JavaScript
// through goja.
package jsbridge

import (
	"encoding/json"
	"fmt"

	"github.com/dop251/goja"

	"github.com/itsmostafa/mktoc/internal/toc"
)

// Register installs a global `mktoc` object in vm:
//
//	mktoc.makeToc(text, [config])     -> text with its ToC regenerated
//	mktoc.makeTocOnly(text, [config]) -> the ToC block alone
//	mktoc.textToUrl(text)             -> heading slug
//	mktoc.headings(text, [min, max])  -> [{level, text, line}]
//
// config is an object with the same fields as the embedded JSON; fields it
// omits take their defaults. Without it fallback is used.
func Register(vm *goja.Runtime, gen *toc.Generator, fallback toc.Config) error {
	obj := vm.NewObject()

	configArg := func(call goja.FunctionCall, i int) toc.Config {
		arg := call.Argument(i)
		if goja.IsUndefined(arg) || goja.IsNull(arg) {
			return fallback
		}
		raw, err := json.Marshal(arg.Export())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		cfg, err := toc.ParseConfig(string(raw))
		if err != nil {
			panic(vm.NewTypeError("invalid config: %v", err))
		}
		return cfg
	}

	textArg := func(call goja.FunctionCall, name string) string {
		if len(call.Arguments) < 1 {
			panic(vm.NewTypeError("%s requires a text argument", name))
		}
		return call.Arguments[0].String()
	}

	makeToc := func(call goja.FunctionCall) goja.Value {
		text := textArg(call, "makeToc")
		return vm.ToValue(gen.MakeTOC(text, configArg(call, 1)))
	}
	if err := obj.Set("makeToc", makeToc); err != nil {
		return err
	}

	makeTocOnly := func(call goja.FunctionCall) goja.Value {
		text := textArg(call, "makeTocOnly")
		return vm.ToValue(gen.Generate(text, configArg(call, 1)))
	}
	if err := obj.Set("makeTocOnly", makeTocOnly); err != nil {
		return err
	}

	textToURL := func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(toc.TextToURL(textArg(call, "textToUrl")))
	}
	if err := obj.Set("textToUrl", textToURL); err != nil {
		return err
	}

	headings := func(call goja.FunctionCall) goja.Value {
		text := textArg(call, "headings")
		minDepth, maxDepth := toc.DefaultMinDepth, toc.DefaultMaxDepth
		if len(call.Arguments) >= 2 {
			minDepth = int(call.Arguments[1].ToInteger())
		}
		if len(call.Arguments) >= 3 {
			maxDepth = int(call.Arguments[2].ToInteger())
		}

		var out []any
		for h := range toc.Headings(text, minDepth, maxDepth) {
			out = append(out, map[string]any{
				"level": h.Level,
				"text":  h.Text,
				"line":  h.Line,
			})
		}
		if out == nil {
			out = []any{}
		}
		return vm.ToValue(out)
	}
	if err := obj.Set("headings", headings); err != nil {
		return err
	}

	if err := vm.Set("mktoc", obj); err != nil {
		return fmt.Errorf("failed to set mktoc: %w", err)
	}
	return nil
}
