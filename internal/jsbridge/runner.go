package jsbridge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/itsmostafa/mktoc/internal/toc"
)

// DefaultTimeout bounds a script run when the Runner has none.
const DefaultTimeout = 10 * time.Second

// Result is the outcome of a script run.
type Result struct {
	// Output is everything passed to print() or console.log().
	Output string
	// Value is the exported value of the script's last expression.
	Value any
	// Document is the global `document` after the script ran, so scripts
	// may rewrite it.
	Document string
	Error    error
}

// Runner executes user scripts against a document.
type Runner struct {
	gen      *toc.Generator
	fallback toc.Config
	timeout  time.Duration
}

// NewRunner creates a Runner. A zero timeout means DefaultTimeout.
func NewRunner(gen *toc.Generator, fallback toc.Config, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{gen: gen, fallback: fallback, timeout: timeout}
}

// Run executes script in a fresh runtime with `document` set to doc.
func (r *Runner) Run(ctx context.Context, script, doc string) *Result {
	vm := goja.New()

	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	go func() {
		<-timeoutCtx.Done()
		vm.Interrupt("execution timeout or cancelled")
	}()

	var printed strings.Builder
	if err := r.setupEnvironment(vm, doc, &printed); err != nil {
		return &Result{Error: fmt.Errorf("failed to setup environment: %w", err)}
	}

	val, err := vm.RunString(script)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return &Result{Output: printed.String(), Error: fmt.Errorf("execution interrupted: %v", interrupted.Value())}
		}
		return &Result{Output: printed.String(), Error: fmt.Errorf("execution error: %w", err)}
	}

	result := &Result{
		Output:   printed.String(),
		Document: doc,
	}
	if val != nil && !goja.IsUndefined(val) && !goja.IsNull(val) {
		result.Value = val.Export()
	}
	if d := vm.Get("document"); d != nil && !goja.IsUndefined(d) && !goja.IsNull(d) {
		result.Document = d.String()
	}
	return result
}

func (r *Runner) setupEnvironment(vm *goja.Runtime, doc string, out *strings.Builder) error {
	if err := vm.Set("document", doc); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}

	printFunc := func(call goja.FunctionCall) goja.Value {
		args := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			args[i] = arg.String()
		}
		out.WriteString(strings.Join(args, " "))
		out.WriteString("\n")
		return goja.Undefined()
	}
	if err := vm.Set("print", printFunc); err != nil {
		return fmt.Errorf("failed to set print: %w", err)
	}

	console := vm.NewObject()
	if err := console.Set("log", printFunc); err != nil {
		return fmt.Errorf("failed to set console.log: %w", err)
	}
	if err := vm.Set("console", console); err != nil {
		return fmt.Errorf("failed to set console: %w", err)
	}

	return Register(vm, r.gen, r.fallback)
}
