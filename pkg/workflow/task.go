package workflow

import (
	"reflect"
	"runtime"
	"strings"
)

// Func is the effect of a task: it reads and writes the Context and
// may terminate it. A non-nil error that did not already terminate the
// context is treated as an internal failure by the pipeline runner.
type Func func(*Context) error

// Task is a named, comparable unit of pipeline work. Identity is
// carried by the function when one is present, otherwise by the name,
// so that override targets built from a function, a name, or a full
// task all compare correctly against pipeline-installed tasks.
type Task struct {
	name string
	fn   Func
	fnPC uintptr
}

// NewTask creates a task with an explicit name and effect
func NewTask(name string, fn Func) Task {
	return Task{name: name, fn: fn, fnPC: funcPC(fn)}
}

// TaskByFunc creates a task identified by the function itself; the
// name is derived from the function symbol
func TaskByFunc(fn Func) Task {
	return Task{name: funcName(fn), fn: fn, fnPC: funcPC(fn)}
}

// TaskByName creates a non-runnable task identity, used as an override
// target when the function is not exported
func TaskByName(name string) Task {
	return Task{name: name}
}

// Name returns the task's name
func (t Task) Name() string {
	return t.name
}

// Runnable reports whether the task carries an effect
func (t Task) Runnable() bool {
	return t.fn != nil
}

// Equal compares task identities: by function identity when both sides
// carry a function, by name otherwise
func (t Task) Equal(other Task) bool {
	if t.fnPC != 0 && other.fnPC != 0 {
		return t.fnPC == other.fnPC
	}
	return t.name == other.name
}

func funcPC(fn Func) uintptr {
	if fn == nil {
		return 0
	}
	return reflect.ValueOf(fn).Pointer()
}

// funcName derives a short task name from the function symbol,
// e.g. "github.com/arthur-debert/getpkg/pkg/flows.SelectInstaller" ->
// "SelectInstaller"
func funcName(fn Func) string {
	if fn == nil {
		return ""
	}
	full := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()
	if idx := strings.LastIndex(full, "."); idx >= 0 {
		full = full[idx+1:]
	}
	return strings.TrimSuffix(full, "-fm")
}
