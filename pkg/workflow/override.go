package workflow

// OverrideHook is consulted before every task in a pipeline. Returning
// true means the hook substituted its own effect for the task's, and
// the native effect must not run. The production hook never
// substitutes; tests install an OverrideSet.
type OverrideHook interface {
	BeforeTask(ctx *Context, task Task) bool
}

// NopHook is the production hook: no substitutions, ever
type NopHook struct{}

// BeforeTask always lets the native task run
func (NopHook) BeforeTask(*Context, Task) bool {
	return false
}

// TaskOverride substitutes fn for the task matching Target
type TaskOverride struct {
	Target Task
	Fn     Func
	used   bool
}

// OverrideSet is an OverrideHook backed by registered substitutions.
// An override left unused at the end of an operation indicates a
// test or configuration bug; Unused exposes those.
type OverrideSet struct {
	overrides []*TaskOverride
}

// NewOverrideSet creates an empty override set
func NewOverrideSet() *OverrideSet {
	return &OverrideSet{}
}

// Override registers a substitution for the task matching target.
// Target may be built with NewTask, TaskByFunc, or TaskByName.
func (s *OverrideSet) Override(target Task, fn Func) {
	s.overrides = append(s.overrides, &TaskOverride{Target: target, Fn: fn})
}

// BeforeTask runs the first matching substitution, if any, and marks
// it used. The substitute's error is handled exactly like a native
// task error.
func (s *OverrideSet) BeforeTask(ctx *Context, task Task) bool {
	for _, o := range s.overrides {
		if o.Target.Equal(task) {
			o.used = true
			if err := o.Fn(ctx); err != nil {
				terminateOnError(ctx, task.Name(), err)
			}
			return true
		}
	}
	return false
}

// Unused returns the names of registered overrides that never matched
// a pipeline task
func (s *OverrideSet) Unused() []string {
	var names []string
	for _, o := range s.overrides {
		if !o.used {
			names = append(names, o.Target.Name())
		}
	}
	return names
}
