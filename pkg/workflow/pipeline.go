package workflow

import (
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/logging"
)

// Pipeline is an ordered sequence of tasks. Pipelines compose:
// extending a pipeline with another flattens to a single ordered run.
type Pipeline struct {
	name  string
	tasks []Task
}

// NewPipeline creates a pipeline with the given tasks
func NewPipeline(name string, tasks ...Task) *Pipeline {
	return &Pipeline{name: name, tasks: tasks}
}

// Name returns the pipeline's name
func (p *Pipeline) Name() string {
	return p.name
}

// Append adds tasks to the end of the pipeline
func (p *Pipeline) Append(tasks ...Task) *Pipeline {
	p.tasks = append(p.tasks, tasks...)
	return p
}

// Extend appends another pipeline's tasks, flattening the two into one
// ordered run
func (p *Pipeline) Extend(other *Pipeline) *Pipeline {
	p.tasks = append(p.tasks, other.tasks...)
	return p
}

// Tasks returns the ordered task list
func (p *Pipeline) Tasks() []Task {
	return p.tasks
}

// Run executes the pipeline against ctx. For each task the override
// hook is consulted first; if it substitutes, the native effect does
// not run. After every task, substituted or native, a set termination
// aborts the remainder immediately. Individual tasks need not check:
// the runner enforces the short-circuit centrally.
func (p *Pipeline) Run(ctx *Context) *Termination {
	logger := logging.GetLogger("pipeline")

	for _, task := range p.tasks {
		if ctx.IsTerminated() {
			break
		}

		logger.Trace().Str("pipeline", p.name).Str("task", task.Name()).Msg("Running task")

		if substituted := ctx.hook.BeforeTask(ctx, task); !substituted {
			if !task.Runnable() {
				panic("workflow: pipeline contains non-runnable task " + task.Name())
			}
			if err := task.fn(ctx); err != nil {
				terminateOnError(ctx, task.Name(), err)
			}
		}
	}

	return ctx.Termination()
}

// terminateOnError converts a task error into a termination. Tasks
// that already terminated the context keep their termination; the
// error is then only logged.
func terminateOnError(ctx *Context, taskName string, err error) {
	logger := logging.GetLogger("pipeline")

	if ctx.IsTerminated() {
		logger.Debug().Err(err).Str("task", taskName).Msg("Task returned error after terminating")
		return
	}

	logger.Error().Err(err).Str("task", taskName).Msg("Task failed")
	code := errors.GetErrorCode(err)
	if code == errors.ErrUnknown {
		code = errors.ErrInternal
	}
	ctx.Terminate(code, err.Error())
}
