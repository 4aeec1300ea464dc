package workflow_test

import (
	"testing"

	"github.com/arthur-debert/getpkg/pkg/workflow"
	"github.com/stretchr/testify/assert"
)

func noopTask(*workflow.Context) error { return nil }

func otherTask(*workflow.Context) error { return nil }

func TestTaskByFuncDerivesName(t *testing.T) {
	task := workflow.TaskByFunc(noopTask)
	assert.Equal(t, "noopTask", task.Name())
	assert.True(t, task.Runnable())
}

func TestTaskEqualByFunctionIdentity(t *testing.T) {
	a := workflow.TaskByFunc(noopTask)
	b := workflow.TaskByFunc(noopTask)
	c := workflow.TaskByFunc(otherTask)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestTaskEqualByName(t *testing.T) {
	// A by-name target must match a pipeline-installed task with the
	// same name even though only one side carries a function
	installed := workflow.NewTask("SelectInstaller", noopTask)
	target := workflow.TaskByName("SelectInstaller")

	assert.True(t, target.Equal(installed))
	assert.True(t, installed.Equal(target))
	assert.False(t, workflow.TaskByName("OpenSource").Equal(installed))
}

func TestTaskEqualMixedConstructions(t *testing.T) {
	// NewTask and TaskByFunc over the same function compare equal by
	// function identity regardless of the explicit name
	named := workflow.NewTask("RenamedTask", noopTask)
	byFunc := workflow.TaskByFunc(noopTask)

	assert.True(t, named.Equal(byFunc))

	// Different functions never compare equal, even with equal names
	sameName := workflow.NewTask("RenamedTask", otherTask)
	assert.False(t, named.Equal(sameName))
}

func TestTaskByNameIsNotRunnable(t *testing.T) {
	task := workflow.TaskByName("DownloadInstallerFile")
	assert.False(t, task.Runnable())
	assert.Equal(t, "DownloadInstallerFile", task.Name())
}
