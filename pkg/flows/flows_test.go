package flows_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/getpkg/pkg/commands"
	"github.com/arthur-debert/getpkg/pkg/downloader"
	"github.com/arthur-debert/getpkg/pkg/errors"
	"github.com/arthur-debert/getpkg/pkg/flows"
	"github.com/arthur-debert/getpkg/pkg/manifest"
	"github.com/arthur-debert/getpkg/pkg/paths"
	"github.com/arthur-debert/getpkg/pkg/testutil"
	"github.com/arthur-debert/getpkg/pkg/workflow"
)

func newContext() (*workflow.Context, *bytes.Buffer) {
	var out bytes.Buffer
	return workflow.NewContext(&out), &out
}

// shellCapture substitutes ShellExecuteInstall, recording what would
// have been launched and finishing with the given exit code
type shellCapture struct {
	installerPath string
	args          string
	exitCode      int
	launched      bool
}

func (c *shellCapture) install(overrides *workflow.OverrideSet) {
	overrides.Override(flows.ShellExecuteInstall, func(ctx *workflow.Context) error {
		c.launched = true
		c.installerPath = workflow.Get[string](ctx, workflow.DataInstallerPath)
		c.args = workflow.Get[string](ctx, workflow.DataInstallerArgs)
		ctx.Add(workflow.DataInstallResult, c.exitCode)
		return nil
	})
}

// msixCapture substitutes MsixInstall, recording the deployment URI
type msixCapture struct {
	uri      string
	deployed bool
}

func (c *msixCapture) install(overrides *workflow.OverrideSet) {
	overrides.Override(flows.MsixInstall, func(ctx *workflow.Context) error {
		c.deployed = true
		inst := workflow.Get[manifest.Installer](ctx, workflow.DataInstaller)
		c.uri = inst.URL
		if ctx.Contains(workflow.DataInstallerPath) {
			c.uri = workflow.Get[string](ctx, workflow.DataInstallerPath)
		}
		ctx.Add(workflow.DataInstallResult, 0)
		return nil
	})
}

func TestExeInstallFlowWithTestManifest(t *testing.T) {
	ctx, out := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "exe.yaml", testutil.ExeManifestYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	installerPath := filepath.Join(t.TempDir(), "TestExeInstaller.exe")
	capture := &shellCapture{}
	overrides := workflow.NewOverrideSet()
	testutil.OverrideDownload(overrides, installerPath)
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	assert.Nil(t, termination)
	assert.True(t, capture.launched)
	assert.Equal(t, installerPath, capture.installerPath)
	assert.Equal(t, "/silentwithprogress /custom", capture.args)
	assert.Contains(t, out.String(), fmt.Sprintf("Found %s [%s]", testutil.FixtureName, testutil.FixtureID))
	assert.Contains(t, out.String(), "Successfully installed.")
	testutil.AssertAllOverridesUsed(t, overrides)
}

func TestExeInstallFlowSilent(t *testing.T) {
	ctx, _ := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "exe.yaml", testutil.ExeManifestYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)
	ctx.Args.Add(workflow.ArgSilent)

	capture := &shellCapture{}
	overrides := workflow.NewOverrideSet()
	testutil.OverrideDownload(overrides, filepath.Join(t.TempDir(), "TestExeInstaller.exe"))
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	// The manifest declares no silent switch, so only the custom switch
	// survives
	assert.Nil(t, termination)
	assert.Equal(t, "/custom", capture.args)
}

func TestInstallFlowNonApplicableArchitecture(t *testing.T) {
	ctx, out := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "noarch.yaml", testutil.NoApplicableArchYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	termination := commands.Install(ctx)

	require.NotNil(t, termination)
	assert.Equal(t, errors.ErrNoApplicableInstaller, termination.Code)
	assert.Contains(t, out.String(), "No applicable installer")
	assert.NotContains(t, out.String(), "Successfully installed.")
}

func TestMsixInstallFlowLocalPackage(t *testing.T) {
	ctx, out := newContext()
	packagePath := filepath.Join(t.TempDir(), "package.msix")
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "msix.yaml", testutil.MsixLocalYAML(packagePath))
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	capture := &msixCapture{}
	overrides := workflow.NewOverrideSet()
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	assert.Nil(t, termination)
	assert.True(t, capture.deployed)
	assert.Equal(t, packagePath, capture.uri)
	assert.Contains(t, out.String(), "Successfully installed.")
	testutil.AssertAllOverridesUsed(t, overrides)
}

func TestMsixInstallFlowStreaming(t *testing.T) {
	ctx, out := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "msix.yaml", testutil.MsixStreamingYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	capture := &msixCapture{}
	overrides := workflow.NewOverrideSet()
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	// Streaming packages are deployed straight from their remote
	// location; nothing is downloaded
	assert.Nil(t, termination)
	assert.Equal(t, "https://example.com/streaming.msix", capture.uri)
	assert.False(t, ctx.Contains(workflow.DataInstallerPath))
	assert.Contains(t, out.String(), "Successfully installed.")
}

func TestSearchAndInstall(t *testing.T) {
	ctx, out := newContext()
	ctx.Args.AddWithValue(workflow.ArgQuery, testutil.QueryReturnOne)

	capture := &shellCapture{}
	overrides := workflow.NewOverrideSet()
	testutil.OverrideOpenSource(overrides)
	testutil.OverrideDownload(overrides, filepath.Join(t.TempDir(), "TestExeInstaller.exe"))
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	assert.Nil(t, termination)
	assert.True(t, capture.launched)
	assert.Contains(t, out.String(), fmt.Sprintf("Found %s [%s]", testutil.FixtureName, testutil.FixtureID))
	assert.Contains(t, out.String(), "Successfully installed.")
	testutil.AssertAllOverridesUsed(t, overrides)
}

func TestSearchFoundNoPackage(t *testing.T) {
	ctx, out := newContext()
	ctx.Args.AddWithValue(workflow.ArgQuery, testutil.QueryReturnZero)

	overrides := workflow.NewOverrideSet()
	testutil.OverrideOpenSource(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	require.NotNil(t, termination)
	assert.Equal(t, errors.ErrNoMatches, termination.Code)
	assert.Contains(t, out.String(), flows.MsgNoMatches)
	assert.Equal(t, 0, errors.ExitCode(termination.Code))
}

func TestSearchFoundMultiplePackages(t *testing.T) {
	ctx, out := newContext()
	ctx.Args.AddWithValue(workflow.ArgQuery, testutil.QueryReturnTwo)

	overrides := workflow.NewOverrideSet()
	testutil.OverrideOpenSource(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	require.NotNil(t, termination)
	assert.Equal(t, errors.ErrMultipleMatches, termination.Code)
	assert.Contains(t, out.String(), flows.MsgMultipleMatches)
	assert.Contains(t, out.String(), testutil.FixtureID)
	assert.Contains(t, out.String(), testutil.SecondFixtureID)
	assert.Equal(t, 0, errors.ExitCode(termination.Code))
}

func TestVersionHintNotDeclared(t *testing.T) {
	ctx, out := newContext()
	ctx.Args.AddWithValue(workflow.ArgQuery, testutil.QueryReturnOne)
	ctx.Args.AddWithValue(workflow.ArgVersion, "9.9.9")

	overrides := workflow.NewOverrideSet()
	testutil.OverrideOpenSource(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	require.NotNil(t, termination)
	assert.Equal(t, errors.ErrNoMatches, termination.Code)
	assert.Contains(t, out.String(), "No version of "+testutil.FixtureID)
}

func TestSearchAndShowPackageInfo(t *testing.T) {
	ctx, out := newContext()
	ctx.Args.AddWithValue(workflow.ArgQuery, testutil.QueryReturnOne)

	overrides := workflow.NewOverrideSet()
	testutil.OverrideOpenSource(overrides)
	ctx.SetHook(overrides)

	termination := commands.Show(ctx)

	assert.Nil(t, termination)
	assert.Contains(t, out.String(), "Id: "+testutil.FixtureID)
	assert.Contains(t, out.String(), "Name: "+testutil.FixtureName)
	assert.Contains(t, out.String(), "Version: "+testutil.FixtureVersion)
	assert.Contains(t, out.String(), "Download Url: "+testutil.FixtureURL)
}

func TestSearchAndShowPackageVersions(t *testing.T) {
	ctx, out := newContext()
	ctx.Args.AddWithValue(workflow.ArgQuery, testutil.QueryReturnOne)
	ctx.Args.Add(workflow.ArgListVersions)

	overrides := workflow.NewOverrideSet()
	testutil.OverrideOpenSource(overrides)
	ctx.SetHook(overrides)

	termination := commands.Show(ctx)

	assert.Nil(t, termination)
	assert.Contains(t, out.String(), testutil.FixtureVersion)
	assert.NotContains(t, out.String(), "Download Url:")
}

func TestShowVersionsFromManifestArg(t *testing.T) {
	ctx, out := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "exe.yaml", testutil.ExeManifestYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)
	ctx.Args.Add(workflow.ArgListVersions)

	termination := commands.Show(ctx)

	assert.Nil(t, termination)
	assert.Contains(t, out.String(), testutil.FixtureVersion)
}

func TestInstallerNonZeroExitTerminates(t *testing.T) {
	ctx, out := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "exe.yaml", testutil.ExeManifestYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	capture := &shellCapture{exitCode: 3}
	overrides := workflow.NewOverrideSet()
	testutil.OverrideDownload(overrides, filepath.Join(t.TempDir(), "TestExeInstaller.exe"))
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	require.NotNil(t, termination)
	assert.Equal(t, errors.ErrInstallerFailed, termination.Code)
	assert.Equal(t, 11, errors.ExitCode(termination.Code))
	assert.Contains(t, out.String(), "Install failed.")
}

func TestUnusedOverrideIsFlagged(t *testing.T) {
	ctx, _ := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "exe.yaml", testutil.ExeManifestYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	capture := &shellCapture{}
	msix := &msixCapture{}
	overrides := workflow.NewOverrideSet()
	testutil.OverrideDownload(overrides, filepath.Join(t.TempDir(), "TestExeInstaller.exe"))
	capture.install(overrides)
	// An exe flow never dispatches MSIX deployment
	msix.install(overrides)
	ctx.SetHook(overrides)

	commands.Install(ctx)

	assert.Equal(t, []string{"MsixInstall"}, overrides.Unused())
}

func TestInstallDownloadsAndRenamesInstaller(t *testing.T) {
	payload := []byte("installer-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	t.Setenv(paths.EnvCacheDir, t.TempDir())

	ctx, out := newContext()
	yaml := fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Installers:
  - Arch: %s
    Url: %s/TestExeInstaller.exe
    Sha256: %s
    InstallerType: exe
`, testutil.FixtureID, testutil.FixtureName, testutil.FixtureVersion,
		testutil.HostArch(), server.URL, downloader.Sha256Hex(payload))
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "exe.yaml", yaml)
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	capture := &shellCapture{}
	overrides := workflow.NewOverrideSet()
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	assert.Nil(t, termination)
	expected := filepath.Join(paths.InstallerCacheDir(),
		testutil.FixtureID+"-"+testutil.FixtureVersion+".exe")
	assert.Equal(t, expected, capture.installerPath)
	assert.FileExists(t, expected)
	assert.Contains(t, out.String(), "Successfully installed.")
}

func TestInstallHashMismatchTerminates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("actual-bytes"))
	}))
	defer server.Close()

	t.Setenv(paths.EnvCacheDir, t.TempDir())

	ctx, out := newContext()
	yaml := fmt.Sprintf(`Id: %s
Name: %s
Version: %s
Installers:
  - Arch: %s
    Url: %s/TestExeInstaller.exe
    Sha256: %s
    InstallerType: exe
`, testutil.FixtureID, testutil.FixtureName, testutil.FixtureVersion,
		testutil.HostArch(), server.URL, downloader.Sha256Hex([]byte("expected-bytes")))
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "exe.yaml", yaml)
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)

	termination := commands.Install(ctx)

	require.NotNil(t, termination)
	assert.Equal(t, errors.ErrHashMismatch, termination.Code)
	assert.Contains(t, out.String(), "hash does not match")
	assert.NotContains(t, out.String(), "Successfully installed.")
}

func TestOverrideArgumentWinsVerbatim(t *testing.T) {
	ctx, _ := newContext()
	manifestPath := testutil.WriteManifest(t, t.TempDir(), "msi.yaml", testutil.MsiWithSwitchesYAML())
	ctx.Args.AddWithValue(workflow.ArgManifest, manifestPath)
	ctx.Args.AddWithValue(workflow.ArgOverride, "/OverrideEverything")
	ctx.Args.AddWithValue(workflow.ArgLog, "/tmp/install.log")
	ctx.Args.Add(workflow.ArgSilent)

	capture := &shellCapture{}
	overrides := workflow.NewOverrideSet()
	testutil.OverrideDownload(overrides, filepath.Join(t.TempDir(), "installer.msi"))
	capture.install(overrides)
	ctx.SetHook(overrides)

	termination := commands.Install(ctx)

	assert.Nil(t, termination)
	assert.Equal(t, "/OverrideEverything", capture.args)
}
