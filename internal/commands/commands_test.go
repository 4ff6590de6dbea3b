package commands_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gid/internal/commands"
	"gid/internal/config"
	"gid/internal/exitcode"
	"gid/internal/service"
	"gid/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:      t.TempDir(),
		Quiet:    quiet,
		Settings: config.DefaultSettings(),
	}

	var s service.Service
	if svc != nil {
		s = svc
	}
	code = cmd.Run(context.Background(), cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// newService returns a service with two lists; the first is the default.
func newService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddList("inbox", "Inbox")
	svc.AddList("shopping", "Shopping")
	svc.AddTask("inbox", "t0", "Buy milk")
	svc.AddTask("inbox", "t1", "Call mom")
	svc.AddTask("inbox", "t2", "Write report")
	return svc
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "gid 0.1.0\n", stdout)
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	for _, name := range []string{"gid list", "gid rm", "gid done", "gid addlist", "alias: remove"} {
		assert.Contains(t, stdout, name)
	}
	assert.Contains(t, stdout, "The first item whose title equals\n  the token or whose index equals it wins")
	assert.NotContains(t, stdout, "read as an index")
}

// A digit title listed first takes the token before the index does.
func TestRmCommand_DigitTitleBeforeIndex(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("inbox", "Inbox")
	svc.AddTask("inbox", "t0", "1")
	svc.AddTask("inbox", "t1", "Clean")

	_, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, []string{"Clean"}, svc.TaskTitles("inbox"))
}

func TestListsCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, newService(), nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Inbox")
	assert.Contains(t, stdout, "Shopping")
}

func TestListsCommand_Max(t *testing.T) {
	cmd := &commands.ListsCmd{}
	cmd.SetMax(1)
	stdout, _, code := runCommand(t, cmd, newService(), nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Inbox")
	assert.NotContains(t, stdout, "Shopping")
}

func TestListsCommand_NegativeMax(t *testing.T) {
	cmd := &commands.ListsCmd{}
	cmd.SetMax(-1)
	_, stderr, code := runCommand(t, cmd, newService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "--max")
}

func TestListCommand_DefaultList(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, newService(), nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	for _, title := range []string{"Buy milk", "Call mom", "Write report"} {
		assert.Contains(t, stdout, title)
	}
}

func TestListCommand_ByName(t *testing.T) {
	svc := newService()
	svc.AddTask("shopping", "s0", "Apples")

	cmd := &commands.ListCmd{}
	cmd.SetList("Shopping")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Apples")
	assert.NotContains(t, stdout, "Buy milk")
}

func TestListCommand_ByIndex(t *testing.T) {
	svc := newService()
	svc.AddTask("shopping", "s0", "Apples")

	cmd := &commands.ListCmd{}
	cmd.SetList("1")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Contains(t, stdout, "Apples")
}

func TestListCommand_ListNotFound(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetList("Nope")
	stdout, stderr, code := runCommand(t, cmd, newService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: bad request: name or index not found: Nope\n", stderr)
}

func TestListCommand_BackendError(t *testing.T) {
	svc := newService()
	svc.Fail(testutil.Tasks, testutil.OpFetchAll, "", &service.RemoteError{Status: 500, Message: "backend unavailable"})

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.BackendError, code)
	assert.Contains(t, stderr, "backend unavailable")
}

func TestListCommand_AuthError(t *testing.T) {
	svc := newService()
	svc.Fail(testutil.Lists, testutil.OpFetchAll, "", &service.RemoteError{Status: 401, Message: "invalid credentials"})

	_, _, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.AuthError, code)
}

func TestAddCommand_Bulk(t *testing.T) {
	svc := newService()
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Eggs", "Bread"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []string{"Buy milk", "Call mom", "Write report", "Eggs", "Bread"}, svc.TaskTitles("inbox"))
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AddCmd{}, newService(), []string{"Eggs"}, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stdout)
}

func TestAddCommand_NoTitle(t *testing.T) {
	svc := newService()
	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "title required")
	assert.Empty(t, svc.Calls())
}

func TestAddCommand_ToSpecificList(t *testing.T) {
	svc := newService()
	cmd := &commands.AddCmd{}
	cmd.SetList("Shopping")
	_, _, code := runCommand(t, cmd, svc, []string{"Apples"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, []string{"Apples"}, svc.TaskTitles("shopping"))
	assert.Len(t, svc.TaskTitles("inbox"), 3)
}

func TestRmCommand_MixedTokens(t *testing.T) {
	svc := newService()
	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"0", "Write report"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []string{"Call mom"}, svc.TaskTitles("inbox"))
}

// Deleting index 0 first must not shift what index 1 refers to.
func TestRmCommand_IndicesDoNotDrift(t *testing.T) {
	svc := newService()
	_, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"0", "1"}, false)

	require.Equal(t, exitcode.Success, code)
	assert.Equal(t, []string{"Write report"}, svc.TaskTitles("inbox"))
}

func TestRmCommand_UnresolvedMutatesNothing(t *testing.T) {
	svc := newService()
	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"0", "Nope"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "Error: bad request: name or index not found: Nope\n", stderr)
	assert.Empty(t, svc.CallsOf(testutil.OpDelete))
	assert.Len(t, svc.TaskTitles("inbox"), 3)
}

func TestRmCommand_PartialFailure(t *testing.T) {
	svc := newService()
	svc.Fail(testutil.Tasks, testutil.OpDelete, "t1", &service.RemoteError{Status: 500, Message: "backend error"})

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"0", "1", "2"}, false)

	assert.Equal(t, exitcode.BackendError, code)
	assert.Contains(t, stderr, "failed at item 2 of 3, 1 already applied")
	assert.Equal(t, []string{"Call mom", "Write report"}, svc.TaskTitles("inbox"))
}

func TestRmCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.RmCmd{}, newService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "task name or index required")
}

func TestDoneCommand_Success(t *testing.T) {
	svc := newService()
	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"Call mom"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []string{"Buy milk", "Write report"}, svc.TaskTitles("inbox"))

	task, found := svc.Task("inbox", "t1")
	require.True(t, found)
	assert.True(t, task.Hidden)
	assert.Equal(t, service.StatusCompleted, task.Status)
	assert.NotEmpty(t, task.Completed)
}

func TestDoneCommand_Bulk(t *testing.T) {
	svc := newService()
	_, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"2", "0"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, []string{"Call mom"}, svc.TaskTitles("inbox"))

	patched := svc.CallsOf(testutil.OpPatch)
	require.Len(t, patched, 2)
	assert.Equal(t, "t2", patched[0].ID)
	assert.Equal(t, "t0", patched[1].ID)
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	svc := newService()
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"5"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "name or index not found: 5")
	assert.Empty(t, svc.CallsOf(testutil.OpPatch))
}

func TestDoneCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, newService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "task name or index required")
}

func TestDoneCommand_BlankRefDoesNotResolve(t *testing.T) {
	svc := newService()
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{" "}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, "Error: bad request: name or index not found:  \n", stderr)
	assert.Empty(t, svc.CallsOf(testutil.OpPatch))
}

func TestAddCommand_BlankTitle(t *testing.T) {
	svc := newService()
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"  "}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []string{"Buy milk", "Call mom", "Write report", "  "}, svc.TaskTitles("inbox"))
}

func TestAddListCommand_BlankTitle(t *testing.T) {
	svc := newService()
	_, _, code := runCommand(t, &commands.AddListCmd{}, svc, []string{""}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, []string{"Inbox", "Shopping", ""}, svc.ListTitles())
}

func TestAddListCommand(t *testing.T) {
	svc := newService()
	stdout, _, code := runCommand(t, &commands.AddListCmd{}, svc, []string{"Work", "Home"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", stdout)
	assert.Equal(t, []string{"Inbox", "Shopping", "Work", "Home"}, svc.ListTitles())
}

func TestAddListCommand_NoName(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.AddListCmd{}, newService(), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "list title required")
}

func TestRmListCommand(t *testing.T) {
	svc := newService()
	_, _, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"Shopping"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, []string{"Inbox"}, svc.ListTitles())
}

func TestRmListCommand_ByIndexAndName(t *testing.T) {
	svc := newService()
	_, _, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"1", "Inbox"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, svc.ListTitles())
}

func TestRmListCommand_NotFound(t *testing.T) {
	svc := newService()
	_, _, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"Shopping", "Nope"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Equal(t, []string{"Inbox", "Shopping"}, svc.ListTitles())
}

func TestRegistry_Aliases(t *testing.T) {
	for alias, name := range map[string]string{
		"show":       "list",
		"create":     "add",
		"remove":     "rm",
		"finish":     "done",
		"createlist": "addlist",
		"removelist": "rmlist",
	} {
		cmd, found := commands.DefaultRegistry.Find(alias)
		require.True(t, found, alias)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.VersionCmd{}))
	assert.Error(t, r.Register(&commands.VersionCmd{}))
}

func TestRegistry_All(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.RmCmd{}))
	require.NoError(t, r.Register(&commands.AddCmd{}))
	require.NoError(t, r.Register(&commands.RmListCmd{}))

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"add", "rm", "rmlist"}, []string{all[0].Name(), all[1].Name(), all[2].Name()})
}

func TestRegistry_AliasClash(t *testing.T) {
	r := commands.NewRegistry()
	require.NoError(t, r.Register(&commands.RmCmd{}))
	assert.ErrorContains(t, r.Register(&aliasedCmd{alias: "remove"}), `command name "remove" already used by rm`)
}

// aliasedCmd borrows VersionCmd's behaviour under a different name.
type aliasedCmd struct {
	commands.VersionCmd
	alias string
}

func (c *aliasedCmd) Name() string      { return "other" }
func (c *aliasedCmd) Aliases() []string { return []string{c.alias} }
