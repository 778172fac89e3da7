package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/internal/memdb"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()
	b := memdb.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { b.Detach() })
	return catalog.New(b)
}

// runShell feeds lines to a fresh shell and returns everything it printed.
func runShell(t *testing.T, svc *catalog.Service, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	require.NoError(t, New(svc, in, &out).Run(context.Background()))
	return out.String()
}

func TestShellBookLifecycle(t *testing.T) {
	svc := newService(t)
	out := runShell(t, svc,
		"1", "5", "Acme", "a@pub.com", "555-0100",
		"1", "1", "Jane Doe", "jane@x.com",
		"1", "6", "978-1", "Title X", "twenty", "2020", "jane@x.com", "Acme",
		"2", "2", "978-1",
		"4",
		"3", "978-1",
		"q",
	)

	assert.Equal(t, 3, strings.Count(out, "Committed."))
	assert.Contains(t, out, `"twenty" is not a number`)
	assert.Contains(t, out, "Title:     Title X")
	assert.Contains(t, out, "Author:    Jane Doe (Individual Author)")
	assert.Contains(t, out, "jane@x.com")
	assert.Contains(t, out, "Title X has been deleted (ISBN: 978-1)")
	assert.Contains(t, out, "Exiting.")

	_, err := svc.Book(context.Background(), "978-1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestShellRepromptsOnValidationError(t *testing.T) {
	svc := newService(t)
	out := runShell(t, svc,
		"1", "5", "", "a@pub.com", "555-0100",
		"Acme", "a@pub.com", "555-0100",
		"q",
	)

	assert.Contains(t, out, "invalid publisher name")
	assert.Contains(t, out, "please try again")
	assert.Equal(t, 1, strings.Count(out, "Committed."))

	p, err := svc.Publisher(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "555-0100", p.Phone)
}

func TestShellReportsConstraintViolationByCategory(t *testing.T) {
	svc := newService(t)
	out := runShell(t, svc,
		"1", "5", "Acme", "a@pub.com", "555-0100",
		"1", "5", "Acme", "other@pub.com", "555-0101",
		"1", "1", "Jane", "jane@x.com",
		"1", "3", "Team", "jane@x.com",
		"q",
	)

	assert.Contains(t, out, "Error: a publisher already exists with the given information. Rolled back.")
	assert.Contains(t, out, "Error: an authoring entity already exists with the given information. Rolled back.")
	assert.Equal(t, 2, strings.Count(out, "Committed."))
}

func TestShellBookPreconditions(t *testing.T) {
	svc := newService(t)
	out := runShell(t, svc, "1", "6", "q")
	assert.Contains(t, out, types.ErrNoPublishers.Error())
	assert.NotContains(t, out, "ISBN: ")
}

func TestShellTeamMembers(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	_, err := svc.CreateAdHocTeam(ctx, "Team", "team@x.com")
	require.NoError(t, err)
	_, err = svc.CreateIndividualAuthor(ctx, "Jane", "jane@x.com")
	require.NoError(t, err)
	_, err = svc.CreateIndividualAuthor(ctx, "Bob", "bob@x.com")
	require.NoError(t, err)

	out := runShell(t, svc,
		"1", "4", "team@x.com", "jane@x.com bob@x.com",
		"1", "4", "jane@x.com", "bob@x.com",
		"2", "4", "team@x.com",
		"q",
	)

	assert.Contains(t, out, "2 new member(s) added to team@x.com.")
	assert.Contains(t, out, types.ErrWrongVariant.Error())

	members, err := svc.Members(ctx, "team@x.com")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "bob@x.com", members[0].Email)
}

func TestShellMenuNavigation(t *testing.T) {
	svc := newService(t)
	out := runShell(t, svc, "9", "2", "B", "2", "1", "Nobody")
	assert.Contains(t, out, "Please select a valid option.")
	assert.Contains(t, out, "INFO MENU")
	assert.Contains(t, out, types.ErrNotFound.Error())
	assert.NotContains(t, out, "Exiting.", "input ran out before Q")
}
