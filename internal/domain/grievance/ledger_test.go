package grievance

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newSeededLedger(t *testing.T, opts ...Option) *Ledger {
	t.Helper()
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithTicketStart(5822),
		WithSeed(DefaultSeed(fixedNow)),
	}
	ledger, err := NewLedger(NewTicketFormat("JSS"), append(base, opts...)...)
	require.NoError(t, err)
	return ledger
}

func leakDraft() Draft {
	return Draft{
		Category: CategoryPipelineLeakage,
		Location: "Kharadi, Pune",
		Summary:  "Water pipe leaking on the main road for 2 days.",
	}
}

func TestLedgerAppendAssignsFreshOpenGrievance(t *testing.T) {
	ledger := newSeededLedger(t)
	before := ledger.Len()

	g, err := ledger.Append(leakDraft())
	require.NoError(t, err)

	assert.Equal(t, "JSS-5822", g.ID)
	assert.Equal(t, StatusOpen, g.Status)
	assert.Equal(t, fixedNow, g.SubmittedAt)
	assert.Equal(t, before+1, ledger.Len())

	all := ledger.All()
	require.NotEmpty(t, all)
	assert.Equal(t, g, all[0], "new grievances go to the front")
}

func TestLedgerAppendRejectsInvalidDraft(t *testing.T) {
	ledger := newSeededLedger(t)

	tests := []struct {
		name  string
		draft Draft
	}{
		{"unknown category", Draft{Category: "flooding", Location: "Pune", Summary: "Road flooded"}},
		{"missing location", Draft{Category: CategoryOther, Location: "  ", Summary: "Something"}},
		{"missing summary", Draft{Category: CategoryOther, Location: "Pune"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Append(tt.draft)
			assert.ErrorIs(t, err, ErrInvalidDraft)
		})
	}
	assert.Equal(t, 4, ledger.Len())
}

func TestLedgerIDsAreUnique(t *testing.T) {
	ledger := newSeededLedger(t)

	seen := map[string]bool{}
	for _, g := range ledger.All() {
		seen[g.ID] = true
	}
	for i := 0; i < 50; i++ {
		g, err := ledger.Append(leakDraft())
		require.NoError(t, err)
		assert.False(t, seen[g.ID], "id %s issued twice", g.ID)
		seen[g.ID] = true
	}
	assert.Len(t, seen, 54)
}

func TestLedgerConcurrentAppends(t *testing.T) {
	ledger := newSeededLedger(t)

	const workers = 16
	ids := make(chan string, workers*10)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				g, err := ledger.Append(leakDraft())
				if err == nil {
					ids <- g.ID
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	unique := map[string]struct{}{}
	for id := range ids {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, workers*10)
	assert.Equal(t, 4+workers*10, ledger.Len())
}

func TestLedgerFindByIDIgnoresCase(t *testing.T) {
	ledger := newSeededLedger(t)

	for _, query := range []string{"JSS-5821", "jss-5821", " Jss-5821 "} {
		g, ok := ledger.FindByID(query)
		require.True(t, ok, query)
		assert.Equal(t, "JSS-5821", g.ID)
		assert.Equal(t, StatusInProgress, g.Status)
	}

	_, ok := ledger.FindByID("JSS-9999")
	assert.False(t, ok)
}

func TestLedgerCounterStartsAfterHighestSeed(t *testing.T) {
	seed := []Grievance{{
		ID:       "JSS-9000",
		Category: CategoryOther,
		Summary:  "Imported",
		Location: "Nagpur",
		Status:   StatusOpen,
	}}
	ledger, err := NewLedger(NewTicketFormat("JSS"), WithTicketStart(5822), WithSeed(seed))
	require.NoError(t, err)

	g, err := ledger.Append(leakDraft())
	require.NoError(t, err)
	assert.Equal(t, "JSS-9001", g.ID)
}

func TestLedgerSeedValidation(t *testing.T) {
	format := NewTicketFormat("JSS")
	valid := Grievance{ID: "JSS-1", Category: CategoryOther, Summary: "s", Location: "l", Status: StatusOpen}

	tests := []struct {
		name    string
		seed    []Grievance
		wantErr error
	}{
		{"malformed id", []Grievance{{ID: "ABC-1", Category: CategoryOther, Status: StatusOpen}}, ErrMalformedID},
		{"duplicate id", []Grievance{valid, {ID: "jss-1", Category: CategoryOther, Status: StatusOpen}}, ErrDuplicateID},
		{"bad category", []Grievance{{ID: "JSS-2", Category: "x", Status: StatusOpen}}, ErrInvalidDraft},
		{"bad status", []Grievance{{ID: "JSS-2", Category: CategoryOther, Status: "pending"}}, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLedger(format, WithSeed(tt.seed))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLedgerAllReturnsCopy(t *testing.T) {
	ledger := newSeededLedger(t)

	all := ledger.All()
	all[0].Status = StatusClosed

	g, ok := ledger.FindByID(all[0].ID)
	require.True(t, ok)
	assert.Equal(t, StatusInProgress, g.Status)
}

func TestLedgerSetStatus(t *testing.T) {
	ledger := newSeededLedger(t)

	g, err := ledger.SetStatus("jss-5819", StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, g.Status)

	found, _ := ledger.FindByID("JSS-5819")
	assert.Equal(t, StatusResolved, found.Status)

	_, err = ledger.SetStatus("JSS-1", StatusResolved)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ledger.SetStatus("JSS-5819", Status("pending"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestLedgerAppendListener(t *testing.T) {
	var got []Grievance
	ledger := newSeededLedger(t, WithAppendListener(func(g Grievance) {
		got = append(got, g)
	}))

	g, err := ledger.Append(leakDraft())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, g, got[0])

	_, _ = ledger.Append(Draft{})
	assert.Len(t, got, 1, "rejected drafts are not announced")
}

func TestTicketFormat(t *testing.T) {
	format := NewTicketFormat("jss")

	assert.Equal(t, "JSS", format.Prefix())
	assert.Equal(t, "JSS-42", format.Format(42))
	assert.True(t, format.Match("jss-42"))
	assert.False(t, format.Match("JSS-"))
	assert.False(t, format.Match("XJSS-42"))

	id, ok := format.Find("what is the status of jss-5820?")
	require.True(t, ok)
	assert.Equal(t, "JSS-5820", id)

	_, ok = format.Find("my tap is dry")
	assert.False(t, ok)

	n, ok := format.Number(" JSS-5820 ")
	require.True(t, ok)
	assert.Equal(t, 5820, n)
}

func TestParseCategoryAndStatus(t *testing.T) {
	for _, c := range Categories {
		parsed, err := ParseCategory(c.Label())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
	_, err := ParseCategory("flooding")
	assert.Error(t, err)

	s, err := ParseStatus("in progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	s, err = ParseStatus("In-Progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)
}

func ExampleTicketFormat_Format() {
	fmt.Println(NewTicketFormat("JSS").Format(5822))
	// Output: JSS-5822
}
