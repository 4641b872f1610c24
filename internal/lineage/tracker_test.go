package lineage

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kayfabe/promoter/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock drives the tracker with a controllable time.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTracker() (*Tracker, *testClock) {
	clock := &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	return NewTrackerWithClock(clock.Now), clock
}

func newTitle() *domain.ChampionshipRecord {
	return &domain.ChampionshipRecord{
		ID:       uuid.New(),
		Name:     "World Heavyweight",
		Prestige: 50,
	}
}

func TestCrownFirstChampion(t *testing.T) {
	tracker, clock := newTestTracker()
	title := newTitle()
	holder := uuid.New()

	reign, err := tracker.CrownChampion(title, holder, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, holder, reign.Holder)
	assert.Nil(t, reign.EndDate)
	assert.Equal(t, clock.now, reign.StartDate)
	require.NotNil(t, title.CurrentHolder)
	assert.Equal(t, holder, *title.CurrentHolder)
	assert.Equal(t, 1, title.OpenReignCount())
}

func TestCrownSuccessionClosesOpenReign(t *testing.T) {
	tracker, clock := newTestTracker()
	title := newTitle()
	first, second := uuid.New(), uuid.New()
	show := uuid.New()

	_, err := tracker.CrownChampion(title, first, nil, nil)
	require.NoError(t, err)

	clock.Advance(30 * 24 * time.Hour)
	reign, err := tracker.CrownChampion(title, second, &first, &show)
	require.NoError(t, err)

	// ledger is append-only: both reigns present, exactly one open
	require.Len(t, title.TitleHistory, 2)
	assert.Equal(t, 1, title.OpenReignCount())
	require.NotNil(t, title.TitleHistory[0].EndDate)
	assert.Equal(t, clock.now, *title.TitleHistory[0].EndDate)
	assert.Equal(t, second, reign.Holder)
	require.NotNil(t, reign.WonFrom)
	assert.Equal(t, first, *reign.WonFrom)
	assert.Equal(t, second, *title.CurrentHolder)
}

func TestCrownRequiresHolder(t *testing.T) {
	tracker, _ := newTestTracker()
	title := newTitle()

	_, err := tracker.CrownChampion(title, uuid.Nil, nil, nil)
	require.Error(t, err)
	appErr, ok := err.(*domain.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Empty(t, title.TitleHistory)
}

func TestRecordDefense(t *testing.T) {
	tracker, clock := newTestTracker()
	title := newTitle()
	holder, challenger := uuid.New(), uuid.New()
	show := uuid.New()
	quality := 4.5

	_, err := tracker.CrownChampion(title, holder, nil, nil)
	require.NoError(t, err)

	clock.Advance(7 * 24 * time.Hour)
	defense, err := tracker.RecordDefense(title, challenger, show, &quality)
	require.NoError(t, err)

	assert.Equal(t, challenger, defense.Against)
	assert.Equal(t, 4.5, defense.Quality)
	assert.Equal(t, clock.now, defense.Date)

	open := title.OpenReign()
	assert.Equal(t, 1, open.DefenseCount)
	assert.Len(t, open.Defenses, 1)
	require.NotNil(t, title.LastDefended)
	assert.Equal(t, clock.now, *title.LastDefended)
	assert.Equal(t, []uuid.UUID{show}, title.DefendedAt)

	// prestige 50 + (4.5-3)*2 truncated = 53
	assert.Equal(t, 53, title.Prestige)
}

func TestRecordDefenseDefaultQuality(t *testing.T) {
	tracker, _ := newTestTracker()
	title := newTitle()
	holder := uuid.New()

	_, err := tracker.CrownChampion(title, holder, nil, nil)
	require.NoError(t, err)

	defense, err := tracker.RecordDefense(title, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	// omitted quality records the neutral 3 and leaves prestige alone
	assert.Equal(t, 3.0, defense.Quality)
	assert.Equal(t, 50, title.Prestige)
}

func TestRecordDefenseVenueSetSemantics(t *testing.T) {
	tracker, _ := newTestTracker()
	title := newTitle()
	show := uuid.New()

	_, err := tracker.CrownChampion(title, uuid.New(), nil, nil)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := tracker.RecordDefense(title, uuid.New(), show, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, title.OpenReign().DefenseCount)
	assert.Len(t, title.DefendedAt, 1)
}

func TestRecordDefenseVacantTitle(t *testing.T) {
	tracker, _ := newTestTracker()
	title := newTitle()

	_, err := tracker.RecordDefense(title, uuid.New(), uuid.New(), nil)
	require.Error(t, err)
	appErr, ok := err.(*domain.AppError)
	require.True(t, ok)
	assert.Equal(t, "PRECONDITION_VIOLATION", appErr.Code)
}

func TestRecordDefenseHolderWithoutOpenReign(t *testing.T) {
	tracker, _ := newTestTracker()
	title := newTitle()
	holder := uuid.New()
	title.CurrentHolder = &holder

	_, err := tracker.RecordDefense(title, uuid.New(), uuid.New(), nil)
	require.Error(t, err)
	appErr, ok := err.(*domain.AppError)
	require.True(t, ok)
	assert.Equal(t, "PRECONDITION_VIOLATION", appErr.Code)
}

func TestRecordDefensePrestigeClamped(t *testing.T) {
	tracker, _ := newTestTracker()
	title := newTitle()
	title.Prestige = 99

	_, err := tracker.CrownChampion(title, uuid.New(), nil, nil)
	require.NoError(t, err)

	quality := 5.0
	_, err = tracker.RecordDefense(title, uuid.New(), uuid.New(), &quality)
	require.NoError(t, err)
	assert.Equal(t, 100, title.Prestige)

	title.Prestige = 2
	quality = 1.0
	_, err = tracker.RecordDefense(title, uuid.New(), uuid.New(), &quality)
	require.NoError(t, err)
	assert.Equal(t, 1, title.Prestige)
}

func TestCurrentReignDurationDays(t *testing.T) {
	tracker, clock := newTestTracker()
	title := newTitle()

	assert.Equal(t, 0, tracker.CurrentReignDurationDays(title))

	_, err := tracker.CrownChampion(title, uuid.New(), nil, nil)
	require.NoError(t, err)

	// 36 hours held counts as 2 ceiling days
	clock.Advance(36 * time.Hour)
	assert.Equal(t, 2, tracker.CurrentReignDurationDays(title))
}

func TestTotalDaysHeld(t *testing.T) {
	tracker, clock := newTestTracker()
	title := newTitle()
	champ, rival := uuid.New(), uuid.New()

	_, err := tracker.CrownChampion(title, champ, nil, nil)
	require.NoError(t, err)

	clock.Advance(10 * 24 * time.Hour)
	_, err = tracker.CrownChampion(title, rival, &champ, nil)
	require.NoError(t, err)

	clock.Advance(5 * 24 * time.Hour)
	_, err = tracker.CrownChampion(title, champ, &rival, nil)
	require.NoError(t, err)

	// champ: 10 closed days + 3 open days; rival: 5 closed days
	clock.Advance(3 * 24 * time.Hour)
	assert.Equal(t, 13, tracker.TotalDaysHeld(title, champ))
	assert.Equal(t, 5, tracker.TotalDaysHeld(title, rival))
	assert.Equal(t, 0, tracker.TotalDaysHeld(title, uuid.New()))
}
