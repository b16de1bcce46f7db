package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/catalog"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/store"
)

var fixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		FallbackDaysHigh:   1,
		FallbackDaysMedium: 3,
		FallbackDaysLow:    7,
		ReopenBumpDays:     3,
		ResumeBumpDays:     2,
		DefaultPriority:    domain.TicketPriorityMedium,
	}
}

func testRoster() []domain.Technician {
	tech := func(id string, skills ...string) domain.Technician {
		return domain.Technician{
			ID:           id,
			Name:         id,
			Role:         domain.RoleTechnician,
			Active:       true,
			Availability: domain.AvailabilityAvailable,
			Skills:       skills,
		}
	}
	return []domain.Technician{
		tech("tech-sanitaer-1", "Sanitär"),
		tech("tech-sanitaer-2", "Sanitär"),
		tech("tech-hvac", "HLK"),
	}
}

// eventRecorder captures everything published on the dispatcher.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) record(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) ofType(t events.EventType) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type ticketFixture struct {
	service   *TicketService
	tickets   *store.TicketStore
	directory *store.TechnicianDirectory
	recorder  *eventRecorder
	now       *time.Time
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()
	now := fixedNow
	dispatcher := events.NewDispatcher()
	recorder := &eventRecorder{}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketAssigned,
		events.EventTicketStatusChanged,
		events.EventTicketOverdue,
		events.EventTicketNoteAdded,
	} {
		dispatcher.Subscribe(eventType, recorder.record)
	}

	fixture := &ticketFixture{
		tickets:   store.NewTicketStore(nil, zap.NewNop()),
		directory: store.NewTechnicianDirectory(testRoster()),
		recorder:  recorder,
		now:       &now,
	}
	fixture.service = NewTicketService(TicketDependencies{
		Store:      fixture.tickets,
		Directory:  fixture.directory,
		Rules:      catalog.NewStaticProvider(catalog.Default()),
		Dispatcher: dispatcher,
		EngineCfg:  testEngineConfig(),
		Logger:     zap.NewNop(),
		Clock:      func() time.Time { return *fixture.now },
	})
	return fixture
}

func TestCreateTicketFullIntake(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Wasserschaden im Keller",
		Description: "Wasser läuft unter der Tür durch",
		CategoryID:  "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketTypeReactive, ticket.Type)
	// No explicit priority: the category default applies.
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	// cat-gebaeudetechnik/MEDIUM carries a 48 hour SLA.
	assert.Equal(t, fixedNow.Add(48*time.Hour), ticket.DueAt)
	// "wasser" routes to the Sanitär skill; the first idle technician wins.
	require.NotNil(t, ticket.AssigneeID)
	assert.Equal(t, "tech-sanitaer-1", *ticket.AssigneeID)

	created := f.recorder.ofType(events.EventTicketCreated)
	require.Len(t, created, 1)
	assert.Equal(t, ticket.ID, created[0].TicketID)
}

func TestCreateTicketValidation(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "   ",
		CategoryID: "cat-gebaeudetechnik",
	})
	assert.Error(t, err)

	_, err = f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Irgendwas",
		CategoryID: "cat-unbekannt",
	})
	assert.Error(t, err)
}

func TestCreateTicketUnassignedIsNormal(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Graffiti an der Fassade",
		CategoryID: "cat-aussenanlagen",
	})
	require.NoError(t, err)
	assert.Nil(t, ticket.AssigneeID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	// LOW priority, no SLA rule: the 7 day fallback applies.
	assert.Equal(t, domain.TicketPriorityLow, ticket.Priority)
	assert.Equal(t, fixedNow.AddDate(0, 0, 7), ticket.DueAt)
}

func TestCreateTicketBalancesLoad(t *testing.T) {
	f := newTicketFixture(t)

	var assignees []string
	for i := 0; i < 3; i++ {
		ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
			Title:      "Rohrbruch",
			CategoryID: "cat-gebaeudetechnik",
		})
		require.NoError(t, err)
		require.NotNil(t, ticket.AssigneeID)
		assignees = append(assignees, *ticket.AssigneeID)
	}

	assert.Equal(t, []string{"tech-sanitaer-1", "tech-sanitaer-2", "tech-sanitaer-1"}, assignees)
}

func TestCreateTicketExplicitPriorityWins(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Kleinigkeit",
		CategoryID: "cat-sicherheit",
		Priority:   domain.TicketPriorityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityLow, ticket.Priority)
}

func TestCreateEmergencyTicketEscalatesImmediately(t *testing.T) {
	f := newTicketFixture(t)

	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:       "Rauchentwicklung im Serverraum",
		CategoryID:  "cat-sicherheit",
		IsEmergency: true,
	})
	require.NoError(t, err)
	assert.True(t, ticket.IsEmergency)
	assert.Equal(t, domain.TicketStatusOverdue, ticket.Status)
}

func TestUpdateTicketDoneLifecycle(t *testing.T) {
	f := newTicketFixture(t)
	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Lampe flackert",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	done := domain.TicketStatusDone
	updated, err := f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, fixedNow, *updated.CompletedAt)

	open := domain.TicketStatusOpen
	updated, err = f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Status: &open})
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	changes := f.recorder.ofType(events.EventTicketStatusChanged)
	require.Len(t, changes, 2)
	for _, event := range changes {
		payload, ok := event.Payload.(events.TicketStatusChangedPayload)
		require.True(t, ok)
		assert.False(t, payload.Automatic)
	}
}

func TestUpdateOverdueTicketReopenBumpsDueDate(t *testing.T) {
	f := newTicketFixture(t)
	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Heizung kalt",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	// Let the due date lapse; the same-pass re-evaluation marks the ticket.
	past := fixedNow.Add(-time.Hour)
	updated, err := f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{DueAt: &past})
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusOverdue, updated.Status)

	open := domain.TicketStatusOpen
	updated, err = f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Status: &open})
	require.NoError(t, err)
	// The reopen bump lands the due date in the future, so the ticket stays
	// OPEN instead of being re-marked in the same pass.
	assert.Equal(t, domain.TicketStatusOpen, updated.Status)
	assert.Equal(t, fixedNow.AddDate(0, 0, 3), updated.DueAt)
}

func TestUpdateOverdueTicketResumeBumpsDueDate(t *testing.T) {
	f := newTicketFixture(t)
	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Heizung kalt",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	past := fixedNow.Add(-time.Hour)
	_, err = f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{DueAt: &past})
	require.NoError(t, err)

	inProgress := domain.TicketStatusInProgress
	updated, err := f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Status: &inProgress})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
	assert.Equal(t, fixedNow.AddDate(0, 0, 2), updated.DueAt)
}

func TestUpdatePushingDueDateForwardClearsOverdue(t *testing.T) {
	f := newTicketFixture(t)
	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Heizung kalt",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	past := fixedNow.Add(-time.Hour)
	updated, err := f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{DueAt: &past})
	require.NoError(t, err)
	require.Equal(t, domain.TicketStatusOverdue, updated.Status)

	future := fixedNow.AddDate(0, 0, 5)
	updated, err = f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{DueAt: &future})
	require.NoError(t, err)
	// Overdue work is assumed underway once someone intervenes.
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)
}

func TestUpdateTicketAssigneeValidation(t *testing.T) {
	f := newTicketFixture(t)
	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Tür klemmt",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	unknown := "tech-unbekannt"
	_, err = f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{AssigneeID: &unknown})
	assert.Error(t, err)

	hvac := "tech-hvac"
	updated, err := f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{AssigneeID: &hvac})
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, "tech-hvac", *updated.AssigneeID)

	assignments := f.recorder.ofType(events.EventTicketAssigned)
	require.NotEmpty(t, assignments)

	updated, err = f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{ClearAssignee: true})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}

func TestUpdateTicketUnknownStatusRejected(t *testing.T) {
	f := newTicketFixture(t)
	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Tür klemmt",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	bogus := domain.TicketStatus("PAUSED")
	_, err = f.service.UpdateTicket(context.Background(), ticket.ID, TicketUpdateInput{Status: &bogus})
	assert.Error(t, err)
}

func TestUpdateTicketNotFound(t *testing.T) {
	f := newTicketFixture(t)
	done := domain.TicketStatusDone
	_, err := f.service.UpdateTicket(context.Background(), "t-missing", TicketUpdateInput{Status: &done})
	assert.Error(t, err)
}

func TestAddNote(t *testing.T) {
	f := newTicketFixture(t)
	ticket, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Tür klemmt",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)

	updated, err := f.service.AddNote(context.Background(), ticket.ID, "M. Huber", "Ersatzteil bestellt")
	require.NoError(t, err)
	require.Len(t, updated.Notes, 1)
	assert.Equal(t, "M. Huber", updated.Notes[0].Author)
	assert.Equal(t, "Ersatzteil bestellt", updated.Notes[0].Body)

	_, err = f.service.AddNote(context.Background(), ticket.ID, "M. Huber", "   ")
	assert.Error(t, err)

	noted := f.recorder.ofType(events.EventTicketNoteAdded)
	require.Len(t, noted, 1)
}

func TestListTicketsFilters(t *testing.T) {
	f := newTicketFixture(t)

	water, err := f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Rohrbruch",
		CategoryID: "cat-gebaeudetechnik",
	})
	require.NoError(t, err)
	_, err = f.service.CreateTicket(context.Background(), TicketCreateInput{
		Title:      "Graffiti",
		CategoryID: "cat-aussenanlagen",
	})
	require.NoError(t, err)

	all := f.service.ListTickets(TicketFilter{})
	assert.Len(t, all, 2)

	lows := f.service.ListTickets(TicketFilter{Priorities: []domain.TicketPriority{domain.TicketPriorityLow}})
	require.Len(t, lows, 1)
	assert.Equal(t, "Graffiti", lows[0].Title)

	byAssignee := f.service.ListTickets(TicketFilter{AssigneeID: water.AssigneeID})
	require.Len(t, byAssignee, 1)
	assert.Equal(t, water.ID, byAssignee[0].ID)

	done := f.service.ListTickets(TicketFilter{Statuses: []domain.TicketStatus{domain.TicketStatusDone}})
	assert.Empty(t, done)
}
