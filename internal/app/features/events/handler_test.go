package events_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shuzaifak/crowd/internal/app/banking"
	"github.com/shuzaifak/crowd/internal/app/features/events"
	"github.com/shuzaifak/crowd/internal/app/store"
	"github.com/shuzaifak/crowd/internal/app/store/filestore"
	sysauth "github.com/shuzaifak/crowd/internal/app/system/auth"
	"github.com/shuzaifak/crowd/internal/app/system/httpjson"
	"github.com/shuzaifak/crowd/internal/domain/models"
	"github.com/shuzaifak/crowd/internal/testutil"
)

// newTestRouter builds the /events and /orders subtrees on a fresh
// file-backed store, mounted the way bootstrap mounts them. Requests
// authenticate by context injection, the same context key the token
// middleware fills in production.
func newTestRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()

	codec, err := banking.NewCodec("events-test-secret")
	if err != nil {
		t.Fatalf("banking.NewCodec: %v", err)
	}
	s, err := filestore.New(t.TempDir(), codec, store.DefaultSettings())
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}
	tm, err := sysauth.NewTokenManager("test-token-secret-must-be-32-chars-long", "crowd-test", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	h := events.NewHandler(s, zap.NewNop())

	r := chi.NewRouter()
	r.Mount("/events", events.Routes(h, tm))
	r.Mount("/orders", events.OrderRoutes(h, tm))
	return r, testutil.NewFixtures(t, s)
}

// asUser stamps a request with the identity of a stored account.
func asUser(req *http.Request, u models.User) *http.Request {
	return testutil.WithUser(req, testutil.TestUser{
		ID:    u.ID,
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	})
}

func TestCreateEvent(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")

	now := time.Now().UTC()
	body := map[string]any{
		"title":       "  Synth Expo  ",
		"description": `<p>Live rigs</p><script>alert("x")</script>`,
		"category":    "Music",
		"location":    "Lisbon",
		"start_date":  now.Add(96 * time.Hour),
		"end_date":    now.Add(100 * time.Hour),
		"price":       15.0,
		"ticket_types": []map[string]any{
			{"name": "Day Pass", "price": 15.0, "quantity": 300, "sold": 999},
		},
		"tags": []string{"synth", "live"},
	}
	req := asUser(testutil.NewJSONRequest("POST", "/events", body), org)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusCreated)
	var got models.Event
	rec.DecodeJSON(t, &got)

	if got.Title != "Synth Expo" {
		t.Errorf("title: got %q, want %q", got.Title, "Synth Expo")
	}
	if got.OrganizerID != org.ID {
		t.Errorf("organizer_id: got %q, want %q", got.OrganizerID, org.ID)
	}
	if got.Status != models.EventDraft {
		t.Errorf("status: got %q, want draft", got.Status)
	}
	if got.Currency != "USD" {
		t.Errorf("currency: got %q, want default USD", got.Currency)
	}
	if strings.Contains(got.Description, "<script>") {
		t.Errorf("description kept script markup: %q", got.Description)
	}
	if !strings.Contains(got.Description, "<p>Live rigs</p>") {
		t.Errorf("description lost benign markup: %q", got.Description)
	}
	if len(got.TicketTypes) != 1 {
		t.Fatalf("ticket types: got %d, want 1", len(got.TicketTypes))
	}
	if got.TicketTypes[0].ID == "" {
		t.Error("ticket type was not assigned an id")
	}
	if got.TicketTypes[0].Sold != 0 {
		t.Errorf("ticket type sold: got %d, want 0", got.TicketTypes[0].Sold)
	}
	if got.PublishedAt != nil {
		t.Error("draft event has a publish time")
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	now := time.Now().UTC()

	valid := func() map[string]any {
		return map[string]any{
			"title":      "Expo",
			"start_date": now.Add(24 * time.Hour),
			"end_date":   now.Add(26 * time.Hour),
		}
	}

	cases := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
	}{
		{"missing title", func(b map[string]any) { delete(b, "title") }, "title"},
		{"missing start date", func(b map[string]any) { delete(b, "start_date") }, "start_date"},
		{"end before start", func(b map[string]any) { b["end_date"] = now.Add(12 * time.Hour) }, "end_date"},
		{"negative price", func(b map[string]any) { b["price"] = -1.0 }, "price"},
		{"negative capacity", func(b map[string]any) { b["max_attendees"] = -5 }, "max_attendees"},
		{"two-letter currency", func(b map[string]any) { b["currency"] = "US" }, "currency"},
		{"unnamed ticket type", func(b map[string]any) {
			b["ticket_types"] = []map[string]any{{"name": "  ", "price": 10.0, "quantity": 5}}
		}, "ticket_types"},
		{"negative tier price", func(b map[string]any) {
			b["ticket_types"] = []map[string]any{{"name": "GA", "price": -10.0, "quantity": 5}}
		}, "ticket_types"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := valid()
			tc.mutate(body)
			req := asUser(testutil.NewJSONRequest("POST", "/events", body), org)
			rec := testutil.NewRecorder()
			srv.ServeHTTP(rec, req)

			rec.AssertStatus(t, http.StatusBadRequest)
			var resp httpjson.ErrorResponse
			rec.DecodeJSON(t, &resp)
			if resp.Code != "VALIDATION_FAILED" {
				t.Errorf("code: got %q, want VALIDATION_FAILED", resp.Code)
			}
			if len(resp.Fields) != 1 || resp.Fields[0] != tc.wantField {
				t.Errorf("fields: got %v, want [%s]", resp.Fields, tc.wantField)
			}
		})
	}
}

func TestCreateEvent_RoleGate(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")

	body := map[string]any{"title": "Expo"}

	req := asUser(testutil.NewJSONRequest("POST", "/events", body), buyer)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusForbidden)

	req = testutil.NewJSONRequest("POST", "/events", body)
	rec = testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusUnauthorized)
}

func TestListEvents_OnlyOwn(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	orla := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	remy := fx.CreateOrganizer(ctx, "Remy Dube", "remy@example.com")

	fx.CreateEvent(ctx, orla.ID, "Orla Draft")
	fx.CreatePublishedEvent(ctx, orla.ID, "Orla Live")
	fx.CreateEvent(ctx, remy.ID, "Remy Draft")

	req := asUser(testutil.NewRequest("GET", "/events"), orla)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got []models.Event
	rec.DecodeJSON(t, &got)
	if len(got) != 2 {
		t.Fatalf("events: got %d, want 2", len(got))
	}
	for _, e := range got {
		if e.OrganizerID != orla.ID {
			t.Errorf("listed a foreign event: %q", e.Title)
		}
	}
}

func TestGetEvent_OwnershipHidesForeignEvents(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	owner := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	stranger := fx.CreateOrganizer(ctx, "Remy Dube", "remy@example.com")
	ev := fx.CreateEvent(ctx, owner.ID, "Private Draft")

	req := asUser(testutil.NewRequest("GET", "/events/"+ev.ID), owner)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	probes := []*http.Request{
		testutil.NewRequest("GET", "/events/"+ev.ID),
		testutil.NewJSONRequest("PATCH", "/events/"+ev.ID, map[string]any{"title": "Hijacked"}),
		testutil.NewRequest("DELETE", "/events/"+ev.ID),
		testutil.NewRequest("POST", "/events/"+ev.ID+"/publish"),
	}
	for _, probe := range probes {
		rec := testutil.NewRecorder()
		srv.ServeHTTP(rec, asUser(probe, stranger))
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s %s as stranger: got %d, want 404", probe.Method, probe.URL.Path, rec.Code)
		}
	}

	req = asUser(testutil.NewRequest("GET", "/events/"+uuid.NewString()), owner)
	rec = testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestUpdateEvent(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	ev := fx.CreateEvent(ctx, org.ID, "Expo")

	body := map[string]any{
		"title": "  Expo 2026  ",
		"price": 25.0,
	}
	req := asUser(testutil.NewJSONRequest("PATCH", "/events/"+ev.ID, body), org)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got models.Event
	rec.DecodeJSON(t, &got)
	if got.Title != "Expo 2026" {
		t.Errorf("title: got %q, want %q", got.Title, "Expo 2026")
	}
	if got.Price != 25 {
		t.Errorf("price: got %v, want 25", got.Price)
	}
	if got.Location != "Berlin" {
		t.Errorf("unpatched location changed: got %q", got.Location)
	}
}

func TestUpdateEvent_TicketTypesKeepSoldCounts(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	buyer := fx.CreateUser(ctx, "Sam Ortiz", "sam@example.com")
	ev := fx.CreatePublishedEvent(ctx, org.ID, "Expo")
	fx.CreateOrder(ctx, ev, buyer.ID, 3, "")

	general := ev.TicketTypes[0]
	body := map[string]any{
		"ticket_types": []map[string]any{
			{"id": general.ID, "name": "General", "price": 55.0, "quantity": 150},
			{"name": "Student", "price": 20.0, "quantity": 50},
		},
	}
	req := asUser(testutil.NewJSONRequest("PATCH", "/events/"+ev.ID, body), org)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var got models.Event
	rec.DecodeJSON(t, &got)
	if len(got.TicketTypes) != 2 {
		t.Fatalf("ticket types: got %d, want 2", len(got.TicketTypes))
	}
	kept := got.TicketTypes[0]
	if kept.ID != general.ID {
		t.Errorf("kept tier id changed: got %q, want %q", kept.ID, general.ID)
	}
	if kept.Sold != 3 {
		t.Errorf("kept tier sold: got %d, want 3", kept.Sold)
	}
	if kept.Price != 55 {
		t.Errorf("kept tier price: got %v, want 55", kept.Price)
	}
	added := got.TicketTypes[1]
	if added.ID == "" || added.ID == general.ID {
		t.Errorf("new tier id: got %q", added.ID)
	}
	if added.Sold != 0 {
		t.Errorf("new tier sold: got %d, want 0", added.Sold)
	}
}

func TestUpdateEvent_RejectsInvertedDates(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	ev := fx.CreateEvent(ctx, org.ID, "Expo")

	// Moves only the start, past the stored end.
	body := map[string]any{"start_date": ev.EndDate.Add(time.Hour)}
	req := asUser(testutil.NewJSONRequest("PATCH", "/events/"+ev.ID, body), org)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	var resp httpjson.ErrorResponse
	rec.DecodeJSON(t, &resp)
	if resp.Code != "VALIDATION_FAILED" {
		t.Errorf("code: got %q, want VALIDATION_FAILED", resp.Code)
	}
	if len(resp.Fields) != 1 || resp.Fields[0] != "end_date" {
		t.Errorf("fields: got %v, want [end_date]", resp.Fields)
	}
}

func TestPublishEvent(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	ev := fx.CreateEvent(ctx, org.ID, "Expo")

	req := asUser(testutil.NewRequest("POST", "/events/"+ev.ID+"/publish"), org)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var published models.Event
	rec.DecodeJSON(t, &published)
	if published.Status != models.EventPublished {
		t.Errorf("status: got %q, want published", published.Status)
	}
	if published.PublishedAt == nil {
		t.Fatal("published event has no publish time")
	}

	// Republishing is a no-op that keeps the original timestamp.
	req = asUser(testutil.NewRequest("POST", "/events/"+ev.ID+"/publish"), org)
	rec = testutil.NewRecorder()
	srv.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	var again models.Event
	rec.DecodeJSON(t, &again)
	if again.PublishedAt == nil || !again.PublishedAt.Equal(*published.PublishedAt) {
		t.Errorf("republish moved the publish time: got %v, want %v", again.PublishedAt, published.PublishedAt)
	}
}

func TestDeleteEvent(t *testing.T) {
	srv, fx := newTestRouter(t)
	ctx := context.Background()
	org := fx.CreateOrganizer(ctx, "Orla Chen", "orla@example.com")
	ev := fx.CreatePublishedEvent(ctx, org.ID, "Expo")

	req := asUser(testutil.NewRequest("DELETE", "/events/"+ev.ID), org)
	rec := testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)

	// Gone from the owner's view and from the public listing.
	req = asUser(testutil.NewRequest("GET", "/events/"+ev.ID), org)
	rec = testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	req = testutil.NewRequest("GET", "/events/public")
	rec = testutil.NewRecorder()
	srv.ServeHTTP(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	var listed []models.Event
	rec.DecodeJSON(t, &listed)
	if len(listed) != 0 {
		t.Errorf("public listing still shows %d event(s) after delete", len(listed))
	}
}
