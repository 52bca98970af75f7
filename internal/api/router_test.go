package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/intelligent-supply-chain/trade-ops-api/internal/api/handler"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/ports/portstest"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/core/service"
	"github.com/intelligent-supply-chain/trade-ops-api/internal/pkg/token"
)

const (
	rootUser     = "root"
	rootPassword = "root-password"
)

type testServer struct {
	t      *testing.T
	e      *echo.Echo
	tokens *token.Manager
	store  *portstest.Store
}

// newTestServer wires the real services over in-memory repositories and
// bootstraps a superadmin.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	store := portstest.NewStore()
	tokens := token.NewManager("router-test-secret", time.Hour)
	auditor := service.NewAuditor(store.Activities, log)

	seeder := service.NewSeeder(service.SeedRepositories{
		Users:         store.Users,
		MarketData:    store.MarketData,
		Routes:        store.Routes,
		Documents:     store.Documents,
		Rates:         store.Rates,
		Opportunities: store.Opportunities,
		Activities:    store.Activities,
	}, log)
	if err := seeder.EnsureSuperAdmin(context.Background(), service.BootstrapAdmin{Username: rootUser, Password: rootPassword}); err != nil {
		t.Fatalf("bootstrap superadmin: %v", err)
	}

	e := NewRouter(Dependencies{
		Log:           log,
		Tokens:        tokens,
		Users:         store.Users,
		Auth:          service.NewAuthService(store.Users, tokens, nil, log),
		Profile:       service.NewProfileService(store.Users, log),
		MarketData:    service.NewMarketDataService(store.MarketData, log),
		Rates:         service.NewCurrencyRateService(store.Rates),
		Opportunities: service.NewOpportunityService(store.Opportunities),
		Routes:        service.NewShippingRouteService(store.Routes, log),
		Customs:       service.NewCustomsService(store.Documents, auditor, log),
		Activities:    service.NewActivityService(store.Activities, log),
		Admin: service.NewAdminService(service.AdminRepositories{
			Users:      store.Users,
			MarketData: store.MarketData,
			Routes:     store.Routes,
			Documents:  store.Documents,
			Activities: store.Activities,
		}, auditor, log),
		Readiness:    map[string]handler.DependencyCheck{"store": func(context.Context) error { return nil }},
		AllowOrigins: []string{"*"},
		Metrics:      prometheus.NewRegistry(),
	})

	return &testServer{t: t, e: e, tokens: tokens, store: store}
}

func (s *testServer) do(method, path, body, bearer string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// expect asserts the status and decodes the body into out when non-nil.
func (s *testServer) expect(rec *httptest.ResponseRecorder, status int, out any) {
	s.t.Helper()
	if rec.Code != status {
		s.t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			s.t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
		}
	}
}

type authBody struct {
	Token string         `json:"token"`
	User  map[string]any `json:"user"`
}

func (s *testServer) register(username string) authBody {
	s.t.Helper()
	var res authBody
	s.expect(s.do(http.MethodPost, "/api/register",
		`{"username":"`+username+`","password":"secret1","email":"`+username+`@example.com","fullName":"`+username+` Test"}`, ""),
		http.StatusCreated, &res)
	return res
}

func (s *testServer) login(username, password string) authBody {
	s.t.Helper()
	var res authBody
	s.expect(s.do(http.MethodPost, "/api/login", `{"username":"`+username+`","password":"`+password+`"}`, ""),
		http.StatusOK, &res)
	return res
}

func (s *testServer) root() authBody {
	return s.login(rootUser, rootPassword)
}

// createAdmin has the superadmin create an admin with the given flags.
func (s *testServer) createAdmin(username, permissions string) authBody {
	s.t.Helper()
	body := `{"username":"` + username + `","password":"secret1","email":"` + username + `@example.com","fullName":"Admin ` + username + `","role":"admin","permissions":` + permissions + `}`
	s.expect(s.do(http.MethodPost, "/api/admin/users", body, s.root().Token), http.StatusCreated, nil)
	return s.login(username, "secret1")
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp.Message
}

func TestRouter_RegisterLoginCurrentUser(t *testing.T) {
	s := newTestServer(t)

	reg := s.register("alice")
	if reg.User["role"] != "trader" || reg.User["isActive"] != true {
		t.Fatalf("unexpected user: %+v", reg.User)
	}
	if _, leaked := reg.User["passwordHash"]; leaked {
		t.Fatalf("password hash leaked: %+v", reg.User)
	}

	res := s.login("alice", "secret1")
	claims, err := s.tokens.Parse(res.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != reg.User["id"] || claims.Role != "trader" {
		t.Fatalf("claims do not match user: %+v", claims)
	}

	var me map[string]any
	s.expect(s.do(http.MethodGet, "/api/user", "", res.Token), http.StatusOK, &me)
	if me["username"] != "alice" || me["lastLogin"] == nil {
		t.Fatalf("unexpected current user: %+v", me)
	}

	rec := s.do(http.MethodPost, "/api/register",
		`{"username":"alice","password":"secret1","email":"other@example.com","fullName":"Alice"}`, "")
	s.expect(rec, http.StatusBadRequest, nil)
	if msg := errorMessage(t, rec); msg != "username already exists" {
		t.Fatalf("unexpected message: %q", msg)
	}

	rec = s.do(http.MethodPost, "/api/login", `{"username":"alice","password":"wrong"}`, "")
	s.expect(rec, http.StatusUnauthorized, nil)
}

func TestRouter_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	s.expect(s.do(http.MethodGet, "/api/shipping-routes", "", ""), http.StatusUnauthorized, nil)
	s.expect(s.do(http.MethodGet, "/api/shipping-routes", "", "not-a-token"), http.StatusUnauthorized, nil)
	s.expect(s.do(http.MethodGet, "/api/admin/users", "", ""), http.StatusUnauthorized, nil)

	var rates []map[string]any
	s.expect(s.do(http.MethodGet, "/api/currency-exchange-rates", "", ""), http.StatusOK, &rates)
	if len(rates) != 0 {
		t.Fatalf("expected no rates, got %d", len(rates))
	}

	s.expect(s.do(http.MethodGet, "/health", "", ""), http.StatusOK, nil)
	s.expect(s.do(http.MethodGet, "/health/ready", "", ""), http.StatusOK, nil)
	s.expect(s.do(http.MethodGet, "/metrics", "", ""), http.StatusOK, nil)
}

func TestRouter_ShippingRoutesAreOwnerScoped(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").Token
	bob := s.register("bob").Token

	var route map[string]any
	s.expect(s.do(http.MethodPost, "/api/shipping-routes",
		`{"origin":"Kigali","destination":"Mombasa","distance":1500,"transportMode":"Road","transitTime":72,"cost":2300}`, alice),
		http.StatusCreated, &route)
	id, _ := route["id"].(string)
	if route["status"] != "active" {
		t.Fatalf("expected default status active, got %v", route["status"])
	}

	s.expect(s.do(http.MethodGet, "/api/shipping-routes/"+id, "", bob), http.StatusForbidden, nil)
	s.expect(s.do(http.MethodPut, "/api/shipping-routes/"+id, `{"cost":1}`, bob), http.StatusForbidden, nil)

	var bobRoutes []map[string]any
	s.expect(s.do(http.MethodGet, "/api/shipping-routes", "", bob), http.StatusOK, &bobRoutes)
	if len(bobRoutes) != 0 {
		t.Fatalf("bob must not see alice's routes: %+v", bobRoutes)
	}

	var updated map[string]any
	s.expect(s.do(http.MethodPut, "/api/shipping-routes/"+id, `{"status":"completed"}`, alice), http.StatusOK, &updated)
	if updated["status"] != "completed" || updated["cost"] != 2300.0 {
		t.Fatalf("unexpected update: %+v", updated)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates [][2]float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	s.expect(s.do(http.MethodGet, "/api/shipping-routes/map", "", alice), http.StatusOK, &fc)
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 {
		t.Fatalf("unexpected map: %+v", fc)
	}
	if got := fc.Features[0].Geometry.Coordinates; len(got) != 2 || got[0] != [2]float64{30.0619, -1.9403} {
		t.Fatalf("unexpected coordinates: %v", got)
	}

	s.expect(s.do(http.MethodGet, "/api/shipping-routes/000000000000000000000000", "", alice), http.StatusNotFound, nil)
}

func TestRouter_CustomsStatusDoesNotTouchProgress(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").Token

	var doc map[string]any
	s.expect(s.do(http.MethodPost, "/api/customs-documents",
		`{"shipmentId":"SH-1","title":"Invoice","destination":"Dubai","progress":10}`, alice),
		http.StatusCreated, &doc)
	id, _ := doc["id"].(string)
	if doc["status"] != "pending" {
		t.Fatalf("expected pending, got %v", doc["status"])
	}

	s.expect(s.do(http.MethodPut, "/api/customs-documents/"+id, `{"status":"in progress"}`, alice), http.StatusOK, &doc)
	if doc["status"] != "in progress" || doc["progress"] != 10.0 {
		t.Fatalf("unexpected document: %+v", doc)
	}

	s.expect(s.do(http.MethodPut, "/api/customs-documents/"+id, `{"status":"shipped"}`, alice), http.StatusBadRequest, nil)
	s.expect(s.do(http.MethodPut, "/api/customs-documents/"+id, `{"status":"pending"}`, alice), http.StatusUnprocessableEntity, nil)
}

func TestRouter_ToggleStatusFlipsAndAudits(t *testing.T) {
	s := newTestServer(t)
	trader := s.register("trader")
	traderID, _ := trader.User["id"].(string)
	root := s.root()
	rootID, _ := root.User["id"].(string)

	var user map[string]any
	s.expect(s.do(http.MethodPatch, "/api/admin/users/"+traderID+"/toggle-status", "", root.Token), http.StatusOK, &user)
	if user["isActive"] != false {
		t.Fatalf("expected deactivated user, got %+v", user)
	}

	// The deactivated account can no longer sign in.
	rec := s.do(http.MethodPost, "/api/login", `{"username":"trader","password":"secret1"}`, "")
	s.expect(rec, http.StatusForbidden, nil)
	if msg := errorMessage(t, rec); msg != "account is deactivated" {
		t.Fatalf("unexpected message: %q", msg)
	}

	s.expect(s.do(http.MethodPatch, "/api/admin/users/"+traderID+"/toggle-status", "", root.Token), http.StatusOK, &user)
	if user["isActive"] != true {
		t.Fatalf("expected reactivated user, got %+v", user)
	}

	var entries []map[string]any
	s.expect(s.do(http.MethodGet, "/api/admin/activities/user/"+rootID, "", root.Token), http.StatusOK, &entries)
	if len(entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(entries))
	}
	if entries[0]["action"] != "user_activated" || entries[1]["action"] != "user_deactivated" {
		t.Fatalf("unexpected audit order: %v, %v", entries[0]["action"], entries[1]["action"])
	}

	var feed []map[string]any
	s.expect(s.do(http.MethodGet, "/api/admin/activities?limit=1", "", root.Token), http.StatusOK, &feed)
	actor, _ := feed[0]["user"].(map[string]any)
	if len(feed) != 1 || actor["username"] != rootUser {
		t.Fatalf("unexpected feed: %+v", feed)
	}
}

func TestRouter_AdminSelfProtectionAndHierarchy(t *testing.T) {
	s := newTestServer(t)
	root := s.root()
	rootID, _ := root.User["id"].(string)

	rec := s.do(http.MethodDelete, "/api/admin/users/"+rootID, "", root.Token)
	s.expect(rec, http.StatusBadRequest, nil)
	if msg := errorMessage(t, rec); msg != "cannot delete your own account" {
		t.Fatalf("unexpected message: %q", msg)
	}
	s.expect(s.do(http.MethodPatch, "/api/admin/users/"+rootID+"/toggle-status", `{"isActive":false}`, root.Token), http.StatusBadRequest, nil)
	s.expect(s.do(http.MethodPut, "/api/admin/users/"+rootID+"/role", `{"role":"admin"}`, root.Token), http.StatusBadRequest, nil)

	ops := s.createAdmin("ops", `{}`)
	other := s.createAdmin("other", `{}`)
	otherID, _ := other.User["id"].(string)
	trader := s.register("trader")
	traderID, _ := trader.User["id"].(string)

	// Admins manage traders only.
	s.expect(s.do(http.MethodDelete, "/api/admin/users/"+otherID, "", ops.Token), http.StatusForbidden, nil)
	s.expect(s.do(http.MethodPut, "/api/admin/users/"+traderID, `{"company":"Acme"}`, ops.Token), http.StatusOK, nil)
	s.expect(s.do(http.MethodPut, "/api/admin/users/"+traderID+"/role", `{"role":"admin"}`, ops.Token), http.StatusForbidden, nil)
	s.expect(s.do(http.MethodPost, "/api/admin/users",
		`{"username":"sneaky","password":"secret1","email":"s@example.com","fullName":"Sneaky","role":"superadmin"}`, ops.Token),
		http.StatusForbidden, nil)

	// Traders never reach the admin area.
	s.expect(s.do(http.MethodGet, "/api/admin/statistics", "", trader.Token), http.StatusForbidden, nil)

	var stats struct {
		Users struct {
			Total       int64 `json:"total"`
			Traders     int64 `json:"traders"`
			Admins      int64 `json:"admins"`
			SuperAdmins int64 `json:"superAdmins"`
		} `json:"users"`
	}
	s.expect(s.do(http.MethodGet, "/api/admin/statistics", "", ops.Token), http.StatusOK, &stats)
	if stats.Users.Total != 4 || stats.Users.Traders != 1 || stats.Users.Admins != 2 || stats.Users.SuperAdmins != 1 {
		t.Fatalf("unexpected statistics: %+v", stats.Users)
	}

	// A demoted admin is refused even though their token still says admin.
	s.expect(s.do(http.MethodPut, "/api/admin/users/"+otherID+"/role", `{"role":"trader"}`, root.Token), http.StatusOK, nil)
	s.expect(s.do(http.MethodGet, "/api/admin/users", "", other.Token), http.StatusForbidden, nil)
}

func TestRouter_MarketDataWritesNeedPermission(t *testing.T) {
	s := newTestServer(t)
	trader := s.register("trader").Token
	plain := s.createAdmin("plain", `{}`)
	analyst := s.createAdmin("analyst", `{"canManageMarketData":true}`)
	body := `{"productName":"Coffee","category":"Agriculture","currentPrice":4.5,"currency":"USD"}`

	s.expect(s.do(http.MethodPost, "/api/market-data", body, trader), http.StatusForbidden, nil)
	s.expect(s.do(http.MethodPost, "/api/market-data", body, plain.Token), http.StatusForbidden, nil)

	var created map[string]any
	s.expect(s.do(http.MethodPost, "/api/market-data", body, analyst.Token), http.StatusCreated, &created)
	s.expect(s.do(http.MethodPost, "/api/market-data", body, s.root().Token), http.StatusCreated, nil)

	var quotes []map[string]any
	s.expect(s.do(http.MethodGet, "/api/market-data/product/Coffee", "", trader), http.StatusOK, &quotes)
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}

	id, _ := created["id"].(string)
	s.expect(s.do(http.MethodPut, "/api/market-data/"+id, `{"currentPrice":5}`, trader), http.StatusForbidden, nil)
	s.expect(s.do(http.MethodPut, "/api/market-data/"+id, `{"currentPrice":5}`, analyst.Token), http.StatusOK, nil)
}

func TestRouter_CustomsReview(t *testing.T) {
	s := newTestServer(t)
	owner := s.register("owner").Token
	plain := s.createAdmin("plain", `{}`)
	reviewer := s.createAdmin("reviewer", `{"canApproveDocuments":true}`)
	reviewerID, _ := reviewer.User["id"].(string)

	var doc map[string]any
	s.expect(s.do(http.MethodPost, "/api/customs-documents",
		`{"shipmentId":"SH-9","title":"Certificate of origin","destination":"London","status":"in progress","progress":60}`, owner),
		http.StatusCreated, &doc)
	id, _ := doc["id"].(string)

	s.expect(s.do(http.MethodPut, "/api/admin/customs-documents/"+id+"/approve", "", owner), http.StatusForbidden, nil)
	s.expect(s.do(http.MethodPut, "/api/admin/customs-documents/"+id+"/approve", "", plain.Token), http.StatusForbidden, nil)

	s.expect(s.do(http.MethodPut, "/api/admin/customs-documents/"+id+"/approve", `{"comments":"ok"}`, reviewer.Token), http.StatusOK, &doc)
	if doc["status"] != "approved" || doc["approvedBy"] != reviewerID || doc["comments"] != "ok" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	rec := s.do(http.MethodPut, "/api/admin/customs-documents/"+id+"/reject", "", s.root().Token)
	s.expect(rec, http.StatusUnprocessableEntity, nil)
	if msg := errorMessage(t, rec); !strings.HasPrefix(msg, "invalid status transition") {
		t.Fatalf("unexpected message: %q", msg)
	}

	// The owner still sees the reviewed document.
	s.expect(s.do(http.MethodGet, "/api/customs-documents/"+id, "", owner), http.StatusOK, &doc)
	if doc["status"] != "approved" {
		t.Fatalf("unexpected status: %v", doc["status"])
	}
}

func TestRouter_ProfileAndActivities(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").Token

	s.expect(s.do(http.MethodPut, "/api/user/password", `{"currentPassword":"wrong","newPassword":"another-secret"}`, alice), http.StatusBadRequest, nil)
	s.expect(s.do(http.MethodPut, "/api/user/password", `{"currentPassword":"secret1","newPassword":"another-secret"}`, alice), http.StatusOK, nil)
	s.login("alice", "another-secret")

	var settings map[string]any
	s.expect(s.do(http.MethodPut, "/api/user/notifications",
		`{"emailNotifications":false,"marketAlerts":true,"customsUpdates":true,"routeOptimizations":false}`, alice),
		http.StatusOK, &settings)
	if settings["emailNotifications"] != false || settings["marketAlerts"] != true {
		t.Fatalf("unexpected settings: %+v", settings)
	}

	s.expect(s.do(http.MethodPost, "/api/activities",
		`{"title":"Port congestion","description":"Mombasa delays","type":"shipping"}`, alice), http.StatusCreated, nil)

	var mine []map[string]any
	s.expect(s.do(http.MethodGet, "/api/activities", "", alice), http.StatusOK, &mine)
	if len(mine) != 1 || mine[0]["type"] != "shipping" {
		t.Fatalf("unexpected activities: %+v", mine)
	}
}

func TestRouter_ShippingRouteCreateThenGet(t *testing.T) {
	s := newTestServer(t)
	reg := s.register("alice")
	alice := reg.Token

	var created map[string]any
	s.expect(s.do(http.MethodPost, "/api/shipping-routes",
		`{"origin":"Kigali","destination":"Mombasa","distance":1400,"transportMode":"Road","transitTime":4.2,"cost":2100}`, alice),
		http.StatusCreated, &created)

	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected an id, got %+v", created)
	}
	if created["userId"] != reg.User["id"] {
		t.Fatalf("expected userId %v, got %v", reg.User["id"], created["userId"])
	}
	if ts, _ := created["createdAt"].(string); ts == "" {
		t.Fatalf("expected createdAt, got %+v", created)
	}

	var got map[string]any
	s.expect(s.do(http.MethodGet, "/api/shipping-routes/"+id, "", alice), http.StatusOK, &got)

	sent := map[string]any{
		"origin":        "Kigali",
		"destination":   "Mombasa",
		"distance":      1400.0,
		"transportMode": "Road",
		"transitTime":   4.2,
		"cost":          2100.0,
	}
	for k, want := range sent {
		if got[k] != want {
			t.Fatalf("%s: expected %v, got %v", k, want, got[k])
		}
	}
	for _, k := range []string{"id", "userId", "createdAt"} {
		if got[k] != created[k] {
			t.Fatalf("%s: expected %v, got %v", k, created[k], got[k])
		}
	}
}

func TestRouter_RepeatedGetsAreIdempotent(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").Token

	var route map[string]any
	s.expect(s.do(http.MethodPost, "/api/shipping-routes",
		`{"origin":"Kigali","destination":"Mombasa","distance":1400,"transportMode":"Road","transitTime":4.2,"cost":2100}`, alice),
		http.StatusCreated, &route)
	id, _ := route["id"].(string)

	s.expect(s.do(http.MethodPost, "/api/currency-exchange-rates",
		`{"baseCurrency":"USD","targetCurrency":"RWF","rate":1300}`, alice), http.StatusCreated, nil)

	for _, path := range []string{
		"/api/shipping-routes",
		"/api/shipping-routes/" + id,
		"/api/shipping-routes/map",
		"/api/currency-exchange-rates",
		"/api/user",
	} {
		first := s.do(http.MethodGet, path, "", alice)
		second := s.do(http.MethodGet, path, "", alice)
		if first.Code != http.StatusOK || second.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 twice, got %d and %d", path, first.Code, second.Code)
		}
		if first.Body.String() != second.Body.String() {
			t.Fatalf("%s: payload changed between reads:\n%s\n%s", path, first.Body.String(), second.Body.String())
		}
	}
}

func TestRouter_CustomsOwnerCannotSetReviewOutcome(t *testing.T) {
	s := newTestServer(t)
	alice := s.register("alice").Token

	s.expect(s.do(http.MethodPost, "/api/customs-documents",
		`{"shipmentId":"SH-1","title":"Invoice","destination":"Dubai","status":"approved"}`, alice),
		http.StatusUnprocessableEntity, nil)

	var doc map[string]any
	s.expect(s.do(http.MethodPost, "/api/customs-documents",
		`{"shipmentId":"SH-1","title":"Invoice","destination":"Dubai"}`, alice),
		http.StatusCreated, &doc)
	id, _ := doc["id"].(string)

	for _, st := range []string{"approved", "rejected"} {
		rec := s.do(http.MethodPut, "/api/customs-documents/"+id, `{"status":"`+st+`"}`, alice)
		s.expect(rec, http.StatusUnprocessableEntity, nil)
	}

	s.expect(s.do(http.MethodGet, "/api/customs-documents/"+id, "", alice), http.StatusOK, &doc)
	if doc["status"] != "pending" || doc["approvedBy"] != nil {
		t.Fatalf("document changed by a refused edit: %+v", doc)
	}
	if n := s.store.Activities.Len(); n != 0 {
		t.Fatalf("expected no audit entries, got %d", n)
	}
}
