package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fantasy-draft/models"
	"fantasy-draft/repository/memstore"
	"fantasy-draft/services"

	"github.com/gofiber/fiber/v2"
)

type testEnv struct {
	app   *fiber.App
	draft *services.DraftService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	achievements := services.NewAchievementService(store)
	if err := achievements.SeedCatalog(t.Context(), models.AchievementCatalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
	draft := services.NewDraftService(store, achievements)
	app := fiber.New()
	SetupRoutes(app, draft, achievements)
	return &testEnv{app: app, draft: draft}
}

// do sends a request as user; roles may be empty.
func (e *testEnv) do(t *testing.T, method, path, user, roles string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	if roles != "" {
		req.Header.Set("X-User-Roles", roles)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestDraftLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)

	status, event := env.do(t, http.MethodPost, "/s/admin/events", "admin-1", "admin", fiber.Map{"name": "Spring Cup"})
	if status != http.StatusCreated {
		t.Fatalf("create event: %d %v", status, event)
	}
	id, _ := event["id"].(string)
	if id == "" {
		t.Fatalf("no event id in %v", event)
	}

	for i := 1; i <= 2; i++ {
		status, _ := env.do(t, http.MethodPost, "/events/"+id+"/join", fmt.Sprintf("u%d", i), "", fiber.Map{"display_name": "Player"})
		if status != http.StatusCreated {
			t.Fatalf("join u%d: %d", i, status)
		}
	}
	if status, _ := env.do(t, http.MethodPost, "/events/"+id+"/join", "u1", "", nil); status != http.StatusOK {
		t.Fatalf("rejoin should be 200, got %d", status)
	}

	var assets []fiber.Map
	for tier := 1; tier <= models.TierCount; tier++ {
		for rank := 1; rank <= 2; rank++ {
			assets = append(assets, fiber.Map{"name": fmt.Sprintf("T%d-%d", tier, rank), "tier": tier, "rank": rank})
		}
	}
	if status, body := env.do(t, http.MethodPost, "/s/admin/events/"+id+"/assets", "admin-1", "admin", fiber.Map{"assets": assets}); status != http.StatusCreated {
		t.Fatalf("add assets: %d %v", status, body)
	}

	if status, _ := env.do(t, http.MethodPost, "/s/admin/events/"+id+"/draft/run", "admin-1", "admin", nil); status != http.StatusConflict {
		t.Fatalf("run before start should conflict, got %d", status)
	}
	if status, body := env.do(t, http.MethodPost, "/s/admin/events/"+id+"/draft/start", "admin-1", "admin", nil); status != http.StatusOK {
		t.Fatalf("start: %d %v", status, body)
	}

	status, turn := env.do(t, http.MethodGet, "/events/"+id+"/draft/turn", "", "", nil)
	if status != http.StatusOK || turn["round"] != float64(1) {
		t.Fatalf("turn: %d %v", status, turn)
	}

	status, body := env.do(t, http.MethodPost, "/s/admin/events/"+id+"/draft/run", "admin-1", "admin", nil)
	if status != http.StatusCreated {
		t.Fatalf("run: %d %v", status, body)
	}
	if picks, _ := body["picks"].([]any); len(picks) != 8 {
		t.Fatalf("expected 8 picks, got %v", body["picks"])
	}
	if status, _ := env.do(t, http.MethodPost, "/s/admin/events/"+id+"/draft/run", "admin-1", "admin", nil); status != http.StatusConflict {
		t.Fatalf("second run should conflict, got %d", status)
	}

	status, body = env.do(t, http.MethodGet, "/user/achievements", "u1", "", nil)
	if status != http.StatusOK {
		t.Fatalf("achievements: %d", status)
	}
	held := map[string]bool{}
	list, _ := body["achievements"].([]any)
	for _, item := range list {
		award, _ := item.(map[string]any)
		achievement, _ := award["achievement"].(map[string]any)
		code, _ := achievement["code"].(string)
		held[code] = true
	}
	if !held[models.AchievementFirstEvent] || !held[models.AchievementDrafted] {
		t.Fatalf("u1 should hold FIRST_EVENT and DRAFTED, got %v", body["achievements"])
	}
}

func TestAdminRoutesRequireRole(t *testing.T) {
	env := newTestEnv(t)

	if status, _ := env.do(t, http.MethodPost, "/s/admin/events", "", "", fiber.Map{"name": "x"}); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", status)
	}
	if status, _ := env.do(t, http.MethodPost, "/s/admin/events", "u1", "player", fiber.Map{"name": "x"}); status != http.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", status)
	}
}

func TestAwardEndpoint(t *testing.T) {
	env := newTestEnv(t)
	award := func(code string) (int, map[string]any) {
		return env.do(t, http.MethodPost, "/s/admin/achievements/award", "admin-1", "admin", fiber.Map{"user_id": "u9", "code": code})
	}

	status, body := award("champion")
	if status != http.StatusOK || body["newly_granted"] != true {
		t.Fatalf("first award: %d %v", status, body)
	}
	status, body = award("CHAMPION")
	if status != http.StatusOK || body["newly_granted"] != false {
		t.Fatalf("repeat award: %d %v", status, body)
	}
	if status, _ := award("MYSTERY"); status != http.StatusNotFound {
		t.Fatalf("unknown code should be 404, got %d", status)
	}
	if status, _ := award(""); status != http.StatusBadRequest {
		t.Fatalf("empty code should be 400, got %d", status)
	}
}

func TestEventNotFound(t *testing.T) {
	env := newTestEnv(t)
	status, body := env.do(t, http.MethodGet, "/events/missing", "", "", nil)
	if status != http.StatusNotFound || body["error"] == nil || body["cause"] == nil {
		t.Fatalf("expected 404 with error and cause, got %d %v", status, body)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{services.ErrBadRequest, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", services.ErrEventNotFound), http.StatusNotFound},
		{services.ErrUnknownAchievement, http.StatusNotFound},
		{services.ErrNoParticipants, http.StatusConflict},
		{services.ErrAlreadyDrafted, http.StatusConflict},
		{&services.InvalidPoolError{EventID: "e", AssetID: "a"}, http.StatusConflict},
		{services.ErrAutoPickOffline, http.StatusServiceUnavailable},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
