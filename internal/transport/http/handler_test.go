package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vovakirdan/tui-reversi/internal/games/reversi"
	"github.com/vovakirdan/tui-reversi/internal/multiplayer"
)

func newTestApp(t *testing.T, delay time.Duration) *fiber.App {
	t.Helper()
	coord, err := multiplayer.NewCoordinator(multiplayer.CoordinatorConfig{
		ComputerDelay: delay,
		Strategy:      reversi.StrategyFirst,
		WaitTimeout:   time.Second,
		Seed:          1,
	}, nil)
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	t.Cleanup(coord.Close)
	return NewFiberApp(coord, Config{RateLimit: 1000})
}

type result struct {
	status int
	body   []byte
}

func do(t *testing.T, app *fiber.App, method, path, body string) result {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return result{status: resp.StatusCode, body: data}
}

func decode[T any](t *testing.T, r result) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(r.body, &v); err != nil {
		t.Fatalf("decode %s: %v", r.body, err)
	}
	return v
}

func createMatch(t *testing.T, app *fiber.App, body string) MatchResponse {
	t.Helper()
	r := do(t, app, fiber.MethodPost, "/api/v1/matches", body)
	if r.status != fiber.StatusCreated {
		t.Fatalf("create status = %d, body %s", r.status, r.body)
	}
	return decode[MatchResponse](t, r)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, time.Hour)
	r := do(t, app, fiber.MethodGet, "/health", "")
	if r.status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", r.status)
	}
}

func TestCreateMatch(t *testing.T) {
	app := newTestApp(t, time.Hour)

	m := createMatch(t, app, `{"dark":"manual","light":"computer"}`)
	if m.Turn != "dark" || m.Over {
		t.Errorf("turn %q over %v, want dark running", m.Turn, m.Over)
	}
	if m.Players.Light != "computer" {
		t.Errorf("Players.Light = %q, want computer", m.Players.Light)
	}
	if m.Counts.Dark != 2 || m.Counts.Light != 2 {
		t.Errorf("Counts = %+v, want 2/2", m.Counts)
	}
	if len(m.Board) != reversi.Height || m.Board[3] != "---ox---" {
		t.Errorf("Board = %v, want opening rows", m.Board)
	}
	if len(m.ValidMoves) != 4 || m.ValidMoves[0].Notation != "d3" {
		t.Errorf("ValidMoves = %+v, want 4 starting with d3", m.ValidMoves)
	}

	empty := createMatch(t, app, "")
	if empty.Players.Dark != "manual" || empty.Players.Light != "manual" {
		t.Errorf("empty body players = %+v, want manual/manual", empty.Players)
	}
}

func TestCreateMatchValidation(t *testing.T) {
	app := newTestApp(t, time.Hour)

	r := do(t, app, fiber.MethodPost, "/api/v1/matches", `{"dark":"robot"}`)
	if r.status != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", r.status)
	}
	e := decode[ErrorResponse](t, r)
	if e.Code != ErrInvalidRequest || !strings.Contains(e.Details, "dark must be one of") {
		t.Errorf("error = %+v, want INVALID_REQUEST about dark", e)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/matches", strings.NewReader("x"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Errorf("text/plain create status = %d, want 415", resp.StatusCode)
	}
}

func TestGetMatch(t *testing.T) {
	app := newTestApp(t, time.Hour)
	m := createMatch(t, app, "")

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"existing", "/api/v1/matches/" + m.ID, fiber.StatusOK, ""},
		{"bad id", "/api/v1/matches/not-a-uuid", fiber.StatusBadRequest, ErrInvalidRequest},
		{"unknown", "/api/v1/matches/00000000-0000-0000-0000-000000000000", fiber.StatusNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := do(t, app, fiber.MethodGet, tt.path, "")
			if r.status != tt.status {
				t.Fatalf("status = %d, want %d (%s)", r.status, tt.status, r.body)
			}
			if tt.code != "" {
				if e := decode[ErrorResponse](t, r); e.Code != tt.code {
					t.Errorf("Code = %q, want %q", e.Code, tt.code)
				}
			}
		})
	}
}

func TestMakeMove(t *testing.T) {
	app := newTestApp(t, time.Hour)
	m := createMatch(t, app, `{"light":"computer"}`)
	path := "/api/v1/matches/" + m.ID + "/moves"

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"missing y", `{"side":"dark","x":2}`, fiber.StatusBadRequest, ErrInvalidRequest},
		{"off board", `{"side":"dark","x":8,"y":0}`, fiber.StatusBadRequest, ErrInvalidRequest},
		{"bad side", `{"side":"red","x":2,"y":3}`, fiber.StatusBadRequest, ErrInvalidRequest},
		{"wrong turn", `{"side":"light","x":2,"y":2}`, fiber.StatusConflict, ErrNotYourTurn},
		{"illegal", `{"side":"dark","x":0,"y":0}`, fiber.StatusBadRequest, ErrIllegalPlacement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := do(t, app, fiber.MethodPost, path, tt.body)
			if r.status != tt.status {
				t.Fatalf("status = %d, want %d (%s)", r.status, tt.status, r.body)
			}
			if e := decode[ErrorResponse](t, r); e.Code != tt.code {
				t.Errorf("Code = %q, want %q", e.Code, tt.code)
			}
		})
	}

	r := do(t, app, fiber.MethodPost, path, `{"side":"dark","x":2,"y":3}`)
	if r.status != fiber.StatusOK {
		t.Fatalf("legal move status = %d (%s)", r.status, r.body)
	}
	mv := decode[MoveResponse](t, r)
	if mv.Move.At.Notation != "c4" || len(mv.Move.Flipped) != 1 || mv.Move.Result != "change" {
		t.Errorf("move = %+v, want c4 flipping one disk", mv.Move)
	}
	if mv.Match.Turn != "light" || !mv.Match.Thinking {
		t.Errorf("turn %q thinking %v, want light computer thinking", mv.Match.Turn, mv.Match.Thinking)
	}

	r = do(t, app, fiber.MethodPost, path, `{"side":"light","x":2,"y":2}`)
	if e := decode[ErrorResponse](t, r); r.status != fiber.StatusConflict || e.Code != ErrComputerSide {
		t.Errorf("computer side move = %d %+v, want 409 COMPUTER_SIDE", r.status, e)
	}
}

func TestSetPlayerAndWait(t *testing.T) {
	app := newTestApp(t, 10*time.Millisecond)
	m := createMatch(t, app, "")
	base := "/api/v1/matches/" + m.ID

	r := do(t, app, fiber.MethodPut, base+"/players", `{"side":"dark","player":"computer"}`)
	if r.status != fiber.StatusOK {
		t.Fatalf("set player status = %d (%s)", r.status, r.body)
	}
	set := decode[MatchResponse](t, r)
	if set.Players.Dark != "computer" {
		t.Errorf("Players.Dark = %q, want computer", set.Players.Dark)
	}

	r = do(t, app, fiber.MethodGet, base+"/wait?version="+strconv.FormatUint(set.Version, 10), "")
	if r.status != fiber.StatusOK {
		t.Fatalf("wait status = %d (%s)", r.status, r.body)
	}
	waited := decode[MatchResponse](t, r)
	if waited.Version <= set.Version || waited.Turn != "light" {
		t.Errorf("wait returned version %d turn %q, want newer version with light to move", waited.Version, waited.Turn)
	}

	r = do(t, app, fiber.MethodGet, base+"/wait?version=abc", "")
	if r.status != fiber.StatusBadRequest {
		t.Errorf("bad version status = %d, want 400", r.status)
	}

	r = do(t, app, fiber.MethodPut, base+"/players", `{"side":"dark"}`)
	if r.status != fiber.StatusBadRequest {
		t.Errorf("missing player status = %d, want 400", r.status)
	}
}

func TestSaveImportDelete(t *testing.T) {
	app := newTestApp(t, time.Hour)
	m := createMatch(t, app, `{"dark":"manual","light":"computer"}`)
	base := "/api/v1/matches/" + m.ID

	r := do(t, app, fiber.MethodGet, base+"/save", "")
	if r.status != fiber.StatusOK {
		t.Fatalf("save status = %d", r.status)
	}
	if !strings.HasPrefix(string(r.body), "x01\n") {
		t.Errorf("save body = %q, want x01 header", r.body)
	}

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/matches/import", strings.NewReader(string(r.body)))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusCreated {
		t.Errorf("import status = %d, want 201", resp.StatusCode)
	}

	r = do(t, app, fiber.MethodPost, "/api/v1/matches/import", "")
	if e := decode[ErrorResponse](t, r); r.status != fiber.StatusBadRequest || e.Code != ErrParseError {
		t.Errorf("empty import = %d %+v, want 400 PARSE_ERROR", r.status, e)
	}

	if r := do(t, app, fiber.MethodDelete, base, ""); r.status != fiber.StatusNoContent {
		t.Errorf("delete status = %d, want 204", r.status)
	}
	if r := do(t, app, fiber.MethodGet, base, ""); r.status != fiber.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", r.status)
	}
}

func TestRateLimit(t *testing.T) {
	coord, err := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	app := NewFiberApp(coord, Config{RateLimit: 1})

	first := do(t, app, fiber.MethodGet, "/api/v1/matches/00000000-0000-0000-0000-000000000000", "")
	if first.status != fiber.StatusNotFound {
		t.Fatalf("first status = %d, want 404", first.status)
	}
	second := do(t, app, fiber.MethodGet, "/api/v1/matches/00000000-0000-0000-0000-000000000000", "")
	if second.status != fiber.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.status)
	}
	if e := decode[ErrorResponse](t, second); e.Code != ErrRateLimitExceeded {
		t.Errorf("Code = %q, want %q", e.Code, ErrRateLimitExceeded)
	}
}
