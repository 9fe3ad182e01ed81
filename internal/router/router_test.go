package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"dog-match/internal/adapters/fetchapi"
	"dog-match/internal/adapters/fetchapi/fetchapitest"
	mem "dog-match/internal/adapters/storage/memory"
	"dog-match/internal/domain/browse"
	"dog-match/internal/domain/catalog"
	"dog-match/internal/domain/notice"
	"dog-match/internal/domain/workspace"
	"dog-match/internal/middleware"
	"dog-match/internal/router"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

type env struct {
	remote *fetchapitest.Server
	bff    *httptest.Server
	svc    *workspace.Service

	// workspaces abiertos desde el arranque
	opened atomic.Int64
}

func newEnv(t *testing.T) *env {
	t.Helper()

	remote := fetchapitest.NewServer(nil)
	t.Cleanup(remote.Close)

	e := &env{remote: remote}

	build := fetchapi.NewWorkspaceFactory(fetchapi.Config{BaseURL: remote.URL}, browse.Options{})
	factory := func(ctx context.Context) (*workspace.Workspace, error) {
		e.opened.Add(1)
		return build(ctx)
	}
	e.svc = workspace.NewService(mem.NewWorkspaceRepo(), factory)

	e.bff = httptest.NewServer(router.NewRouter(router.Options{Workspaces: e.svc}))
	t.Cleanup(e.bff.Close)

	return e
}

// workspaceID lee la cookie del workspace que el visitante tiene guardada.
func workspaceID(t *testing.T, c *http.Client, baseURL string) string {
	t.Helper()
	u, err := url.Parse(baseURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	for _, ck := range c.Jar.Cookies(u) {
		if ck.Name == middleware.DefaultWorkspaceCookie {
			return ck.Value
		}
	}
	t.Fatalf("visitor has no %s cookie", middleware.DefaultWorkspaceCookie)
	return ""
}

// newVisitor es un navegador: guarda la cookie del workspace.
func newVisitor(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func TestHTTP_EndToEnd_LoginBrowseMatchLogout(t *testing.T) {
	e := newEnv(t)
	c := newVisitor(t)

	// 1) Sin login no hay navegación
	{
		st, _ := doReq(t, c, e.bff.URL, "GET", "/browse", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 before login, got %d", st)
		}
	}

	// 2) Login
	login(t, c, e.bff.URL)

	// 3) Razas ordenadas
	{
		st, body := doReq(t, c, e.bff.URL, "GET", "/breeds", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 breeds, got %d body=%s", st, string(body))
		}
		var breeds []string
		mustDecode(t, body, &breeds)
		if len(breeds) == 0 || breeds[0] != "Akita" {
			t.Fatalf("expected sorted breeds starting with Akita, got %v", breeds)
		}
	}

	// 4) Primera búsqueda
	state := search(t, c, e.bff.URL, map[string]any{})
	if len(state.Dogs) != catalog.DefaultPageSize {
		t.Fatalf("expected %d dogs, got %d", catalog.DefaultPageSize, len(state.Dogs))
	}
	if state.NextPage == "" || state.PrevPage != "" {
		t.Fatalf("unexpected cursors next=%q prev=%q", state.NextPage, state.PrevPage)
	}

	// 5) Página siguiente y vuelta
	{
		st, body := doReq(t, c, e.bff.URL, "POST", "/browse/page/next", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 next page, got %d body=%s", st, string(body))
		}
		var s browse.State
		mustDecode(t, body, &s)
		if s.CurrentPage != "25" || s.PrevPage == "" {
			t.Fatalf("expected page from=25 with prev, got current=%q prev=%q", s.CurrentPage, s.PrevPage)
		}
	}

	// 6) Filtro de raza
	{
		st, body := doReq(t, c, e.bff.URL, "POST", "/browse/breeds", map[string]any{"breed": "Pug"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 select breed, got %d body=%s", st, string(body))
		}
		var s browse.State
		mustDecode(t, body, &s)
		for _, d := range s.Dogs {
			if d.Breed != "Pug" {
				t.Fatalf("expected only Pug, got %q", d.Breed)
			}
		}
		if s.CurrentPage != "" {
			t.Fatalf("expected first page after filter, got %q", s.CurrentPage)
		}
	}

	// 7) Match sin favoritos => 409 y aviso
	{
		st, _ := doReq(t, c, e.bff.URL, "POST", "/browse/match", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 without favorites, got %d", st)
		}
		if calls := e.remote.Calls("/dogs/match"); len(calls) != 0 {
			t.Fatalf("expected no remote match call, got %d", len(calls))
		}
	}

	// 8) Favoritos + match
	{
		st, body := doReq(t, c, e.bff.URL, "POST", "/browse/favorites/d4", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 toggle favorite, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, c, e.bff.URL, "POST", "/browse/match", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 match, got %d body=%s", st, string(body))
		}
		var m struct {
			Dog catalog.Dog `json:"dog"`
		}
		mustDecode(t, body, &m)
		if m.Dog.ID != "d4" {
			t.Fatalf("expected match d4, got %q", m.Dog.ID)
		}
	}

	// 9) Logout limpia favoritos; el servicio ya no acepta la credencial
	{
		st, body := doReq(t, c, e.bff.URL, "POST", "/session/logout", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 logout, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, c, e.bff.URL, "GET", "/browse", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 after logout, got %d", st)
		}
		st, body = doReq(t, c, e.bff.URL, "GET", "/session", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 session check, got %d", st)
		}
		var s struct {
			Authenticated bool `json:"authenticated"`
		}
		mustDecode(t, body, &s)
		if s.Authenticated {
			t.Fatalf("expected unauthenticated session after logout")
		}
	}

	login(t, c, e.bff.URL)
	{
		st, body := doReq(t, c, e.bff.URL, "GET", "/browse", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 browse, got %d", st)
		}
		var s browse.State
		mustDecode(t, body, &s)
		if len(s.Favorites) != 0 || len(s.SelectedBreeds) != 0 {
			t.Fatalf("expected clean state after re-login, got %+v", s)
		}
	}
}

func TestHTTP_Login_Validation(t *testing.T) {
	e := newEnv(t)
	c := newVisitor(t)

	st, _ := doReq(t, c, e.bff.URL, "POST", "/session/login", map[string]any{"name": "  ", "email": "a@b.c"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 blank name, got %d", st)
	}
	if calls := e.remote.Calls("/auth/login"); len(calls) != 0 {
		t.Fatalf("expected no remote login, got %d", len(calls))
	}

	e.remote.FailNext("/auth/login", http.StatusUnauthorized)
	st, _ = doReq(t, c, e.bff.URL, "POST", "/session/login", map[string]any{"name": "Ana", "email": "ana@example.com"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 rejected login, got %d", st)
	}

	st, body := doReq(t, c, e.bff.URL, "GET", "/notices", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 notices, got %d", st)
	}
	var notices []notice.Notice
	mustDecode(t, body, &notices)
	if len(notices) != 1 || notices[0].Title != "Login Failed" {
		t.Fatalf("expected one Login Failed notice, got %+v", notices)
	}

	st, _ = doReq(t, c, e.bff.URL, "DELETE", "/notices/"+notices[0].ID, nil)
	if st != http.StatusNoContent {
		t.Fatalf("expected 204 dismiss, got %d", st)
	}
	st, _ = doReq(t, c, e.bff.URL, "DELETE", "/notices/"+notices[0].ID, nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 second dismiss, got %d", st)
	}
}

func TestHTTP_Browse_RejectsBadSortAndCursor(t *testing.T) {
	e := newEnv(t)
	c := newVisitor(t)
	login(t, c, e.bff.URL)
	e.remote.ResetCalls()

	st, _ := doReq(t, c, e.bff.URL, "PUT", "/browse/sort", map[string]any{"sort": "color:asc"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 unknown sort, got %d", st)
	}

	st, _ = doReq(t, c, e.bff.URL, "POST", "/browse/page", map[string]any{"cursor": "/dogs/search?size=25"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 cursor without from, got %d", st)
	}

	if calls := e.remote.Calls("/dogs/search"); len(calls) != 0 {
		t.Fatalf("expected no remote search, got %d", len(calls))
	}

	st, body := doReq(t, c, e.bff.URL, "PUT", "/browse/sort", map[string]any{"sort": "name:desc"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 change sort, got %d body=%s", st, string(body))
	}
	var s browse.State
	mustDecode(t, body, &s)
	if s.SortOrder != "name:desc" {
		t.Fatalf("expected sort name:desc, got %q", s.SortOrder)
	}
}

func TestHTTP_Search_RemoteFailureKeepsState(t *testing.T) {
	e := newEnv(t)
	c := newVisitor(t)
	login(t, c, e.bff.URL)

	before := search(t, c, e.bff.URL, map[string]any{})

	e.remote.FailNext("/dogs/search", http.StatusInternalServerError)
	st, body := doReq(t, c, e.bff.URL, "POST", "/browse/search", map[string]any{"from": "25"})
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502 on remote failure, got %d", st)
	}
	var f struct {
		Error string       `json:"error"`
		State browse.State `json:"state"`
	}
	mustDecode(t, body, &f)
	if f.Error != "Failed to search dogs. Please try again." {
		t.Fatalf("unexpected error message %q", f.Error)
	}
	if f.State.CurrentPage != before.CurrentPage || len(f.State.Dogs) != len(before.Dogs) || f.State.IsLoading {
		t.Fatalf("expected unchanged state on failure, got %+v", f.State)
	}
}

func TestHTTP_VisitorsAreIsolated(t *testing.T) {
	e := newEnv(t)
	a := newVisitor(t)
	b := newVisitor(t)

	login(t, a, e.bff.URL)

	st, _ := doReq(t, b, e.bff.URL, "GET", "/browse", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 for second visitor, got %d", st)
	}
	st, _ = doReq(t, a, e.bff.URL, "GET", "/browse", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 for logged visitor, got %d", st)
	}
}

func TestHTTP_Sorts_DoesNotOpenWorkspaces(t *testing.T) {
	e := newEnv(t)

	for i := 0; i < 500; i++ {
		st, body := doReq(t, http.DefaultClient, e.bff.URL, "GET", "/sorts", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 sorts, got %d body=%s", st, string(body))
		}
	}
	if n := e.opened.Load(); n != 0 {
		t.Fatalf("expected no workspaces for /sorts, got %d", n)
	}

	res, err := http.Get(e.bff.URL + "/sorts")
	if err != nil {
		t.Fatalf("get sorts: %v", err)
	}
	defer res.Body.Close()
	if len(res.Cookies()) != 0 {
		t.Fatalf("expected no cookie on /sorts, got %v", res.Cookies())
	}
}

func TestHTTP_Logout_ReleasesWorkspace(t *testing.T) {
	e := newEnv(t)
	c := newVisitor(t)
	login(t, c, e.bff.URL)

	id := workspaceID(t, c, e.bff.URL)
	if _, err := e.svc.Get(context.Background(), id); err != nil {
		t.Fatalf("expected live workspace before logout, got %v", err)
	}

	st, body := doReq(t, c, e.bff.URL, "POST", "/session/logout", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 logout, got %d body=%s", st, string(body))
	}
	if _, err := e.svc.Get(context.Background(), id); !errors.Is(err, workspace.ErrNotFound) {
		t.Fatalf("expected workspace closed after logout, got %v", err)
	}

	// La cookie vieja abre un workspace nuevo, limpio.
	st, _ = doReq(t, c, e.bff.URL, "GET", "/browse", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 on fresh workspace, got %d", st)
	}
	if next := workspaceID(t, c, e.bff.URL); next == id {
		t.Fatalf("expected a new workspace cookie after logout")
	}
}

func TestHTTP_Logout_FailureKeepsWorkspace(t *testing.T) {
	e := newEnv(t)
	c := newVisitor(t)
	login(t, c, e.bff.URL)
	id := workspaceID(t, c, e.bff.URL)

	e.remote.FailNext("/auth/logout", http.StatusInternalServerError)
	st, _ := doReq(t, c, e.bff.URL, "POST", "/session/logout", nil)
	if st != http.StatusBadGateway {
		t.Fatalf("expected 502 failed logout, got %d", st)
	}
	if _, err := e.svc.Get(context.Background(), id); err != nil {
		t.Fatalf("expected workspace kept after failed logout, got %v", err)
	}
	st, _ = doReq(t, c, e.bff.URL, "GET", "/browse", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 browse after failed logout, got %d", st)
	}
}

func TestHTTP_Session_TransientFailureKeepsLogin(t *testing.T) {
	e := newEnv(t)
	c := newVisitor(t)
	login(t, c, e.bff.URL)

	e.remote.FailNext("/dogs/breeds", http.StatusInternalServerError)
	st, body := doReq(t, c, e.bff.URL, "GET", "/session", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 session, got %d", st)
	}
	var s struct {
		Authenticated bool `json:"authenticated"`
	}
	mustDecode(t, body, &s)
	if !s.Authenticated {
		t.Fatalf("expected session kept after a transient remote error")
	}

	st, _ = doReq(t, c, e.bff.URL, "GET", "/browse", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 browse, got %d", st)
	}
}

// Lo que sirve /swagger/doc.json tiene que coincidir con las rutas montadas.
func TestHTTP_SwaggerMatchesRoutes(t *testing.T) {
	h := router.NewRouter(router.Options{Workspaces: workspace.NewService(mem.NewWorkspaceRepo(), nil)})
	routes, ok := h.(chi.Routes)
	if !ok {
		t.Fatalf("expected chi.Routes, got %T", h)
	}

	mounted := map[string]bool{}
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, "/swagger/") {
			return nil
		}
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		mounted[strings.ToLower(method)+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	raw, err := swag.ReadDoc()
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	mustDecode(t, []byte(raw), &doc)

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for method := range ops {
			documented[strings.ToLower(method)+" "+path] = true
		}
	}

	if missing := diff(mounted, documented); len(missing) > 0 {
		t.Fatalf("routes missing from swagger: %v", missing)
	}
	if extra := diff(documented, mounted); len(extra) > 0 {
		t.Fatalf("swagger documents unmounted routes: %v", extra)
	}
}

// -------------------------
// Helpers
// -------------------------

func login(t *testing.T, c *http.Client, baseURL string) {
	t.Helper()
	st, body := doReq(t, c, baseURL, "POST", "/session/login", map[string]any{
		"name":  "Ana",
		"email": "ana@example.com",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}
}

func search(t *testing.T, c *http.Client, baseURL string, payload map[string]any) browse.State {
	t.Helper()
	st, body := doReq(t, c, baseURL, "POST", "/browse/search", payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 search, got %d body=%s", st, string(body))
	}
	var s browse.State
	mustDecode(t, body, &s)
	return s
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, c *http.Client, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	out, _ := io.ReadAll(res.Body)
	return res.StatusCode, out
}

func diff(a, b map[string]bool) []string {
	out := []string{}
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
