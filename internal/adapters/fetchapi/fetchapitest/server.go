// Package fetchapitest levanta un doble en memoria del servicio remoto de
// perros para tests de otros paquetes.
package fetchapitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"dog-match/internal/domain/catalog"

	"github.com/google/uuid"
)

const CookieName = "fetch-access-token"

// Call registra un request recibido.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	dogs     []catalog.Dog
	tokens   map[string]bool
	calls    []Call
	failures map[string][]int // path -> statuses a devolver en las próximas llamadas
	matchFn  func(ids []string) string
}

// NewServer arranca el doble con los perros dados (o un set por defecto).
func NewServer(dogs []catalog.Dog) *Server {
	if dogs == nil {
		dogs = DefaultDogs(60)
	}
	s := &Server{
		dogs:     dogs,
		tokens:   map[string]bool{},
		failures: map[string][]int{},
		matchFn: func(ids []string) string {
			return ids[0]
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.login)
	mux.HandleFunc("POST /auth/logout", s.logout)
	mux.HandleFunc("GET /dogs/breeds", s.authed(s.breeds))
	mux.HandleFunc("GET /dogs/search", s.authed(s.search))
	mux.HandleFunc("POST /dogs", s.authed(s.resolve))
	mux.HandleFunc("POST /dogs/match", s.authed(s.match))

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// DefaultDogs genera n perros con razas rotando entre cuatro.
func DefaultDogs(n int) []catalog.Dog {
	breeds := []string{"Labrador", "Beagle", "Akita", "Pug"}
	out := make([]catalog.Dog, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, catalog.Dog{
			ID:      fmt.Sprintf("d%d", i),
			Img:     fmt.Sprintf("https://img.example/d%d.jpg", i),
			Name:    fmt.Sprintf("Dog %02d", i),
			Age:     i % 15,
			ZipCode: fmt.Sprintf("%05d", 10000+i%3),
			Breed:   breeds[i%len(breeds)],
		})
	}
	return out
}

// FailNext hace que la próxima llamada a path responda con status.
func (s *Server) FailNext(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], status)
}

// SetMatch cambia la elección del match (por defecto, el primer id).
func (s *Server) SetMatch(fn func(ids []string) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matchFn = fn
}

// Calls devuelve los requests recibidos, opcionalmente filtrados por path.
func (s *Server) Calls(path string) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []Call{}
	for _, c := range s.calls {
		if path == "" || c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body})
		var status int
		if q := s.failures[r.URL.Path]; len(q) > 0 {
			status = q[0]
			s.failures[r.URL.Path] = q[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(CookieName)
		s.mu.Lock()
		ok := err == nil && s.tokens[ck.Value]
		s.mu.Unlock()
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		h(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" || in.Email == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tok := uuid.NewString()
	s.mu.Lock()
	s.tokens[tok] = true
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: tok, Path: "/", HttpOnly: true})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(CookieName); err == nil {
		s.mu.Lock()
		delete(s.tokens, ck.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusOK)
}

func (s *Server) breeds(w http.ResponseWriter, _ *http.Request) {
	seen := map[string]bool{}
	out := []string{}
	// orden de aparición, no alfabético
	for _, d := range s.dogs {
		if !seen[d.Breed] {
			seen[d.Breed] = true
			out = append(out, d.Breed)
		}
	}
	writeJSON(w, out)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	breeds := toSet(q["breeds"])
	zips := toSet(q["zipCodes"])
	ageMin, hasMin := intParam(q, "ageMin")
	ageMax, hasMax := intParam(q, "ageMax")

	size, ok := intParam(q, "size")
	if !ok || size <= 0 {
		size = catalog.DefaultPageSize
	}
	from, _ := intParam(q, "from")
	sortSpec := q.Get("sort")
	if sortSpec == "" {
		sortSpec = string(catalog.DefaultSort)
	}

	matched := make([]catalog.Dog, 0, len(s.dogs))
	for _, d := range s.dogs {
		if len(breeds) > 0 && !breeds[d.Breed] {
			continue
		}
		if len(zips) > 0 && !zips[d.ZipCode] {
			continue
		}
		if hasMin && d.Age < ageMin {
			continue
		}
		if hasMax && d.Age > ageMax {
			continue
		}
		matched = append(matched, d)
	}
	sortDogs(matched, sortSpec)

	res := catalog.SearchResult{ResultIDs: []string{}, Total: len(matched)}
	for i := from; i < len(matched) && i < from+size; i++ {
		res.ResultIDs = append(res.ResultIDs, matched[i].ID)
	}

	cursor := func(f int) string {
		v := url.Values{}
		v.Set("size", strconv.Itoa(size))
		v.Set("from", strconv.Itoa(f))
		v.Set("sort", sortSpec)
		for _, b := range q["breeds"] {
			v.Add("breeds", b)
		}
		return "/dogs/search?" + v.Encode()
	}
	if from+size < len(matched) {
		res.Next = cursor(from + size)
	}
	if from > 0 {
		prev := from - size
		if prev < 0 {
			prev = 0
		}
		res.Prev = cursor(prev)
	}
	writeJSON(w, res)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	byID := map[string]catalog.Dog{}
	for _, d := range s.dogs {
		byID[d.ID] = d
	}
	out := []catalog.Dog{}
	// orden inverso a propósito: el servicio no promete respetar el orden
	for i := len(ids) - 1; i >= 0; i-- {
		if d, ok := byID[ids[i]]; ok {
			out = append(out, d)
		}
	}
	writeJSON(w, out)
}

func (s *Server) match(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil || len(ids) == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	fn := s.matchFn
	s.mu.Unlock()
	writeJSON(w, map[string]string{"match": fn(ids)})
}

func sortDogs(dogs []catalog.Dog, spec string) {
	field, dir, _ := strings.Cut(spec, ":")
	less := func(a, b catalog.Dog) bool {
		switch field {
		case "name":
			return a.Name < b.Name
		case "age":
			if a.Age != b.Age {
				return a.Age < b.Age
			}
			return a.ID < b.ID
		default:
			if a.Breed != b.Breed {
				return a.Breed < b.Breed
			}
			return a.Name < b.Name
		}
	}
	sort.SliceStable(dogs, func(i, j int) bool {
		if dir == "desc" {
			return less(dogs[j], dogs[i])
		}
		return less(dogs[i], dogs[j])
	})
}

func toSet(vals []string) map[string]bool {
	out := map[string]bool{}
	for _, v := range vals {
		out[v] = true
	}
	return out
}

func intParam(q url.Values, key string) (int, bool) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
