package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"dog-match/internal/domain/browse"
	"dog-match/internal/domain/catalog"
	"dog-match/internal/domain/notice"
	"dog-match/internal/domain/workspace"
)

const prompt = "dogmatch> "

var errQuit = errors.New("quit")

// PromptFunc devuelve nombre y email para el login.
type PromptFunc func() (name, email string, err error)

// Shell es el navegador de texto sobre un workspace.
type Shell struct {
	ws     *workspace.Workspace
	in     *bufio.Scanner
	out    io.Writer
	prompt PromptFunc
}

func NewShell(ws *workspace.Workspace, in io.Reader, out io.Writer, p PromptFunc) *Shell {
	return &Shell{
		ws:     ws,
		in:     bufio.NewScanner(in),
		out:    out,
		prompt: p,
	}
}

// Run: sondea la sesión, hace login si hace falta, busca la primera página y
// después lee comandos hasta quit/logout/EOF.
func (s *Shell) Run(ctx context.Context) error {
	if !s.ws.Session.CheckSession(ctx) {
		name, email, err := s.prompt()
		if err != nil {
			return err
		}
		if err := login(ctx, s.ws.Session, name, email); err != nil {
			s.flushNotices()
			return err
		}
	}

	_, _ = s.ws.Browse.LoadBreeds(ctx)
	_ = s.ws.Browse.Search(ctx, browse.Overrides{})
	s.render()

	for {
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}

		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		err := s.exec(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			// Los fallos remotos ya quedaron como aviso.
			s.flushNotices()
			continue
		}
	}
}

func (s *Shell) exec(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	arg := strings.TrimSpace(rest)
	ctrl := s.ws.Browse

	switch strings.ToLower(cmd) {
	case "help", "?":
		s.help()
		return nil

	case "quit", "exit", "q":
		return errQuit

	case "search":
		o, err := parseSearchArgs(arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return nil
		}
		return s.after(ctrl.Search(ctx, o))

	case "add":
		if arg == "" {
			fmt.Fprintln(s.out, "usage: add <breed>")
			return nil
		}
		return s.after(ctrl.SelectBreed(ctx, arg))

	case "rm":
		if arg == "" {
			fmt.Fprintln(s.out, "usage: rm <breed>")
			return nil
		}
		return s.after(ctrl.RemoveBreed(ctx, arg))

	case "sort":
		so, err := catalog.ParseSort(arg)
		if err != nil {
			fmt.Fprintln(s.out, "usage: sort <breed|name|age>:<asc|desc>")
			for _, opt := range catalog.SortOptions() {
				fmt.Fprintf(s.out, "  %-10s %s\n", opt.Value, opt.Label)
			}
			return nil
		}
		return s.after(ctrl.ChangeSort(ctx, so))

	case "next":
		return s.after(ctrl.NextPage(ctx))

	case "prev":
		return s.after(ctrl.PrevPage(ctx))

	case "fav":
		if arg == "" {
			fmt.Fprintln(s.out, "usage: fav <dog id>")
			return nil
		}
		if ctrl.ToggleFavorite(arg) {
			fmt.Fprintf(s.out, "added %s to favorites\n", arg)
		} else {
			fmt.Fprintf(s.out, "removed %s from favorites\n", arg)
		}
		return nil

	case "favs":
		favs := ctrl.Favorites()
		if len(favs) == 0 {
			fmt.Fprintln(s.out, "no favorites yet")
			return nil
		}
		fmt.Fprintf(s.out, "favorites (%d): %s\n", len(favs), strings.Join(favs, ", "))
		return nil

	case "match":
		dog, err := ctrl.FindMatch(ctx)
		if err != nil {
			return err
		}
		s.flushNotices()
		fmt.Fprintf(s.out, "%s, %s, %s, zip %s\n", dog.Name, dog.Breed, dog.AgeLabel(), dog.ZipCode)
		ctrl.DismissMatch()
		return nil

	case "breeds":
		breeds, err := ctrl.LoadBreeds(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, strings.Join(breeds, ", "))
		return nil

	case "notices":
		s.flushNotices()
		return nil

	case "logout":
		if err := s.ws.Session.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "logged out")
		return errQuit

	default:
		fmt.Fprintf(s.out, "unknown command %q (try help)\n", cmd)
		return nil
	}
}

// after pinta la página si la acción salió bien.
func (s *Shell) after(err error) error {
	if err != nil {
		return err
	}
	s.render()
	return nil
}

func (s *Shell) render() {
	st := s.ws.Browse.Snapshot()

	filter := "all breeds"
	if len(st.SelectedBreeds) > 0 {
		filter = strings.Join(st.SelectedBreeds, ", ")
	}
	page := "first"
	if st.CurrentPage != "" {
		page = "from " + st.CurrentPage
	}
	fmt.Fprintf(s.out, "%d dogs | %s | sort %s | page %s\n", st.Total, filter, st.SortOrder, page)

	favs := map[string]bool{}
	for _, id := range st.Favorites {
		favs[id] = true
	}

	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tNAME\tBREED\tAGE\tZIP")
	for _, d := range st.Dogs {
		mark := ""
		if favs[d.ID] {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", mark, d.ID, d.Name, d.Breed, d.AgeLabel(), d.ZipCode)
	}
	_ = w.Flush()

	var nav []string
	if st.PrevPage != "" {
		nav = append(nav, "prev")
	}
	if st.NextPage != "" {
		nav = append(nav, "next")
	}
	if len(nav) > 0 {
		fmt.Fprintf(s.out, "more: %s\n", strings.Join(nav, " / "))
	}

	s.flushNotices()
}

func (s *Shell) flushNotices() {
	for _, n := range s.ws.Notices.Drain() {
		tag := "i"
		if n.Level == notice.LevelError {
			tag = "!"
		}
		fmt.Fprintf(s.out, "[%s] %s: %s\n", tag, n.Title, n.Message)
	}
}

func (s *Shell) help() {
	fmt.Fprint(s.out, `commands:
  search [zip=A,B] [min=N] [max=N] [breeds=A,B]   search with filters
  add <breed>          filter by breed
  rm <breed>           remove breed filter
  sort <field:dir>     breed|name|age : asc|desc
  next | prev          page through results
  fav <id>             toggle favorite
  favs                 list favorites
  match                ask for a match among favorites
  breeds               list breeds
  notices              show pending notices
  logout               log out and leave
  quit                 leave without logging out
`)
}

// parseSearchArgs entiende key=value separados por espacio.
func parseSearchArgs(arg string) (browse.Overrides, error) {
	var o browse.Overrides
	for _, tok := range strings.Fields(arg) {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			return o, fmt.Errorf("bad filter %q (use key=value)", tok)
		}
		switch strings.ToLower(k) {
		case "zip", "zips":
			o.ZipCodes = splitList(v)
		case "breeds":
			o.Breeds = splitList(v)
		case "min":
			n, err := strconv.Atoi(v)
			if err != nil {
				return o, errors.New("min must be a number")
			}
			o.AgeMin = &n
		case "max":
			n, err := strconv.Atoi(v)
			if err != nil {
				return o, errors.New("max must be a number")
			}
			o.AgeMax = &n
		default:
			return o, fmt.Errorf("unknown filter %q", k)
		}
	}
	return o, nil
}

func splitList(v string) []string {
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
