package browse

import "dog-match/internal/domain/catalog"

// State es lo que ve la capa de presentación. Snapshot devuelve copias.
type State struct {
	Breeds         []string      `json:"breeds"`
	SelectedBreeds []string      `json:"selected_breeds"`
	SortOrder      catalog.Sort  `json:"sort_order"`
	CurrentPage    string        `json:"current_page"`
	NextPage       string        `json:"next_page"`
	PrevPage       string        `json:"prev_page"`
	Total          int           `json:"total"`
	Dogs           []catalog.Dog `json:"dogs"`
	Favorites      []string      `json:"favorites"`
	IsLoading      bool          `json:"is_loading"`
	MatchedDog     *catalog.Dog  `json:"matched_dog,omitempty"`
	ShowMatch      bool          `json:"show_match"`
}

// Overrides se aplican encima de {size, sort actual, razas seleccionadas}.
// Breeds nil = usar las seleccionadas; Breeds vacío (no nil) = sin filtro.
type Overrides struct {
	Breeds   []string
	ZipCodes []string
	AgeMin   *int
	AgeMax   *int
	Size     int
	From     string
	Sort     catalog.Sort
}

func (s State) clone() State {
	out := s
	out.Breeds = cloneStrings(s.Breeds)
	out.SelectedBreeds = cloneStrings(s.SelectedBreeds)
	out.Favorites = cloneStrings(s.Favorites)
	out.Dogs = append([]catalog.Dog{}, s.Dogs...)
	if s.MatchedDog != nil {
		d := *s.MatchedDog
		out.MatchedDog = &d
	}
	return out
}

func cloneStrings(in []string) []string {
	return append([]string{}, in...)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

// orderByIDs reordena los perros según ids (el servicio no respeta el orden
// al resolver). Ids sin registro se omiten.
func orderByIDs(dogs []catalog.Dog, ids []string) []catalog.Dog {
	byID := make(map[string]catalog.Dog, len(dogs))
	for _, d := range dogs {
		byID[d.ID] = d
	}
	out := make([]catalog.Dog, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out
}
