package posts

import "errors"

var (
	ErrConflict     = errors.New("toggle already set")
	ErrInvalidState = errors.New("toggle not set")
	ErrUnknownKind  = errors.New("unknown toggle kind")
)

// ToggleKind identifica una de las seis listas de votos de un post.
type ToggleKind int

const (
	Useful ToggleKind = iota
	NailTrim
	FleaCheck
	SpayNeutered
	Laboratory
	GIStasis
)

// Kinds en el orden en que se serializan.
var Kinds = []ToggleKind{Useful, NailTrim, FleaCheck, SpayNeutered, Laboratory, GIStasis}

type kindInfo struct {
	field    string // nombre en el documento y en el JSON
	route    string // segmento de la ruta PUT /posts/{route}/{postID}
	setMsg   string
	clearMsg string
}

var kindTable = map[ToggleKind]kindInfo{
	Useful:       {"useful", "useful", "Post already useful", "Post has not yet been useful"},
	NailTrim:     {"nailTrim", "nailTrim", "Nail trim checked", "Nail Trim canceled"},
	FleaCheck:    {"fleaCheck", "fleaCheck", "Flea Checking checked", "Flea Checking canceled"},
	SpayNeutered: {"spay_neutered", "spay_neutere", "Spay or neutere checked", "Spay or neutere canceled"},
	Laboratory:   {"laboratory", "laboratory", "Laboratory checked", "Laboratory canceled"},
	GIStasis:     {"GI_stasis", "GI_stasis", "GI stasis checked", "GI stasis canceled"},
}

func (k ToggleKind) String() string { return kindTable[k].field }

// RouteName es el segmento de URL; difiere de String solo en spay_neutere.
func (k ToggleKind) RouteName() string { return kindTable[k].route }

// SetMessage y ClearMessage son los textos que ve el cliente ante
// ErrConflict y ErrInvalidState respectivamente.
func (k ToggleKind) SetMessage() string   { return kindTable[k].setMsg }
func (k ToggleKind) ClearMessage() string { return kindTable[k].clearMsg }

// ParseToggleKind acepta tanto el nombre de campo como el de ruta.
func ParseToggleKind(s string) (ToggleKind, error) {
	for _, k := range Kinds {
		if info := kindTable[k]; s == info.field || s == info.route {
			return k, nil
		}
	}
	return 0, ErrUnknownKind
}

// ToggleEntry registra el voto de un usuario.
type ToggleEntry struct {
	ID     string
	UserID string
}

// ToggleList es un conjunto ordenado (más reciente primero) con a lo sumo
// una entrada por usuario.
type ToggleList []ToggleEntry

func (l ToggleList) IndexOf(userID string) int {
	for i, e := range l {
		if e.UserID == userID {
			return i
		}
	}
	return -1
}

func (l ToggleList) Has(userID string) bool { return l.IndexOf(userID) >= 0 }

// Add antepone la entrada. Devuelve ErrConflict si el usuario ya está.
func (l ToggleList) Add(e ToggleEntry) (ToggleList, error) {
	if l.Has(e.UserID) {
		return l, ErrConflict
	}
	out := make(ToggleList, 0, len(l)+1)
	out = append(out, e)
	return append(out, l...), nil
}

// Remove quita la entrada del usuario por posición.
// Devuelve ErrInvalidState si no estaba.
func (l ToggleList) Remove(userID string) (ToggleList, error) {
	i := l.IndexOf(userID)
	if i < 0 {
		return l, ErrInvalidState
	}
	out := make(ToggleList, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), nil
}

func (l ToggleList) Users() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.UserID
	}
	return out
}

// Toggles agrupa las seis listas de un post.
type Toggles map[ToggleKind]ToggleList

func (t Toggles) Clone() Toggles {
	out := make(Toggles, len(Kinds))
	for _, k := range Kinds {
		l := make(ToggleList, len(t[k]))
		copy(l, t[k])
		out[k] = l
	}
	return out
}
