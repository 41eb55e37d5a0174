package posts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleList_AddRemoveRoundTrip(t *testing.T) {
	start := ToggleList{{ID: "e1", UserID: "a"}, {ID: "e2", UserID: "b"}}

	added, err := start.Add(ToggleEntry{ID: "e3", UserID: "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, added.Users())

	removed, err := added.Remove("c")
	require.NoError(t, err)
	assert.Equal(t, start, removed)
	assert.Len(t, start, 2, "la lista original no se modifica")
}

func TestToggleList_AddDuplicate(t *testing.T) {
	l := ToggleList{{ID: "e1", UserID: "a"}}

	out, err := l.Add(ToggleEntry{ID: "e2", UserID: "a"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, l, out)
}

func TestToggleList_RemoveAbsent(t *testing.T) {
	l := ToggleList{{ID: "e1", UserID: "a"}}

	out, err := l.Remove("b")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, l, out)

	_, err = ToggleList(nil).Remove("a")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestToggleList_RemoveMiddleKeepsOrder(t *testing.T) {
	l := ToggleList{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}}

	out, err := l.Remove("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, out.Users())
	assert.Equal(t, []string{"a", "b", "c"}, l.Users())
}

func TestParseToggleKind(t *testing.T) {
	cases := map[string]ToggleKind{
		"useful":        Useful,
		"nailTrim":      NailTrim,
		"fleaCheck":     FleaCheck,
		"spay_neutered": SpayNeutered,
		"spay_neutere":  SpayNeutered,
		"laboratory":    Laboratory,
		"GI_stasis":     GIStasis,
	}
	for in, want := range cases {
		got, err := ParseToggleKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseToggleKind("likes")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestToggleKind_Names(t *testing.T) {
	assert.Equal(t, "spay_neutered", SpayNeutered.String())
	assert.Equal(t, "spay_neutere", SpayNeutered.RouteName())
	assert.Equal(t, "useful", Useful.RouteName())

	for _, k := range Kinds {
		assert.NotEmpty(t, k.SetMessage(), k.String())
		assert.NotEmpty(t, k.ClearMessage(), k.String())
	}
}

func TestToggles_CloneIsIndependent(t *testing.T) {
	orig := Toggles{Useful: ToggleList{{UserID: "a"}}}

	c := orig.Clone()
	c[Useful][0].UserID = "z"
	c[NailTrim] = append(c[NailTrim], ToggleEntry{UserID: "b"})

	assert.Equal(t, "a", orig[Useful][0].UserID)
	assert.Empty(t, orig[NailTrim])
	assert.Len(t, c, len(Kinds))
}

func TestTruthy(t *testing.T) {
	cases := map[string]bool{
		``:       false,
		`null`:   false,
		`false`:  false,
		`0`:      false,
		`0.0`:    false,
		`""`:     false,
		`true`:   true,
		`1`:      true,
		`"0"`:    true,
		`"yes"`:  true,
		`[]`:     true,
		`{}`:     true,
		` true `: true,
	}
	for in, want := range cases {
		assert.Equal(t, want, truthy(json.RawMessage(in)), "input %q", in)
	}
}
