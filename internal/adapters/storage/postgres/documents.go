package postgres

import (
	"encoding/json"

	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
)

// Sub-documentos guardados como JSONB. Usan los mismos nombres que la API.

type petDoc struct {
	ID             string `json:"_id"`
	Name           string `json:"petName"`
	Gender         string `json:"gender"`
	Age            string `json:"age"`
	Weight         string `json:"weight"`
	Breed          string `json:"breed"`
	SpayedNeutered string `json:"spayed_neutered"`
}

type historyDoc struct {
	ID                string `json:"_id"`
	Pet               string `json:"pet"`
	Weight            string `json:"weight"`
	Hospital          string `json:"hospital"`
	Address           string `json:"address"`
	Zipcode           string `json:"zipcode"`
	ReasonForHospital string `json:"reasonForHospital"`
	VisitTime         string `json:"visitTime"`
}

type toggleDoc struct {
	ID   string `json:"_id"`
	User string `json:"user"`
}

func encodePets(in []profiles.Pet) (string, error) {
	docs := make([]petDoc, 0, len(in))
	for _, p := range in {
		docs = append(docs, petDoc(p))
	}
	b, err := json.Marshal(docs)
	return string(b), err
}

func decodePets(raw []byte) ([]profiles.Pet, error) {
	var docs []petDoc
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, err
		}
	}
	out := make([]profiles.Pet, 0, len(docs))
	for _, d := range docs {
		out = append(out, profiles.Pet(d))
	}
	return out, nil
}

func encodeHistory(in []profiles.VisitHistory) (string, error) {
	docs := make([]historyDoc, 0, len(in))
	for _, h := range in {
		docs = append(docs, historyDoc(h))
	}
	b, err := json.Marshal(docs)
	return string(b), err
}

func decodeHistory(raw []byte) ([]profiles.VisitHistory, error) {
	var docs []historyDoc
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &docs); err != nil {
			return nil, err
		}
	}
	out := make([]profiles.VisitHistory, 0, len(docs))
	for _, d := range docs {
		out = append(out, profiles.VisitHistory(d))
	}
	return out, nil
}

// encodeToggles guarda un objeto {"useful": [...], "nailTrim": [...], ...}.
func encodeToggles(t posts.Toggles) (string, error) {
	doc := make(map[string][]toggleDoc, len(posts.Kinds))
	for _, k := range posts.Kinds {
		list := make([]toggleDoc, 0, len(t[k]))
		for _, e := range t[k] {
			list = append(list, toggleDoc{ID: e.ID, User: e.UserID})
		}
		doc[k.String()] = list
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

func decodeToggles(raw []byte) (posts.Toggles, error) {
	doc := map[string][]toggleDoc{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	}
	out := posts.Toggles{}.Clone()
	for _, k := range posts.Kinds {
		for _, d := range doc[k.String()] {
			out[k] = append(out[k], posts.ToggleEntry{ID: d.ID, UserID: d.User})
		}
	}
	return out, nil
}
