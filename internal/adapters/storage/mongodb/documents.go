package mongodb

import (
	"time"

	"pet-vet-reviews/internal/domain/posts"
	"pet-vet-reviews/internal/domain/profiles"
	"pet-vet-reviews/internal/domain/users"
)

type userDoc struct {
	ID       string    `bson:"_id"`
	Email    string    `bson:"email"`
	Password string    `bson:"password"`
	UserName string    `bson:"userName"`
	Date     time.Time `bson:"date"`
}

func toUserDoc(u users.User) userDoc {
	return userDoc{ID: u.ID, Email: u.Email, Password: u.PasswordHash, UserName: u.UserName, Date: u.CreatedAt}
}

func (d userDoc) toDomain() users.User {
	return users.User{ID: d.ID, Email: d.Email, PasswordHash: d.Password, UserName: d.UserName, CreatedAt: d.Date}
}

type petDoc struct {
	ID             string `bson:"_id"`
	Name           string `bson:"petName"`
	Gender         string `bson:"gender"`
	Age            string `bson:"age"`
	Weight         string `bson:"weight"`
	Breed          string `bson:"breed"`
	SpayedNeutered string `bson:"spayed_neutered"`
}

type historyDoc struct {
	ID                string `bson:"_id"`
	Pet               string `bson:"pet"`
	Weight            string `bson:"weight"`
	Hospital          string `bson:"hospital"`
	Address           string `bson:"address"`
	Zipcode           string `bson:"zipcode"`
	ReasonForHospital string `bson:"reasonForHospital"`
	VisitTime         string `bson:"visitTime"`
}

type profileDoc struct {
	ID      string       `bson:"_id"`
	User    string       `bson:"user"`
	Zipcode int64        `bson:"zipcode"`
	State   string       `bson:"state"`
	City    string       `bson:"city"`
	Pets    []petDoc     `bson:"pets"`
	History []historyDoc `bson:"history"`
	Date    time.Time    `bson:"date"`
	Version int64        `bson:"version"`
}

func toProfileDoc(p profiles.Profile) profileDoc {
	d := profileDoc{
		ID:      p.ID,
		User:    p.UserID,
		Zipcode: p.Zipcode,
		State:   p.State,
		City:    p.City,
		Pets:    make([]petDoc, 0, len(p.Pets)),
		History: make([]historyDoc, 0, len(p.History)),
		Date:    p.CreatedAt,
		Version: p.Version,
	}
	for _, pet := range p.Pets {
		d.Pets = append(d.Pets, petDoc(pet))
	}
	for _, h := range p.History {
		d.History = append(d.History, historyDoc(h))
	}
	return d
}

func (d profileDoc) toDomain() profiles.Profile {
	p := profiles.Profile{
		ID:        d.ID,
		UserID:    d.User,
		Zipcode:   d.Zipcode,
		State:     d.State,
		City:      d.City,
		Pets:      make([]profiles.Pet, 0, len(d.Pets)),
		History:   make([]profiles.VisitHistory, 0, len(d.History)),
		CreatedAt: d.Date,
		Version:   d.Version,
	}
	for _, pet := range d.Pets {
		p.Pets = append(p.Pets, profiles.Pet(pet))
	}
	for _, h := range d.History {
		p.History = append(p.History, profiles.VisitHistory(h))
	}
	return p
}

type toggleDoc struct {
	ID   string `bson:"_id"`
	User string `bson:"user"`
}

// postDoc guarda cada lista de toggles como campo de primer nivel
// (useful, nailTrim, ...) vía el mapa inline.
type postDoc struct {
	ID        string    `bson:"_id"`
	User      string    `bson:"user"`
	UserName  string    `bson:"userName"`
	YelpID    string    `bson:"yelpID"`
	VetName   string    `bson:"vetName"`
	PostTitle string    `bson:"postTitle"`
	ImageURL  string    `bson:"image_url"`
	Address   string    `bson:"address"`
	Phone     string    `bson:"phone"`
	Date      time.Time `bson:"date"`
	Version   int64     `bson:"version"`

	Toggles map[string][]toggleDoc `bson:",inline"`
}

func toPostDoc(p posts.Post) postDoc {
	d := postDoc{
		ID:        p.ID,
		User:      p.UserID,
		UserName:  p.UserName,
		YelpID:    p.YelpID,
		VetName:   p.VetName,
		PostTitle: p.PostTitle,
		ImageURL:  p.ImageURL,
		Address:   p.Address,
		Phone:     p.Phone,
		Date:      p.CreatedAt,
		Version:   p.Version,
		Toggles:   toToggleDocs(p.Toggles),
	}
	return d
}

func toToggleDocs(t posts.Toggles) map[string][]toggleDoc {
	out := make(map[string][]toggleDoc, len(posts.Kinds))
	for _, k := range posts.Kinds {
		list := make([]toggleDoc, 0, len(t[k]))
		for _, e := range t[k] {
			list = append(list, toggleDoc{ID: e.ID, User: e.UserID})
		}
		out[k.String()] = list
	}
	return out
}

func (d postDoc) toDomain() posts.Post {
	p := posts.Post{
		ID:        d.ID,
		UserID:    d.User,
		UserName:  d.UserName,
		YelpID:    d.YelpID,
		VetName:   d.VetName,
		PostTitle: d.PostTitle,
		ImageURL:  d.ImageURL,
		Address:   d.Address,
		Phone:     d.Phone,
		Toggles:   posts.Toggles{}.Clone(),
		CreatedAt: d.Date,
		Version:   d.Version,
	}
	for _, k := range posts.Kinds {
		for _, e := range d.Toggles[k.String()] {
			p.Toggles[k] = append(p.Toggles[k], posts.ToggleEntry{ID: e.ID, UserID: e.User})
		}
	}
	return p
}
