package posts

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-vet-reviews/internal/middleware"
	"pet-vet-reviews/internal/platform/httpx"
	"pet-vet-reviews/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/posts", func(pr chi.Router) {
		pr.Get("/", listHandler(svc, log))
		pr.Get("/user/{userID}", listByUserHandler(svc, log))
		pr.Get("/post/{postID}", getHandler(svc, log))

		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)

			ar.Post("/", createHandler(svc, log))
			ar.Delete("/post/{postID}", deleteHandler(svc, log))

			for _, k := range Kinds {
				ar.Put("/"+k.RouteName()+"/{postID}", setToggleHandler(svc, log, k))
				ar.Put("/not"+k.RouteName()+"/{postID}", clearToggleHandler(svc, log, k))
			}
		})
	})
}

type createRequest struct {
	YelpID    string `json:"yelpID" validate:"required" msg:"Yelp ID is required"`
	VetName   string `json:"vetName"`
	PostTitle string `json:"postTitle"`
	ImageURL  string `json:"image_url"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`

	Useful       json.RawMessage `json:"useful" swaggertype:"boolean"`
	NailTrim     json.RawMessage `json:"nailTrim" swaggertype:"boolean"`
	FleaCheck    json.RawMessage `json:"fleaCheck" swaggertype:"boolean"`
	SpayNeutered json.RawMessage `json:"spay_neutered" swaggertype:"boolean"`
	Laboratory   json.RawMessage `json:"laboratory" swaggertype:"boolean"`
	GIStasis     json.RawMessage `json:"GI_stasis" swaggertype:"boolean"`
}

func (req createRequest) flags() map[ToggleKind]bool {
	return map[ToggleKind]bool{
		Useful:       truthy(req.Useful),
		NailTrim:     truthy(req.NailTrim),
		FleaCheck:    truthy(req.FleaCheck),
		SpayNeutered: truthy(req.SpayNeutered),
		Laboratory:   truthy(req.Laboratory),
		GIStasis:     truthy(req.GIStasis),
	}
}

// truthy sigue la semántica de los clientes JS: null, false, 0 y "" son falsos.
func truthy(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	if len(v) == 0 {
		return false
	}
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n != 0
	}
	return true
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02"}

func parseDate(s string) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

type toggleEntryResponse struct {
	ID   string `json:"_id"`
	User string `json:"user"`
}

type postResponse struct {
	ID        string `json:"_id"`
	User      string `json:"user"`
	UserName  string `json:"userName"`
	YelpID    string `json:"yelpID"`
	VetName   string `json:"vetName"`
	PostTitle string `json:"postTitle"`
	ImageURL  string `json:"image_url"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`

	Useful       []toggleEntryResponse `json:"useful"`
	NailTrim     []toggleEntryResponse `json:"nailTrim"`
	FleaCheck    []toggleEntryResponse `json:"fleaCheck"`
	SpayNeutered []toggleEntryResponse `json:"spay_neutered"`
	Laboratory   []toggleEntryResponse `json:"laboratory"`
	GIStasis     []toggleEntryResponse `json:"GI_stasis"`

	Date time.Time `json:"date"`
}

type pageResponse struct {
	Posts []postResponse `json:"posts"`
	Count int            `json:"count"`
}

// createHandler godoc
// @Summary  Create a post
// @Tags     posts
// @Accept   json
// @Produce  json
// @Security ApiKeyAuth
// @Param    body body createRequest true "post"
// @Success  200 {object} postResponse
// @Router   /posts [post]
func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if !httpx.Bind(w, r, &req) {
			return
		}
		date, ok := parseDate(req.Date)
		if !ok {
			httpx.WriteValidation(w, httpx.FieldError{Param: "date", Msg: "date must be RFC3339 or YYYY-MM-DD"})
			return
		}

		p, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			YelpID:    req.YelpID,
			VetName:   req.VetName,
			PostTitle: req.PostTitle,
			ImageURL:  req.ImageURL,
			Address:   req.Address,
			Phone:     req.Phone,
			Flags:     req.flags(),
			Date:      date,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

// listHandler godoc
// @Summary  List posts, newest first, 5 per page
// @Tags     posts
// @Produce  json
// @Param    page query int false "page (1-based)"
// @Success  200 {object} pageResponse
// @Router   /posts [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.List(r.Context(), httpx.Page(r))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPageResponse(page))
	}
}

func listByUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.ListByUser(r.Context(), chi.URLParam(r, "userID"), httpx.Page(r))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPageResponse(page))
	}
}

func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), chi.URLParam(r, "postID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

// deleteHandler godoc
// @Summary  Delete own post
// @Tags     posts
// @Security ApiKeyAuth
// @Param    postID path string true "post id"
// @Router   /posts/post/{postID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "postID"), middleware.UserID(r.Context())); err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "Post removed")
	}
}

func setToggleHandler(svc *Service, log logger.Logger, kind ToggleKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.SetToggle(r.Context(), chi.URLParam(r, "postID"), middleware.UserID(r.Context()), kind)
		if err != nil {
			writeToggleError(w, r, log, kind, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

func clearToggleHandler(svc *Service, log logger.Logger, kind ToggleKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.ClearToggle(r.Context(), chi.URLParam(r, "postID"), middleware.UserID(r.Context()), kind)
		if err != nil {
			writeToggleError(w, r, log, kind, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

func writeToggleError(w http.ResponseWriter, r *http.Request, log logger.Logger, kind ToggleKind, err error) {
	switch {
	case errors.Is(err, ErrConflict):
		httpx.WriteMessage(w, http.StatusBadRequest, kind.SetMessage())
	case errors.Is(err, ErrInvalidState):
		httpx.WriteMessage(w, http.StatusBadRequest, kind.ClearMessage())
	default:
		writeError(w, r, log, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, httpx.FieldError{Param: "yelpID", Msg: "Yelp ID is required"})
	case errors.Is(err, ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrAuthorNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrForbidden):
		httpx.WriteMessage(w, http.StatusForbidden, "User not authorized")
	default:
		httpx.WriteServerError(w, r, log, err)
	}
}

func toPostResponse(p Post) postResponse {
	return postResponse{
		ID:           p.ID,
		User:         p.UserID,
		UserName:     p.UserName,
		YelpID:       p.YelpID,
		VetName:      p.VetName,
		PostTitle:    p.PostTitle,
		ImageURL:     p.ImageURL,
		Address:      p.Address,
		Phone:        p.Phone,
		Useful:       toEntries(p.Toggles[Useful]),
		NailTrim:     toEntries(p.Toggles[NailTrim]),
		FleaCheck:    toEntries(p.Toggles[FleaCheck]),
		SpayNeutered: toEntries(p.Toggles[SpayNeutered]),
		Laboratory:   toEntries(p.Toggles[Laboratory]),
		GIStasis:     toEntries(p.Toggles[GIStasis]),
		Date:         p.CreatedAt,
	}
}

func toEntries(l ToggleList) []toggleEntryResponse {
	out := make([]toggleEntryResponse, 0, len(l))
	for _, e := range l {
		out = append(out, toggleEntryResponse{ID: e.ID, User: e.UserID})
	}
	return out
}

func toPageResponse(p Page) pageResponse {
	out := pageResponse{Posts: make([]postResponse, 0, len(p.Posts)), Count: p.Count}
	for _, post := range p.Posts {
		out.Posts = append(out.Posts, toPostResponse(post))
	}
	return out
}
