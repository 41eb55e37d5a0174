package businesses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-vet-reviews/internal/platform/httpx"
	"pet-vet-reviews/internal/platform/logger"
	"pet-vet-reviews/internal/ports/bizsearch"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/yelp", func(yr chi.Router) {
		yr.Post("/search", searchHandler(svc, log))
		yr.Get("/reviews/{id}", reviewsHandler(svc, log))
	})
}

type searchRequest struct {
	Term       string          `json:"term"`
	Location   string          `json:"location" validate:"required" msg:"location is required"`
	Categories string          `json:"categories"`
	Limit      json.RawMessage `json:"limit" swaggertype:"integer"`
}

// limit acepta número o string numérico; cualquier otra cosa usa el default.
func (req searchRequest) limit() int {
	raw := strings.Trim(strings.TrimSpace(string(req.Limit)), `"`)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

type businessResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	ImageURL     string  `json:"image_url"`
	Rating       float64 `json:"rating"`
	DisplayPhone string  `json:"display_phone"`
	Distance     float64 `json:"distance"`
	Location     string  `json:"location"`
	IsClosed     bool    `json:"is_closed"`
}

type searchResponse struct {
	Yelps []businessResponse `json:"yelps"`
}

type reviewResponse struct {
	Text        string  `json:"text"`
	Rating      float64 `json:"rating"`
	TimeCreated string  `json:"time_created"`
}

// searchHandler godoc
// @Summary  Search veterinary businesses
// @Tags     yelp
// @Accept   json
// @Produce  json
// @Param    body body searchRequest true "search"
// @Success  200 {object} searchResponse
// @Router   /yelp/search [post]
func searchHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if !httpx.Bind(w, r, &req) {
			return
		}

		list, err := svc.Search(r.Context(), SearchInput{
			Term:       req.Term,
			Location:   req.Location,
			Categories: req.Categories,
			Limit:      req.limit(),
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := searchResponse{Yelps: make([]businessResponse, 0, len(list))}
		for _, b := range list {
			out.Yelps = append(out.Yelps, toBusinessResponse(b))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// reviewsHandler godoc
// @Summary  Reviews of a business
// @Tags     yelp
// @Produce  json
// @Param    id path string true "business id"
// @Success  200 {array} reviewResponse
// @Router   /yelp/reviews/{id} [get]
func reviewsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Reviews(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}

		out := make([]reviewResponse, 0, len(list))
		for _, rv := range list {
			out = append(out, reviewResponse{Text: rv.Text, Rating: rv.Rating, TimeCreated: rv.TimeCreated})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, httpx.FieldError{Param: "location", Msg: "location is required"})
	default:
		// ErrUpstream incluido: el cliente solo ve un 500 genérico
		httpx.WriteServerError(w, r, log, err)
	}
}

func toBusinessResponse(b bizsearch.Business) businessResponse {
	return businessResponse{
		ID:           b.ID,
		Name:         b.Name,
		ImageURL:     b.ImageURL,
		Rating:       b.Rating,
		DisplayPhone: b.DisplayPhone,
		Distance:     b.Distance,
		Location:     strings.Join(b.DisplayAddress, ","),
		IsClosed:     b.IsClosed,
	}
}
