package profiles

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-vet-reviews/internal/middleware"
	"pet-vet-reviews/internal/platform/httpx"
	"pet-vet-reviews/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/profile", func(pr chi.Router) {
		pr.Get("/", listHandler(svc, log))
		pr.Get("/user/{userID}", getByUserHandler(svc, log))

		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)

			ar.Get("/me", meHandler(svc, log))
			ar.Post("/", upsertHandler(svc, log))
			ar.Delete("/", deleteAccountHandler(svc, log))

			ar.Put("/pets", addPetHandler(svc, log))
			ar.Put("/pets/{petID}", updatePetHandler(svc, log))
			ar.Delete("/pets/{petID}", removePetHandler(svc, log))

			ar.Put("/history", addHistoryHandler(svc, log))
			ar.Delete("/history/{historyID}", removeHistoryHandler(svc, log))
		})
	})
}

// numericString acepta el zipcode como número o como string JSON.
type numericString string

func (n *numericString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numericString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = numericString(num.String())
	return nil
}

type upsertRequest struct {
	Zipcode numericString `json:"zipcode" validate:"required,numeric,min=5" msg:"Zip code is 5 digits number"`
	State   string        `json:"state" validate:"required" msg:"State is required"`
	City    string        `json:"city" validate:"required" msg:"City is required"`
}

type addPetRequest struct {
	PetName        string `json:"petName" validate:"required" msg:"Pet name is required"`
	Gender         string `json:"gender" validate:"required" msg:"Pet gender is required"`
	Age            string `json:"age" validate:"required" msg:"Pet age is required"`
	Weight         string `json:"weight" validate:"required" msg:"Pet weight is required"`
	Breed          string `json:"breed" validate:"required" msg:"Pet breed is required"`
	SpayedNeutered string `json:"spayed_neutered" validate:"required" msg:"spayed or neutered is required"`
}

type updatePetRequest struct {
	PetName        string `json:"petName" validate:"required" msg:"Pet name is required"`
	Gender         string `json:"gender"`
	Age            string `json:"age"`
	Weight         string `json:"weight"`
	Breed          string `json:"breed"`
	SpayedNeutered string `json:"spayed_neutered"`
}

type historyRequest struct {
	Pet               string `json:"pet" validate:"required" msg:"Pet name is required"`
	Weight            string `json:"weight"`
	Hospital          string `json:"hospital" validate:"required" msg:"hospital is required"`
	Address           string `json:"address" validate:"required" msg:"Address is required"`
	Zipcode           string `json:"zipcode" validate:"required" msg:"Zip Code is required"`
	ReasonForHospital string `json:"reasonForHospital" validate:"required" msg:"Reason for hospital is required"`
	VisitTime         string `json:"visitTime" validate:"required" msg:"Visit time is required"`
}

type ownerResponse struct {
	ID       string `json:"_id"`
	UserName string `json:"userName"`
}

type petResponse struct {
	ID             string `json:"_id"`
	PetName        string `json:"petName"`
	Gender         string `json:"gender"`
	Age            string `json:"age"`
	Weight         string `json:"weight"`
	Breed          string `json:"breed"`
	SpayedNeutered string `json:"spayed_neutered"`
}

type historyResponse struct {
	ID                string `json:"_id"`
	Pet               string `json:"pet"`
	Weight            string `json:"weight"`
	Hospital          string `json:"hospital"`
	Address           string `json:"address"`
	Zipcode           string `json:"zipcode"`
	ReasonForHospital string `json:"reasonForHospital"`
	VisitTime         string `json:"visitTime"`
}

type profileResponse struct {
	ID      string            `json:"_id"`
	User    ownerResponse     `json:"user"`
	Zipcode int64             `json:"zipcode"`
	State   string            `json:"state"`
	City    string            `json:"city"`
	Pets    []petResponse     `json:"pets"`
	History []historyResponse `json:"history"`
	Date    time.Time         `json:"date"`
}

// meHandler godoc
// @Summary  Get current user's profile
// @Tags     profile
// @Produce  json
// @Security ApiKeyAuth
// @Success  200 {object} profileResponse
// @Router   /profile/me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetOwn(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// upsertHandler godoc
// @Summary  Create or update profile location
// @Tags     profile
// @Accept   json
// @Produce  json
// @Security ApiKeyAuth
// @Success  200 {object} profileResponse
// @Router   /profile [post]
func upsertHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertRequest
		if !httpx.Bind(w, r, &req) {
			return
		}

		p, err := svc.Upsert(r.Context(), middleware.UserID(r.Context()), LocationInput{
			Zipcode: string(req.Zipcode),
			State:   req.State,
			City:    req.City,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// listHandler godoc
// @Summary  List all profiles
// @Tags     profile
// @Produce  json
// @Success  200 {array} profileResponse
// @Router   /profile [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAll(r.Context())
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		out := make([]profileResponse, 0, len(list))
		for _, p := range list {
			out = append(out, toProfileResponse(p))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getByUserHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByUser(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// deleteAccountHandler godoc
// @Summary  Delete profile, user and posts
// @Tags     profile
// @Security ApiKeyAuth
// @Router   /profile [delete]
func deleteAccountHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAccount(r.Context(), middleware.UserID(r.Context())); err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteMessage(w, http.StatusOK, "User deleted")
	}
}

func addPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPetRequest
		if !httpx.Bind(w, r, &req) {
			return
		}
		p, err := svc.AddPet(r.Context(), middleware.UserID(r.Context()), PetInput{
			Name:           req.PetName,
			Gender:         req.Gender,
			Age:            req.Age,
			Weight:         req.Weight,
			Breed:          req.Breed,
			SpayedNeutered: req.SpayedNeutered,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if !httpx.Bind(w, r, &req) {
			return
		}
		p, err := svc.UpdatePet(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"), PetInput{
			Name:           req.PetName,
			Gender:         req.Gender,
			Age:            req.Age,
			Weight:         req.Weight,
			Breed:          req.Breed,
			SpayedNeutered: req.SpayedNeutered,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func removePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.RemovePet(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func addHistoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req historyRequest
		if !httpx.Bind(w, r, &req) {
			return
		}
		p, err := svc.AddHistory(r.Context(), middleware.UserID(r.Context()), HistoryInput{
			Pet:               req.Pet,
			Weight:            req.Weight,
			Hospital:          req.Hospital,
			Address:           req.Address,
			Zipcode:           req.Zipcode,
			ReasonForHospital: req.ReasonForHospital,
			VisitTime:         req.VisitTime,
		})
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func removeHistoryHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.RemoveHistory(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "historyID"))
		if err != nil {
			writeError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpx.WriteValidation(w, httpx.FieldError{Param: "body", Msg: "invalid profile data"})
	case errors.Is(err, ErrNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "There is no profile for this user")
	case errors.Is(err, ErrPetNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "pet does not exist")
	case errors.Is(err, ErrHistoryNotFound):
		httpx.WriteMessage(w, http.StatusNotFound, "history does not exist")
	case errors.Is(err, ErrDuplicatePet):
		httpx.WriteMessage(w, http.StatusBadRequest, "pet duplicate")
	case errors.Is(err, ErrAlreadyExists):
		httpx.WriteMessage(w, http.StatusBadRequest, "Profile already exists")
	default:
		httpx.WriteServerError(w, r, log, err)
	}
}

func toProfileResponse(p Profile) profileResponse {
	out := profileResponse{
		ID:      p.ID,
		User:    ownerResponse{ID: p.UserID, UserName: p.UserName},
		Zipcode: p.Zipcode,
		State:   p.State,
		City:    p.City,
		Pets:    make([]petResponse, 0, len(p.Pets)),
		History: make([]historyResponse, 0, len(p.History)),
		Date:    p.CreatedAt,
	}
	for _, pet := range p.Pets {
		out.Pets = append(out.Pets, petResponse{
			ID:             pet.ID,
			PetName:        pet.Name,
			Gender:         pet.Gender,
			Age:            pet.Age,
			Weight:         pet.Weight,
			Breed:          pet.Breed,
			SpayedNeutered: pet.SpayedNeutered,
		})
	}
	for _, h := range p.History {
		out.History = append(out.History, historyResponse{
			ID:                h.ID,
			Pet:               h.Pet,
			Weight:            h.Weight,
			Hospital:          h.Hospital,
			Address:           h.Address,
			Zipcode:           h.Zipcode,
			ReasonForHospital: h.ReasonForHospital,
			VisitTime:         h.VisitTime,
		})
	}
	return out
}
