// Package httpx reúne los helpers HTTP compartidos por los handlers de dominio:
// respuestas JSON, validación de requests y paginación.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"pet-vet-reviews/internal/platform/logger"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// FieldError es el formato de error de validación por campo.
type FieldError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

type validationBody struct {
	Errors []FieldError `json:"errors"`
}

type messageBody struct {
	Msg string `json:"msg"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage responde {"msg": msg}.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, messageBody{Msg: msg})
}

func WriteValidation(w http.ResponseWriter, errs ...FieldError) {
	WriteJSON(w, http.StatusBadRequest, validationBody{Errors: errs})
}

// WriteServerError loguea la causa y responde un 500 genérico sin detalles.
func WriteServerError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	logger.FromContext(r.Context(), log).Error("request failed", logger.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.GetReqID(r.Context()),
		"err":        err,
	})
	http.Error(w, "server error", http.StatusInternalServerError)
}

// Bind decodifica el body JSON en dst y aplica los tags `validate`.
// Si falla, escribe el 400 y devuelve false.
func Bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decode(r, dst); err != nil {
		WriteValidation(w, FieldError{Param: "body", Msg: "invalid json"})
		return false
	}
	if errs := Validate(dst); len(errs) > 0 {
		WriteValidation(w, errs...)
		return false
	}
	return true
}

func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			// body vacío: que decida la validación
			return nil
		}
		return err
	}
	return nil
}

// Validate devuelve un FieldError por cada regla incumplida.
// El mensaje sale del tag `msg` del campo; si no existe se usa uno genérico.
func Validate(v any) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Param: "body", Msg: err.Error()}}
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Field() + " is invalid"
		if f, ok := t.FieldByName(fe.StructField()); ok {
			if m := f.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		out = append(out, FieldError{Param: fe.Field(), Msg: msg})
	}
	return out
}

// Page lee ?page=N. Valores ausentes, inválidos o < 1 equivalen a 1.
func Page(r *http.Request) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page")))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
