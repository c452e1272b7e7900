package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/flapabay/flapabay-engine/internal/app"
	"github.com/flapabay/flapabay-engine/internal/domain"
)

type Handlers struct {
	Reviews *app.ReviewLookupService
	Props   *app.PropertyService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/users/{user_id}/reviews", h.userReviews)
	s.mux.Get("/v1/properties", h.listProperties)
	s.mux.Get("/v1/properties/{id}", h.getProperty)
	s.mux.Post("/v1/properties", h.createProperty)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// userReviews keeps the legacy status/payload contract bit-exact: integrators
// match on these strings.
func (h *Handlers) userReviews(w http.ResponseWriter, r *http.Request) {
	out := h.Reviews.FetchForUser(r.Context(), chi.URLParam(r, "user_id"))
	switch out.Status {
	case app.LookupInvalidID:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid user ID"})
	case app.LookupNotFound:
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "No reviews found for this user"})
	case app.LookupFailed:
		log.Error().Err(out.Err).Int64("user_id", out.UserID).Msg("review lookup failed")
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "An error occurred while fetching reviews",
			"error":   out.Err.Error(),
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user_id": out.UserID,
			"reviews": toReviewViews(out.Reviews),
		})
	}
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	p, err := h.Props.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "property not found")
			return
		}
		log.Error().Err(err).Int64("id", id).Msg("get property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to load property")
		return
	}

	etag, body := calcETagAndBody(toPropertyView(p))
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getProperty body")
	}
}

// filterFromQuery composes the filter from query params. min_price and
// max_price come as a pair.
func filterFromQuery(r *http.Request) (domain.PropertyFilter, error) {
	f := domain.PropertyFilter{}
	q := r.URL.Query()

	if v := q.Get("verified"); v == "1" || v == "true" {
		f = f.Verified()
	}
	if v := q.Get("favorite"); v == "1" || v == "true" {
		f = f.FavoriteOnly()
	}
	if t := q.Get("type"); t != "" {
		f = f.OfType(t)
	}

	minS, maxS := q.Get("min_price"), q.Get("max_price")
	if (minS == "") != (maxS == "") {
		return f, errors.New("min_price and max_price must be given together")
	}
	if minS != "" {
		min, err := strconv.ParseFloat(minS, 64)
		if err != nil {
			return f, errors.New("min_price must be a number")
		}
		max, err := strconv.ParseFloat(maxS, 64)
		if err != nil {
			return f, errors.New("max_price must be a number")
		}
		f = f.WithinPriceRange(min, max)
	}

	limit := 50
	if ls := q.Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			return f, errors.New("limit must be an integer between 1 and 200")
		}
		limit = l
	}
	return f.WithLimit(limit), nil
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	ps, err := h.Props.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("list properties failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to list properties")
		return
	}

	etag, body := calcETagAndBody(map[string]any{"items": toPropertyViews(ps)})
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listProperties body")
	}
}

func (h *Handlers) createProperty(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var in domain.NewPropertyInput
	if err := dec.Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}

	p, err := h.Props.Create(r.Context(), in)
	if err != nil {
		var vErr *domain.InvalidInputError
		if errors.As(err, &vErr) {
			writeProblem(w, http.StatusUnprocessableEntity, "Validation failed", vErr.Error())
			return
		}
		log.Error().Err(err).Msg("create property failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "failed to create property")
		return
	}

	writeJSON(w, http.StatusCreated, toPropertyView(p))
}
