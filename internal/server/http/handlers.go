package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/poketeam/pokedex-service/internal/domain"
)

// Request body limit.
const maxRequestBodySize = 1 << 20 // 1 MB

// listPokemons handles GET /api/v1/pokemons.
func (s *Server) listPokemons(w http.ResponseWriter, r *http.Request) {
	page, pageSize, ok := s.parsePageParams(w, r)
	if !ok {
		return
	}

	result, err := s.svc.List(r.Context(), page, pageSize)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// getPokemon handles GET /api/v1/pokemons/{pokemonID}.
func (s *Server) getPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parsePokemonID(w, r)
	if !ok {
		return
	}

	p, err := s.svc.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// createPokemon handles POST /api/v1/pokemons.
func (s *Server) createPokemon(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePokemon
	if !s.decodeBody(w, r, &req) {
		return
	}

	p, err := s.svc.Create(r.Context(), &req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// updatePokemon handles PUT /api/v1/pokemons/{pokemonID}.
func (s *Server) updatePokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parsePokemonID(w, r)
	if !ok {
		return
	}

	var req domain.UpdatePokemon
	if !s.decodeBody(w, r, &req) {
		return
	}

	p, err := s.svc.Update(r.Context(), id, &req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// patchPokemon handles PATCH /api/v1/pokemons/{pokemonID}.
func (s *Server) patchPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parsePokemonID(w, r)
	if !ok {
		return
	}

	var req domain.PatchPokemon
	if !s.decodeBody(w, r, &req) {
		return
	}

	p, err := s.svc.Patch(r.Context(), id, &req)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// deletePokemon handles DELETE /api/v1/pokemons/{pokemonID}.
func (s *Server) deletePokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parsePokemonID(w, r)
	if !ok {
		return
	}

	if err := s.svc.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parsePokemonID parses the {pokemonID} path parameter, writing a 400
// response on malformed input.
func (s *Server) parsePokemonID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "pokemonID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Error:      http.StatusText(http.StatusBadRequest),
			Details:    "id must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

// parsePageParams parses the page and page_size query parameters. Defaults
// and bounds are the service's concern; this only rejects non-numeric input.
func (s *Server) parsePageParams(w http.ResponseWriter, r *http.Request) (page, pageSize int64, ok bool) {
	page = 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeParamError(w, "page must be an integer")
			return 0, 0, false
		}
		page = parsed
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			s.writeParamError(w, "page_size must be an integer")
			return 0, 0, false
		}
		pageSize = parsed
	}

	return page, pageSize, true
}

func (s *Server) writeParamError(w http.ResponseWriter, details string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Error:      http.StatusText(http.StatusBadRequest),
		Details:    details,
	})
}

// decodeBody reads and decodes a JSON request body, writing a 400 response
// on malformed input.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		s.writeParamError(w, "failed to read request body")
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		s.writeParamError(w, "invalid JSON request body")
		return false
	}
	return true
}

// writeDomainError translates a domain error into the JSON error body.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	resp := s.translator.Translate(err)
	if resp.StatusCode >= http.StatusInternalServerError {
		s.logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}
	writeJSON(w, resp.StatusCode, resp)
}
