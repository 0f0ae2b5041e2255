// Package web exposes the catalog over a small read-only HTTP API. Each
// request runs under its own materialization operation, giving the
// identity cache its request-scoped lifecycle.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/metagraph-io/metagraph/internal/catalog/materialize"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/graph"
)

// Handler serves catalog read requests
type Handler struct {
	graph    graph.Graph
	registry *types.Registry
	mat      *materialize.Materializer
	cache    *EntityCache // optional
	log      *zap.Logger
}

// NewHandler creates a handler. cache may be nil to disable response caching.
func NewHandler(g graph.Graph, registry *types.Registry, mat *materialize.Materializer, cache *EntityCache, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		graph:    g,
		registry: registry,
		mat:      mat,
		cache:    cache,
		log:      log,
	}
}

// Routes builds the API router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/entities/{guid}", h.getEntity)
	r.Get("/types", h.listTypes)
	r.Get("/types/{name}", h.getType)
	r.Get("/types/{name}/entities", h.listEntities)
	return r
}

func (h *Handler) getEntity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	guid := chi.URLParam(r, "guid")

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, guid); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
	}

	node, err := h.graph.Node(ctx, guid)
	if err != nil {
		if errors.Is(err, graph.ErrNodeNotFound) {
			writeError(w, http.StatusNotFound, "entity not found")
			return
		}
		h.log.Error("node lookup failed", zap.String("guid", guid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "graph access failed")
		return
	}

	typeName, ok := graph.StringProperty(node, h.mat.Naming().TypeAttributeName())
	if !ok {
		writeError(w, http.StatusInternalServerError, "node carries no type marker")
		return
	}
	desc, ok := h.registry.Get(typeName)
	if !ok {
		writeError(w, http.StatusInternalServerError, "entity type is not registered")
		return
	}

	op := materialize.NewOperation(h.graph)
	result := h.mat.ConstructInstance(ctx, op, desc, node)
	if result == nil {
		writeError(w, http.StatusNotFound, "entity could not be materialized")
		return
	}

	body, err := json.Marshal(RenderValue(result))
	if err != nil {
		h.log.Error("render failed", zap.String("guid", guid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, guid, body); err != nil {
			h.log.Warn("response cache write failed", zap.String("guid", guid), zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) listTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"types": h.registry.List()})
}

func (h *Handler) getType(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	desc, ok := h.registry.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "type not found")
		return
	}
	writeJSON(w, http.StatusOK, renderDescriptor(desc))
}

func (h *Handler) listEntities(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if _, ok := h.registry.Get(name); !ok {
		writeError(w, http.StatusNotFound, "type not found")
		return
	}
	guids, err := h.graph.NodesByType(r.Context(), name)
	if err != nil {
		h.log.Error("entity listing failed", zap.String("type", name), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "graph access failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"type": name, "guids": guids})
}

func renderDescriptor(d *types.Descriptor) map[string]interface{} {
	out := map[string]interface{}{
		"name":     d.Name,
		"category": d.Category.String(),
	}
	if len(d.Attributes) > 0 {
		attrs := make([]map[string]interface{}, 0, len(d.Attributes))
		for _, a := range d.Attributes {
			attrs = append(attrs, map[string]interface{}{
				"name":         a.Name,
				"type":         a.Type.String(),
				"multiplicity": a.Multiplicity.String(),
			})
		}
		out["attributes"] = attrs
	}
	if len(d.SuperTypes) > 0 {
		out["superTypes"] = d.SuperTypes
	}
	if len(d.EnumValues) > 0 {
		out["values"] = d.EnumValues
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
