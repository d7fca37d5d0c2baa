package apiserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"ironmind/internal/exercises"
)

// ExerciseHandler 提供只读的动作库查询。catalog 为 nil 时除健康检查外都返回错误。
type ExerciseHandler struct {
	catalog *exercises.Catalog
}

func NewExerciseHandler(catalog *exercises.Catalog) *ExerciseHandler {
	return &ExerciseHandler{catalog: catalog}
}

// MuscleExercisesResponse 是按肌群查询的结果。
type MuscleExercisesResponse struct {
	Muscle    string               `json:"muscle"`
	Exercises []exercises.Exercise `json:"exercises"`
	Count     int                  `json:"count"`
}

func (h *ExerciseHandler) loaded(w http.ResponseWriter) bool {
	if h.catalog == nil || h.catalog.Len() == 0 {
		writeJSONError(w, "Exercise data not loaded", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// queryInt 读取可选的整数查询参数，缺省时返回 def。
func queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		writeJSONError(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return n, true
}

func (h *ExerciseHandler) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, exercises.ErrEmptyCatalog) {
		writeJSONError(w, "Exercise data not loaded", http.StatusServiceUnavailable)
		return
	}
	writeServiceError(w, r, err, "Exercise query failed")
}

// Health handles GET /exercises/health
func (h *ExerciseHandler) Health(w http.ResponseWriter, r *http.Request) {
	count := 0
	if h.catalog != nil {
		count = h.catalog.Len()
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"status":           "healthy",
		"exercises_loaded": count,
	})
}

// List handles GET /exercises?page=&per_page=
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	if !h.loaded(w) {
		return
	}
	page, ok := queryInt(w, r, "page", 1)
	if !ok {
		return
	}
	perPage, ok := queryInt(w, r, "per_page", exercises.DefaultPerPage)
	if !ok {
		return
	}
	result, err := h.catalog.Page(page, perPage)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

// Search handles GET /exercises/search?q=&muscle=&equipment=&category=&limit=
func (h *ExerciseHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.loaded(w) {
		return
	}
	limit, ok := queryInt(w, r, "limit", exercises.DefaultSearchLimit)
	if !ok {
		return
	}
	if limit < 1 || limit > exercises.MaxSearchLimit {
		writeJSONError(w, "limit must be between 1 and 200", http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	result, err := h.catalog.Search(exercises.Filter{
		Q:         q.Get("q"),
		Muscle:    q.Get("muscle"),
		Equipment: q.Get("equipment"),
		Category:  q.Get("category"),
		Limit:     limit,
	})
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, result)
}

// MuscleGroups handles GET /exercises/muscle-groups
func (h *ExerciseHandler) MuscleGroups(w http.ResponseWriter, r *http.Request) {
	if !h.loaded(w) {
		return
	}
	groups := h.catalog.MuscleGroups()
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"muscle_groups": groups,
		"count":         len(groups),
	})
}

// ByMuscle handles GET /exercises/by-muscle/{muscle}
func (h *ExerciseHandler) ByMuscle(w http.ResponseWriter, r *http.Request) {
	if !h.loaded(w) {
		return
	}
	muscle := mux.Vars(r)["muscle"]
	list, err := h.catalog.ByMuscle(muscle)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, MuscleExercisesResponse{Muscle: muscle, Exercises: list, Count: len(list)})
}

// Random handles GET /exercises/random?count=
func (h *ExerciseHandler) Random(w http.ResponseWriter, r *http.Request) {
	if !h.loaded(w) {
		return
	}
	count, ok := queryInt(w, r, "count", exercises.DefaultRandomCount)
	if !ok {
		return
	}
	if count < 1 || count > exercises.MaxRandomCount {
		writeJSONError(w, "count must be between 1 and 50", http.StatusBadRequest)
		return
	}
	list, err := h.catalog.Random(count)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]interface{}{
		"exercises": list,
		"count":     len(list),
	})
}

// Stats handles GET /exercises/stats
func (h *ExerciseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if !h.loaded(w) {
		return
	}
	stats, err := h.catalog.Stats()
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, stats)
}
