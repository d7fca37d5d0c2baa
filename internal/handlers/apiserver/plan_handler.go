package apiserver

import (
	"net/http"

	"ironmind/internal/services"
)

// PlanHandler 处理训练计划的生成与保存。
type PlanHandler struct {
	planService services.PlanService
}

func NewPlanHandler(ps services.PlanService) *PlanHandler {
	return &PlanHandler{planService: ps}
}

// PreviewHandler handles POST /api/v1/plans/preview
func (h *PlanHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(w, r); !ok {
		return
	}
	var in services.PlanPreviewInput
	if !decodeJSON(w, r, &in) {
		return
	}
	writeJSONResponse(w, http.StatusOK, h.planService.Preview(in))
}

// CreateWorkoutHandler handles POST /api/v1/workouts
func (h *PlanHandler) CreateWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workout, err := h.planService.GenerateForUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to generate workout")
		return
	}
	writeJSONResponse(w, http.StatusCreated, workout)
}

// ListWorkoutsHandler handles GET /api/v1/workouts?limit=
func (h *PlanHandler) ListWorkoutsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", 0)
	if !ok {
		return
	}
	workouts, err := h.planService.ListWorkouts(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load workouts")
		return
	}
	writeJSONResponse(w, http.StatusOK, workouts)
}

// GetWorkoutHandler handles GET /api/v1/workouts/{id}
func (h *PlanHandler) GetWorkoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	workout, err := h.planService.GetWorkout(r.Context(), userID, workoutID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load workout")
		return
	}
	writeJSONResponse(w, http.StatusOK, workout)
}

// FeedbackHandler handles POST /api/v1/workouts/{id}/feedback
func (h *PlanHandler) FeedbackHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	workoutID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in services.FeedbackInput
	if !decodeJSON(w, r, &in) {
		return
	}
	fb, err := h.planService.AddFeedback(r.Context(), userID, workoutID, in)
	if err != nil {
		writeServiceError(w, r, err, "Failed to save feedback")
		return
	}
	writeJSONResponse(w, http.StatusCreated, fb)
}
