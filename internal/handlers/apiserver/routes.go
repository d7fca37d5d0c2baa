package apiserver

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers 汇总 API 服务器的全部处理器。
type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Friend   *FriendHandler
	Plan     *PlanHandler
	Exercise *ExerciseHandler
}

// RegisterRoutes 注册全部路由。/auth 和 /exercises 公开，/api/v1 需要认证。
func RegisterRoutes(r *mux.Router, h Handlers, authMW mux.MiddlewareFunc) {
	// 认证路由
	authRouter := r.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	authRouter.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	authRouter.HandleFunc("/email-exists", h.Auth.EmailExists).Methods(http.MethodGet)

	// 动作库
	exRouter := r.PathPrefix("/exercises").Subrouter()
	exRouter.HandleFunc("", h.Exercise.List).Methods(http.MethodGet)
	exRouter.HandleFunc("/health", h.Exercise.Health).Methods(http.MethodGet)
	exRouter.HandleFunc("/search", h.Exercise.Search).Methods(http.MethodGet)
	exRouter.HandleFunc("/muscle-groups", h.Exercise.MuscleGroups).Methods(http.MethodGet)
	exRouter.HandleFunc("/by-muscle/{muscle}", h.Exercise.ByMuscle).Methods(http.MethodGet)
	exRouter.HandleFunc("/random", h.Exercise.Random).Methods(http.MethodGet)
	exRouter.HandleFunc("/stats", h.Exercise.Stats).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(authMW)

	apiRouter.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)

	// 用户路由
	apiRouter.HandleFunc("/users/me", h.User.GetMyProfileHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/users/me", h.User.UpdateMyProfileHandler).Methods(http.MethodPut)
	apiRouter.HandleFunc("/users/me/theme", h.User.UpdateThemeHandler).Methods(http.MethodPatch)
	apiRouter.HandleFunc("/users/search", h.User.SearchUsersHandler).Methods(http.MethodGet)

	// 好友路由
	friendRouter := apiRouter.PathPrefix("/friends").Subrouter()
	friendRouter.HandleFunc("", h.Friend.ListFriendsHandler).Methods(http.MethodGet)
	friendRouter.HandleFunc("/requests", h.Friend.SendRequestHandler).Methods(http.MethodPost)
	friendRouter.HandleFunc("/requests/incoming", h.Friend.ListIncomingHandler).Methods(http.MethodGet)
	friendRouter.HandleFunc("/requests/{userID:[0-9]+}/accept", h.Friend.AcceptRequestHandler).Methods(http.MethodPost)
	friendRouter.HandleFunc("/requests/{userID:[0-9]+}/decline", h.Friend.DeclineRequestHandler).Methods(http.MethodPost)
	friendRouter.HandleFunc("/{userID:[0-9]+}", h.Friend.RemoveFriendHandler).Methods(http.MethodDelete)
	friendRouter.HandleFunc("/{userID:[0-9]+}/block", h.Friend.BlockHandler).Methods(http.MethodPost)
	friendRouter.HandleFunc("/{userID:[0-9]+}/block", h.Friend.UnblockHandler).Methods(http.MethodDelete)

	// 训练计划
	apiRouter.HandleFunc("/plans/preview", h.Plan.PreviewHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/workouts", h.Plan.CreateWorkoutHandler).Methods(http.MethodPost)
	apiRouter.HandleFunc("/workouts", h.Plan.ListWorkoutsHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/workouts/{id:[0-9]+}", h.Plan.GetWorkoutHandler).Methods(http.MethodGet)
	apiRouter.HandleFunc("/workouts/{id:[0-9]+}/feedback", h.Plan.FeedbackHandler).Methods(http.MethodPost)
}
