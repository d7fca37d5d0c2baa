package apiserver

import (
	"context"
	"net/http"

	"ironmind/internal/services"
)

// FriendHandler handles HTTP requests related to the friend graph.
type FriendHandler struct {
	friendService services.FriendService
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(fs services.FriendService) *FriendHandler {
	return &FriendHandler{friendService: fs}
}

// SendFriendRequestPayload defines the expected JSON body for sending a friend request.
type SendFriendRequestPayload struct {
	FriendCode string `json:"friend_code"`
}

// SendRequestHandler handles POST /api/v1/friends/requests
func (h *FriendHandler) SendRequestHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	var payload SendFriendRequestPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	if _, err := h.friendService.SendRequest(r.Context(), userID, payload.FriendCode); err != nil {
		writeServiceError(w, r, err, "Failed to send friend request")
		return
	}
	writeJSONResponse(w, http.StatusCreated, MessageResponse{Message: "Friend request sent."})
}

// ListIncomingHandler handles GET /api/v1/friends/requests/incoming
func (h *FriendHandler) ListIncomingHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	requests, err := h.friendService.ListIncoming(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load friend requests")
		return
	}
	writeJSONResponse(w, http.StatusOK, requests)
}

// AcceptRequestHandler handles POST /api/v1/friends/requests/{userID}/accept
func (h *FriendHandler) AcceptRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, h.friendService.AcceptRequest, "Friend request accepted.", "Failed to accept friend request")
}

// DeclineRequestHandler handles POST /api/v1/friends/requests/{userID}/decline
func (h *FriendHandler) DeclineRequestHandler(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, h.friendService.DeclineRequest, "Friend request declined.", "Failed to decline friend request")
}

// ListFriendsHandler handles GET /api/v1/friends
func (h *FriendHandler) ListFriendsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	friends, err := h.friendService.ListFriends(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to load friends")
		return
	}
	writeJSONResponse(w, http.StatusOK, friends)
}

// RemoveFriendHandler handles DELETE /api/v1/friends/{userID}
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, h.friendService.RemoveFriend, "Friend removed.", "Failed to remove friend")
}

// BlockHandler handles POST /api/v1/friends/{userID}/block
func (h *FriendHandler) BlockHandler(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, h.friendService.BlockUser, "User blocked.", "Failed to block user")
}

// UnblockHandler handles DELETE /api/v1/friends/{userID}/block
func (h *FriendHandler) UnblockHandler(w http.ResponseWriter, r *http.Request) {
	h.pairAction(w, r, h.friendService.UnblockUser, "User unblocked.", "Failed to unblock user")
}

// pairAction 处理以路径中的 {userID} 为对方的操作。
func (h *FriendHandler) pairAction(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, userID, otherUserID uint) error,
	okMessage, failMessage string,
) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	otherID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}
	if err := action(r.Context(), userID, otherID); err != nil {
		writeServiceError(w, r, err, failMessage)
		return
	}
	writeJSONResponse(w, http.StatusOK, MessageResponse{Message: okMessage})
}
