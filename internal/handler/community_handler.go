/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"tandem/internal/service"
)

// CommunityHandler exposes the community registry and its membership
// operations.
type CommunityHandler struct {
	communityService service.CommunityService
}

func NewCommunityHandler(communityService service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// Create registers a community with the caller as creator and first member.
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var input service.CommunityInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.communityService.Create(user, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Community created successfully", "community": view})
}

// Update edits the fields of a community the caller created.
func (h *CommunityHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var input service.CommunityUpdate
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.communityService.Update(user, mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Community updated successfully", "community": view})
}

// Delete removes a community the caller created, together with every
// thread registered under it.
func (h *CommunityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	if err := h.communityService.Delete(user, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Community deleted successfully"})
}

// Get returns one community with creator, members and threads expanded.
func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	view, err := h.communityService.Get(user.UUID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Search matches communities by name, username, bio or tag fragment.
func (h *CommunityHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	page, limit := pagination(r)
	views := h.communityService.Search(user.UUID, r.URL.Query().Get("q"), page, limit)
	writeJSON(w, http.StatusOK, map[string]any{"communities": views})
}

// Join adds the caller to a community's member set.
func (h *CommunityHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	if err := h.communityService.Join(user, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Joined community successfully"})
}

// Leave removes the caller from a community's member set. Creators
// cannot leave their own community.
func (h *CommunityHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	if err := h.communityService.Leave(user, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Left community successfully"})
}

// RemoveMember lets the creator expel another member.
func (h *CommunityHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var request struct {
		UserUUID string `json:"userId"`
	}
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, err)
		return
	}

	if err := h.communityService.RemoveMember(user, mux.Vars(r)["id"], request.UserUUID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Member removed successfully"})
}
