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

type postFields struct {
	Content       string   `json:"content"`
	Images        []string `json:"images"`
	CommunityUUID *string  `json:"communityId"`
}

type replyFields struct {
	Content string `json:"content"`
}

type voteFields struct {
	Direction string `json:"direction"`
}

// ThreadHandler exposes the thread tree and its engagement operations.
type ThreadHandler struct {
	threadService service.ThreadService
}

func NewThreadHandler(threadService service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

// CreatePost publishes a new top-level thread.
func (h *ThreadHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var request postFields
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.threadService.CreatePost(user, request.Content, request.Images, request.CommunityUUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// CreateReply attaches a reply under the thread in the path.
func (h *ThreadHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var request replyFields
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.threadService.CreateReply(user, mux.Vars(r)["id"], request.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Get returns one thread with two reply levels and its edit history.
func (h *ThreadHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := actingUser(w, r); !ok {
		return
	}

	view, err := h.threadService.GetThread(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Feed returns a page of top-level threads, newest first.
func (h *ThreadHandler) Feed(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	scope := r.URL.Query().Get("filter")
	if scope == "" {
		scope = service.FeedScopeAll
	}
	page, limit := pagination(r)

	views := h.threadService.ListFeed(user, scope, page, limit)
	writeJSON(w, http.StatusOK, map[string]any{"threads": views})
}

// ToggleLike flips the caller's like mark on a thread.
func (h *ThreadHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	view, added, err := h.threadService.ToggleLike(user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Thread unliked successfully"
	if added {
		message = "Thread liked successfully"
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "thread": view})
}

// ToggleRepost flips the caller's repost mark on someone else's thread.
func (h *ThreadHandler) ToggleRepost(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	added, err := h.threadService.ToggleRepost(user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Repost removed successfully"
	if added {
		message = "Thread reposted successfully"
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "reposted": added})
}

// ToggleBookmark flips the caller's private bookmark on a thread.
func (h *ThreadHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	added, err := h.threadService.ToggleBookmark(user, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Bookmark removed successfully"
	if added {
		message = "Thread bookmarked successfully"
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "bookmarked": added})
}

// Vote applies an upvote or downvote, displacing the opposite direction.
func (h *ThreadHandler) Vote(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var request voteFields
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.threadService.Vote(user, mux.Vars(r)["id"], request.Direction)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Edit replaces the content of the caller's own thread, archiving the
// replaced revision.
func (h *ThreadHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	var request replyFields
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, err)
		return
	}

	view, err := h.threadService.Edit(user, mux.Vars(r)["id"], request.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Thread updated successfully", "thread": view})
}

// Delete soft-deletes the caller's own thread, keeping replies reachable.
func (h *ThreadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := actingUser(w, r)
	if !ok {
		return
	}

	if err := h.threadService.SoftDelete(user, mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Thread deleted successfully"})
}
