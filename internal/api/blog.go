package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blogspend/m/internal/logging"
	"blogspend/m/internal/store"
	"blogspend/m/internal/validation"
)

type idResponse struct {
	ID int64 `json:"id"`
}

func (h *Handler) createBlog(w http.ResponseWriter, r *http.Request) {
	var in validation.CreateBlogInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.store.CreateBlog(in.Title, in.Content, userID(r))
	if err != nil {
		logging.Logger.Errorf("create blog failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to create blog")
		return
	}
	respondJSON(w, http.StatusOK, idResponse{ID: id})
}

func (h *Handler) updateBlog(w http.ResponseWriter, r *http.Request) {
	var in validation.UpdateBlogInput
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.store.UpdateBlog(in.ID, in.Title, in.Content)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		logging.Logger.Errorf("update blog failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to update blog")
		return
	}
	respondJSON(w, http.StatusOK, idResponse{ID: in.ID})
}

func (h *Handler) listBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.store.ListBlogs()
	if err != nil {
		logging.Logger.Errorf("list blogs failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to list blogs")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"blogs": blogs})
}

func (h *Handler) getBlog(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid blog id")
		return
	}

	blog, err := h.store.BlogByID(id)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, "blog not found")
		return
	}
	if err != nil {
		logging.Logger.Errorf("fetch blog failed: %v", err)
		respondError(w, http.StatusInternalServerError, "unable to fetch blog")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"blog": blog})
}
