package server

import (
	"net/http"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
)

const topFavourites = 5

// FavouriteHandler handles HTTP requests related to favourite products
type FavouriteHandler struct {
	repo repository.FavouriteRepository
	log  *zerolog.Logger
}

func NewFavouriteHandler(repo repository.FavouriteRepository, log *zerolog.Logger) *FavouriteHandler {
	return &FavouriteHandler{repo: repo, log: log}
}

func (h *FavouriteHandler) ListFavourites(w http.ResponseWriter, r *http.Request) {
	favourites, err := h.repo.List(r.Context())
	if err != nil {
		writeRepoError(w, r, h.log, err, "Favourite")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(favourites, newFavouriteView))
}

// TopFive returns the five most favourited products with their counts
func (h *FavouriteHandler) TopFive(w http.ResponseWriter, r *http.Request) {
	top, err := h.repo.TopProducts(r.Context(), topFavourites)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Favourite")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(top, func(pc *models.ProductCount) productCountView {
		return productCountView{productView: newProductView(&pc.Product), Count: pc.Count}
	}))
}

func (h *FavouriteHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.repo.ListByUser(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Favourite")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *FavouriteHandler) GetFavourite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	favourite, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Favourite")
		return
	}
	writeJSON(w, http.StatusOK, newFavouriteView(favourite))
}

// UpsertFavourite updates favourite id, creating it when it does not exist
func (h *FavouriteHandler) UpsertFavourite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.FavouriteRequest
	if req.UserID, err = p.optUint("user_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID, err = p.optUint("product_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	favourite, created, err := h.repo.Upsert(r.Context(), id, &req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Favourite")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, newFavouriteView(favourite))
}

func (h *FavouriteHandler) DeleteFavourite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeRepoError(w, r, h.log, err, "Favourite")
		return
	}
	writeDeleted(w, "Favourite", id)
}
