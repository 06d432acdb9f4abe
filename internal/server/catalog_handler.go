package server

import (
	"net/http"

	"github.com/paulogil93/habitua-te-api/internal/models"
	"github.com/paulogil93/habitua-te-api/internal/repository"
	"github.com/rs/zerolog"
)

// CatalogHandler handles HTTP requests for categories and products
type CatalogHandler struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	log        *zerolog.Logger
}

func NewCatalogHandler(categories repository.CategoryRepository, products repository.ProductRepository, log *zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{categories: categories, products: products, log: log}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeRepoError(w, r, h.log, err, "Category")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(categories, newCategoryView))
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := models.CreateCategoryRequest{Name: p.get("name"), URL: p.get("url")}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	category := &models.Category{Name: req.Name, URL: &req.URL}
	if err := h.categories.Create(r.Context(), category); err != nil {
		writeRepoError(w, r, h.log, err, "Category")
		return
	}
	writeJSON(w, http.StatusCreated, newCategoryView(category))
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Category")
		return
	}
	writeJSON(w, http.StatusOK, newCategoryView(category))
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
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

	req := models.UpdateCategoryRequest{Name: p.optString("name"), URL: p.optString("url")}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categories.Update(r.Context(), id, &req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Category")
		return
	}
	writeJSON(w, http.StatusOK, newCategoryView(category))
}

// DeleteCategory removes a category and, through the cascade, its products
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeRepoError(w, r, h.log, err, "Category")
		return
	}
	writeDeleted(w, "Category", id)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		writeRepoError(w, r, h.log, err, "Product")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(products, newProductView))
}

// ListProductsByCategory answers 404 for an unknown category and an empty
// list for a known one without products.
func (h *CatalogHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.categories.GetByID(r.Context(), id); err != nil {
		writeRepoError(w, r, h.log, err, "Category")
		return
	}
	products, err := h.products.ListByCategory(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Product")
		return
	}
	writeJSON(w, http.StatusOK, mapViews(products, newProductView))
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := readParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := models.CreateProductRequest{
		Name:        p.get("name"),
		Description: p.get("description"),
		Country:     p.optString("country"),
		Picture:     p.optString("picture"),
	}
	categoryID, err := p.optUint("category_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if categoryID != nil {
		req.CategoryID = *categoryID
	}
	if req.Price, err = p.optFloat("price"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !p.blank("proof") {
		if req.Proof, err = p.optFloat("proof"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Available, err = p.optBool("available"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Proof:       req.Proof,
		Country:     req.Country,
		Available:   true,
		Price:       *req.Price,
		Picture:     req.Picture,
	}
	if req.Available != nil {
		product.Available = *req.Available
	}
	if err := h.products.Create(r.Context(), product); err != nil {
		writeRepoError(w, r, h.log, err, "Product")
		return
	}
	writeJSON(w, http.StatusCreated, newProductView(product))
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Product")
		return
	}
	writeJSON(w, http.StatusOK, newProductView(product))
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
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

	req := models.UpdateProductRequest{
		Name:        p.optString("name"),
		Description: p.optString("description"),
		Country:     p.optString("country"),
		Picture:     p.optString("picture"),
		ClearProof:  p.blank("proof"),
	}
	if req.CategoryID, err = p.optUint("category_id"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Price, err = p.optFloat("price"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.ClearProof {
		if req.Proof, err = p.optFloat("proof"); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Available, err = p.optBool("available"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Update(r.Context(), id, &req)
	if err != nil {
		writeRepoError(w, r, h.log, err, "Product")
		return
	}
	writeJSON(w, http.StatusOK, newProductView(product))
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeRepoError(w, r, h.log, err, "Product")
		return
	}
	writeDeleted(w, "Product", id)
}
