package handlers

import (
	"barter/internal/middleware"
	"barter/internal/service"
	"barter/models"
	"net/http"
)

// GetAdsHandler возвращает страницу объявлений с фильтрами query, category, condition
func (h *Handler) GetAdsHandler(w http.ResponseWriter, r *http.Request) {
	f, page, pageSize := parseAdListParams(r)

	result, err := h.Service.ListAds(r.Context(), f, page, pageSize)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAdHandler(w http.ResponseWriter, r *http.Request) {
	adID, ok := pathID(w, r, "adId")
	if !ok {
		return
	}

	ad, err := h.Service.GetAd(r.Context(), adID)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

// GetUserAdsHandler возвращает объявления текущего пользователя
func (h *Handler) GetUserAdsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	ads, err := h.Service.ListUserAds(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ads)
}

// CreateAdHandler обрабатывает POST /api/ads/new
func (h *Handler) CreateAdHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var input service.AdInput
	if !decodeJSON(w, r, &input) {
		return
	}

	ad, err := h.Service.CreateAd(r.Context(), userID, input)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, ad)
}

// EditAdHandler обрабатывает PATCH /api/ads/{adId}/edit; изменяются только переданные поля
func (h *Handler) EditAdHandler(w http.ResponseWriter, r *http.Request) {
	adID, ok := pathID(w, r, "adId")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())

	var patch service.AdPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	ad, err := h.Service.UpdateAd(r.Context(), adID, userID, patch)
	if err != nil {
		h.writeError(w, r, err, "You are not allowed to edit this ad")
		return
	}
	writeJSON(w, http.StatusOK, ad)
}

func (h *Handler) DeleteAdHandler(w http.ResponseWriter, r *http.Request) {
	adID, ok := pathID(w, r, "adId")
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())

	if err := h.Service.DeleteAd(r.Context(), adID, userID); err != nil {
		h.writeError(w, r, err, "You are not allowed to delete this ad")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Публичный API только для чтения

type adSummaryList struct {
	Count    int                `json:"count"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Results  []models.AdSummary `json:"results"`
}

func (h *Handler) PublicListAdsHandler(w http.ResponseWriter, r *http.Request) {
	f, page, pageSize := parseAdListParams(r)

	result, err := h.Service.ListAds(r.Context(), f, page, pageSize)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}

	resp := adSummaryList{
		Count:    result.TotalItems,
		Page:     result.Page,
		PageSize: result.PageSize,
		Results:  make([]models.AdSummary, 0, len(result.Items)),
	}
	for i := range result.Items {
		resp.Results = append(resp.Results, result.Items[i].Summary())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) PublicGetAdHandler(w http.ResponseWriter, r *http.Request) {
	adID, ok := pathID(w, r, "adId")
	if !ok {
		return
	}

	ad, err := h.Service.GetAd(r.Context(), adID)
	if err != nil {
		h.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ad.Summary())
}
