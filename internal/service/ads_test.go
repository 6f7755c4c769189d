package service_test

import (
	"barter/internal/service"
	"barter/internal/testutils"
	"barter/models"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	owner    int64 = 1
	stranger int64 = 2
)

func newService(t *testing.T) (*service.Service, *testutils.MemStorage) {
	t.Helper()
	store := testutils.NewMemStorage()
	return service.New(store, nil), store
}

func validAd() service.AdInput {
	return service.AdInput{
		Title:       "Тестовое объявление",
		Description: "Это тестовое описание.",
		Category:    "Тестовая категория",
		Condition:   models.ConditionNew,
	}
}

func createAd(t *testing.T, svc *service.Service, ownerID int64, title string) *models.Ad {
	t.Helper()
	in := validAd()
	in.Title = title
	in.Description = "Описание " + title
	ad, err := svc.CreateAd(context.Background(), ownerID, in)
	require.NoError(t, err)
	return ad
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
	require.Contains(t, ve.Fields, field)
}

func TestCreateAdRoundTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	in := validAd()
	in.ImageURL = "https://example.com/bike.png"
	created, err := svc.CreateAd(ctx, owner, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := svc.GetAd(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, owner, got.OwnerID)
	require.Equal(t, in.Title, got.Title)
	require.Equal(t, in.Description, got.Description)
	require.Equal(t, in.ImageURL, got.ImageURL)
	require.Equal(t, in.Category, got.Category)
	require.Equal(t, in.Condition, got.Condition)
	require.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestCreateAdValidation(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		edit  func(*service.AdInput)
		field string
	}{
		{"empty title", func(in *service.AdInput) { in.Title = "" }, "title"},
		{"blank title", func(in *service.AdInput) { in.Title = "   " }, "title"},
		{"long title", func(in *service.AdInput) { in.Title = strings.Repeat("я", 201) }, "title"},
		{"no description", func(in *service.AdInput) { in.Description = "" }, "description"},
		{"no category", func(in *service.AdInput) { in.Category = "" }, "category"},
		{"bad condition", func(in *service.AdInput) { in.Condition = "invalid_choice" }, "condition"},
		{"no condition", func(in *service.AdInput) { in.Condition = "" }, "condition"},
		{"bad image url", func(in *service.AdInput) { in.ImageURL = "not a url" }, "imageUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAd()
			tt.edit(&in)
			_, err := svc.CreateAd(ctx, owner, in)
			requireFieldError(t, err, tt.field)
		})
	}
	require.Equal(t, 0, store.AdCount())

	in := validAd()
	in.Condition = models.ConditionUsed
	_, err := svc.CreateAd(ctx, owner, in)
	require.NoError(t, err)
}

func TestCreateAdTrimsTitle(t *testing.T) {
	svc, _ := newService(t)
	in := validAd()
	in.Title = "  Велосипед  "
	ad, err := svc.CreateAd(context.Background(), owner, in)
	require.NoError(t, err)
	require.Equal(t, "Велосипед", ad.Title)
}

func TestCreateAdRequiresAuthentication(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.CreateAd(context.Background(), 0, validAd())
	require.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestGetAdNotFound(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.GetAd(context.Background(), 404)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateAd(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ad := createAd(t, svc, owner, "Объявление 1")

	title := "Обновленное объявление"
	cond := models.ConditionUsed
	updated, err := svc.UpdateAd(ctx, ad.ID, owner, service.AdPatch{Title: &title, Condition: &cond})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, cond, updated.Condition)
	require.Equal(t, ad.Description, updated.Description)
	require.Equal(t, owner, updated.OwnerID)
	require.Equal(t, ad.CreatedAt, updated.CreatedAt)

	got, err := svc.GetAd(ctx, ad.ID)
	require.NoError(t, err)
	require.Equal(t, title, got.Title)
}

func TestUpdateAdValidationLeavesAdUnchanged(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ad := createAd(t, svc, owner, "Объявление 1")

	empty := ""
	_, err := svc.UpdateAd(ctx, ad.ID, owner, service.AdPatch{Title: &empty})
	requireFieldError(t, err, "title")

	bad := models.Condition("broken")
	_, err = svc.UpdateAd(ctx, ad.ID, owner, service.AdPatch{Condition: &bad})
	requireFieldError(t, err, "condition")

	got, err := svc.GetAd(ctx, ad.ID)
	require.NoError(t, err)
	require.Equal(t, *ad, *got)
}

func TestNonOwnerCannotUpdateOrDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ad := createAd(t, svc, owner, "Объявление 1")

	title := "Чужое"
	_, err := svc.UpdateAd(ctx, ad.ID, stranger, service.AdPatch{Title: &title})
	require.ErrorIs(t, err, service.ErrForbidden)

	// Запрет проверяется раньше валидации
	empty := ""
	_, err = svc.UpdateAd(ctx, ad.ID, stranger, service.AdPatch{Title: &empty})
	require.ErrorIs(t, err, service.ErrForbidden)

	err = svc.DeleteAd(ctx, ad.ID, stranger)
	require.ErrorIs(t, err, service.ErrForbidden)

	got, err := svc.GetAd(ctx, ad.ID)
	require.NoError(t, err)
	require.Equal(t, *ad, *got)
}

func TestDeleteAd(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	ad := createAd(t, svc, owner, "Объявление 1")

	require.NoError(t, svc.DeleteAd(ctx, ad.ID, owner))
	require.Equal(t, 0, store.AdCount())

	_, err := svc.GetAd(ctx, ad.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
	require.ErrorIs(t, svc.DeleteAd(ctx, ad.ID, owner), service.ErrNotFound)
}

func TestListAdsSearch(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	createAd(t, svc, owner, "Объявление 1")
	createAd(t, svc, owner, "Объявление 2")

	page, err := svc.ListAds(ctx, models.AdFilter{Query: "Объявление"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	page, err = svc.ListAds(ctx, models.AdFilter{Query: "Объявление 1"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Объявление 1", page.Items[0].Title)

	// регистр не важен, поиск идет и по описанию
	page, err = svc.ListAds(ctx, models.AdFilter{Query: "описание объявление 2"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
}

func TestListAdsFilters(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	books := validAd()
	books.Title, books.Category, books.Condition = "Книга", "Книги и журналы", models.ConditionUsed
	_, err := svc.CreateAd(ctx, owner, books)
	require.NoError(t, err)

	bike := validAd()
	bike.Title, bike.Category, bike.Condition = "Велосипед", "Спорт", models.ConditionNew
	_, err = svc.CreateAd(ctx, stranger, bike)
	require.NoError(t, err)

	page, err := svc.ListAds(ctx, models.AdFilter{Category: "книги"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Книга", page.Items[0].Title)

	page, err = svc.ListAds(ctx, models.AdFilter{Condition: models.ConditionNew}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Велосипед", page.Items[0].Title)

	// неизвестное состояние игнорируется
	page, err = svc.ListAds(ctx, models.AdFilter{Condition: "broken"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	// остальные фильтры при этом применяются
	page, err = svc.ListAds(ctx, models.AdFilter{Category: "спорт", Condition: "broken"}, 1, 0)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Велосипед", page.Items[0].Title)
}

func TestListAdsPagination(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for i := 0; i < 11; i++ {
		createAd(t, svc, owner, "Объявление")
	}

	page, err := svc.ListAds(ctx, models.AdFilter{}, 1, 0)
	require.NoError(t, err)
	require.Equal(t, service.DefaultPageSize, page.PageSize)
	require.Len(t, page.Items, 4)
	require.Equal(t, 11, page.TotalItems)
	require.Equal(t, 3, page.TotalPages)
	require.True(t, page.HasNext)
	require.False(t, page.HasPrevious)

	// новые первыми
	require.True(t, page.Items[0].CreatedAt.After(page.Items[1].CreatedAt))

	page, err = svc.ListAds(ctx, models.AdFilter{}, 3, 4)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	require.False(t, page.HasNext)
	require.True(t, page.HasPrevious)

	page, err = svc.ListAds(ctx, models.AdFilter{}, 2, 10)
	require.NoError(t, err)
	require.Equal(t, 10, page.PageSize)
	require.Len(t, page.Items, 1)

	for _, size := range []int{-1, 0, 3, 7, 50, 1000} {
		page, err = svc.ListAds(ctx, models.AdFilter{}, 1, size)
		require.NoError(t, err)
		require.Equal(t, service.DefaultPageSize, page.PageSize, "size %d", size)
	}

	// страница за пределами диапазона приводится к последней
	page, err = svc.ListAds(ctx, models.AdFilter{}, 99, 5)
	require.NoError(t, err)
	require.Equal(t, 3, page.Page)
	require.Len(t, page.Items, 1)
}

func TestListAdsEmpty(t *testing.T) {
	svc, _ := newService(t)
	page, err := svc.ListAds(context.Background(), models.AdFilter{}, 1, 0)
	require.NoError(t, err)
	require.Empty(t, page.Items)
	require.Equal(t, 1, page.TotalPages)
	require.False(t, page.HasNext)
}

func TestListUserAds(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	createAd(t, svc, owner, "Моё 1")
	createAd(t, svc, stranger, "Чужое")
	createAd(t, svc, owner, "Моё 2")

	ads, err := svc.ListUserAds(ctx, owner)
	require.NoError(t, err)
	require.Len(t, ads, 2)
	require.Equal(t, "Моё 2", ads[0].Title)

	_, err = svc.ListUserAds(ctx, 0)
	require.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestStorageErrorsPropagate(t *testing.T) {
	svc, store := newService(t)
	store.Err = errors.New("connection refused")

	_, err := svc.ListAds(context.Background(), models.AdFilter{}, 1, 4)
	require.ErrorContains(t, err, "connection refused")
	require.False(t, service.IsValidation(err))
}
