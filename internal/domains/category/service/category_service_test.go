package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-backend/internal/domains/brand"
	"ecommerce-backend/internal/domains/brand/brandtest"
	"ecommerce-backend/internal/domains/category"
	"ecommerce-backend/internal/domains/category/categorytest"
	"ecommerce-backend/internal/infrastructure/storage"
	"ecommerce-backend/internal/infrastructure/storage/storagetest"
	"ecommerce-backend/internal/shared/softdelete"
)

var admin = uuid.New()

type fixture struct {
	svc    *categoryService
	repo   *categorytest.Memory
	brands *brandtest.Memory
	store  *storagetest.Memory
	nike   *brand.Brand
}

func newFixture() *fixture {
	nike := &brand.Brand{ID: uuid.New(), Name: "Nike", Slug: "nike"}
	f := &fixture{
		repo:   categorytest.NewMemory(),
		brands: brandtest.NewMemory(nike),
		store:  storagetest.NewMemory(),
		nike:   nike,
	}
	f.svc = NewCategoryService(f.repo, f.brands, f.store, storage.NewImageValidator(5<<20, 0), nil).(*categoryService)
	return f
}

func (f *fixture) create(t *testing.T, name string, brands ...string) *category.Category {
	t.Helper()
	c, err := f.svc.Create(context.Background(), admin,
		category.CreateCategoryRequest{Name: name, Brands: brands}, storagetest.ImageFile(t, "cover.png"))
	require.NoError(t, err)
	return c
}

func TestCreate_StoresImageInAssetFolder(t *testing.T) {
	f := newFixture()
	id := f.nike.ID.String()

	c := f.create(t, "Shoes", id, id)
	assert.Equal(t, "shoes", c.Slug)
	assert.Equal(t, []uuid.UUID{f.nike.ID}, c.BrandIDs, "brands de-duplicated")
	assert.Nil(t, c.Description)
	assert.True(t, strings.HasPrefix(c.Image, "test/Category/"+c.AssetFolderID.String()+"/"))
	assert.True(t, f.store.Has(c.Image))
}

func TestCreate_UnknownBrand(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), admin,
		category.CreateCategoryRequest{Name: "Shoes", Brands: []string{f.nike.ID.String(), uuid.NewString()}},
		storagetest.ImageFile(t, "cover.png"))
	assert.ErrorIs(t, err, category.ErrBrandsNotFound)
	assert.Zero(t, f.store.Count())
}

func TestCreate_FrozenBrandCountsAsMissing(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.brands.Freeze(context.Background(), f.nike.ID, admin))

	_, err := f.svc.Create(context.Background(), admin,
		category.CreateCategoryRequest{Name: "Shoes", Brands: []string{f.nike.ID.String()}},
		storagetest.ImageFile(t, "cover.png"))
	assert.ErrorIs(t, err, category.ErrBrandsNotFound)
}

func TestCreate_DuplicateName(t *testing.T) {
	f := newFixture()
	c := f.create(t, "Shoes")

	_, err := f.svc.Create(context.Background(), admin, category.CreateCategoryRequest{Name: "Shoes"}, storagetest.ImageFile(t, "cover.png"))
	assert.ErrorIs(t, err, category.ErrDuplicatedName)

	require.NoError(t, f.svc.Freeze(context.Background(), admin, c.ID))
	_, err = f.svc.Create(context.Background(), admin, category.CreateCategoryRequest{Name: "Shoes"}, storagetest.ImageFile(t, "cover.png"))
	assert.ErrorIs(t, err, category.ErrDuplicatedArchived)
}

func TestCreate_InsertFailureDeletesImage(t *testing.T) {
	f := newFixture()
	f.repo.FailCreate = errors.New("db down")

	_, err := f.svc.Create(context.Background(), admin, category.CreateCategoryRequest{Name: "Shoes"}, storagetest.ImageFile(t, "cover.png"))
	require.Error(t, err)
	assert.Zero(t, f.store.Count())
}

func TestList_SearchesDescription(t *testing.T) {
	f := newFixture()
	desc := "Running and training"
	_, err := f.svc.Create(context.Background(), admin,
		category.CreateCategoryRequest{Name: "Shoes", Description: desc}, storagetest.ImageFile(t, "cover.png"))
	require.NoError(t, err)
	f.create(t, "Hats")

	page, err := f.svc.List(context.Background(), softdelete.PageQuery{Search: "training"}, softdelete.Active)
	require.NoError(t, err)
	require.Len(t, page.Result, 1)
	assert.Equal(t, "Shoes", page.Result[0].Name)
}

func TestUpdate_ReplacesBrands(t *testing.T) {
	f := newFixture()
	c := f.create(t, "Shoes", f.nike.ID.String())

	adidas := &brand.Brand{Name: "Adidas", Slug: "adidas"}
	require.NoError(t, f.brands.Create(context.Background(), adidas))

	name := "Sport Shoes"
	brands := []uuid.UUID{adidas.ID, adidas.ID}
	updated, err := f.svc.Update(context.Background(), admin, c.ID, category.UpdateCategoryRequest{Name: &name, Brands: &brands})
	require.NoError(t, err)
	assert.Equal(t, "sport-shoes", updated.Slug)
	assert.Equal(t, []uuid.UUID{adidas.ID}, updated.BrandIDs)

	missing := []uuid.UUID{uuid.New()}
	_, err = f.svc.Update(context.Background(), admin, c.ID, category.UpdateCategoryRequest{Brands: &missing})
	assert.ErrorIs(t, err, category.ErrBrandsNotFound)
}

// staleReads trả về bản category đã đọc trước đó, giống cache chưa bị xoá
type staleReads struct {
	*categorytest.Memory
	snapshot *category.Category
}

func (s staleReads) FindByID(context.Context, uuid.UUID, softdelete.Mode) (*category.Category, error) {
	cp := *s.snapshot
	return &cp, nil
}

func TestUpdate_NameOnlyKeepsStoredBrands(t *testing.T) {
	f := newFixture()
	c := f.create(t, "Shoes", f.nike.ID.String())

	// brand bị xoá cứng: row đã gỡ brand, bản đọc cũ vẫn còn
	stale := *c
	f.repo.Categories[c.ID].BrandIDs = nil

	svc := NewCategoryService(staleReads{Memory: f.repo, snapshot: &stale}, f.brands, f.store,
		storage.NewImageValidator(5<<20, 0), nil)

	name := "Sport Shoes"
	updated, err := svc.Update(context.Background(), admin, c.ID, category.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "sport-shoes", updated.Slug)
	assert.Empty(t, updated.BrandIDs)
	assert.Empty(t, f.repo.Categories[c.ID].BrandIDs)
}

func TestUpdateAttachment_SwapsWithinFolder(t *testing.T) {
	f := newFixture()
	c := f.create(t, "Shoes")

	updated, err := f.svc.UpdateAttachment(context.Background(), admin, c.ID, storagetest.ImageFile(t, "new.png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(updated.Image, "test/"+c.AssetFolder()+"/"))
	assert.False(t, f.store.Has(c.Image))
	assert.True(t, f.store.Has(updated.Image))

	_, err = f.svc.UpdateAttachment(context.Background(), admin, uuid.New(), storagetest.ImageFile(t, "new.png"))
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	assert.Equal(t, 1, f.store.Count())
}

func TestDelete_RemovesAssetFolder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	c := f.create(t, "Shoes")

	// object khác trong cùng folder (vd. ảnh product)
	_, err := f.store.Upload(ctx, c.AssetFolder()+"/Product/"+uuid.NewString(), storagetest.ImageFile(t, "p.png"))
	require.NoError(t, err)
	other := f.create(t, "Hats")

	assert.ErrorIs(t, f.svc.Delete(ctx, c.ID), category.ErrCategoryNotFound)
	require.NoError(t, f.svc.Freeze(ctx, admin, c.ID))
	require.NoError(t, f.svc.Delete(ctx, c.ID))

	assert.Equal(t, 1, f.store.Count())
	assert.True(t, f.store.Has(other.Image))
}

func TestDelete_InUseKeepsAssets(t *testing.T) {
	f := newFixture()
	c := f.create(t, "Shoes")
	require.NoError(t, f.svc.Freeze(context.Background(), admin, c.ID))
	f.repo.InUse[c.ID] = true

	assert.ErrorIs(t, f.svc.Delete(context.Background(), c.ID), category.ErrCategoryInUse)
	assert.True(t, f.store.Has(c.Image))
}
