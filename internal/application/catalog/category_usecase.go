package catalog

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/kynshop/storefront-api/internal/application/dto"
	"github.com/kynshop/storefront-api/internal/domain"
	"github.com/kynshop/storefront-api/internal/domain/entity"
	"github.com/kynshop/storefront-api/internal/domain/repository"
	"github.com/kynshop/storefront-api/pkg/slug"
)

// Códigos de categoría: 2 a 8 alfanuméricos. El código es el namespace de los
// prefijos de SKU, de ahí la restricción.
var categoryCodeRe = regexp.MustCompile(`^[a-zA-Z0-9]{2,8}$`)

// CategoryUseCase CRUD de categorías. El código es inmutable una vez que la
// categoría tiene productos (los SKU emitidos lo llevan embebido).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría con slug derivado del nombre.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" || !categoryCodeRe.MatchString(in.Code) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Slug:      slug.Make(in.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if cat.Slug == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Create(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(id string) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	return toCategoryResponse(cat), nil
}

// List lista todas las categorías.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// Update actualiza nombre y/o código. Cambiar el código con productos
// asociados devuelve ErrCategoryInUse: los SKU ya emitidos lo embeben.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	if in.Code != nil && *in.Code != cat.Code {
		if !categoryCodeRe.MatchString(*in.Code) {
			return nil, domain.ErrInvalidInput
		}
		inUse, err := uc.repo.HasProducts(id)
		if err != nil {
			return nil, err
		}
		if inUse {
			return nil, domain.ErrCategoryInUse
		}
		cat.Code = *in.Code
	}
	if in.Name != nil && *in.Name != "" {
		cat.Name = *in.Name
		cat.Slug = slug.Make(*in.Name)
	}
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Delete elimina una categoría sin productos; con productos devuelve ErrCategoryInUse.
func (uc *CategoryUseCase) Delete(id string) error {
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.repo.HasProducts(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrCategoryInUse
	}
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
