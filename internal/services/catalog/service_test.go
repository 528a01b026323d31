package catalog

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"food-order-system/internal/errs"
	"food-order-system/internal/logger"
	"food-order-system/internal/models"
)

type mockRepo struct {
	categories map[int64]*models.Category
	menus      map[int64]*models.Menu
	nextID     int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		categories: make(map[int64]*models.Category),
		menus:      make(map[int64]*models.Menu),
	}
}

func (m *mockRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	for _, c := range m.categories {
		if c.Name == category.Name {
			return errs.E(errs.Conflict, "category name already exists")
		}
	}
	m.nextID++
	category.ID = m.nextID
	category.CreatedAt = time.Now()
	m.categories[category.ID] = category
	return nil
}

func (m *mockRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockRepo) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, errs.E(errs.NotFound, "category not found")
}

func (m *mockRepo) UpdateCategory(ctx context.Context, id int64, patch *models.CategoryPatch) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, errs.E(errs.NotFound, "category not found")
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	c.UpdatedAt = time.Now()
	return c, nil
}

func (m *mockRepo) DeleteCategory(ctx context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return errs.E(errs.NotFound, "category not found")
	}
	for _, menu := range m.menus {
		if menu.CategoryID == id && menu.DeletedAt == nil {
			return errs.E(errs.Conflict, "category still has menu items")
		}
	}
	delete(m.categories, id)
	return nil
}

func (m *mockRepo) CreateMenu(ctx context.Context, menu *models.Menu) error {
	if _, ok := m.categories[menu.CategoryID]; !ok {
		return errs.E(errs.InvalidInput, "category does not exist")
	}
	m.nextID++
	menu.ID = m.nextID
	menu.CreatedAt = time.Now()
	m.menus[menu.ID] = menu
	return nil
}

func (m *mockRepo) ListMenus(ctx context.Context, filter models.MenuFilter) ([]models.Menu, error) {
	var out []models.Menu
	for _, menu := range m.menus {
		if menu.DeletedAt != nil {
			continue
		}
		if filter.CategoryID != nil && menu.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.IsAvailable != nil && menu.IsAvailable != *filter.IsAvailable {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(menu.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *menu)
	}
	return out, nil
}

func (m *mockRepo) GetMenu(ctx context.Context, id int64) (*models.Menu, error) {
	menu, ok := m.menus[id]
	if !ok || menu.DeletedAt != nil {
		return nil, errs.E(errs.NotFound, "menu item not found")
	}
	return menu, nil
}

func (m *mockRepo) UpdateMenu(ctx context.Context, id int64, patch *models.MenuPatch) (*models.Menu, error) {
	menu, ok := m.menus[id]
	if !ok || menu.DeletedAt != nil {
		return nil, errs.E(errs.NotFound, "menu item not found")
	}
	if patch.Name != nil {
		menu.Name = *patch.Name
	}
	if patch.Price != nil {
		menu.Price = *patch.Price
	}
	if patch.IsAvailable != nil {
		menu.IsAvailable = *patch.IsAvailable
	}
	menu.UpdatedAt = time.Now()
	return menu, nil
}

func (m *mockRepo) SoftDeleteMenu(ctx context.Context, id int64) error {
	menu, ok := m.menus[id]
	if !ok || menu.DeletedAt != nil {
		return errs.E(errs.NotFound, "menu item not found")
	}
	now := time.Now()
	menu.DeletedAt = &now
	return nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, logger.New("catalog-test"))
}

func seedCategory(t *testing.T, svc *Service) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), &models.CreateCategoryRequest{Name: "Mains"}, "req-1")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}
	return category
}

func seedMenu(t *testing.T, svc *Service, categoryID int64, name string, cents int64) *models.Menu {
	t.Helper()
	menu, err := svc.CreateMenu(context.Background(), &models.CreateMenuRequest{
		Name:       name,
		Price:      decimal.NewFromInt(cents),
		CategoryID: categoryID,
	}, "req-1")
	if err != nil {
		t.Fatalf("CreateMenu failed: %v", err)
	}
	return menu
}

func TestCreateMenu_DefaultsToAvailable(t *testing.T) {
	svc := newTestService(newMockRepo())
	category := seedCategory(t, svc)

	menu := seedMenu(t, svc, category.ID, "Burger", 25000)
	if !menu.IsAvailable {
		t.Error("expected new menu item to default to available")
	}
}

func TestCreateMenu_RejectsNonPositivePrice(t *testing.T) {
	svc := newTestService(newMockRepo())
	category := seedCategory(t, svc)

	_, err := svc.CreateMenu(context.Background(), &models.CreateMenuRequest{
		Name:       "Free Burger",
		Price:      decimal.Zero,
		CategoryID: category.ID,
	}, "req-1")
	if errs.KindOf(err) != errs.InvalidInput {
		t.Fatalf("expected InvalidInput for zero price, got %v", err)
	}
}

func TestDeleteMenu_SoftDeleteHidesItem(t *testing.T) {
	svc := newTestService(newMockRepo())
	category := seedCategory(t, svc)
	menu := seedMenu(t, svc, category.ID, "Burger", 25000)

	ctx := context.Background()
	if err := svc.DeleteMenu(ctx, menu.ID, "req-1"); err != nil {
		t.Fatalf("DeleteMenu failed: %v", err)
	}

	if _, err := svc.GetMenu(ctx, menu.ID); errs.KindOf(err) != errs.NotFound {
		t.Errorf("expected NotFound after soft delete, got %v", err)
	}
	menus, err := svc.ListMenus(ctx, models.MenuFilter{})
	if err != nil {
		t.Fatalf("ListMenus failed: %v", err)
	}
	if len(menus) != 0 {
		t.Errorf("soft-deleted item still listed, got %d items", len(menus))
	}

	// deleting again is NotFound, not idempotent success
	if err := svc.DeleteMenu(ctx, menu.ID, "req-1"); errs.KindOf(err) != errs.NotFound {
		t.Errorf("expected NotFound on second delete, got %v", err)
	}
}

func TestDeleteCategory_BlockedByMenus(t *testing.T) {
	svc := newTestService(newMockRepo())
	category := seedCategory(t, svc)
	menu := seedMenu(t, svc, category.ID, "Burger", 25000)

	ctx := context.Background()
	if err := svc.DeleteCategory(ctx, category.ID, "req-1"); errs.KindOf(err) != errs.Conflict {
		t.Fatalf("expected Conflict while menus reference the category, got %v", err)
	}

	if err := svc.DeleteMenu(ctx, menu.ID, "req-1"); err != nil {
		t.Fatalf("DeleteMenu failed: %v", err)
	}
	if err := svc.DeleteCategory(ctx, category.ID, "req-1"); err != nil {
		t.Errorf("expected delete to succeed after menus removed, got %v", err)
	}
}

func TestListMenus_Filters(t *testing.T) {
	svc := newTestService(newMockRepo())
	category := seedCategory(t, svc)
	seedMenu(t, svc, category.ID, "Beef Burger", 25000)
	fries := seedMenu(t, svc, category.ID, "Fries", 10000)

	ctx := context.Background()

	off := false
	if _, err := svc.UpdateMenu(ctx, fries.ID, &models.MenuPatch{IsAvailable: &off}, "req-1"); err != nil {
		t.Fatalf("UpdateMenu failed: %v", err)
	}

	available := true
	menus, err := svc.ListMenus(ctx, models.MenuFilter{IsAvailable: &available})
	if err != nil {
		t.Fatalf("ListMenus failed: %v", err)
	}
	if len(menus) != 1 || menus[0].Name != "Beef Burger" {
		t.Errorf("availability filter returned %d items", len(menus))
	}

	menus, err = svc.ListMenus(ctx, models.MenuFilter{Search: "burger"})
	if err != nil {
		t.Fatalf("ListMenus failed: %v", err)
	}
	if len(menus) != 1 || menus[0].Name != "Beef Burger" {
		t.Errorf("search filter returned %d items", len(menus))
	}
}

func TestUpdateCategory_EmptyPatch(t *testing.T) {
	svc := newTestService(newMockRepo())
	category := seedCategory(t, svc)

	_, err := svc.UpdateCategory(context.Background(), category.ID, &models.CategoryPatch{})
	if errs.KindOf(err) != errs.InvalidInput {
		t.Fatalf("expected InvalidInput for empty patch, got %v", err)
	}
}

func TestUpdateMenu_ChangesPrice(t *testing.T) {
	svc := newTestService(newMockRepo())
	category := seedCategory(t, svc)
	menu := seedMenu(t, svc, category.ID, "Burger", 25000)

	newPrice := decimal.NewFromInt(27500)
	updated, err := svc.UpdateMenu(context.Background(), menu.ID, &models.MenuPatch{Price: &newPrice}, "req-1")
	if err != nil {
		t.Fatalf("UpdateMenu failed: %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Errorf("expected price 27500, got %s", updated.Price)
	}
}
