package service

import (
	"context"

	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

// BootstrapService seeds a fresh database with a starter category tree so the
// forum is browsable before an operator curates it. Seeding only runs when the
// database has no users and no categories yet.
type BootstrapService struct {
	Store store.Store
}

type seedSubcategory struct {
	Name        string
	Description string
}

type seedCategory struct {
	Name          string
	Description   string
	Subcategories []seedSubcategory
}

var defaultSeed = []seedCategory{
	{
		Name:        "General",
		Description: "General discussion",
		Subcategories: []seedSubcategory{
			{Name: "Introductions", Description: "Say hello"},
			{Name: "Off Topic", Description: "Anything goes"},
		},
	},
	{
		Name:        "Support",
		Description: "Questions and help",
		Subcategories: []seedSubcategory{
			{Name: "Help", Description: "Ask for help"},
		},
	},
}

// IsFresh reports whether the database has never been used.
func (s *BootstrapService) IsFresh(ctx context.Context) (bool, error) {
	usersEmpty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	if !usersEmpty {
		return false, nil
	}

	categories, err := s.Store.Categories().ListCategories(ctx)
	if err != nil {
		return false, err
	}
	return len(categories) == 0, nil
}

// Seed installs the default category tree on a fresh database. It is a no-op
// when anything already exists, so it is safe to call on every startup.
func (s *BootstrapService) Seed(ctx context.Context) error {
	fresh, err := s.IsFresh(ctx)
	if err != nil {
		return err
	}
	if !fresh {
		return nil
	}

	l := slogx.FromContext(ctx)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, categoryDef := range defaultSeed {
			category, err := tx.Categories().CreateCategory(ctx, categoryDef.Name, categoryDef.Description)
			if err != nil {
				return err
			}

			for _, subDef := range categoryDef.Subcategories {
				if _, err := tx.Categories().CreateSubcategory(ctx, category.ID, subDef.Name, subDef.Description); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.Info("seeded default categories", "categories", len(defaultSeed))
	return nil
}
