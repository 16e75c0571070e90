package model

import (
	"context"
	"testing"

	"feedback/internal/entity"

	"gorm.io/gorm"
)

type seedFakeRepo struct {
	Repository
	rolesByName map[string]*entity.DbRole
	created     []string
	nextID      uint
}

func newSeedFakeRepo() *seedFakeRepo {
	return &seedFakeRepo{rolesByName: map[string]*entity.DbRole{}, nextID: 1}
}

func (f *seedFakeRepo) GetRoleByName(_ context.Context, name string) (*entity.DbRole, error) {
	if role, ok := f.rolesByName[name]; ok {
		return role, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *seedFakeRepo) CreateRole(_ context.Context, role *entity.DbRole) error {
	if _, ok := f.rolesByName[role.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	role.ID = f.nextID
	f.nextID++
	f.rolesByName[role.Name] = role
	f.created = append(f.created, role.Name)
	return nil
}

func TestSeedDefaultRolesCreatesMissing(t *testing.T) {
	repo := newSeedFakeRepo()

	if err := SeedDefaultRoles(context.Background(), repo); err != nil {
		t.Fatalf("unexpected error seeding roles: %v", err)
	}

	if len(repo.created) != len(entity.BootstrapRoles) {
		t.Fatalf("expected %d roles created, got %d", len(entity.BootstrapRoles), len(repo.created))
	}
	for _, name := range entity.BootstrapRoles {
		if _, ok := repo.rolesByName[name]; !ok {
			t.Errorf("expected role %s to exist", name)
		}
	}
}

func TestSeedDefaultRolesIsIdempotent(t *testing.T) {
	repo := newSeedFakeRepo()

	if err := SeedDefaultRoles(context.Background(), repo); err != nil {
		t.Fatalf("unexpected error on first seed: %v", err)
	}
	created := len(repo.created)

	if err := SeedDefaultRoles(context.Background(), repo); err != nil {
		t.Fatalf("unexpected error on second seed: %v", err)
	}
	if len(repo.created) != created {
		t.Fatalf("expected no additional roles, got %d new", len(repo.created)-created)
	}
}

func TestSeedDefaultRolesPartiallySeeded(t *testing.T) {
	repo := newSeedFakeRepo()
	repo.rolesByName[entity.RoleAdmin] = &entity.DbRole{ID: 7, Name: entity.RoleAdmin}

	if err := SeedDefaultRoles(context.Background(), repo); err != nil {
		t.Fatalf("unexpected error seeding roles: %v", err)
	}

	if len(repo.created) != len(entity.BootstrapRoles)-1 {
		t.Fatalf("expected %d roles created, got %d", len(entity.BootstrapRoles)-1, len(repo.created))
	}
	if repo.rolesByName[entity.RoleAdmin].ID != 7 {
		t.Fatal("expected existing role row to be left untouched")
	}
}

func TestSeedDefaultRolesNilRepository(t *testing.T) {
	if err := SeedDefaultRoles(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
