package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/repository"
)

func TestRoleServiceDeleteSuperadminBlocked(t *testing.T) {
	svc, store := newRoleFixture(t, domain.Role{ID: "role-sa", Name: "superadmin"})

	err := svc.Delete(context.Background(), "role-sa")
	if !errors.Is(err, ErrSuperadminImmutable) {
		t.Fatalf("Delete = %v, want ErrSuperadminImmutable", err)
	}
	if len(store.deleteCalls) != 0 {
		t.Fatal("superadmin delete must not reach the store")
	}
}

func TestRoleServiceDeleteRoleInUse(t *testing.T) {
	svc, store := newRoleFixture(t, domain.Role{ID: "role-1", Name: "supervisor"})
	svc.WithRoleUsage(staticUsage{inUse: true})

	if err := svc.Delete(context.Background(), "role-1"); !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("Delete = %v, want ErrRoleInUse", err)
	}
	if len(store.deleteCalls) != 0 {
		t.Fatal("in-use delete must not reach the store")
	}
}

func TestRoleServiceDeleteUnknownRole(t *testing.T) {
	svc, _ := newRoleFixture(t, domain.Role{ID: "role-1", Name: "supervisor"})

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("Delete = %v, want ErrRoleNotFound", err)
	}
}

func TestRoleServiceDeleteVanishedUpstream(t *testing.T) {
	svc, store := newRoleFixture(t, domain.Role{ID: "role-1", Name: "supervisor"})
	store.deleteErr = repository.ErrNotFound

	err := svc.Delete(context.Background(), "role-1")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Delete = %v, want repository.ErrNotFound", err)
	}
}

func TestRoleServiceDeleteRefreshesDependents(t *testing.T) {
	svc, store := newRoleFixture(t, domain.Role{ID: "role-1", Name: "supervisor"})
	svc.WithRoleUsage(staticUsage{inUse: false})

	dep := &refreshRecorder{}
	svc.WithDependent(dep)

	if err := svc.Delete(context.Background(), "role-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.deleteCalls) != 1 || store.deleteCalls[0] != "role-1" {
		t.Fatalf("unexpected delete calls: %v", store.deleteCalls)
	}
	if store.listCalls == 0 {
		t.Fatal("expected a role refresh after delete")
	}
	if dep.calls != 1 {
		t.Fatalf("dependent refreshes = %d, want 1", dep.calls)
	}
}

func TestRoleServiceGetReturnsCopy(t *testing.T) {
	svc, _ := newRoleFixture(t, domain.Role{
		ID:          "role-1",
		Name:        "supervisor",
		Permissions: domain.NewPermissionSet("5"),
	})

	first, err := svc.Get("role-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	first.Permissions.Add("6")

	second, _ := svc.Get("role-1")
	if second.Permissions.Has("6") {
		t.Fatal("mutating a returned role must not affect the cache")
	}
}
