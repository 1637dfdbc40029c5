package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/maintdesk/access-service/internal/core/domain"
)

func newRoleFixture(t *testing.T, roles ...domain.Role) (*RoleService, *mockRoleStore) {
	t.Helper()
	store := &mockRoleStore{roles: roles}
	svc := NewRoleService(store, domain.DefaultCatalog(), zaptest.NewLogger(t))
	if len(roles) > 0 {
		if err := svc.Refresh(context.Background()); err != nil {
			t.Fatalf("seed refresh: %v", err)
		}
		store.listCalls = 0
	}
	return svc, store
}

func TestRoleEditorCreateFlow(t *testing.T) {
	svc, store := newRoleFixture(t)

	editor, err := svc.NewEditor(nil)
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	if !editor.IsNew() {
		t.Fatal("expected a create session")
	}

	editor.SetName("technician")
	editor.SetDescription("maintenance technician")
	for _, id := range []domain.PermissionID{"5", "6", "1"} {
		if err := editor.Toggle(id); err != nil {
			t.Fatalf("Toggle(%s): %v", id, err)
		}
	}

	saved, err := editor.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.ID != "role-new" || saved.Name != "technician" {
		t.Fatalf("unexpected saved role: %+v", saved)
	}

	if len(store.createCalls) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(store.createCalls))
	}
	input := store.createCalls[0]
	want := []domain.PermissionID{"1", "5", "6"}
	if len(input.Permissions) != len(want) {
		t.Fatalf("payload permissions = %v, want %v", input.Permissions, want)
	}
	for i, id := range want {
		if input.Permissions[i] != id {
			t.Fatalf("payload permissions = %v, want %v", input.Permissions, want)
		}
	}

	if store.listCalls == 0 {
		t.Fatal("expected a full refresh after save")
	}

	if _, err := editor.Save(context.Background()); !errors.Is(err, ErrEditorClosed) {
		t.Fatalf("second Save = %v, want ErrEditorClosed", err)
	}
}

func TestRoleEditorUpdateExisting(t *testing.T) {
	svc, store := newRoleFixture(t, domain.Role{
		ID:          "role-1",
		Name:        "supervisor",
		Permissions: domain.NewPermissionSet("5", "7"),
	})

	editor, err := svc.EditorByID("role-1")
	if err != nil {
		t.Fatalf("EditorByID: %v", err)
	}
	if editor.IsNew() {
		t.Fatal("expected an update session")
	}

	// Remove 7, add 9.
	if err := editor.Toggle("7"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := editor.Toggle("9"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if _, err := editor.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if len(store.updateCalls) != 1 || store.updateCalls[0].ID != "role-1" {
		t.Fatalf("unexpected update calls: %+v", store.updateCalls)
	}
	got := domain.NewPermissionSet(store.updateCalls[0].Input.Permissions...)
	if !got.Equal(domain.NewPermissionSet("5", "9")) {
		t.Fatalf("payload permissions = %v", store.updateCalls[0].Input.Permissions)
	}
}

func TestRoleEditorToggleFlips(t *testing.T) {
	svc, _ := newRoleFixture(t)
	editor, _ := svc.NewEditor(nil)

	if err := editor.Toggle("3"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !editor.Permissions().Has("3") {
		t.Fatal("expected permission granted after first toggle")
	}
	if err := editor.Toggle("3"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if editor.Permissions().Has("3") {
		t.Fatal("expected permission revoked after second toggle")
	}
}

func TestRoleEditorToggleUnknownPermission(t *testing.T) {
	svc, _ := newRoleFixture(t)
	editor, _ := svc.NewEditor(nil)

	if err := editor.Toggle("999"); !errors.Is(err, ErrUnknownPermission) {
		t.Fatalf("Toggle = %v, want ErrUnknownPermission", err)
	}
	if len(editor.Permissions()) != 0 {
		t.Fatal("failed toggle must not mutate the set")
	}
}

func TestRoleEditorValidationNeverReachesNetwork(t *testing.T) {
	svc, store := newRoleFixture(t)
	editor, _ := svc.NewEditor(nil)
	editor.SetName("   ")

	if _, err := editor.Save(context.Background()); !errors.Is(err, ErrMissingName) {
		t.Fatalf("Save = %v, want ErrMissingName", err)
	}
	if len(store.createCalls) != 0 || store.listCalls != 0 {
		t.Fatal("validation failure must not touch the store")
	}

	// The session stays open; fixing the name makes the same session savable.
	editor.SetName("planner")
	if _, err := editor.Save(context.Background()); err != nil {
		t.Fatalf("Save after fixing name: %v", err)
	}
}

func TestRoleEditorReservedName(t *testing.T) {
	svc, store := newRoleFixture(t)
	editor, _ := svc.NewEditor(nil)
	editor.SetName("superadmin")

	if _, err := editor.Save(context.Background()); !errors.Is(err, ErrReservedName) {
		t.Fatalf("Save = %v, want ErrReservedName", err)
	}
	if len(store.createCalls) != 0 {
		t.Fatal("reserved name must not reach the store")
	}
}

func TestRoleEditorRenameToReservedName(t *testing.T) {
	svc, _ := newRoleFixture(t, domain.Role{ID: "role-1", Name: "supervisor"})

	editor, err := svc.EditorByID("role-1")
	if err != nil {
		t.Fatalf("EditorByID: %v", err)
	}
	editor.SetName("superadmin")

	if _, err := editor.Save(context.Background()); !errors.Is(err, ErrReservedName) {
		t.Fatalf("Save = %v, want ErrReservedName", err)
	}
}

func TestRoleEditorSuperadminRejected(t *testing.T) {
	svc, _ := newRoleFixture(t, domain.Role{ID: "role-sa", Name: "superadmin"})

	if _, err := svc.EditorByID("role-sa"); !errors.Is(err, ErrSuperadminImmutable) {
		t.Fatalf("EditorByID = %v, want ErrSuperadminImmutable", err)
	}
}

func TestRoleEditorSaveFailureKeepsSessionOpen(t *testing.T) {
	svc, store := newRoleFixture(t, domain.Role{ID: "role-1", Name: "supervisor"})

	editor, err := svc.EditorByID("role-1")
	if err != nil {
		t.Fatalf("EditorByID: %v", err)
	}

	store.updateErr = errors.New("upstream down")
	if _, err := editor.Save(context.Background()); err == nil {
		t.Fatal("expected save failure")
	}

	// Edits made before the failure survive and the retry succeeds.
	store.updateErr = nil
	if _, err := editor.Save(context.Background()); err != nil {
		t.Fatalf("retry Save: %v", err)
	}
}
