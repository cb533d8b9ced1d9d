package user_test

import (
	"testing"

	"github.com/studycards/backend/internal/domain/user"
)

func TestNew_DefaultsToUserRole(t *testing.T) {
	u := user.New("ada@example.com", "Ada", "hash", "")

	if u.Role != user.RoleUser || u.IsAdmin() {
		t.Errorf("expected plain user, got %s", u.Role)
	}
	if len(u.ID) != 16 {
		t.Errorf("expected 16 char id, got %q", u.ID)
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected creation time set")
	}
}

func TestNew_Admin(t *testing.T) {
	u := user.New("root@example.com", "Root", "hash", user.RoleAdmin)
	if !u.IsAdmin() {
		t.Error("expected admin")
	}
}
