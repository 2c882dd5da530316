package auth

import (
	"testing"

	"github.com/keijiban/bulletin-board/internal/core/domain"
)

func TestCanModify(t *testing.T) {
	tests := []struct {
		name      string
		ownerID   string
		actorID   string
		actorRole string
		want      bool
	}{
		{"owner with user role", "u1", "u1", domain.RoleUser, true},
		{"owner with admin role", "u1", "u1", domain.RoleAdmin, true},
		{"stranger with user role", "u1", "u2", domain.RoleUser, false},
		{"stranger with admin role", "u1", "u2", domain.RoleAdmin, true},
		{"stranger with unknown role", "u1", "u2", "moderator", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanModify(tt.ownerID, tt.actorID, tt.actorRole); got != tt.want {
				t.Fatalf("CanModify(%q, %q, %q) = %v, want %v", tt.ownerID, tt.actorID, tt.actorRole, got, tt.want)
			}
		})
	}
}
