package user_test

import (
	"reflect"
	"testing"

	"github.com/quoteflow/quoteflow/domain/user"
)

func TestPermissions_DeduplicatesAndSorts(t *testing.T) {
	roles := []user.Role{
		{Name: "sales", Permissions: []string{"quotes:write", "quotes:read", "customers:read"}},
		{Name: "viewer", Permissions: []string{"quotes:read", "customers:read"}},
	}

	got := user.Permissions(roles)
	want := []string{"customers:read", "quotes:read", "quotes:write"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Permissions = %v, want %v", got, want)
	}
}

func TestPermissions_NoRoles(t *testing.T) {
	if got := user.Permissions(nil); len(got) != 0 {
		t.Errorf("Permissions = %v, want empty", got)
	}
}

func TestRoleNames(t *testing.T) {
	roles := []user.Role{{Name: "admin"}, {Name: "sales"}}
	got := user.RoleNames(roles)
	if !reflect.DeepEqual(got, []string{"admin", "sales"}) {
		t.Errorf("RoleNames = %v", got)
	}
}
