package models

import (
	"attendance/db"
	"testing"
)

func TestUserLogin(t *testing.T) {
	created, err := UserCreate("Teacher", "teacher@example.com", "correct horse")
	if err != nil {
		t.Fatalf("UserCreate() error = %v", err)
	}
	grant := Grant{GrantorID: created.ID, UserID: created.ID, Permission: PermissionRecordAttendance}
	if err := db.Instance.Create(&grant).Error; err != nil {
		t.Fatalf("creating grant: %v", err)
	}

	user, success := UserLogin("teacher@example.com", "correct horse")
	if !success {
		t.Fatal("UserLogin() failed with correct password")
	}
	if !user.HasPermission(PermissionRecordAttendance) {
		t.Error("granted permission missing after login")
	}
	if user.HasPermission(PermissionAdmin) {
		t.Error("user has permission that was never granted")
	}

	if _, success = UserLogin("teacher@example.com", "wrong"); success {
		t.Error("UserLogin() succeeded with wrong password")
	}
	if _, success = UserLogin("nobody@example.com", "correct horse"); success {
		t.Error("UserLogin() succeeded for unknown user")
	}
}

func TestBootstrapAdminRunsOnce(t *testing.T) {
	var before int64
	db.Instance.Model(&User{}).Count(&before)
	bootstrapAdmin()
	var after int64
	db.Instance.Model(&User{}).Count(&after)
	if before != after {
		t.Errorf("bootstrapAdmin() created a user despite existing accounts (%d -> %d)", before, after)
	}
}
