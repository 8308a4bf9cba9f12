package models

import (
	"log"

	"attendance/config"
	"attendance/db"
	"attendance/utils"
)

func Init() {
	db.Instance.AutoMigrate(&User{})
	db.Instance.AutoMigrate(&Grant{})
	db.Instance.AutoMigrate(&Student{})
	db.Instance.AutoMigrate(&AttendanceRecord{})

	bootstrapAdmin()
}

// bootstrapAdmin creates the initial admin account on an empty database so
// the first login is possible without touching the DB by hand.
func bootstrapAdmin() {
	var count int64
	if db.Instance.Model(&User{}).Count(&count).Error != nil || count > 0 {
		return
	}
	password := config.ADMIN_PASSWORD
	if password == "" {
		password = utils.RandSalt(12)
	}
	admin, err := UserCreate("Admin", config.ADMIN_EMAIL, password)
	if err != nil {
		log.Printf("Error creating initial admin user: %v", err)
		return
	}
	for _, permission := range []Permission{PermissionAdmin, PermissionRecordAttendance, PermissionManageRoster} {
		grant := Grant{GrantorID: admin.ID, UserID: admin.ID, Permission: permission}
		if err = db.Instance.Create(&grant).Error; err != nil {
			log.Printf("Error granting permission %d: %v", permission, err)
		}
	}
	if config.ADMIN_PASSWORD == "" {
		log.Printf("Created initial admin user %s with password: %s", config.ADMIN_EMAIL, password)
	} else {
		log.Printf("Created initial admin user %s", config.ADMIN_EMAIL)
	}
}
