package seeds

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"schoolhub_backend/internals/configs"
	"schoolhub_backend/internals/constants"
	usermodel "schoolhub_backend/internals/features/users/user/model"
)

// RunIfRequested creates the bootstrap admin account when SEED_ADMIN=true and
// no account with that email exists yet. Schema management itself stays
// outside the app (SQL migrations), this only fills the first login.
func RunIfRequested(db *gorm.DB) {
	if !configs.SeedAdmin {
		return
	}

	email := configs.GetEnv("SEED_ADMIN_EMAIL", "admin@schoolhub.local")
	password := configs.GetEnv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Println("[WARN] SEED_ADMIN set but SEED_ADMIN_PASSWORD empty, skipping seed")
		return
	}

	var existing usermodel.UserModel
	err := db.Where("user_email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] admin seed lookup failed: %v", err)
		return
	}

	admin := usermodel.UserModel{
		UserFullName: "Administrator",
		UserEmail:    email,
		UserRole:     constants.RoleAdmin,
		UserIsActive: true,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("[ERROR] admin seed password hash failed: %v", err)
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[ERROR] admin seed insert failed: %v", err)
		return
	}
	log.Printf("[INFO] seeded admin account %s", email)
}
