package config

import (
	"testing"
	"time"

	"foodnow-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "JWT_TTL", "MAIL_TRANSPORT", "PAYMENT_SUCCESS_RATE", "FRONTEND_URL"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("DB.Driver = %q", cfg.DB.Driver)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("JWT.TTL = %v", cfg.JWT.TTL)
	}
	if cfg.Mail.Transport != "log" {
		t.Errorf("Mail.Transport = %q", cfg.Mail.Transport)
	}
	if cfg.Payment.SuccessRate != 0.9 {
		t.Errorf("Payment.SuccessRate = %v", cfg.Payment.SuccessRate)
	}
}

func TestLoadOverrides(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(*Config) bool
	}{
		{"PORT", "9000", func(c *Config) bool { return c.Port == "9000" }},
		{"JWT_TTL", "90m", func(c *Config) bool { return c.JWT.TTL == 90*time.Minute }},
		{"JWT_TTL", "forever", func(c *Config) bool { return c.JWT.TTL == 24*time.Hour }},
		{"SMTP_PORT", "2525", func(c *Config) bool { return c.Mail.SMTPPort == 2525 }},
		{"SMTP_PORT", "abc", func(c *Config) bool { return c.Mail.SMTPPort == 1025 }},
		{"PAYMENT_SUCCESS_RATE", "1", func(c *Config) bool { return c.Payment.SuccessRate == 1 }},
		{"FRONTEND_URL", "https://foodnow.example/", func(c *Config) bool { return c.FrontendURL == "https://foodnow.example" }},
		{"APP_ENV", "production", func(c *Config) bool { return c.IsProduction() }},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if !tt.check(Load()) {
				t.Errorf("%s=%s not applied", tt.key, tt.value)
			}
		})
	}
}

func TestOpenDBRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenDB(DBConfig{Driver: "oracle", DSN: "x"}, logger.Discard); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestSeedAdmin(t *testing.T) {
	db, err := OpenDB(DBConfig{Driver: "sqlite", DSN: "file:seed?mode=memory&cache=shared"}, logger.Discard)
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}

	created, err := SeedAdmin(db, AdminConfig{})
	if err != nil || created {
		t.Fatalf("empty config: created=%v err=%v", created, err)
	}

	admin := AdminConfig{Email: " Admin@FoodNow.com ", Password: "s3cret!"}
	if created, err := SeedAdmin(db, admin); err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	if created, err := SeedAdmin(db, admin); err != nil || created {
		t.Fatalf("second seed: created=%v err=%v", created, err)
	}

	var user models.User
	if err := db.Where("email = ?", "admin@foodnow.com").First(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role = %s", user.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")) != nil {
		t.Error("stored hash does not match the configured password")
	}
}
