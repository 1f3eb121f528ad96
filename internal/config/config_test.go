package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "123:test-token")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("ADMIN_IDS", "111,222")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_PORT", "")
	t.Setenv("MIN_WITHDRAWAL", "")
	t.Setenv("GAME_COMMISSION", "")
	t.Setenv("STARS_TO_RUB", "")
	t.Setenv("MIN_STARS_PURCHASE", "")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.DBHost != "localhost" || cfg.DBPort != "5432" {
		t.Errorf("unexpected DB defaults: %s:%s", cfg.DBHost, cfg.DBPort)
	}
	if cfg.MinWithdrawal != 20.0 {
		t.Errorf("MinWithdrawal = %v, want 20", cfg.MinWithdrawal)
	}
	if cfg.GameCommission != 0.20 {
		t.Errorf("GameCommission = %v, want 0.20", cfg.GameCommission)
	}
	if cfg.StarsToRub != 1.67 {
		t.Errorf("StarsToRub = %v, want 1.67", cfg.StarsToRub)
	}
	if cfg.MinStarsPurchase != 10 {
		t.Errorf("MinStarsPurchase = %v, want 10", cfg.MinStarsPurchase)
	}
	if len(cfg.AdminIDs) != 2 || cfg.AdminIDs[0] != 111 || cfg.AdminIDs[1] != 222 {
		t.Errorf("AdminIDs = %v", cfg.AdminIDs)
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig should fail without BOT_TOKEN")
	}
}

func TestLoadConfigRequiresAdmins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_IDS", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig should fail without ADMIN_IDS")
	}
}

func TestLoadConfigRejectsBadAdminID(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_IDS", "111,abc")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig should fail on a non-numeric admin ID")
	}
}

func TestParseAdminIDs(t *testing.T) {
	ids, err := parseAdminIDs(" 1, 2 ,,3 ")
	if err != nil {
		t.Fatalf("parseAdminIDs failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("ids = %v", ids)
	}
}

func TestValidateCommissionRange(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GAME_COMMISSION", "1.5")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig should reject commission >= 1")
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	cfg := &Config{AppEnv: "development", DBSSLMode: "disable"}
	if err := cfg.ValidateProductionSecurity(); err != nil {
		t.Errorf("development config should pass: %v", err)
	}

	cfg = &Config{AppEnv: "production", DBSSLMode: "disable", FKSecretKey: "k"}
	if err := cfg.ValidateProductionSecurity(); err == nil {
		t.Error("production without SSL should fail")
	}

	cfg = &Config{AppEnv: "production", DBSSLMode: "require", FKSecretKey: ""}
	if err := cfg.ValidateProductionSecurity(); err == nil {
		t.Error("production without FK_SECRET_KEY should fail")
	}

	cfg = &Config{AppEnv: "production", DBSSLMode: "require", FKSecretKey: "k"}
	if err := cfg.ValidateProductionSecurity(); err != nil {
		t.Errorf("hardened production config should pass: %v", err)
	}
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{AdminIDs: []int64{111, 222}}

	if !cfg.IsAdmin(111) {
		t.Error("111 should be admin")
	}
	if cfg.IsAdmin(333) {
		t.Error("333 should not be admin")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "n",
		DBSSLMode:  "require",
	}
	want := "host=db port=5433 user=u password=p dbname=n sslmode=require"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
