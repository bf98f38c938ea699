package config

import "testing"

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "DB_DRIVER", "GRADING_TEST_WEIGHT", "GRADING_MAX_TEST_SCORE", "ENABLE_METRICS"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Mode != ModeOffline || cfg.HTTPAddr != ":8080" || cfg.DBDriver != "sqlite" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Rules.MaxTestScore != 10 || cfg.Weights.TestPercent() != 60 {
		t.Fatalf("grading defaults: %+v %d", cfg.Rules, cfg.Weights.TestPercent())
	}
	if !cfg.EnableMetrics {
		t.Fatal("metrics should default on")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("GRADING_POINTS_PER_CORRECT", "0.5")
	t.Setenv("GRADING_PENALTY_PER_WRONG", "0")
	t.Setenv("GRADING_MAX_TEST_SCORE", "100")
	t.Setenv("GRADING_TEST_WEIGHT", "150")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")
	t.Setenv("ENABLE_METRICS", "no")

	cfg := FromEnv()
	if cfg.Rules.PointsPerCorrect != 0.5 || cfg.Rules.PenaltyPerWrong != 0 || cfg.Rules.MaxTestScore != 100 {
		t.Fatalf("rules = %+v", cfg.Rules)
	}
	if cfg.Weights.TestPercent() != 100 || cfg.Weights.DevelopPercent() != 0 {
		t.Fatalf("weights not clamped: %d", cfg.Weights.TestPercent())
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("origins = %v", origins)
	}
	if cfg.EnableMetrics {
		t.Fatal("metrics should be disabled")
	}
}
