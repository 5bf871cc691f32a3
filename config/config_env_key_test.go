package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"docstore": map[string]any{
			"apiKey": "",
			"timeout": "5s",
		},
		"pubsub": map[string]any{
			"topicId": "",
		},
		"loyalty": map[string]any{
			"pointsPerUnit": 1,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "DOCSTORE_APIKEY", want: "docstore.apiKey"},
		{envKey: "PUBSUB_TOPICID", want: "pubsub.topicId"},
		{envKey: "LOYALTY_POINTSPERUNIT", want: "loyalty.pointsPerUnit"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Loyalty.PointsPerUnit != 1 {
		t.Fatalf("PointsPerUnit = %d, want 1", cfg.Loyalty.PointsPerUnit)
	}
	if cfg.Loyalty.BeeEliteThreshold != 10000 {
		t.Fatalf("BeeEliteThreshold = %d, want 10000", cfg.Loyalty.BeeEliteThreshold)
	}
	if cfg.DocStore.Provider != "memory" {
		t.Fatalf("DocStore.Provider = %q, want memory", cfg.DocStore.Provider)
	}
	if cfg.Simulation.FanOut <= 0 {
		t.Fatal("Simulation.FanOut not defaulted")
	}
}
