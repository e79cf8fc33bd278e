package config

import (
	"reflect"
	"testing"
)

func TestFlatten_Simple(t *testing.T) {
	in := map[string]any{
		"data_dir":  "/tmp/x",
		"log_level": "info",
	}
	out := Flatten(in)
	if out["data_dir"] != "/tmp/x" {
		t.Errorf("expected data_dir=/tmp/x, got %v", out["data_dir"])
	}
	if out["log_level"] != "info" {
		t.Errorf("expected log_level=info, got %v", out["log_level"])
	}
}

func TestFlatten_Nested(t *testing.T) {
	in := map[string]any{
		"api": map[string]any{
			"project":    "demo",
			"server_url": "https://api.honeyhive.ai",
		},
	}
	out := Flatten(in)
	if out["api.project"] != "demo" {
		t.Errorf("expected api.project=demo, got %v", out["api.project"])
	}
	if out["api.server_url"] != "https://api.honeyhive.ai" {
		t.Errorf("expected api.server_url, got %v", out["api.server_url"])
	}
	if _, ok := out["api"]; ok {
		t.Error("nested map key should not appear in flat output")
	}
}

func TestFlatten_DeeplyNested(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{
			"b": map[string]any{
				"c": 1,
			},
		},
	}
	out := Flatten(in)
	if out["a.b.c"] != 1 {
		t.Errorf("expected a.b.c=1, got %v", out["a.b.c"])
	}
}

func TestFlatten_EmptyMap(t *testing.T) {
	out := Flatten(map[string]any{})
	if len(out) != 0 {
		t.Errorf("expected empty map, got %v", out)
	}
}

func TestUnflatten_Simple(t *testing.T) {
	in := map[string]any{"log_level": "debug"}
	out := Unflatten(in)
	if out["log_level"] != "debug" {
		t.Errorf("expected log_level=debug, got %v", out["log_level"])
	}
}

func TestUnflatten_Nested(t *testing.T) {
	in := map[string]any{
		"api.project": "demo",
		"api.key":     "hh-key",
	}
	out := Unflatten(in)
	api, ok := out["api"].(map[string]any)
	if !ok {
		t.Fatalf("expected api to be map, got %T", out["api"])
	}
	if api["project"] != "demo" {
		t.Errorf("expected api.project=demo, got %v", api["project"])
	}
	if api["key"] != "hh-key" {
		t.Errorf("expected api.key=hh-key, got %v", api["key"])
	}
}

func TestUnflatten_DeeplyNested(t *testing.T) {
	in := map[string]any{"a.b.c": 1}
	out := Unflatten(in)
	a, _ := out["a"].(map[string]any)
	b, _ := a["b"].(map[string]any)
	if b["c"] != 1 {
		t.Errorf("expected a.b.c=1, got %v", out)
	}
}

func TestRoundTrip_FlattenUnflatten(t *testing.T) {
	in := map[string]any{
		"data_dir": "/tmp/x",
		"api": map[string]any{
			"project":         "demo",
			"timeout_seconds": float64(30),
		},
		"import": map[string]any{
			"max_concurrent": float64(4),
		},
	}
	out := Unflatten(Flatten(in))
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch:\n in: %v\nout: %v", in, out)
	}
}

func TestIsSecretKey(t *testing.T) {
	if !IsSecretKey("api.key") {
		t.Error("api.key should be secret")
	}
	if IsSecretKey("api.project") {
		t.Error("api.project should not be secret")
	}
}

func TestMaskSecrets(t *testing.T) {
	in := map[string]any{
		"api.key":     "hh-secret-key-1234",
		"api.project": "demo",
	}
	out := MaskSecrets(in)
	if out["api.key"] != "***1234" {
		t.Errorf("expected ***1234, got %v", out["api.key"])
	}
	if out["api.project"] != "demo" {
		t.Errorf("non-secret should be unchanged, got %v", out["api.project"])
	}
}

func TestMaskSecrets_EmptySecret(t *testing.T) {
	in := map[string]any{"api.key": ""}
	out := MaskSecrets(in)
	if out["api.key"] != "" {
		t.Errorf("empty secret should stay empty, got %v", out["api.key"])
	}
}

func TestMaskSecrets_ShortSecret(t *testing.T) {
	in := map[string]any{"api.key": "abc"}
	out := MaskSecrets(in)
	if out["api.key"] != "***abc" {
		t.Errorf("expected ***abc, got %v", out["api.key"])
	}
}

func TestMaskSecrets_ExactlyFourChars(t *testing.T) {
	in := map[string]any{"api.key": "abcd"}
	out := MaskSecrets(in)
	if out["api.key"] != "***abcd" {
		t.Errorf("expected ***abcd, got %v", out["api.key"])
	}
}
