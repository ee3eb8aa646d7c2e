package firebase

import (
	"context"
	"encoding/base64"
	"testing"
)

func TestDecodeServiceKey(t *testing.T) {
	raw := `{"type":"service_account","project_id":"wanderlust"}`
	got, err := DecodeServiceKey(base64.StdEncoding.EncodeToString([]byte(raw)))
	if err != nil {
		t.Fatalf("DecodeServiceKey() error = %v", err)
	}
	if string(got) != raw {
		t.Errorf("DecodeServiceKey() = %s, want %s", got, raw)
	}

	for _, bad := range []string{"", "%%%not-base64%%%"} {
		if _, err := DecodeServiceKey(bad); err == nil {
			t.Errorf("DecodeServiceKey(%q) succeeded, want error", bad)
		}
	}
}

func TestNewAuthClientRejectsBadKey(t *testing.T) {
	if _, err := NewAuthClient(context.Background(), "not base64!", ""); err == nil {
		t.Error("NewAuthClient() with a malformed key succeeded, want error")
	}
}
