package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("test-signing-key"), time.Hour)

	raw, err := codec.Issue("sess-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	id, ok := codec.Parse(raw)
	if !ok {
		t.Fatal("expected token to parse")
	}
	if id != "sess-123" {
		t.Errorf("expected sess-123, got %s", id)
	}
}

func TestTokenMalformed(t *testing.T) {
	codec := NewTokenCodec([]byte("test-signing-key"), time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, ok := codec.Parse(raw); ok {
			t.Errorf("token %q should not parse", raw)
		}
	}
}

func TestTokenWrongKey(t *testing.T) {
	issuer := NewTokenCodec([]byte("key-one"), time.Hour)
	verifier := NewTokenCodec([]byte("key-two"), time.Hour)

	raw, err := issuer.Issue("sess-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := verifier.Parse(raw); ok {
		t.Error("token signed with a different key should not parse")
	}
}

func TestTokenExpired(t *testing.T) {
	codec := NewTokenCodec([]byte("test-signing-key"), time.Hour)
	codec.ttl = -time.Hour

	raw, err := codec.Issue("sess-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, ok := codec.Parse(raw); ok {
		t.Error("expired token should not parse")
	}
}
