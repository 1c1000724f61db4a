package security

import (
	"strings"
	"testing"

	"github.com/angelmondragon/urbanthreads-backend/pkg/config"
)

func testHasher() *Hasher {
	return NewHasher(config.PasswordConfig{
		ArgonMemoryKB:    64,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()
	encoded, err := h.Hash("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$m=64,t=1,p=1$") {
		t.Fatalf("unexpected encoding %q", encoded)
	}

	ok, err := h.Verify("s3cret-pass", encoded)
	if err != nil || !ok {
		t.Fatalf("expected password to verify (ok=%v err=%v)", ok, err)
	}
	ok, err = h.Verify("wrong", encoded)
	if err != nil || ok {
		t.Fatalf("expected mismatch (ok=%v err=%v)", ok, err)
	}
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	if _, err := testHasher().Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$a$b", "$argon2id$v=19$garbage$c2FsdA$a2V5"} {
		if _, err := testHasher().Verify("pw", encoded); err != ErrInvalidHash {
			t.Fatalf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestNeedsRehash(t *testing.T) {
	h := testHasher()
	encoded, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h.NeedsRehash(encoded) {
		t.Fatal("fresh hash should not need rehash")
	}
	stronger := NewHasher(config.PasswordConfig{ArgonMemoryKB: 128, ArgonTime: 2, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32})
	if !stronger.NeedsRehash(encoded) {
		t.Fatal("expected rehash when parameters change")
	}
	if !h.NeedsRehash("not-a-hash") {
		t.Fatal("malformed hashes always need rehash")
	}
}
