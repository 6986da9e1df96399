package hash

import "testing"

func TestBytes(t *testing.T) {
	if h := Bytes([]byte("hello")); h != "5d41402abc4b2a76b9719d911017c592" {
		t.Errorf("unexpected hash %s", h)
	}
}
