package utils

import "testing"

func TestPairKeyIsSymmetric(t *testing.T) {
	if PairKey(1, 2) != PairKey(2, 1) {
		t.Fatalf("pair key must not depend on argument order")
	}
	if PairKey(1, 2) != "1:2" {
		t.Fatalf("unexpected key: %q", PairKey(1, 2))
	}
}

func TestPairKeyDistinguishesPairs(t *testing.T) {
	if PairKey(1, 23) == PairKey(12, 3) {
		t.Fatalf("distinct pairs must not collide")
	}
}
