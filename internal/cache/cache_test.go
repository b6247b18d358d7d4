package cache

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNoop_AlwaysMisses(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()
	key := GuideKey(primitive.NewObjectID())

	if err := c.SetJSON(ctx, key, map[string]string{"a": "b"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	var dst map[string]string
	hit, err := c.GetJSON(ctx, key, &dst)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}
	if err := c.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
}

func TestGuideKey_IsCaseInsensitive(t *testing.T) {
	lower, err := primitive.ObjectIDFromHex("65f0c0ffee0000000000beef")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	upper, err := primitive.ObjectIDFromHex("65F0C0FFEE0000000000BEEF")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if GuideKey(lower) != "guide:65f0c0ffee0000000000beef" || GuideKey(upper) != GuideKey(lower) {
		t.Fatalf("unexpected keys %q %q", GuideKey(lower), GuideKey(upper))
	}
}
