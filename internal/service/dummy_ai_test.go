package service

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestDummyEmbedder_DeterministicAndNormalized(t *testing.T) {
	emb := NewDummyEmbedder()
	ctx := context.Background()

	a, err := emb.Embed(ctx, "2015 Honda Civic: How do I change the oil?")
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	b, _ := emb.Embed(ctx, "2015 honda civic: how do i change the OIL?")
	if len(a) != DummyEmbeddingDims {
		t.Fatalf("expected %d dims, got %d", DummyEmbeddingDims, len(a))
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("embedding must ignore case")
	}
	var sum float64
	for _, v := range a {
		sum += float64(v) * float64(v)
	}
	if math.Abs(sum-1) > 1e-5 {
		t.Fatalf("expected unit vector, got norm² %f", sum)
	}

	blank, _ := emb.Embed(ctx, "   ")
	for _, v := range blank {
		if v != 0 {
			t.Fatalf("blank text must embed to zeros")
		}
	}
}
