package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/hupe1980/kdgo"
	"github.com/hupe1980/kdgo/testutil"
)

func main() {
	ctx := context.Background()

	// Generate a random 3-D cloud.
	rng := testutil.NewRNG(42)
	cloud := testutil.RandomCloud(rng, 3, 1_000_000, 0, 10)

	kd, err := kdgo.New(3, cloud,
		kdgo.WithLeafSize(10),
		kdgo.WithLogger(kdgo.NewTextLogger(slog.LevelInfo)),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(kd.Stats())

	query := []float32{5, 5, 5}

	// k-NN search.
	results, err := kd.KNNSearch(ctx, query, 5)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("knnSearch(k=5):")
	for _, r := range results {
		fmt.Printf("  index=%d point=%v distSq=%f\n", r.Index, cloud.Point(r.Index), r.Distance)
	}

	// Radius search (squared radius).
	matches, err := kd.RadiusSearch(ctx, query, 0.01)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("radiusSearch(rSq=0.01): %d matches\n", len(matches))
}
