package graphmaps_test

import (
	"fmt"
	"log"
	"slices"

	"github.com/hupe1980/graphmaps"
	"github.com/hupe1980/graphmaps/boolindex"
	"github.com/hupe1980/graphmaps/crossref"
	"github.com/hupe1980/graphmaps/intindex"
	"github.com/hupe1980/graphmaps/rangeid"
	"github.com/hupe1980/graphmaps/valueindex"
)

// Example shows several indices following the same universe.
func Example() {
	u := graphmaps.New()
	ids := rangeid.New(u)
	visited := boolindex.New(u, false)
	degree := intindex.New(u, 0)
	labels := crossref.New(u, "")

	items, err := u.AddMany(3)
	if err != nil {
		log.Fatal(err)
	}
	a, b, c := items[0], items[1], items[2]

	visited.Set(b, true)
	degree.Set(a, 2)
	degree.Set(c, 2)
	labels.Set(a, "start")
	labels.Set(c, "end")
	fmt.Println(visited.TrueCount(), slices.Collect(degree.Items(2)))

	if err := u.Erase(a); err != nil {
		log.Fatal(err)
	}
	fmt.Println(ids.Len(), ids.ID(c), labels.Find("start"), labels.Find("end"))
	// Output:
	// 1 [2 0]
	// 2 0 -1 2
}

// Example_combineBuckets intersects buckets of two indices.
func Example_combineBuckets() {
	u := graphmaps.New()
	color := valueindex.New(u, "red")
	done := boolindex.New(u, false)
	defer color.Close()
	defer done.Close()

	items, _ := u.AddMany(4)
	color.Set(items[1], "blue")
	done.Set(items[0], true)
	done.Set(items[1], true)

	red := color.Collect("red")
	red.And(done.Collect(true))
	fmt.Println(red.Items(), slices.Collect(color.Values()))
	// Output: [0] [blue red]
}

// Example_metrics reports notification fan-out.
func Example_metrics() {
	metrics := &graphmaps.BasicMetricsCollector{}
	u := graphmaps.New(graphmaps.WithMetricsCollector(metrics))
	ids := rangeid.New(u)
	defer ids.Close()

	items, _ := u.AddMany(10)
	_ = u.EraseMany(items[:4])

	stats := metrics.GetStats()
	fmt.Println(stats.AddedItems, stats.ErasedItems, ids.Len())
	// Output: 10 4 6
}
