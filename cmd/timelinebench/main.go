package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/service"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func avg(vs []time.Duration) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range vs {
		sum += d
	}
	return sum / time.Duration(len(vs))
}

// 时间线在读取时由关系与帖子实时计算，这里测量不同规模下的读写延迟
func main() {
	// params
	AUTHORS := 50   // followed authors
	POSTS := 100    // posts per author
	READERS := 1000 // users following every author
	READS := 200    // timeline reads
	TAGS := 20      // distinct hashtags
	if s := os.Getenv("AUTHORS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			AUTHORS = v
		}
	}
	if s := os.Getenv("POSTS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			POSTS = v
		}
	}
	if s := os.Getenv("READERS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			READERS = v
		}
	}
	if s := os.Getenv("READS"); s != "" {
		if v, e := strconv.Atoi(s); e == nil && v > 0 {
			READS = v
		}
	}

	ctx := context.Background()
	svc := service.New(graph.New(), nil, nil, metrics.New(), graph.DefaultTrendingLimit)

	authors := make([]string, AUTHORS)
	for i := range authors {
		authors[i] = must(svc.Users.CreateUser(ctx, fmt.Sprintf("author%d", i), fmt.Sprintf("Author %d", i), nil)).ID
	}
	readers := make([]string, READERS)
	for i := range readers {
		readers[i] = must(svc.Users.CreateUser(ctx, fmt.Sprintf("reader%d", i), fmt.Sprintf("Reader %d", i), nil)).ID
		for _, a := range authors {
			if err := svc.Relation.Follow(ctx, readers[i], a); err != nil {
				panic(err)
			}
		}
	}

	// publish
	pubDurations := make([]time.Duration, 0, AUTHORS*POSTS)
	var lastPost string
	for i := 0; i < POSTS; i++ {
		for j, a := range authors {
			st := time.Now()
			p := must(svc.Tweets.Create(ctx, a, fmt.Sprintf("post %d by @reader%d #tag%d", i, j%READERS, (i+j)%TAGS)))
			pubDurations = append(pubDurations, time.Since(st))
			lastPost = p.ID
		}
	}

	// engagement on the newest post
	for _, r := range readers {
		_ = must(svc.Tweets.Like(ctx, r, lastPost))
	}
	for i := 0; i < len(readers) && i < 100; i++ {
		_ = must(svc.Tweets.Retweet(ctx, readers[i], lastPost))
	}

	// timeline reads
	reads := make([]time.Duration, 0, READS)
	var rows int
	for i := 0; i < READS; i++ {
		st := time.Now()
		tl := must(svc.Feed.Timeline(ctx, readers[i%READERS]))
		reads = append(reads, time.Since(st))
		rows = len(tl)
	}

	st := time.Now()
	trending := svc.Feed.Trending(ctx, 0)
	trendDur := time.Since(st)

	st = time.Now()
	tagged := svc.Feed.PostsByHashtag(ctx, "tag0")
	tagDur := time.Since(st)

	st = time.Now()
	mentions := must(svc.Feed.Mentions(ctx, readers[0]))
	mentionDur := time.Since(st)

	stats := svc.Engine.Stats()
	fmt.Printf("AUTHORS=%d POSTS=%d READERS=%d READS=%d\n", AUTHORS, POSTS, READERS, READS)
	fmt.Printf("Engine: users=%d posts=%d hashtags=%d\n", stats.Users, stats.Posts, stats.Hashtags)
	fmt.Printf("Publish latency: avg=%v p95=%v p99=%v\n", avg(pubDurations), pct(pubDurations, 0.95), pct(pubDurations, 0.99))
	fmt.Printf("Timeline read (rows=%d): avg=%v p50=%v p95=%v p99=%v\n", rows, avg(reads), pct(reads, 0.50), pct(reads, 0.95), pct(reads, 0.99))
	fmt.Printf("Trending (top=%d): %v\n", len(trending), trendDur)
	fmt.Printf("Hashtag read (rows=%d): %v\n", len(tagged), tagDur)
	fmt.Printf("Mentions read (rows=%d): %v\n", len(mentions), mentionDur)
}
