package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/d60-Lab/microblog/config"
	"github.com/d60-Lab/microblog/internal/graph"
	"github.com/d60-Lab/microblog/internal/metrics"
	"github.com/d60-Lab/microblog/internal/repository"
	"github.com/d60-Lab/microblog/internal/service"
	"github.com/d60-Lab/microblog/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
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

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	if err := repository.AutoMigrate(db); err != nil {
		panic(err)
	}

	// 关系写入图引擎，活动异步落 outbox
	m := metrics.New()
	outbox := repository.NewActivityRepository(db)
	replicator := service.NewActivityReplicator([]repository.ActivitySink{outbox}, 100000, m)
	stop := replicator.Start(8)
	svc := service.New(graph.New(), replicator, outbox, m, cfg.Feed.TrendingLimit)

	ctx := context.Background()

	N := envInt("N", 10000)
	CONC := envInt("CONC", 1)

	// seed users: u0 is celebrity; others follow u0
	celeb := must(svc.Users.CreateUser(ctx, "u0", "celebrity", nil))
	users := make([]string, N)
	for i := 0; i < N; i++ {
		u := must(svc.Users.CreateUser(ctx, fmt.Sprintf("u%d", i+1), fmt.Sprintf("user %d", i+1), nil))
		users[i] = u.ID
	}

	// replication landing metrics
	repMetrics := replicator.Metrics()
	repRecs := make([]time.Duration, 0, N)
	doneRep := make(chan struct{})
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for {
			select {
			case d := <-repMetrics:
				repRecs = append(repRecs, d)
			case <-doneRep:
				return
			}
		}
	}()

	maxQ := 0
	quitSample := make(chan struct{})
	sampled := make(chan struct{})
	go func() {
		defer close(sampled)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if q := replicator.QueueLen(); q > maxQ {
					maxQ = q
				}
			case <-quitSample:
				return
			}
		}
	}()

	// dispatch N follows with CONC workers
	t0 := time.Now()
	workers := CONC
	if workers > N {
		workers = N
	}
	followCh := make(chan time.Duration, N)
	feed := make(chan int, N)
	for i := 0; i < N; i++ {
		feed <- i
	}
	close(feed)
	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		go func() {
			for i := range feed {
				st := time.Now()
				_ = svc.Relation.Follow(ctx, users[i], celeb.ID)
				followCh <- time.Since(st)
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(followCh)
	followRecs := make([]time.Duration, 0, N)
	for d := range followCh {
		followRecs = append(followRecs, d)
	}
	followDur := time.Since(t0)
	close(quitSample)
	<-sampled

	// queries
	q0 := time.Now()
	fans := must(svc.Relation.ListFollowers(ctx, celeb.ID))
	fansDur := time.Since(q0)

	q1 := time.Now()
	celebView := must(svc.Users.GetUser(ctx, celeb.ID))
	profileDur := time.Since(q1)

	// unfollow half
	t1 := time.Now()
	for i := 0; i < N; i += 2 {
		_ = svc.Relation.Unfollow(ctx, users[i], celeb.ID)
	}
	unfollowDur := time.Since(t1)

	// stop replicator (waits for the queue to drain)
	drainStart := time.Now()
	_ = stop(ctx)
	drainDur := time.Since(drainStart)
	close(doneRep)
	<-collected

	fmt.Printf("N=%d, CONC=%d\n", N, CONC)
	fmt.Printf("Follow latency total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		followDur, followDur/time.Duration(N), pct(followRecs, 0.50), pct(followRecs, 0.95), pct(followRecs, 0.99))
	fmt.Printf("Unfollow (N/2) total: %v\n", unfollowDur)
	fmt.Printf("List followers(%d) latency: %v\n", len(fans), fansDur)
	fmt.Printf("Profile read (followers_count=%d) latency: %v\n", celebView.FollowersCount, profileDur)
	if len(repRecs) > 0 {
		fmt.Printf("Activity landing: samples=%d, p50=%v, p95=%v, p99=%v, maxQueue=%d, drain=%v\n",
			len(repRecs), pct(repRecs, 0.50), pct(repRecs, 0.95), pct(repRecs, 0.99), maxQ, drainDur)
	}
	recent := must(outbox.ListByActor(ctx, users[1], 10))
	fmt.Printf("Outbox activities for u2: %d\n", len(recent))
}
