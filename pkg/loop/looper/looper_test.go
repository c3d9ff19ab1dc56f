package looper_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bearnovel/bearnovel/pkg/domain"
	"github.com/bearnovel/bearnovel/pkg/loop/looper"
	"github.com/bearnovel/bearnovel/pkg/loop/recurring"
	"github.com/bearnovel/bearnovel/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeService struct {
	ranked  int
	backlog int
	err     error
}

func (f *fakeService) RecomputeDailyRankings(context.Context, time.Time) ([]domain.RankingEntry, error) {
	f.ranked += 1
	return nil, f.err
}

func (f *fakeService) Purge(context.Context, time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.backlog == 0 {
		return false, nil
	}
	f.backlog -= 1
	return true, nil
}

func TestParseLoopType(t *testing.T) {
	for _, s := range []string{"ranking", "purge"} {
		lt, err := looper.ParseLoopType(s)
		if err != nil {
			t.Fatal(err)
		}
		if lt.String() != s {
			t.Errorf("(actual, expected) = (%s, %s)", lt, s)
		}
	}
	if _, err := looper.ParseLoopType("gc"); err == nil {
		t.Errorf("unknown loop type is accepted")
	}
}

func TestStart(t *testing.T) {
	t.Run("purge loop with backlog policy drains expired novels", func(t *testing.T) {
		svc := &fakeService{backlog: 3}
		err := looper.Start(
			context.Background(), zerolog.Nop(), looper.Purge, svc,
			looper.Manifest{Policy: recurring.UntilError(recurring.Backlog())},
		)
		if err != nil {
			t.Fatal(err)
		}
		if svc.backlog != 0 {
			t.Errorf("backlog remains: %d", svc.backlog)
		}
	})

	t.Run("ranking loop with forever policy recomputes once per cooldown", func(t *testing.T) {
		svc := &fakeService{}
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := looper.Start(
			ctx, zerolog.Nop(), looper.Ranking, svc,
			looper.Manifest{Policy: recurring.UntilError(recurring.Forever(time.Hour)), Timeout: time.Second},
		)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
		if svc.ranked != 1 {
			t.Errorf("rankings are recomputed %d times", svc.ranked)
		}
	})

	t.Run("loop stops with the error of task when until error", func(t *testing.T) {
		expectedErr := errors.New("fake error")
		svc := &fakeService{err: expectedErr}

		err := looper.Start(
			context.Background(), zerolog.Nop(), looper.Ranking, svc,
			looper.Manifest{Policy: recurring.UntilError(recurring.Forever(0))},
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("error: (actual, expected) = (%v, %v)", err, expectedErr)
		}
	})
}

func TestStart_ReportsErrorsIgnoredByPolicy(t *testing.T) {
	svc := &fakeService{err: errors.New("db is down")}
	buf := new(bytes.Buffer)
	logger := zerolog.New(buf)

	failures := metrics.LoopRuns.WithLabelValues(looper.Ranking.String(), "error")
	successes := metrics.LoopRuns.WithLabelValues(looper.Ranking.String(), "ok")
	failuresBefore := testutil.ToFloat64(failures)
	successesBefore := testutil.ToFloat64(successes)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := looper.StartRankingLoop(
		ctx, logger, svc,
		looper.Manifest{Policy: recurring.Forever(time.Hour), Timeout: time.Second},
	)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("unexpected error: %v", err)
	}

	if svc.ranked != 1 {
		t.Errorf("rankings are recomputed %d times", svc.ranked)
	}
	if d := testutil.ToFloat64(failures) - failuresBefore; d != 1 {
		t.Errorf("error runs counted: %v", d)
	}
	if d := testutil.ToFloat64(successes) - successesBefore; d != 0 {
		t.Errorf("ok runs counted: %v", d)
	}

	log := buf.String()
	if !strings.Contains(log, `"level":"error"`) || !strings.Contains(log, "db is down") {
		t.Errorf("error is not logged: %s", log)
	}
}
