package judge

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/types"
)

func TestRunBatch_PreservesOrder(t *testing.T) {
	var inFlight, peak atomic.Int32
	deps := goodDeps(&fakeStore{})
	deps.Reviewer = reviewFunc(func(context.Context, ComplexityRequest) (*types.ReviewerResult, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return goodReview(), nil
	})
	j := New(deps, WithLogger(quietLogger()))

	sessions := make([]*types.Session, 10)
	for i := range sessions {
		s := testSession()
		s.SessionID = fmt.Sprintf("session-%d", i)
		s.Problem.Slug = fmt.Sprintf("problem-%d", i)
		sessions[i] = s
	}

	outcomes, err := RunBatch(context.Background(), j, sessions, 3)
	require.NoError(t, err)
	require.Len(t, outcomes, len(sessions))
	for i, out := range outcomes {
		require.NotNil(t, out)
		assert.Equal(t, fmt.Sprintf("problem-%d", i), out.Result.ProblemSlug)
		assert.Equal(t, fmt.Sprintf("Coding review saved successfully for session session-%d", i), out.PersistMessage)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))
}

func TestRunBatch_Empty(t *testing.T) {
	outcomes, err := RunBatch(context.Background(), New(Deps{}), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestRunBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sessions := []*types.Session{testSession(), testSession()}
	outcomes, err := RunBatch(ctx, New(Deps{}, WithLogger(quietLogger())), sessions, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, outcomes, 2)
}
