package output

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNewDocumentInlinesIndicators(t *testing.T) {
	doc := newDocument("run-1", 2, 42, ecosim.Indicators{
		Day:              30,
		Month:            1,
		Households:       10,
		Employed:         7,
		UnemploymentRate: 0.3,
		MeanPrice:        331.5,
	})
	data, err := bson.Marshal(doc)
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(data, &m))
	assert.Equal(t, "run-1", m["run_id"])
	assert.EqualValues(t, 2, m["replica"])
	assert.EqualValues(t, 42, m["seed"])
	assert.EqualValues(t, 30, m["day"])
	assert.EqualValues(t, 7, m["employed"])
	assert.InDelta(t, 0.3, m["unemployment_rate"], 1e-12)
	assert.InDelta(t, 331.5, m["mean_price"], 1e-12)
	assert.Contains(t, m, "created_at")
	assert.NotContains(t, m, "indicators")
}

func TestReplicaSinkRecordsReplicaSeed(t *testing.T) {
	w := &Writer{runID: "run-2", seed: 42, batch: 10}
	ctx := context.Background()
	ind := ecosim.Indicators{Day: 30, Month: 1}

	require.NoError(t, w.Write(ctx, ind))
	require.NoError(t, w.Replica(3, 45).Write(ctx, ind))
	require.Len(t, w.buf, 2)

	single := w.buf[0].(document)
	assert.Equal(t, 0, single.Replica)
	assert.Equal(t, uint64(42), single.Seed)
	replica := w.buf[1].(document)
	assert.Equal(t, "run-2", replica.RunID)
	assert.Equal(t, 3, replica.Replica)
	assert.Equal(t, uint64(45), replica.Seed)
	assert.Equal(t, int32(30), replica.Day)
}
