// MongoDB指标输出，按批写入
package output

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document 写入MongoDB的一条指标记录
type document struct {
	RunID     string    `bson:"run_id"`
	Replica   int       `bson:"replica"`
	Seed      uint64    `bson:"seed"`
	CreatedAt time.Time `bson:"created_at"`

	ecosim.Indicators `bson:",inline"`
}

// newDocument 构造指标记录
func newDocument(runID string, replica int, seed uint64, ind ecosim.Indicators) document {
	return document{
		RunID:      runID,
		Replica:    replica,
		Seed:       seed,
		CreatedAt:  time.Now().UTC(),
		Indicators: ind,
	}
}

// Writer 指标写入器
// 功能：缓存指标记录，满batch条后InsertMany写入
// 说明：多个副本可共享同一Writer，内部加锁
type Writer struct {
	mu sync.Mutex

	client *mongo.Client
	col    *mongo.Collection
	runID  string
	seed   uint64
	batch  int
	buf    []any
}

// New 连接MongoDB并创建写入器
// 参数：ctx-连接超时控制，out-输出配置，seed-单副本运行的随机种子
func New(ctx context.Context, out config.OutputPath, seed uint64) (*Writer, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(out.URI))
	if err != nil {
		return nil, fmt.Errorf("output: connect %s: %w", out.URI, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("output: ping %s: %w", out.URI, err)
	}
	batch := out.Batch
	if batch <= 0 {
		batch = 1
	}
	w := &Writer{
		client: client,
		col:    client.Database(out.GetDb()).Collection(out.GetColl()),
		runID:  uuid.NewString(),
		seed:   seed,
		batch:  batch,
		buf:    make([]any, 0, batch),
	}
	log.Infof("output to %s.%s, run id %s", out.GetDb(), out.GetColl(), w.runID)
	return w, nil
}

// RunID 本次运行的ID，写入每条文档
func (w *Writer) RunID() string {
	return w.runID
}

// Write 写入副本0的指标，种子为创建时传入的种子
func (w *Writer) Write(ctx context.Context, ind ecosim.Indicators) error {
	return w.write(ctx, 0, w.seed, ind)
}

// Replica 返回写入指定副本指标的输出目标
// 参数：replica-副本编号，seed-该副本实际使用的随机种子
func (w *Writer) Replica(replica int, seed uint64) *ReplicaSink {
	return &ReplicaSink{w: w, replica: replica, seed: seed}
}

func (w *Writer) write(ctx context.Context, replica int, seed uint64, ind ecosim.Indicators) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf = append(w.buf, newDocument(w.runID, replica, seed, ind))
	if len(w.buf) < w.batch {
		return nil
	}
	return w.flushLocked(ctx)
}

// Flush 写入缓存中的全部记录
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked(ctx)
}

func (w *Writer) flushLocked(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	if _, err := w.col.InsertMany(ctx, w.buf); err != nil {
		return fmt.Errorf("output: insert %d documents: %w", len(w.buf), err)
	}
	log.Debugf("output: inserted %d documents", len(w.buf))
	w.buf = w.buf[:0]
	return nil
}

// Close 写入剩余记录并断开连接
func (w *Writer) Close(ctx context.Context) error {
	err := w.Flush(ctx)
	if derr := w.client.Disconnect(ctx); derr != nil && err == nil {
		err = fmt.Errorf("output: disconnect: %w", derr)
	}
	return err
}

// ReplicaSink 某个副本的输出目标
type ReplicaSink struct {
	w       *Writer
	replica int
	seed    uint64
}

func (s *ReplicaSink) Write(ctx context.Context, ind ecosim.Indicators) error {
	return s.w.write(ctx, s.replica, s.seed, ind)
}
