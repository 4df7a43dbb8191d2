// 多副本并行运行：每个副本有独立的上下文与随机数引擎，种子依次加一
package ensemble

import (
	"context"
	"fmt"

	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/task"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
	"golang.org/x/sync/errgroup"
)

// Result 单个副本的运行结果
type Result struct {
	Replica int
	Seed    uint64
	Final   ecosim.Indicators
	History []ecosim.Indicators
}

// Options 运行选项
type Options struct {
	// 副本数
	Replicas int

	// 同时运行的副本数上限，<=0表示不限
	Limit int

	// 可选，每个副本的指标输出，seed为该副本实际使用的种子
	Sink func(replica int, seed uint64) task.Sink

	// 可选，副本上下文创建后、运行前回调，可用于挂载RPC查询
	OnStart func(replica int, t *task.Context)
}

// Run 并行运行多个副本
// 功能：副本i使用种子 seed+i，互不共享状态，因此每个副本都可单独复现
// 参数：ctx-取消信号，c-基础配置，opts-运行选项
// 返回：按副本编号排列的结果；任一副本失败时取消其余副本并返回第一个错误
func Run(ctx context.Context, c config.Config, opts Options) ([]Result, error) {
	if opts.Replicas <= 0 {
		return nil, fmt.Errorf("ensemble: replicas must be positive, got %d", opts.Replicas)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	results := make([]Result, opts.Replicas)
	g, gctx := errgroup.WithContext(ctx)
	if opts.Limit > 0 {
		g.SetLimit(opts.Limit)
	}
	for i := 0; i < opts.Replicas; i++ {
		i := i
		g.Go(func() error {
			rc := c
			rc.Control.Seed = c.Control.Seed + uint64(i)
			t := task.NewContext(rc)
			if opts.Sink != nil {
				t.AddSink(opts.Sink(i, rc.Control.Seed))
			}
			if opts.OnStart != nil {
				opts.OnStart(i, t)
			}
			log.Infof("replica %d: seed %d", i, rc.Control.Seed)
			if err := t.Run(gctx); err != nil {
				return fmt.Errorf("ensemble: replica %d: %w", i, err)
			}
			history := t.Recorder().History()
			results[i] = Result{
				Replica: i,
				Seed:    rc.Control.Seed,
				Final:   history[len(history)-1],
				History: history,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
