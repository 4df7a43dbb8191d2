// 家庭之间的静态社交网络，以及基于邻居购买偏好的影响力传播
package network

import (
	"slices"

	"github.com/tsinghua-fib-lab/agentsociety-econsim/entity"
	"gonum.org/v1/gonum/graph/simple"
)

// Network 社交网络
// 功能：G(n,p)无向图，节点ID即家庭ID，构建后不再变化
type Network struct {
	ctx entity.ITaskContext

	graph     *simple.UndirectedGraph
	neighbors [][]int32 // 家庭ID -> 按ID升序的邻居，构建时缓存
}

// New 创建社交网络实例
func New(ctx entity.ITaskContext) *Network {
	return &Network{
		ctx:   ctx,
		graph: simple.NewUndirectedGraph(),
	}
}

// Init 生成社交图
// 功能：对每对 i<j 以density的概率连边
// 参数：n-家庭数量，density-连边概率
// 说明：按(i, j)字典序消耗随机数，density为0或1时不消耗随机数
func (nw *Network) Init(n int, density float64) {
	nw.graph = simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		nw.graph.AddNode(simple.Node(i))
	}
	e := nw.ctx.Engine()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var connect bool
			switch {
			case density <= 0:
				connect = false
			case density >= 1:
				connect = true
			default:
				connect = e.PTrue(density)
			}
			if connect {
				nw.graph.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
			}
		}
	}
	nw.neighbors = make([][]int32, n)
	for i := range nw.neighbors {
		from := nw.graph.From(int64(i))
		ids := make([]int32, 0, from.Len())
		for from.Next() {
			ids = append(ids, int32(from.Node().ID()))
		}
		slices.Sort(ids)
		nw.neighbors[i] = ids
	}
	log.Infof("Network: %d households, %d edges", n, nw.NumEdges())
}

// Neighbors 按ID升序的邻居家庭ID
func (nw *Network) Neighbors(id int32) []int32 {
	if id < 0 || int(id) >= len(nw.neighbors) {
		log.Panicf("no id %d in network", id)
	}
	return nw.neighbors[id]
}

func (nw *Network) NumEdges() int {
	return nw.graph.Edges().Len()
}

// Influence 计算某家庭受到的社交影响力
// 功能：汇总邻居本月最偏好的供应商及其成交次数，除以邻居数
// 参数：h-家庭
// 返回：企业ID -> 影响力得分，没有邻居时为空
// 算法说明：
// 1. 按ID升序遍历邻居
// 2. 忽略没有偏好或成交次数为0的邻居
// 3. 同一企业的次数累加
// 4. 每个得分除以邻居数（含被忽略的邻居）
func (nw *Network) Influence(h entity.IHousehold) map[int32]float64 {
	scores := make(map[int32]float64)
	neighbors := nw.Neighbors(h.ID())
	if len(neighbors) == 0 {
		return scores
	}
	hm := nw.ctx.HouseholdManager()
	for _, id := range neighbors {
		c, count := hm.Get(id).MostPreferred()
		if c == nil || count == 0 {
			continue
		}
		scores[c.ID()] += float64(count)
	}
	for id := range scores {
		scores[id] /= float64(len(neighbors))
	}
	return scores
}

// MostInfluenced 影响力最高的企业
// 参数：scores-企业ID -> 影响力得分
// 返回：企业ID，得分，scores为空时返回false
// 说明：得分相同时取ID较小者
func MostInfluenced(scores map[int32]float64) (int32, float64, bool) {
	best, bestScore, found := int32(0), 0., false
	for id, score := range scores {
		if !found || score > bestScore || (score == bestScore && id < best) {
			best, bestScore, found = id, score, true
		}
	}
	return best, bestScore, found
}
