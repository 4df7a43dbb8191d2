// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"flag"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成

	log = logrus.WithField("module", "randengine")
)

// Engine 随机数引擎
// 功能：整个仿真唯一的随机数来源，所有随机决策按固定顺序消耗它
// 说明：基于golang.org/x/exp/rand库（PCG源），非线程安全，仿真本身是单线程顺序执行的
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// DiscreteDistribution 按给定权重生成随机下标
// 功能：根据权重数组生成离散分布的随机数
// 参数：weight-权重数组，每个元素表示对应索引的概率权重
// 返回：随机生成的索引值（0到len(weight)-1）
// 算法说明：
// 1. 计算总权重：遍历权重数组计算总和
// 2. 生成随机数：在[0, 总权重)范围内生成随机数
// 3. 累积概率：遍历权重数组，累积概率直到超过随机数
// 4. 返回索引：返回第一个累积概率超过随机数的索引
// 说明：每次调用恰好消耗一个Float64
func (e *Engine) DiscreteDistribution(weight []float64) int32 {
	if len(weight) == 0 {
		log.Panic("randengine: DiscreteDistribution: empty weight")
	}
	random := .0
	for _, w := range weight {
		random += w
	}
	random *= e.Float64()
	sum := 0.
	for i, w := range weight {
		sum += w
		if sum > random {
			return int32(i)
		}
	}
	log.Panicf("randengine: DiscreteDistribution: sum: %f random: %f", sum, random)
	return -1
}

// PTrue 以指定概率返回true
// 功能：根据给定概率返回布尔值（伯努利分布）
// 参数：p-返回true的概率（0.0到1.0之间）
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Uniform 生成[low, high)区间内的均匀分布浮点数
func (e *Engine) Uniform(low, high float64) float64 {
	return low + (high-low)*e.Float64()
}

// IntRange 生成[low, high]闭区间内的均匀分布整数
// 说明：low > high时panic
func (e *Engine) IntRange(low, high int) int {
	if low > high {
		log.Panicf("randengine: IntRange: low %d > high %d", low, high)
	}
	return low + e.Intn(high-low+1)
}

// SampleDistinct 从[0, n)中无放回地抽取k个不同的下标
// 功能：部分Fisher-Yates洗牌，保持抽取顺序
// 参数：n-总体大小，k-抽取数量
// 返回：长度为k的下标数组
// 说明：k > n时panic
func (e *Engine) SampleDistinct(n, k int) []int {
	if k > n {
		log.Panicf("randengine: SampleDistinct: k %d > n %d", k, n)
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + e.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
