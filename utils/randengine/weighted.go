package randengine

// Scored 带分数的候选项
// 说明：分数必须非负，分数越高被抽中的概率越大
type Scored[T any] struct {
	Value T
	Score float64
}

// Probabilities 计算每个候选项被抽中的概率
// 功能：第i项的概率为 (score_i+1) / Σ(score_j+1)
// 参数：candidates-候选项列表
// 返回：与candidates等长的概率数组，空列表返回nil
// 说明：+1保证分数为0的候选项仍有非零概率
func Probabilities[T any](candidates []Scored[T]) []float64 {
	if len(candidates) == 0 {
		return nil
	}
	weights := weightsOf(candidates)
	total := 0.
	for _, w := range weights {
		total += w
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// DrawScored 按 (score+1) 加权抽取一个候选项
// 功能：一次多项分布试验，基于累积概率表线性扫描
// 参数：e-随机数引擎，candidates-有序候选项列表
// 返回：抽中的值，是否抽中（空列表返回零值和false，且不消耗随机数）
func DrawScored[T any](e *Engine, candidates []Scored[T]) (T, bool) {
	if len(candidates) == 0 {
		var zero T
		return zero, false
	}
	i := e.DiscreteDistribution(weightsOf(candidates))
	return candidates[i].Value, true
}

func weightsOf[T any](candidates []Scored[T]) []float64 {
	weights := make([]float64, len(candidates))
	for i, c := range candidates {
		if c.Score < 0 {
			log.Panicf("randengine: negative score %f at candidate %d", c.Score, i)
		}
		weights[i] = c.Score + 1
	}
	return weights
}
