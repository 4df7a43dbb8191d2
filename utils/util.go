package utils

import "github.com/samber/lo"

// FindByID 按ID挑选数据
// 功能：ids为空时返回全部数据，否则按ids的顺序返回找到的数据
// 参数：data-数据列表，id-取ID的函数，ids-要查找的ID
// 返回：找到的数据，以及不存在的ID
func FindByID[T any](data []T, id func(T) int32, ids []int32) (okData []T, failedIDs []int32) {
	if len(ids) == 0 {
		return data, nil
	}
	index := lo.SliceToMap(data, func(d T) (int32, T) {
		return id(d), d
	})
	okData = make([]T, 0, len(ids))
	failedIDs = make([]int32, 0)
	for _, i := range ids {
		if d, ok := index[i]; ok {
			okData = append(okData, d)
		} else {
			failedIDs = append(failedIDs, i)
		}
	}
	return
}
