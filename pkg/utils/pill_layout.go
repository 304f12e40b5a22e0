package utils

// PillLayout 状态条胶囊的布局结果（派生值，不作为输入保存）
type PillLayout struct {
	StartX     float64
	PillWidth  float64
	PillHeight float64
	Gap        float64
}

// ComputePillPositions 计算 count 个等宽胶囊在可用宽度内居中排列时的左边缘 X 坐标
//
//	total  = count*itemWidth + (count-1)*gap
//	offset = (availableWidth - total) / 2
//	x_i    = startOffset + offset + i*(itemWidth+gap)
//
// count <= 0 时返回空切片。内容超出可用宽度时 offset 为负，照常返回。
// itemHeight 不影响 X 坐标。
func ComputePillPositions(count int, itemWidth, itemHeight, gap, availableWidth, startOffset float64) []float64 {
	if count <= 0 {
		return []float64{}
	}

	total := float64(count)*itemWidth + float64(count-1)*gap
	offset := (availableWidth - total) / 2

	positions := make([]float64, count)
	for i := range positions {
		positions[i] = startOffset + offset + float64(i)*(itemWidth+gap)
	}
	return positions
}

// CalculatePillLayout 返回胶囊布局参数，StartX 为第一个胶囊的位置
// count <= 0 时 StartX 为 startOffset + availableWidth/2
func CalculatePillLayout(count int, itemWidth, itemHeight, gap, availableWidth, startOffset float64) PillLayout {
	layout := PillLayout{
		StartX:     startOffset + availableWidth/2,
		PillWidth:  itemWidth,
		PillHeight: itemHeight,
		Gap:        gap,
	}
	if positions := ComputePillPositions(count, itemWidth, itemHeight, gap, availableWidth, startOffset); len(positions) > 0 {
		layout.StartX = positions[0]
	}
	return layout
}

// X 返回第 i 个胶囊的左边缘
func (l PillLayout) X(i int) float64 {
	return l.StartX + float64(i)*(l.PillWidth+l.Gap)
}
