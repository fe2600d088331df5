package layout

// alignRange 在一个视觉行的连续词元区间 [first, last] 内重新分配水平空隙。
// 区间只允许落在同一 line unit 的同一视觉行之内。
func alignRange(tokens []*token, first, last int, rectW float64, align Alignment) {
	if last < first || align == AlignLeft {
		return
	}
	if ov := tokens[first].align; ov != nil && *ov == AlignLeft {
		return
	}

	// 行宽 = Σ(词宽 + 空格宽) 去掉最后一个词的尾随空格
	total := 0.0
	for i := first; i <= last; i++ {
		total += tokens[i].width + tokens[i].env.SpaceWidth
	}
	total -= tokens[last].env.SpaceWidth

	slack := rectW - total
	if slack < 0 {
		slack = 0
	}

	switch align {
	case AlignCenter:
		for i := first; i <= last; i++ {
			tokens[i].x += slack / 2
		}
	case AlignRight:
		// Right 施加全部空隙使行贴齐右缘；与 Center 的二分不同，这是有意的。
		for i := first; i <= last; i++ {
			tokens[i].x += slack
		}
	case AlignJustify:
		n := last - first + 1
		if n <= 1 {
			// 单词行没有可分配的间隙
			return
		}
		// 累积均匀分配：首词不动，第 i 个词移动 i*slack/(n-1)
		for i := first + 1; i <= last; i++ {
			tokens[i].x += float64(i-first) * slack / float64(n-1)
		}
	}
}
