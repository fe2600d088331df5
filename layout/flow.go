package layout

// 该文件实现核心流式排版：贪心填充、跨行基线调和与纵向溢出截断。
// y 游标贯穿所有 line unit，不在 unit 边界重置；x 游标每个视觉行重置。

// splitUnits 将词元序列按显式换行或 stop 标记切分为 line unit
// （两次显式换行之间的一个段落，含触发词元本身）。
// 末尾未被换行终结的残段同样作为最后一个 unit 产出。
func splitUnits(tokens []*token) [][]*token {
	var units [][]*token
	start := 0
	for i, tok := range tokens {
		if tok.kind == breakToken || tok.stop {
			units = append(units, tokens[start:i+1])
			start = i + 1
		}
	}
	if start < len(tokens) {
		units = append(units, tokens[start:])
	}
	return units
}

// flowState 是贯穿整次排版的游标状态。换行与溢出共用同一套
// 结行/起行/推进逻辑，由单一的"下一词元是否放得下"判定驱动。
type flowState struct {
	rect   Rect
	align  Alignment
	budget float64

	x, y      float64
	lineStart int // 当前视觉行首词元在全序列中的下标

	startSpace   float64 // 当前行起始行距（起行词元的环境）
	startDescent float64
	maxSpace     float64 // 当前行已放置词元中的最大行距
	maxDescent   float64
}

func (st *flowState) startLine(idx int, env Environment) {
	st.lineStart = idx
	st.x = 0
	st.startSpace = env.LineSpace
	st.startDescent = env.Descent
	st.maxSpace = 0
	st.maxDescent = 0
}

// place 把词放在当前游标处并横向推进一个词宽加一个空格宽。
func (st *flowState) place(tok *token) {
	tok.x = st.x
	tok.y = st.y
	st.x += tok.width + tok.env.SpaceWidth
	if tok.env.LineSpace > st.maxSpace {
		st.maxSpace = tok.env.LineSpace
	}
	if tok.env.Descent > st.maxDescent {
		st.maxDescent = tok.env.Descent
	}
}

// finishLine 结束 [lineStart, last] 这一视觉行并做水平对齐。
// 由硬换行终结的 Justify 行先被钉为左对齐：显式断行的行不参与拉伸。
func (st *flowState) finishLine(tokens []*token, last int, hardBreak bool) {
	if last < st.lineStart {
		return
	}
	if hardBreak && st.align == AlignJustify {
		left := AlignLeft
		tokens[st.lineStart].align = &left
	}
	alignRange(tokens, st.lineStart, last, st.rect.W, st.align)
}

// flow 对整个词元序列执行贪心换行与纵向放置，写回每个词的位置。
// 纵向预算只为首行的上升部与末行的下降部预留空间（紧贴装箱）。
// 超出预算时在当前词元上打 stop 标记并整体中止——静默截断，不是错误。
func flow(tokens []*token, rect Rect, align Alignment) Result {
	res := Result{LastPlaced: -1}
	if len(tokens) == 0 {
		return res
	}

	budget := rect.H - tokens[0].env.Ascent - tokens[len(tokens)-1].env.Descent
	st := &flowState{rect: rect, align: align, budget: budget}
	st.startLine(0, tokens[0].env)

	for idx, tok := range tokens {
		if tok.kind == breakToken {
			st.finishLine(tokens, idx-1, true)
			// 下一行的起始度量向后看换行之后的词元：换行后接更大字体时
			// 要预留的是新字体的行距，而不是换行自身环境的行距。
			next := tok.env
			if idx+1 < len(tokens) {
				next = tokens[idx+1].env
			}
			st.y += next.LineSpace
			if st.y > st.budget {
				tok.stop = true
				res.Truncated = true
				return res
			}
			st.startLine(idx+1, next)
			continue
		}

		// 单一判定：x == 0 时无条件放置，保证超宽单词也能推进。
		if st.x == 0 || st.x+tok.width <= rect.W {
			st.place(tok)
			res.Placed++
			res.LastPlaced = idx
			continue
		}

		// 放不下：结束当前视觉行并另起一行。
		st.finishLine(tokens, idx-1, false)

		// 基线调和：行中途出现更高字体时整行下移，使同行词元共享基线。
		if st.maxSpace > st.startSpace {
			delta := st.maxSpace - st.startSpace
			st.y += delta
			for i := st.lineStart; i < idx; i++ {
				tokens[i].y += delta
			}
		}

		// 新行起始度量来自溢出词元本身；字号变小时额外补上上一行
		// 最大下降部与新行下降部的差，避免上一行的下伸笔画被裁切。
		next := tok.env
		if next.LineSpace < st.maxSpace {
			st.y += st.maxDescent - next.Descent
		}
		st.y += next.LineSpace
		if st.y > st.budget {
			tok.stop = true
			res.Truncated = true
			return res
		}
		st.startLine(idx, next)
		st.place(tok)
		res.Placed++
		res.LastPlaced = idx
	}

	// 末尾未被显式换行终结的残行：Justify 只拉伸完成的行，残行跳过。
	if st.lineStart < len(tokens) && align != AlignJustify {
		alignRange(tokens, st.lineStart, len(tokens)-1, rect.W, align)
	}
	return res
}
