package layout

// newEnvironment 依据 Surface 给出的字体单元度量预计算一个 run 的行度量，
// 并连同字体/颜色一起冻结为环境快照。必须在该 run 分词之前完成。
func newEnvironment(run StyledRun, s Surface) (Environment, error) {
	if run.Font == nil {
		return Environment{}, ErrMissingFont
	}

	cell, err := s.Cell(*run.Font)
	if err != nil {
		return Environment{}, err
	}

	env := Environment{Font: *run.Font}
	if run.Paint != nil {
		env.Paint = *run.Paint
	}
	env.LineSpace = cell.Height
	if cell.CellSpace != 0 {
		env.Ascent = cell.Height * cell.CellAscent / cell.CellSpace
		env.Descent = cell.Height * cell.CellDescent / cell.CellSpace
	}

	// 空格宽度不直接查询空格字形（部分字体给出的值不可靠），
	// 而是用 "x x" 与 "xx" 的宽度差间接求得。
	pair, err := s.Measure("xx", *run.Font)
	if err != nil {
		return Environment{}, err
	}
	spaced, err := s.Measure("x x", *run.Font)
	if err != nil {
		return Environment{}, err
	}
	if spaced > pair {
		env.SpaceWidth = spaced - pair
	}
	return env, nil
}
