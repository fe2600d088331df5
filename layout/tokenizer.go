package layout

import (
	"strings"
	"unicode"
)

// tokenize 将全部 run 打平成一个有序词元序列。
// 每个 run 的文本先去除首尾空白（只影响快照，不回写调用方的 StyledRun），
// 修剪后为空的 run 被整体跳过。
func tokenize(runs []StyledRun, s Surface) ([]*token, error) {
	var tokens []*token
	for _, run := range runs {
		text := strings.TrimSpace(run.Text)
		if text == "" {
			continue
		}
		env, err := newEnvironment(run, s)
		if err != nil {
			return nil, err
		}
		toks, err := tokenizeRun(text, env, s)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, toks...)
	}
	return tokens, nil
}

// tokenizeRun 从左到右扫描单个 run 的文本：连续非空白字符构成一个词，
// 宽度按精确子串测量；CR、LF 与 CRLF 统一为一次换行事件，每次事件恰好
// 生成一个携带触发 run 环境的换行词元；其余空白只作为词的边界，
// 不单独生成词元（视觉宽度由换行阶段的 SpaceWidth 提供）。
func tokenizeRun(text string, env Environment, s Surface) ([]*token, error) {
	var tokens []*token
	start := -1

	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		word := text[start:end]
		start = -1
		w, err := s.Measure(word, env.Font)
		if err != nil {
			return err
		}
		tokens = append(tokens, &token{kind: wordToken, text: word, width: w, env: env})
		return nil
	}

	prevCR := false
	for i, r := range text {
		switch {
		case r == '\r':
			if err := flush(i); err != nil {
				return nil, err
			}
			tokens = append(tokens, &token{kind: breakToken, env: env})
			prevCR = true
		case r == '\n':
			if prevCR {
				// CRLF 合并为一次换行事件
				prevCR = false
				continue
			}
			if err := flush(i); err != nil {
				return nil, err
			}
			tokens = append(tokens, &token{kind: breakToken, env: env})
		case unicode.IsSpace(r):
			prevCR = false
			if err := flush(i); err != nil {
				return nil, err
			}
		default:
			prevCR = false
			if start < 0 {
				start = i
			}
		}
	}
	// run 末尾残留的非空白片段作为最后一个词冲出
	if err := flush(len(text)); err != nil {
		return nil, err
	}
	return tokens, nil
}
