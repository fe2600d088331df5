package layout

import (
	"fmt"
	"strings"
)

// 该文件定义排版核心的数据模型，供布局计算、渲染与调试 JSON 共用。

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// FontRef 描述一次布局调用引用的字体：资源定位（Name/Src/Style）与字号。
// Src 可以是文件路径或 fallback:<name> 形式的内置回退字体。
type FontRef struct {
	Name  string  `json:"name"`
	Src   string  `json:"src"`
	Style string  `json:"style"`
	Size  float64 `json:"size"` // 字号（mm）
}

// FontCell 是绘图后端给出的字体单元度量。Height 为基线间距（mm），
// CellAscent/CellDescent/CellSpace 为同一尺度下的单元数值，组合 Height 使用。
type FontCell struct {
	Height      float64
	CellAscent  float64
	CellDescent float64
	CellSpace   float64
}

// StyledRun 表示一段共享同一字体与颜色的输入文本。
// 布局过程不会修改调用方持有的 StyledRun：文本修剪与行度量只进入环境快照。
type StyledRun struct {
	Text  string   `json:"text"`
	Font  *FontRef `json:"font"`
	Paint *Color   `json:"paint"`
}

// Environment 是分词时刻从 StyledRun 捕获的不可变快照，附着在由该 run
// 派生的每个词元上，使后续布局阶段与调用方持有的 run 解耦。
type Environment struct {
	Font       FontRef
	Paint      Color
	LineSpace  float64 // 相邻基线的纵向间距
	Ascent     float64 // 基线以上的高度
	Descent    float64 // 基线以下的高度
	SpaceWidth float64 // 单个空格的视觉宽度
}

// Alignment 枚举段落的水平对齐方式。零值为左对齐。
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// ParseAlignment 解析脚本中的对齐值（支持 start/end 别名），无法识别时回退左对齐。
func ParseAlignment(v string) Alignment {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "center", "middle":
		return AlignCenter
	case "right", "end":
		return AlignRight
	case "justify":
		return AlignJustify
	default:
		return AlignLeft
	}
}

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustify:
		return "justify"
	default:
		return "left"
	}
}

// Anchor 描述文本块相对矩形的锚点。目前只实现左上角锚点，
// 其余取值在布局校验阶段整体拒绝。
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorCenter
	AnchorBottomLeft
)

// ParseAnchor 解析脚本中的锚点值。
func ParseAnchor(v string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "top-left", "topleft":
		return AnchorTopLeft, nil
	case "center", "middle":
		return AnchorCenter, nil
	case "bottom-left", "bottomleft":
		return AnchorBottomLeft, nil
	default:
		return AnchorTopLeft, fmt.Errorf("layout: 无法识别的锚点 %q", v)
	}
}

// Format 描述一次布局调用的格式参数。
type Format struct {
	Anchor Anchor    `json:"anchor"`
	Align  Alignment `json:"align"`
}

// Rect 为布局矩形，单位 mm，原点在左上角。
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Result 报告一次布局/绘制的完成情况。高度溢出不是错误：
// 超出的文本被静默截断，通过 Truncated 暴露给调用方。
type Result struct {
	Truncated  bool `json:"truncated"`
	Placed     int  `json:"placed"`     // 实际放置的词数
	LastPlaced int  `json:"lastPlaced"` // 最后放置词元在全序列中的下标，无词时为 -1
}

// Placement 是布局后单个词的最终落点（页面坐标，Y 为基线位置）。
type Placement struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Font  FontRef `json:"font"`
	Paint Color   `json:"paint"`
}

type tokenKind int

const (
	wordToken tokenKind = iota
	breakToken
)

// token 是分词结果：一个词或一个显式换行标记。
// 位置由流式排版写入，stop 标记表示纵向溢出时的截断点。
type token struct {
	kind  tokenKind
	text  string
	width float64
	x, y  float64
	align *Alignment // 对齐覆盖；硬换行结束的 Justify 行被钉为左对齐
	stop  bool
	env   Environment
}

// Sheet 是从脚本构建出的单页排版描述。
type Sheet struct {
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Boxes     []Box       `json:"boxes"`
	Resources ResourceSet `json:"resources"`
}

// Box 是一个待排版的矩形区域及其内容。
type Box struct {
	Rect   Rect        `json:"rect"`
	Format Format      `json:"format"`
	Runs   []StyledRun `json:"runs"`
}

// ResourceSet 记录脚本解析出的字体、颜色与样式定义。
type ResourceSet struct {
	Fonts  map[string]FontResource `json:"fonts"`
	Colors map[string]Color        `json:"colors"`
	Styles map[string]Style        `json:"styles"`
}

// FontResource 描述字体资源声明；加载失败时渲染器回退到内置字体。
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style"`
}

// Style 用于描述可继承的文本样式。
type Style struct {
	Name    string            `json:"name"`
	Extends string            `json:"extends,omitempty"`
	Props   map[string]string `json:"props"`
}
