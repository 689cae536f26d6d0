package layout

// Config 汇总海报的全部静态配置：画布、配色、字体、几何与文案。
// 它作为显式参数传入 Compose，便于用不同尺寸、主题或文案做参数化测试。
type Config struct {
	Width    float64      `json:"width" yaml:"width"`
	Height   float64      `json:"height" yaml:"height"`
	Theme    Theme        `json:"theme" yaml:"theme"`
	Fonts    FontSet      `json:"fonts" yaml:"fonts"`
	Sizes    TypeScale    `json:"sizes" yaml:"sizes"`
	Geometry Geometry     `json:"geometry" yaml:"geometry"`
	Wrap     WrapConfig   `json:"wrap" yaml:"wrap"`
	Chips    ChipConfig   `json:"chips" yaml:"chips"`
	Content  Content      `json:"content" yaml:"content"`
	Meta     DocumentMeta `json:"meta" yaml:"meta"`
}

// Theme 是海报使用的全部颜色。
type Theme struct {
	Navy        Color `json:"navy" yaml:"navy"`
	Teal        Color `json:"teal" yaml:"teal"`
	Background  Color `json:"background" yaml:"background"`
	White       Color `json:"white" yaml:"white"`
	Ink         Color `json:"ink" yaml:"ink"`
	Muted       Color `json:"muted" yaml:"muted"`
	Line        Color `json:"line" yaml:"line"`
	ChipBg      Color `json:"chipBg" yaml:"chipBg"`
	ChipBorder  Color `json:"chipBorder" yaml:"chipBorder"`
	AmberBg     Color `json:"amberBg" yaml:"amberBg"`
	AmberBorder Color `json:"amberBorder" yaml:"amberBorder"`
	AmberText   Color `json:"amberText" yaml:"amberText"`
	Tagline     Color `json:"tagline" yaml:"tagline"`
	Caption     Color `json:"caption" yaml:"caption"`
	Footer      Color `json:"footer" yaml:"footer"`
}

// FontSet 指定常规与粗体字体来源；粗体不可用时改用 BoldFallback。
type FontSet struct {
	Regular      string `json:"regular" yaml:"regular"`
	Bold         string `json:"bold" yaml:"bold"`
	BoldFallback string `json:"boldFallback" yaml:"boldFallback"`
}

// 字体资源名。
const (
	FontRegular = "regular"
	FontBold    = "bold"
)

// TypeScale 是各处文字的字号（像素）。
type TypeScale struct {
	Title   float64 `json:"title" yaml:"title"`
	Sub     float64 `json:"sub" yaml:"sub"`
	Tag     float64 `json:"tag" yaml:"tag"`
	Heading float64 `json:"heading" yaml:"heading"`
	Body    float64 `json:"body" yaml:"body"`
	Small   float64 `json:"small" yaml:"small"`
	Chip    float64 `json:"chip" yaml:"chip"`
	Badge   float64 `json:"badge" yaml:"badge"`
	Lead    float64 `json:"lead" yaml:"lead"`
	Caption float64 `json:"caption" yaml:"caption"`
	Fine    float64 `json:"fine" yaml:"fine"`
}

// Geometry 是固定位置元素的坐标与尺寸。
type Geometry struct {
	Margin       float64 `json:"margin" yaml:"margin"`
	HeaderHeight float64 `json:"headerHeight" yaml:"headerHeight"`
	StripeHeight float64 `json:"stripeHeight" yaml:"stripeHeight"`

	LogoSize float64 `json:"logoSize" yaml:"logoSize"`
	LogoY    float64 `json:"logoY" yaml:"logoY"`
	LogoGap  float64 `json:"logoGap" yaml:"logoGap"`

	TitleY    float64 `json:"titleY" yaml:"titleY"`
	SubtitleY float64 `json:"subtitleY" yaml:"subtitleY"`
	TaglineY  float64 `json:"taglineY" yaml:"taglineY"`

	FirstCardGap float64    `json:"firstCardGap" yaml:"firstCardGap"`
	CardGap      float64    `json:"cardGap" yaml:"cardGap"`
	CardHeights  [3]float64 `json:"cardHeights" yaml:"cardHeights"`
	CardRadius   float64    `json:"cardRadius" yaml:"cardRadius"`
	CardStroke   float64    `json:"cardStroke" yaml:"cardStroke"`
	CardPadX     float64    `json:"cardPadX" yaml:"cardPadX"`
	HeadingY     float64    `json:"headingY" yaml:"headingY"`

	IntroTextY   float64 `json:"introTextY" yaml:"introTextY"`
	ChipsY       float64 `json:"chipsY" yaml:"chipsY"`
	FormatBottom float64 `json:"formatBottom" yaml:"formatBottom"`

	BadgeY      float64 `json:"badgeY" yaml:"badgeY"`
	BadgePadX   float64 `json:"badgePadX" yaml:"badgePadX"`
	BadgeHeight float64 `json:"badgeHeight" yaml:"badgeHeight"`
	BadgeRadius float64 `json:"badgeRadius" yaml:"badgeRadius"`
	BadgeTextY  float64 `json:"badgeTextY" yaml:"badgeTextY"`
	LeadY       float64 `json:"leadY" yaml:"leadY"`
	NoteY       float64 `json:"noteY" yaml:"noteY"`

	QRSize         float64 `json:"qrSize" yaml:"qrSize"`
	QRInset        float64 `json:"qrInset" yaml:"qrInset"`
	QRCaptionShift float64 `json:"qrCaptionShift" yaml:"qrCaptionShift"`

	FooterBottom float64 `json:"footerBottom" yaml:"footerBottom"`
	FooterGap    float64 `json:"footerGap" yaml:"footerGap"`
}

// WrapConfig 控制简介段落的换行。
type WrapConfig struct {
	Width      int      `json:"width" yaml:"width"`
	LineHeight float64  `json:"lineHeight" yaml:"lineHeight"`
	MaxLines   int      `json:"maxLines" yaml:"maxLines"`
	Unit       WrapUnit `json:"unit" yaml:"unit"`
}

// ChipConfig 控制议题胶囊的尺寸。
type ChipConfig struct {
	PadX       float64 `json:"padX" yaml:"padX"`
	PadY       float64 `json:"padY" yaml:"padY"`
	GapX       float64 `json:"gapX" yaml:"gapX"`
	GapY       float64 `json:"gapY" yaml:"gapY"`
	Radius     float64 `json:"radius" yaml:"radius"`
	TextNudgeY float64 `json:"textNudgeY" yaml:"textNudgeY"`
}

// Content 是海报上的全部文案。
type Content struct {
	Title         string    `json:"title" yaml:"title"`
	Subtitle      string    `json:"subtitle" yaml:"subtitle"`
	Tagline       string    `json:"tagline" yaml:"tagline"`
	IntroHeading  string    `json:"introHeading" yaml:"introHeading"`
	Intro         string    `json:"intro" yaml:"intro"`
	TopicsHeading string    `json:"topicsHeading" yaml:"topicsHeading"`
	Topics        []string  `json:"topics" yaml:"topics"`
	Format        string    `json:"format" yaml:"format"`
	RegHeading    string    `json:"regHeading" yaml:"regHeading"`
	Badge         string    `json:"badge" yaml:"badge"`
	RegLead       string    `json:"regLead" yaml:"regLead"`
	RegNote       string    `json:"regNote" yaml:"regNote"`
	QRCaption     [2]string `json:"qrCaption" yaml:"qrCaption"`
	Footer        string    `json:"footer" yaml:"footer"`
	Disclaimer    string    `json:"disclaimer" yaml:"disclaimer"`
}

// DefaultConfig 返回 GlomCon 广州会议海报的默认配置（1080×1350，4:5）。
func DefaultConfig() Config {
	return Config{
		Width:  1080,
		Height: 1350,
		Theme: Theme{
			Navy:        Color{11, 31, 59},
			Teal:        Color{22, 163, 163},
			Background:  Color{247, 251, 255},
			White:       Color{255, 255, 255},
			Ink:         Color{14, 23, 38},
			Muted:       Color{51, 65, 85},
			Line:        Color{217, 230, 242},
			ChipBg:      Color{234, 245, 255},
			ChipBorder:  Color{184, 217, 243},
			AmberBg:     Color{255, 247, 237},
			AmberBorder: Color{253, 186, 116},
			AmberText:   Color{154, 52, 18},
			Tagline:     Color{214, 232, 255},
			Caption:     Color{100, 116, 139},
			Footer:      Color{71, 85, 105},
		},
		Fonts: FontSet{
			Regular:      "/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
			Bold:         "/usr/share/fonts/opentype/noto/NotoSerifCJK-Bold.ttc",
			BoldFallback: "/usr/share/fonts/opentype/noto/NotoSansCJK-Bold.ttc",
		},
		Sizes: TypeScale{
			Title:   64,
			Sub:     30,
			Tag:     24,
			Heading: 34,
			Body:    22,
			Small:   18,
			Chip:    22,
			Badge:   20,
			Lead:    28,
			Caption: 16,
			Fine:    15,
		},
		Geometry: Geometry{
			Margin:         72,
			HeaderHeight:   310,
			StripeHeight:   10,
			LogoSize:       64,
			LogoY:          32,
			LogoGap:        18,
			TitleY:         44,
			SubtitleY:      150,
			TaglineY:       200,
			FirstCardGap:   28,
			CardGap:        20,
			CardHeights:    [3]float64{300, 260, 330},
			CardRadius:     24,
			CardStroke:     2,
			CardPadX:       28,
			HeadingY:       22,
			IntroTextY:     90,
			ChipsY:         92,
			FormatBottom:   54,
			BadgeY:         30,
			BadgePadX:      28,
			BadgeHeight:    42,
			BadgeRadius:    16,
			BadgeTextY:     10,
			LeadY:          92,
			NoteY:          136,
			QRSize:         170,
			QRInset:        28,
			QRCaptionShift: 14,
			FooterBottom:   52,
			FooterGap:      22,
		},
		Wrap: WrapConfig{
			Width:      28,
			LineHeight: 34,
			MaxLines:   6,
			Unit:       UnitRune,
		},
		Chips: ChipConfig{
			PadX:       18,
			PadY:       12,
			GapX:       14,
			GapY:       14,
			Radius:     18,
			TextNudgeY: -2,
		},
		Content: Content{
			Title:        "GlomCon 中国广州会议",
			Subtitle:     "2026/6/5–6/7  ·  广州  ·  北京时间",
			Tagline:      "以真实临床问题为导向的高水平学术交流平台",
			IntroHeading: "会议简介",
			Intro: "本次会议以真实临床问题为导向，汇聚国内外肾脏专科专家，" +
				"打造覆盖肾小球疾病、肾移植内科、重症肾内与透析、AI 肾病、儿童肾病等关键亚专科的高水平学术交流平台。" +
				"会议将通过主题报告、病例讨论与互动交流相结合，促进前沿证据与真实世界经验的有效转化。" +
				"已邀请多位海外重磅专家加入学术阵容，嘉宾与会议日程将陆续公布。",
			TopicsHeading: "重点议题",
			Topics:        []string{"肾小球疾病", "肾移植内科", "重症肾内与透析", "AI 肾病", "儿童肾病"},
			Format:        "形式：主题报告  ·  病例讨论  ·  互动交流",
			RegHeading:    "参会与报名",
			Badge:         "注册尚未开放",
			RegLead:       "敬请关注官网获取最新通知",
			RegNote:       "我们将陆续公布嘉宾阵容、会议日程与报名信息。",
			QRCaption:     [2]string{"预留二维码", "扫码关注官网"},
			Footer:        "GlomCon China × KidneySphere  |  学术交流 · 病例讨论 · 真实世界经验",
			Disclaimer:    "提示：海报信息以官网最新通知为准。",
		},
		Meta: DocumentMeta{
			Title:    "GlomCon 中国广州会议",
			Author:   "KidneySphere",
			Subject:  "会议海报",
			Creator:  "poster",
			Keywords: []string{"GlomCon", "肾脏病", "广州"},
		},
	}
}

// ContentRegion 返回卡片可用的水平区域（左右各留出页边距）。
func (c Config) ContentRegion() Region {
	m := c.Geometry.Margin
	return Region{X: m, Y: 0, Width: c.Width - 2*m, Height: c.Height}
}
