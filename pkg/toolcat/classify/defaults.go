package classify

// DefaultCategories is the built-in keyword table, in tie-break order.
var DefaultCategories = []Category{
	{Name: "✍️AI写作工具", Keywords: []string{"写作", "文案", "论文", "小说", "改写", "copywriting", "writing", "essay"}},
	{Name: "🖼️AI图像生成与创作类工具", Keywords: []string{"文生图", "绘画", "画图", "图像生成", "text-to-image", "image generation", "midjourney", "stable diffusion"}},
	{Name: "🖼️AI图像编辑处理类工具", Keywords: []string{"抠图", "背景移除", "修图", "图片编辑", "物体抹除", "photo editing", "background removal", "retouch"}},
	{Name: "🎥AI视频工具", Keywords: []string{"视频", "短视频", "数字人", "文生视频", "剪辑", "video", "avatar", "animation"}},
	{Name: "📡AI办公工具", Keywords: []string{"ppt", "办公", "表格", "会议", "文档", "slides", "spreadsheet", "meeting"}},
	{Name: "🎨AI设计工具", Keywords: []string{"设计", "海报", "logo", "ui设计", "3d", "design", "poster", "prototype"}},
	{Name: "💬AI对话聊天", Keywords: []string{"聊天", "对话", "助手", "问答", "chatbot", "chat", "assistant", "conversation"}},
	{Name: "💻AI编程工具", Keywords: []string{"编程", "代码", "代码补全", "开发者", "code", "coding", "programming", "copilot"}},
	{Name: "🔍AI搜索引擎", Keywords: []string{"搜索", "搜索引擎", "检索", "search", "search engine", "answer engine"}},
	{Name: "🎵AI音频工具", Keywords: []string{"语音", "音乐", "配音", "变声", "tts", "speech", "music", "voice"}},
	{Name: "🛠️AI开发平台", Keywords: []string{"智能体", "低代码", "框架", "机器学习", "agent", "framework", "sdk", "low-code"}},
	{Name: "⚙️AI训练模型", Keywords: []string{"大模型", "大语言模型", "训练", "预训练", "llm", "model", "fine-tuning", "weights"}},
	{Name: "📑AI内容检测", Keywords: []string{"检测", "查重", "鉴别", "aigc检测", "detector", "detection", "plagiarism"}},
	{Name: "🌍AI语言翻译", Keywords: []string{"翻译", "同声传译", "多语言", "translate", "translation", "translator"}},
	{Name: "🏛️AI法律助手", Keywords: []string{"法律", "合同", "律师", "法规", "legal", "contract", "law"}},
	{Name: "📡AI提示指令", Keywords: []string{"提示词", "prompt", "指令", "prompts", "prompt engineering"}},
	{Name: "📦AI模型评测", Keywords: []string{"评测", "基准", "排行榜", "benchmark", "leaderboard", "evaluation"}},
	{Name: "👁️AI学习网站", Keywords: []string{"课程", "学习", "教程", "教育", "course", "learning", "tutorial", "mooc"}},
}

// DefaultLabels are the semantic prototypes, one per category.
var DefaultLabels = []Label{
	{Name: "✍️AI写作工具", Prototype: "写作 文案 论文 小说 创作 改写 润色 续写 writing copywriting essay article blog content rewrite"},
	{Name: "🖼️AI图像生成与创作类工具", Prototype: "文生图 绘画 画图 图像生成 插画 text-to-image image generation art painting illustration diffusion"},
	{Name: "🖼️AI图像编辑处理类工具", Prototype: "抠图 背景移除 修图 图片编辑 物体抹除 放大 photo editing background removal retouch upscale enhance"},
	{Name: "🎥AI视频工具", Prototype: "视频 短视频 数字人 文生视频 剪辑 video generation editing avatar animation clip"},
	{Name: "📡AI办公工具", Prototype: "ppt 办公 表格 会议 文档 纪要 slides presentation spreadsheet meeting notes documents office"},
	{Name: "🎨AI设计工具", Prototype: "设计 海报 logo ui设计 3d 电商 design poster graphic prototype interface"},
	{Name: "💬AI对话聊天", Prototype: "聊天 对话 助手 问答 陪伴 chatbot chat assistant conversation companion"},
	{Name: "💻AI编程工具", Prototype: "编程 代码 代码补全 开发者 调试 code coding programming completion copilot developer debugging"},
	{Name: "🔍AI搜索引擎", Prototype: "搜索 搜索引擎 检索 问答 search engine answer engine web results citations"},
	{Name: "🎵AI音频工具", Prototype: "语音 音乐 配音 变声 合成 识别 tts speech music voice audio song"},
	{Name: "🛠️AI开发平台", Prototype: "智能体 低代码 框架 机器学习 平台 部署 agent framework sdk low-code platform deploy"},
	{Name: "⚙️AI训练模型", Prototype: "大模型 大语言模型 训练 预训练 开源模型 llm model fine-tuning weights parameters"},
	{Name: "📑AI内容检测", Prototype: "检测 查重 鉴别 识别 aigc detector detection plagiarism originality"},
	{Name: "🌍AI语言翻译", Prototype: "翻译 同声传译 多语言 translate translation translator multilingual"},
	{Name: "🏛️AI法律助手", Prototype: "法律 合同 律师 法规 咨询 legal contract law lawyer"},
	{Name: "📡AI提示指令", Prototype: "提示词 指令 模板 prompt prompts prompt engineering templates"},
	{Name: "📦AI模型评测", Prototype: "评测 基准 排行榜 测评 benchmark leaderboard evaluation ranking"},
	{Name: "👁️AI学习网站", Prototype: "课程 学习 教程 教育 培训 course learning tutorial education mooc"},
}
