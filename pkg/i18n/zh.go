package i18n

var chinese = map[Key]string{
	ErrCreateDataDir:    "创建数据目录失败",
	ErrCreateRecordsDir: "创建 records 目录失败",
	ErrCreateRecordDir:  "创建记录目录失败",
	ErrSaveMetadata:     "保存元数据失败",
	ErrSaveStdout:       "保存标准输出失败",
	ErrSaveStderr:       "保存错误输出失败",
	ErrUpdateIndex:      "更新索引失败",
	ErrSaveArchive:      "保存 {0} 年归档失败",
	ErrRebuildIndex:     "重建索引失败",
	ErrReadIndex:        "读取索引失败",
	ErrReadRecords:      "读取记录失败",
	ErrDeleteRecord:     "删除记录失败",
	ErrCleanAll:         "清理全部记录失败",

	ErrReadStdout: "无法读取标准输出",
	ErrReadStderr: "无法读取错误输出",

	ErrExecuteCommand: "执行命令失败",
	ErrWorkingDir:     "获取工作目录失败",
	ErrLoadConfig:     "加载配置失败",

	CommandCompleted:  "命令执行完成，退出码: {0}",
	ExecutionTime:     "执行时间",
	StdoutLabel:       "标准输出:",
	StderrLabel:       "错误输出:",
	OutputSize:        "{0} {1}，{2} 行",
	ResultSaved:       "结果已保存",
	AssignedShortCode: "短码: {0}",
	HintDiffWithCode:  "提示: 再次运行时使用 --diff-code={0} 进行比较",
	DiffCodeNotFound:  "未找到短码为 {0} 的记录",

	NeedAtLeastTwo:    "至少需要两条执行记录才能比较",
	DiffCommand:       "命令: {0}",
	DiffEarlierLabel:  "较早",
	DiffLaterLabel:    "较晚",
	ShortCodeLabel:    "短码",
	DiffExitCode:      "退出码: {0} -> {1}",
	DiffExecutionTime: "执行时间: {0}ms -> {1}ms",
	StdoutDiff:        "标准输出差异:",
	StderrDiff:        "错误输出差异:",
	OutputIdentical:   "输出完全一致",
	CopiedToClipboard: "差异已复制到剪贴板",
	NoRecords:         "没有记录",

	PickFirst:                "选择首条",
	PickSecond:               "选择次条",
	PickOne:                  "选择一项",
	SelectionComplete:        "选择完成",
	FilterLabel:              "过滤",
	NavHints:                 "输入以过滤 · ↑↓/jk 移动 · Enter 选择 · Tab 标记 · Esc 返回 · ^C 退出",
	NoMatches:                "无匹配项",
	WarningInteractiveFailed: "警告: 无法启用交互模式，回退到简单选择模式",
	PreviewStdout:            "标准输出",
	PreviewStderr:            "错误输出",
	PreviewEmpty:             "(空)",
	SelectCommand:            "选择一个命令",
	SelectFile:               "选择一个文件",
	RunsCount:                "{0} 次",
	DeleteFailed:             "删除失败: {0}",

	SelectExecutions:     "找到 {0} 条执行记录，请选择两条进行比较:",
	TimeLabel:            "时间",
	InputNumbers:         "输入两个序号（空格分隔，例如 1 2）、短码或日期过滤:",
	InputIndex:           "输入序号（留空取消）:",
	InvalidInput:         "输入无效，将使用前两条记录",
	FewRecordsFallback:   "匹配记录少于 2 条，使用最近的两条记录",
	UsingFilteredRecords: "使用过滤后的两个记录进行比较:",

	DeleteNothing:        "没有匹配的记录，无需删除。",
	DryRunTotal:          "预演合计: {0} 条记录",
	DeleteSummaryQuery:   "即将删除 {0} 条匹配 {1} 的记录",
	DeleteSummaryFile:    "即将删除 {0} 条与文件 {1} 相关的记录",
	ConfirmDeletePrompt:  "输入 YES 确认（或输入 ALL 确认本次所有删除）: ",
	ConfirmAborted:       "已取消，未删除任何记录。",
	CleanedRecords:       "已清理 {0} 条记录",
	ConfirmCleanAllTitle: "这将删除所有执行记录。",
	CleanAllSummary:      "概要: {0} 个不同命令，共 {1} 条记录",
	CleanedAll:           "已清理全部记录",
	NoRelatedFiles:       "未找到相关文件",
	CleanRecord:          "已清理: {0} ({1})",

	MonthJan: "一月",
	MonthFeb: "二月",
	MonthMar: "三月",
	MonthApr: "四月",
	MonthMay: "五月",
	MonthJun: "六月",
	MonthJul: "七月",
	MonthAug: "八月",
	MonthSep: "九月",
	MonthOct: "十月",
	MonthNov: "十一月",
	MonthDec: "十二月",

	HelpAbout:       "命令执行结果差异对比工具",
	HelpRun:         "执行命令并记录输出",
	HelpDiff:        "比较命令输出差异",
	HelpLs:          "简洁列出记录（非交互）",
	HelpClean:       "清理历史记录",
	HelpCleanSearch: "按查询清理记录（子串或子序列）",
	HelpCleanFile:   "清理与文件或目录相关的记录",
	HelpCleanAll:    "清理全部记录",
	HelpDataDir:     "覆盖数据目录（默认: ~/.dt）",
	HelpDiffCode:    "运行后与指定短码的记录进行比较",
	HelpMaxShown:    "选择器视口高度（行）",
	HelpDryRun:      "仅列出匹配项，不删除",
	HelpFormat:      "输出格式: text、json 或 yaml",
	HelpGlob:        "仅显示匹配通配符模式的命令",
	HelpCopy:        "将差异报告复制到剪贴板",
}
