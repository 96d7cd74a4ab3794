package i18n

var english = map[Key]string{
	ErrCreateDataDir:    "Failed to create data directory",
	ErrCreateRecordsDir: "Failed to create records directory",
	ErrCreateRecordDir:  "Failed to create record directory",
	ErrSaveMetadata:     "Failed to save metadata",
	ErrSaveStdout:       "Failed to save stdout",
	ErrSaveStderr:       "Failed to save stderr",
	ErrUpdateIndex:      "Failed to update index",
	ErrSaveArchive:      "Failed to save archive for {0}",
	ErrRebuildIndex:     "Failed to rebuild index",
	ErrReadIndex:        "Failed to read index",
	ErrReadRecords:      "Failed to read records",
	ErrDeleteRecord:     "Failed to delete record",
	ErrCleanAll:         "Failed to clean all records",

	ErrReadStdout: "Cannot read stdout",
	ErrReadStderr: "Cannot read stderr",

	ErrExecuteCommand: "Failed to execute command",
	ErrWorkingDir:     "Failed to resolve working directory",
	ErrLoadConfig:     "Failed to load configuration",

	CommandCompleted:  "Command completed, exit code: {0}",
	ExecutionTime:     "Execution time",
	StdoutLabel:       "Standard output:",
	StderrLabel:       "Error output:",
	OutputSize:        "{0} {1}, {2} lines",
	ResultSaved:       "Result saved",
	AssignedShortCode: "Short code: {0}",
	HintDiffWithCode:  "Tip: run again with --diff-code={0} to compare",
	DiffCodeNotFound:  "No record found with short code: {0}",

	NeedAtLeastTwo:    "Need at least two execution records for comparison",
	DiffCommand:       "Command: {0}",
	DiffEarlierLabel:  "Earlier",
	DiffLaterLabel:    "Later",
	ShortCodeLabel:    "code",
	DiffExitCode:      "exit code: {0} -> {1}",
	DiffExecutionTime: "execution time: {0}ms -> {1}ms",
	StdoutDiff:        "stdout diff:",
	StderrDiff:        "stderr diff:",
	OutputIdentical:   "output is identical",
	CopiedToClipboard: "Diff copied to clipboard",
	NoRecords:         "No records",

	PickFirst:                "Select first",
	PickSecond:               "Select second",
	PickOne:                  "Select one",
	SelectionComplete:        "Selection complete",
	FilterLabel:              "Filter",
	NavHints:                 "type to filter · ↑↓/jk move · Enter select · Tab mark · Esc back · ^C quit",
	NoMatches:                "No matches",
	WarningInteractiveFailed: "Warning: Cannot enable interactive mode, falling back to simple selection mode",
	PreviewStdout:            "stdout",
	PreviewStderr:            "stderr",
	PreviewEmpty:             "(empty)",
	SelectCommand:            "Select a command",
	SelectFile:               "Select a file",
	RunsCount:                "{0} runs",
	DeleteFailed:             "Delete failed: {0}",

	SelectExecutions:     "Found {0} execution records, please select two to compare:",
	TimeLabel:            "time",
	InputNumbers:         "Input two numbers (space separated, e.g., 1 2), short codes, or a date filter:",
	InputIndex:           "Input a number (empty to cancel):",
	InvalidInput:         "Invalid input, will use the first two records",
	FewRecordsFallback:   "Less than 2 matched records, using the latest two records",
	UsingFilteredRecords: "Using the two filtered records for comparison:",

	DeleteNothing:        "No records matched; nothing to delete.",
	DryRunTotal:          "Dry-run total: {0} records",
	DeleteSummaryQuery:   "About to delete {0} records matching: {1}",
	DeleteSummaryFile:    "About to delete {0} records related to file: {1}",
	ConfirmDeletePrompt:  "Type YES to confirm (or ALL to confirm all deletions this session): ",
	ConfirmAborted:       "Aborted. No records were deleted.",
	CleanedRecords:       "Cleaned {0} records",
	ConfirmCleanAllTitle: "This will delete ALL recorded executions.",
	CleanAllSummary:      "Summary: {0} different commands, {1} total records",
	CleanedAll:           "All records cleaned",
	NoRelatedFiles:       "No related files found",
	CleanRecord:          "Cleaned: {0} ({1})",

	MonthJan: "Jan",
	MonthFeb: "Feb",
	MonthMar: "Mar",
	MonthApr: "Apr",
	MonthMay: "May",
	MonthJun: "Jun",
	MonthJul: "Jul",
	MonthAug: "Aug",
	MonthSep: "Sep",
	MonthOct: "Oct",
	MonthNov: "Nov",
	MonthDec: "Dec",

	HelpAbout:       "Command execution time diff tool",
	HelpRun:         "Execute command and record output",
	HelpDiff:        "Compare command output differences",
	HelpLs:          "List records concisely (non-interactive)",
	HelpClean:       "Clean history records",
	HelpCleanSearch: "Clean records matching a query (substring or subsequence)",
	HelpCleanFile:   "Clean records related to a file or directory",
	HelpCleanAll:    "Clean all records",
	HelpDataDir:     "Override data directory (default: ~/.dt)",
	HelpDiffCode:    "Show diff against an existing short code after run",
	HelpMaxShown:    "Selector viewport height (rows)",
	HelpDryRun:      "List matches without deleting",
	HelpFormat:      "Output format: text, json or yaml",
	HelpGlob:        "Only show commands matching a glob pattern",
	HelpCopy:        "Copy the diff report to the clipboard",
}
