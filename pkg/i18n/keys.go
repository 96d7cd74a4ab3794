package i18n

// Key identifies a user-facing message.
type Key int

const (
	// Storage failures
	ErrCreateDataDir Key = iota
	ErrCreateRecordsDir
	ErrCreateRecordDir
	ErrSaveMetadata
	ErrSaveStdout
	ErrSaveStderr
	ErrUpdateIndex
	ErrSaveArchive
	ErrRebuildIndex
	ErrReadIndex
	ErrReadRecords
	ErrDeleteRecord
	ErrCleanAll

	// Degraded reads
	ErrReadStdout
	ErrReadStderr

	// Execution failures
	ErrExecuteCommand
	ErrWorkingDir
	ErrLoadConfig

	// dt run
	CommandCompleted
	ExecutionTime
	StdoutLabel
	StderrLabel
	OutputSize
	ResultSaved
	AssignedShortCode
	HintDiffWithCode
	DiffCodeNotFound

	// diff report
	NeedAtLeastTwo
	DiffCommand
	DiffEarlierLabel
	DiffLaterLabel
	ShortCodeLabel
	DiffExitCode
	DiffExecutionTime
	StdoutDiff
	StderrDiff
	OutputIdentical
	CopiedToClipboard
	NoRecords

	// picker
	PickFirst
	PickSecond
	PickOne
	SelectionComplete
	FilterLabel
	NavHints
	NoMatches
	WarningInteractiveFailed
	PreviewStdout
	PreviewStderr
	PreviewEmpty
	SelectCommand
	SelectFile
	RunsCount
	DeleteFailed

	// fallback selector
	SelectExecutions
	TimeLabel
	InputNumbers
	InputIndex
	InvalidInput
	FewRecordsFallback
	UsingFilteredRecords

	// clean
	DeleteNothing
	DryRunTotal
	DeleteSummaryQuery
	DeleteSummaryFile
	ConfirmDeletePrompt
	ConfirmAborted
	CleanedRecords
	ConfirmCleanAllTitle
	CleanAllSummary
	CleanedAll
	NoRelatedFiles
	CleanRecord

	// months
	MonthJan
	MonthFeb
	MonthMar
	MonthApr
	MonthMay
	MonthJun
	MonthJul
	MonthAug
	MonthSep
	MonthOct
	MonthNov
	MonthDec

	// command help
	HelpAbout
	HelpRun
	HelpDiff
	HelpLs
	HelpClean
	HelpCleanSearch
	HelpCleanFile
	HelpCleanAll
	HelpDataDir
	HelpDiffCode
	HelpMaxShown
	HelpDryRun
	HelpFormat
	HelpGlob
	HelpCopy

	keyCount
)
