package common

const (
	// CacheKeyApproval prefixes one-shot checklist approval tokens.
	CacheKeyApproval = "journal-approval:"

	HeaderApprovalToken = "X-Checklist-Approval"

	DefaultStatsLimit   = 200
	DefaultRecentLimit  = 10
	DefaultDigestCron   = "0 21 * * *"
	DefaultTelegramRate = 20
)
